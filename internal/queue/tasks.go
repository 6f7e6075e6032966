// Package queue task handlers for Asynq background processing.
package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"lecture-scribe/internal/service"
	"lecture-scribe/internal/storage"
	"lecture-scribe/internal/types"
	"lecture-scribe/log"
)

// TaskHandlers provides handlers for different task types
type TaskHandlers struct {
	service *service.Service
}

// NewTaskHandlers creates a new TaskHandlers instance
func NewTaskHandlers(svc *service.Service) *TaskHandlers {
	return &TaskHandlers{service: svc}
}

// HandleExtractionTask processes one archive-extraction task
func (h *TaskHandlers) HandleExtractionTask(ctx context.Context, t *asynq.Task) error {
	var payload types.ExtractionPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	log.GetLogger().Info("[Queue] Processing extraction task",
		zap.String("task_id", payload.TaskId),
		zap.String("mode", payload.Mode))

	if err := h.service.ProcessTask(ctx, payload); err != nil {
		// ProcessTask already persisted the failure; make sure a crash
		// between save points still leaves the task marked failed.
		task, _ := storage.GetTask(payload.TaskId)
		if task != nil && task.Status != types.TaskStatusFailed {
			task.Status = types.TaskStatusFailed
			task.FailReason = err.Error()
			_ = storage.SaveTask(task)
		}
		return err
	}

	log.GetLogger().Info("[Queue] Extraction task completed",
		zap.String("task_id", payload.TaskId))

	return nil
}

// RegisterHandlers registers all task handlers with the Asynq server mux
func (h *TaskHandlers) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(TypeExtractionTask, h.HandleExtractionTask)
}

// StartWorker starts the Asynq worker with registered handlers
func StartWorker(q *Queue, svc *service.Service) error {
	handlers := NewTaskHandlers(svc)

	mux := asynq.NewServeMux()
	handlers.RegisterHandlers(mux)

	log.GetLogger().Info("[Queue] Starting worker",
		zap.String("redis_addr", q.config.RedisAddr),
		zap.Int("concurrency", q.config.Concurrency))

	return q.server.Run(mux)
}
