package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"lecture-scribe/internal/dto"
	"lecture-scribe/internal/response"
	"lecture-scribe/internal/service"
	"lecture-scribe/internal/storage"
	"lecture-scribe/internal/transcript"
	"lecture-scribe/log"
	apperrors "lecture-scribe/pkg/errors"
)

func (h *Handler) StartTask(c *gin.Context) {
	var req dto.StartTaskReq
	if err := c.ShouldBindJSON(&req); err != nil {
		log.GetLogger().Error("StartTask ShouldBindJSON err", zap.Error(err))
		response.ErrorResponse(c, apperrors.Wrap(apperrors.CodeInvalidParams, "Invalid parameters", err))
		return
	}
	log.GetLogger().Info("StartTask received request", zap.Any("req", req))

	if configUpdated {
		log.GetLogger().Info("config changed, rebuilding service")
		enqueuer := h.Service.Enqueuer
		h.Service = service.NewService()
		h.Service.Enqueuer = enqueuer
		configUpdated = false
	}

	data, err := h.Service.StartExtractionTask(req)
	if err != nil {
		response.ErrorResponse(c, err)
		return
	}
	response.Success(c, data)
}

func (h *Handler) GetTask(c *gin.Context) {
	var req dto.GetTaskReq
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorResponse(c, apperrors.Wrap(apperrors.CodeInvalidParams, "Invalid parameters", err))
		return
	}

	data, err := h.Service.GetTaskStatus(req)
	if err != nil {
		// A failed task still carries its partial results.
		resp := response.FromError(err)
		resp.Data = data
		response.R(c, resp)
		return
	}
	response.Success(c, data)
}

func (h *Handler) GetTaskHistory(c *gin.Context) {
	tasks, err := storage.GetTaskHistory(200)
	if err != nil {
		response.ErrorResponse(c, apperrors.Wrap(apperrors.CodeDBError, "Failed to load history", err))
		return
	}
	response.Success(c, tasks)
}

func (h *Handler) DeleteTask(c *gin.Context) {
	taskId := c.Param("taskId")
	if taskId == "" {
		response.ErrorResponse(c, apperrors.New(apperrors.CodeInvalidParams, "taskId is required"))
		return
	}

	if err := h.Service.RemoveTaskFiles(taskId); err != nil {
		log.GetLogger().Error("DeleteTask RemoveTaskFiles err", zap.String("taskId", taskId), zap.Error(err))
		// Continue to delete from DB even if file deletion fails
	}

	if err := storage.DeleteTask(taskId); err != nil {
		response.ErrorResponse(c, apperrors.Wrap(apperrors.CodeDBError, "Failed to delete task", err))
		return
	}
	response.Success(c, nil)
}

func (h *Handler) GetPresets(c *gin.Context) {
	response.Success(c, transcript.Presets())
}
