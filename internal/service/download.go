package service

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"lecture-scribe/config"
	"lecture-scribe/internal/types"
	"lecture-scribe/log"
	apperrors "lecture-scribe/pkg/errors"
)

// downloadArchive fetches a remote archive into the task workspace.
func (s *Service) downloadArchive(ctx context.Context, archiveUrl, taskBasePath string) (string, error) {
	dest := filepath.Join(taskBasePath, "archive.zip")

	client := resty.New().SetTimeout(10 * time.Minute)
	resp, err := client.R().
		SetContext(ctx).
		SetOutput(dest).
		Get(archiveUrl)
	if err != nil {
		return "", apperrors.Wrap(apperrors.CodeDownloadFailed, "Archive download failed", err)
	}
	if resp.IsError() {
		return "", apperrors.WrapWithDetail(apperrors.CodeDownloadFailed,
			"Archive download failed", fmt.Sprintf("status %d", resp.StatusCode()), nil)
	}

	log.GetLogger().Info("archive downloaded",
		zap.String("url", archiveUrl),
		zap.String("dest", dest))
	return dest, nil
}

// notifyWebhook posts a completion summary to the configured webhook.
// Failures are logged and ignored; delivery is best effort.
func (s *Service) notifyWebhook(task *types.ExtractionTask) {
	webhookUrl := config.Conf.Notify.WebhookUrl
	if webhookUrl == "" {
		return
	}

	client := resty.New().SetTimeout(15 * time.Second)
	_, err := client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]any{
			"task_id":     task.TaskId,
			"status":      task.Status,
			"video_count": task.VideoCount,
			"event_count": task.EventCount,
		}).
		Post(webhookUrl)
	if err != nil {
		log.GetLogger().Warn("webhook notify failed",
			zap.String("taskId", task.TaskId),
			zap.Error(err))
	}
}
