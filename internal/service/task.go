package service

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"lecture-scribe/config"
	"lecture-scribe/internal/dto"
	"lecture-scribe/internal/storage"
	"lecture-scribe/internal/transcript"
	"lecture-scribe/internal/types"
	"lecture-scribe/log"
	apperrors "lecture-scribe/pkg/errors"
	"lecture-scribe/pkg/util"
)

// StartExtractionTask validates the request, persists a new task record and
// hands the work to the configured background executor. The pattern is
// compiled here so an invalid one is rejected before anything is queued.
func (s *Service) StartExtractionTask(req dto.StartTaskReq) (*dto.StartTaskResData, error) {
	if req.ArchivePath == "" && req.ArchiveUrl == "" {
		return nil, apperrors.New(apperrors.CodeInvalidParams, "Either archive_path or archive_url is required")
	}

	mode := req.Mode
	if mode == "" {
		mode = types.TaskModeSubtitles
	}

	// Resolve the pattern up front: explicit pattern wins, then preset,
	// then the configured default preset.
	var pattern string
	if mode != types.TaskModeSubtitles {
		var err error
		if pattern, err = resolvePattern(req); err != nil {
			return nil, err
		}
		if _, err = transcript.CompilePattern(pattern); err != nil {
			log.GetLogger().Info("StartExtractionTask rejected pattern",
				zap.String("pattern", pattern), zap.Error(err))
			return nil, err
		}
	}

	strategy := req.Strategy
	if strategy == "" {
		strategy = config.Conf.Extract.Strategy
	}

	archiveName := req.ArchivePath
	if archiveName == "" {
		archiveName = req.ArchiveUrl
	}
	base := util.SanitizePathName(strings.TrimSuffix(filepath.Base(archiveName), filepath.Ext(archiveName)))
	if len(base) > 16 {
		base = base[:16]
	}
	taskId := fmt.Sprintf("%s_%s", base, util.GenerateRandString(4))

	task := &types.ExtractionTask{
		TaskId:     taskId,
		ArchiveSrc: archiveName,
		Mode:       mode,
		Pattern:    pattern,
		Preset:     req.Preset,
		Strategy:   strategy,
		Status:     types.TaskStatusProcessing,
		StatusMsg:  "Queued",
	}
	if err := storage.SaveTask(task); err != nil {
		log.GetLogger().Error("StartExtractionTask SaveTask err", zap.Error(err))
		return nil, apperrors.Wrap(apperrors.CodeDBError, "Failed to save task", err)
	}

	payload := types.ExtractionPayload{
		TaskId:      taskId,
		ArchivePath: req.ArchivePath,
		ArchiveUrl:  req.ArchiveUrl,
		Mode:        mode,
		Pattern:     pattern,
		Strategy:    strategy,
		Language:    req.Language,
	}
	if err := s.Enqueuer.EnqueueExtractionTask(payload); err != nil {
		task.Status = types.TaskStatusFailed
		task.FailReason = err.Error()
		task.StatusMsg = "Enqueue failed"
		_ = storage.SaveTask(task)
		return nil, err
	}

	log.GetLogger().Info("extraction task accepted",
		zap.String("taskId", taskId),
		zap.String("mode", mode),
		zap.String("strategy", strategy))

	return &dto.StartTaskResData{TaskId: taskId}, nil
}

func resolvePattern(req dto.StartTaskReq) (string, error) {
	if req.Pattern != "" {
		return req.Pattern, nil
	}
	preset := req.Preset
	if preset == "" {
		preset = config.Conf.Extract.DefaultPreset
	}
	return transcript.PresetPattern(preset)
}

// RemoveTaskFiles deletes a task's workspace directory from disk.
func (s *Service) RemoveTaskFiles(taskId string) error {
	if taskId == "" {
		return apperrors.ErrInvalidParams
	}
	return os.RemoveAll(filepath.Join(config.Conf.App.TaskDir, taskId))
}

// GetTaskStatus reports progress and output locations for one task.
func (s *Service) GetTaskStatus(req dto.GetTaskReq) (*dto.GetTaskResData, error) {
	task, err := storage.GetTask(req.TaskId)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeNotFound, "Task not found", err)
	}

	data := &dto.GetTaskResData{
		TaskId:     task.TaskId,
		Mode:       task.Mode,
		Status:     task.Status,
		StatusMsg:  task.StatusMsg,
		VideoCount: task.VideoCount,
		EventCount: task.EventCount,
		Videos: lo.Map(task.VideoResults, func(item types.VideoResult, _ int) dto.VideoResultInfo {
			info := dto.VideoResultInfo{
				VideoName:  item.VideoName,
				EventCount: item.EventCount,
				FailReason: item.FailReason,
			}
			if item.SrtPath != "" {
				info.SrtUrl = "/api/file/" + filepath.ToSlash(item.SrtPath)
			}
			return info
		}),
	}
	if task.Status == types.TaskStatusFailed {
		return data, apperrors.WrapWithDetail(apperrors.CodeUnknown, "Task failed", task.FailReason, nil)
	}
	if task.Status == types.TaskStatusSuccess && task.Mode != types.TaskModeSubtitles {
		data.EventsUrl = "/api/file/" + filepath.ToSlash(filepath.Join(config.Conf.App.TaskDir, task.TaskId, "output", "events.csv"))
	}
	return data, nil
}
