package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"lecture-scribe/config"
	"lecture-scribe/internal/archive"
	"lecture-scribe/internal/storage"
	"lecture-scribe/internal/transcript"
	"lecture-scribe/internal/types"
	"lecture-scribe/log"
	apperrors "lecture-scribe/pkg/errors"
	"lecture-scribe/pkg/util"
)

// videoOutcome collects one video's results so concurrent workers can write
// without sharing slices; outcomes are merged in video order afterwards.
type videoOutcome struct {
	result types.VideoResult
	events []types.ExtractedEvent
}

// ProcessTask runs the full pipeline for one archive: unpack, discover
// videos, transcribe each one and write subtitle files and/or the event
// table. One bad video is recorded on its VideoResult and does not stop the
// others; the task only fails when nothing was processed at all.
func (s *Service) ProcessTask(ctx context.Context, payload types.ExtractionPayload) error {
	task, err := storage.GetTask(payload.TaskId)
	if err != nil {
		return apperrors.Wrap(apperrors.CodeNotFound, "Task not found", err)
	}

	fail := func(reason string, cause error) error {
		log.GetLogger().Error("ProcessTask failed",
			zap.String("taskId", payload.TaskId),
			zap.String("reason", reason),
			zap.Error(cause))
		task.Status = types.TaskStatusFailed
		task.FailReason = cause.Error()
		task.StatusMsg = reason
		_ = storage.SaveTask(task)
		return cause
	}

	taskBasePath := filepath.Join(config.Conf.App.TaskDir, payload.TaskId)
	outputDir := filepath.Join(taskBasePath, "output")
	extractDir := filepath.Join(taskBasePath, "extracted")
	for _, dir := range []string{outputDir, extractDir} {
		if err = os.MkdirAll(dir, 0o755); err != nil {
			return fail("Workspace setup failed", err)
		}
	}

	// Resolve the archive: remote URL gets downloaded first, local uploads
	// arrive with the "local:" prefix the upload endpoint returns.
	archivePath := strings.TrimPrefix(payload.ArchivePath, "local:")
	if payload.ArchiveUrl != "" {
		task.StatusMsg = "Downloading archive"
		_ = storage.SaveTask(task)
		if archivePath, err = s.downloadArchive(ctx, payload.ArchiveUrl, taskBasePath); err != nil {
			return fail("Download failed", err)
		}
	}

	task.StatusMsg = "Unpacking archive"
	_ = storage.SaveTask(task)
	if err = archive.ExtractZip(archivePath, extractDir); err != nil {
		return fail("Archive extraction failed", err)
	}

	videos, err := archive.FindVideos(extractDir)
	if err != nil {
		return fail("Archive extraction failed", err)
	}
	if len(videos) == 0 {
		return fail("No videos found", apperrors.ErrNoVideosFound)
	}

	task.VideoCount = len(videos)
	task.StatusMsg = fmt.Sprintf("Transcribing %d video(s)", len(videos))
	_ = storage.SaveTask(task)

	pattern, err := compileTaskPattern(payload)
	if err != nil {
		return fail("Invalid pattern", err)
	}

	workers := config.Conf.App.Workers
	if workers <= 0 {
		workers = 1
	}
	outcomes := make([]videoOutcome, len(videos))
	g, groupCtx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, videoPath := range videos {
		i, videoPath := i, videoPath
		g.Go(func() error {
			outcomes[i] = s.processVideo(groupCtx, payload, pattern, outputDir, videoPath)
			return nil
		})
	}
	_ = g.Wait()

	// Merge in video order so event rows stay grouped per source and
	// ordered by increasing timestamp within it.
	var events []types.ExtractedEvent
	var failures int
	for i := range outcomes {
		outcomes[i].result.TaskId = payload.TaskId
		if outcomes[i].result.FailReason != "" {
			failures++
		}
		events = append(events, outcomes[i].events...)
		task.VideoResults = append(task.VideoResults, outcomes[i].result)
	}
	task.EventCount = len(events)

	if payload.Mode != types.TaskModeSubtitles {
		csvPath := filepath.Join(outputDir, "events.csv")
		if err = os.WriteFile(csvPath, []byte(transcript.EventsCSV(events)), 0o644); err != nil {
			return fail("Result write failed", apperrors.Wrap(apperrors.CodeFileWriteError, "Failed to write event table", err))
		}
	}

	if failures == len(videos) {
		return fail("All videos failed", apperrors.New(apperrors.CodeTranscribeFailed, "Every video in the archive failed"))
	}

	task.Status = types.TaskStatusSuccess
	task.StatusMsg = "Completed"
	_ = storage.SaveTask(task)

	s.notifyWebhook(task)

	log.GetLogger().Info("extraction task finished",
		zap.String("taskId", payload.TaskId),
		zap.Int("videos", len(videos)),
		zap.Int("failures", failures),
		zap.Int("events", len(events)))
	return nil
}

// compileTaskPattern compiles the task's pattern, or returns nil when the
// task produces subtitles only. The pattern was already validated at submit
// time; recompiling guards the queue path, where the payload may have been
// persisted by an older process.
func compileTaskPattern(payload types.ExtractionPayload) (*regexp.Regexp, error) {
	if payload.Mode == types.TaskModeSubtitles {
		return nil, nil
	}
	return transcript.CompilePattern(payload.Pattern)
}

func (s *Service) processVideo(ctx context.Context, payload types.ExtractionPayload, pattern *regexp.Regexp, outputDir, videoPath string) videoOutcome {
	name := filepath.Base(videoPath)
	outcome := videoOutcome{result: types.VideoResult{VideoName: name}}

	audioPath, err := util.ExtractAudio(videoPath)
	if err != nil {
		outcome.result.FailReason = err.Error()
		return outcome
	}

	raw, err := s.Transcriber.Transcribe(ctx, audioPath, payload.Language)
	if err != nil {
		outcome.result.FailReason = err.Error()
		return outcome
	}

	segments, skipped := transcript.Normalize(raw)
	if len(skipped) > 0 {
		log.GetLogger().Warn("malformed segments skipped",
			zap.String("video", name),
			zap.Int("skipped", len(skipped)))
	}

	if payload.Mode != types.TaskModeEvents {
		srtName := strings.TrimSuffix(name, filepath.Ext(name)) + ".srt"
		srtPath := filepath.Join(outputDir, srtName)
		if err = os.WriteFile(srtPath, []byte(transcript.ComposeSRT(segments)), 0o644); err != nil {
			outcome.result.FailReason = apperrors.Wrap(apperrors.CodeFileWriteError, "Failed to write subtitle file", err).Error()
			return outcome
		}
		outcome.result.SrtPath = srtPath
	}

	if payload.Mode != types.TaskModeSubtitles && pattern != nil {
		if types.ExtractStrategy(payload.Strategy) == types.StrategyFullText {
			outcome.events = transcript.ExtractEventsFullText(segments, pattern, name)
		} else {
			outcome.events = transcript.ExtractEvents(segments, pattern, name)
		}
		outcome.result.EventCount = len(outcome.events)
	}
	return outcome
}
