package service

import (
	"go.uber.org/zap"

	"lecture-scribe/config"
	"lecture-scribe/internal/types"
	"lecture-scribe/log"
	"lecture-scribe/pkg/fasterwhisper"
	"lecture-scribe/pkg/whisper"
)

// Enqueuer hands a persisted task off for background processing. Implemented
// by the in-process task runner and by the Redis-backed queue.
type Enqueuer interface {
	EnqueueExtractionTask(payload types.ExtractionPayload) error
}

type Service struct {
	Transcriber types.Transcriber
	Enqueuer    Enqueuer
}

func NewService() *Service {
	var transcriber types.Transcriber

	switch config.Conf.Transcribe.Provider {
	case "openai":
		transcriber = whisper.NewClient(
			config.Conf.Transcribe.Openai.BaseUrl,
			config.Conf.Transcribe.Openai.ApiKey,
			config.Conf.Transcribe.Openai.Model,
			"",
		)
	case "fasterwhisper":
		transcriber = fasterwhisper.NewProcessor(
			config.Conf.Transcribe.Fasterwhisper.BinPath,
			config.Conf.Transcribe.Fasterwhisper.Model,
		)
	}
	log.GetLogger().Info("transcription provider selected",
		zap.String("transcriber", config.Conf.Transcribe.Provider))

	return &Service{
		Transcriber: transcriber,
	}
}
