// Package fasterwhisper implements types.Transcriber by shelling out to a
// local faster-whisper CLI install, for deployments without API access.
package fasterwhisper

import (
	"context"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"lecture-scribe/internal/types"
	"lecture-scribe/log"
	apperrors "lecture-scribe/pkg/errors"
)

type Processor struct {
	BinPath string
	Model   string
}

func NewProcessor(binPath, model string) *Processor {
	return &Processor{
		BinPath: binPath,
		Model:   model,
	}
}

// cliOutput mirrors the JSON file faster-whisper writes next to the audio.
type cliOutput struct {
	Segments []struct {
		Start float64 `json:"start"`
		End   float64 `json:"end"`
		Text  string  `json:"text"`
	} `json:"segments"`
}

func (p *Processor) Transcribe(ctx context.Context, audioFile string, language string) ([]types.RawSegment, error) {
	outputDir := filepath.Dir(audioFile)
	cmdArgs := []string{
		audioFile,
		"--model", p.Model,
		"--output_format", "json",
		"--output_dir", outputDir,
	}
	if language != "" {
		cmdArgs = append(cmdArgs, "--language", language)
	}

	cmd := exec.CommandContext(ctx, p.BinPath, cmdArgs...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		log.GetLogger().Error("fasterwhisper run failed",
			zap.String("audio", audioFile),
			zap.String("output", string(output)),
			zap.Error(err))
		return nil, apperrors.Wrap(apperrors.CodeTranscribeFailed, "Transcription failed", err)
	}

	jsonPath := strings.TrimSuffix(audioFile, filepath.Ext(audioFile)) + ".json"
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeTranscribeFailed, "Transcription failed", err)
	}

	var parsed cliOutput
	if err = json.Unmarshal(data, &parsed); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeTranscribeFailed, "Transcription failed", err)
	}

	segments := make([]types.RawSegment, 0, len(parsed.Segments))
	for _, seg := range parsed.Segments {
		segments = append(segments, types.RawSegment{
			Start: seg.Start,
			End:   seg.End,
			Text:  seg.Text,
		})
	}
	return segments, nil
}
