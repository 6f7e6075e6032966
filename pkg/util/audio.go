package util

import (
	"os/exec"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"lecture-scribe/config"
	"lecture-scribe/log"
	apperrors "lecture-scribe/pkg/errors"
)

// ExtractAudio pulls the audio track out of a video as mono 16kHz WAV, the
// input format every transcription provider here accepts.
func ExtractAudio(videoPath string) (string, error) {
	dest := strings.TrimSuffix(videoPath, filepath.Ext(videoPath)) + "_mono_16k.wav"
	cmdArgs := []string{"-y", "-i", videoPath, "-vn", "-ac", "1", "-ar", "16000", dest}
	cmd := exec.Command(config.Conf.App.FfmpegPath, cmdArgs...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		log.GetLogger().Error("ExtractAudio ffmpeg failed",
			zap.String("video", videoPath),
			zap.String("output", string(output)),
			zap.Error(err))
		return "", apperrors.Wrap(apperrors.CodeAudioExtract, "Audio extraction failed", err)
	}
	return dest, nil
}
