// Package deps verifies that external tools the pipeline shells out to are
// actually present before the server accepts work.
package deps

import (
	"fmt"
	"os"
	"os/exec"

	"go.uber.org/zap"

	"lecture-scribe/config"
	"lecture-scribe/log"
)

// lookPath is a variable so tests can fake tool resolution.
var lookPath = exec.LookPath

// CheckDependency validates the configured external binaries. ffmpeg is
// always required; the faster-whisper CLI only when it is the selected
// transcription provider.
func CheckDependency() error {
	if err := checkBinary("ffmpeg", config.Conf.App.FfmpegPath); err != nil {
		return err
	}

	if config.Conf.Transcribe.Provider == "fasterwhisper" {
		if err := checkBinary("faster-whisper", config.Conf.Transcribe.Fasterwhisper.BinPath); err != nil {
			return err
		}
	}
	return nil
}

// checkBinary accepts either an explicit file path or a bare command name
// resolved through PATH.
func checkBinary(name, configured string) error {
	if configured == "" {
		configured = name
	}

	if info, err := os.Stat(configured); err == nil && !info.IsDir() {
		log.GetLogger().Info("dependency resolved",
			zap.String("name", name),
			zap.String("path", configured))
		return nil
	}

	resolved, err := lookPath(configured)
	if err != nil {
		return fmt.Errorf("%s not found (looked for %q): %w", name, configured, err)
	}
	log.GetLogger().Info("dependency resolved",
		zap.String("name", name),
		zap.String("path", resolved))
	return nil
}
