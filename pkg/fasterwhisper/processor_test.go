package fasterwhisper

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lecture-scribe/log"
)

func init() {
	log.InitLogger()
}

// The processor only needs the CLI to exit 0 and leave a JSON file behind, so
// a stub script stands in for the real binary.
func TestTranscribeParsesCLIOutput(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("stub script requires a POSIX shell")
	}

	tmp := t.TempDir()
	audioPath := filepath.Join(tmp, "lecture01_mono_16k.wav")
	require.NoError(t, os.WriteFile(audioPath, []byte("fake audio"), 0o644))

	jsonPath := filepath.Join(tmp, "lecture01_mono_16k.json")
	jsonContent := `{"segments":[{"start":0.0,"end":5.2,"text":" Hello everyone "},{"start":5.2,"end":9.8,"text":"question number 3"}]}`

	stub := filepath.Join(tmp, "fake-whisper.sh")
	script := "#!/bin/sh\nprintf '%s' '" + jsonContent + "' > " + jsonPath + "\n"
	require.NoError(t, os.WriteFile(stub, []byte(script), 0o755))

	p := NewProcessor(stub, "base")
	segments, err := p.Transcribe(context.Background(), audioPath, "en")
	require.NoError(t, err)
	require.Len(t, segments, 2)
	assert.Equal(t, 0.0, segments[0].Start)
	assert.Equal(t, 5.2, segments[0].End)
	assert.Equal(t, " Hello everyone ", segments[0].Text, "raw text is passed through untrimmed")
}

func TestTranscribeBinaryMissing(t *testing.T) {
	p := NewProcessor(filepath.Join(t.TempDir(), "does-not-exist"), "base")
	_, err := p.Transcribe(context.Background(), "audio.wav", "en")
	assert.Error(t, err)
}
