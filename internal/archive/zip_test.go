package archive

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "lecture-scribe/pkg/errors"
)

func writeTestZip(t *testing.T, path string, entries map[string]string) {
	t.Helper()

	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	w := zip.NewWriter(f)
	for name, content := range entries {
		entry, err := w.Create(name)
		require.NoError(t, err)
		_, err = entry.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
}

func TestExtractZipAndFindVideos(t *testing.T) {
	tmp := t.TempDir()
	zipPath := filepath.Join(tmp, "videos.zip")
	writeTestZip(t, zipPath, map[string]string{
		"lecture02.MP4":       "fake video",
		"week1/lecture01.mp4": "fake video",
		"week1/notes.txt":     "not a video",
		"week2/lecture03.mkv": "fake video",
		"week2/recording.avi": "fake video",
		"week2/subtitle.srt":  "not a video",
	})

	destDir := filepath.Join(tmp, "out")
	require.NoError(t, ExtractZip(zipPath, destDir))

	videos, err := FindVideos(destDir)
	require.NoError(t, err)
	require.Len(t, videos, 4, "discovery is recursive and extension matching is case-insensitive")

	// Sorted by path for stable output order.
	assert.Equal(t, filepath.Join(destDir, "lecture02.MP4"), videos[0])
	assert.Equal(t, filepath.Join(destDir, "week1", "lecture01.mp4"), videos[1])
}

func TestExtractZipRejectsPathTraversal(t *testing.T) {
	tmp := t.TempDir()
	zipPath := filepath.Join(tmp, "evil.zip")
	writeTestZip(t, zipPath, map[string]string{
		"../escape.mp4": "nope",
	})

	err := ExtractZip(zipPath, filepath.Join(tmp, "out"))
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeArchiveExtract))
}

func TestExtractZipInvalidArchive(t *testing.T) {
	tmp := t.TempDir()
	zipPath := filepath.Join(tmp, "broken.zip")
	require.NoError(t, os.WriteFile(zipPath, []byte("not a zip"), 0o644))

	err := ExtractZip(zipPath, filepath.Join(tmp, "out"))
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeArchiveExtract))
}

func TestFindVideosEmptyDir(t *testing.T) {
	videos, err := FindVideos(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, videos)
}
