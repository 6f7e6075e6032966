// Package archive unpacks uploaded lecture archives and locates the video
// files inside them.
package archive

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	apperrors "lecture-scribe/pkg/errors"
)

var videoExtensions = map[string]bool{
	".mp4": true,
	".mkv": true,
	".avi": true,
}

// ExtractZip unpacks zipPath into destDir. Entries that would escape destDir
// are rejected outright.
func ExtractZip(zipPath, destDir string) error {
	reader, err := zip.OpenReader(zipPath)
	if err != nil {
		return apperrors.Wrap(apperrors.CodeArchiveExtract, "Archive extraction failed", err)
	}
	defer reader.Close()

	for _, file := range reader.File {
		if err := extractEntry(file, destDir); err != nil {
			return err
		}
	}
	return nil
}

func extractEntry(file *zip.File, destDir string) error {
	target := filepath.Join(destDir, file.Name)

	// zip-slip guard
	if !strings.HasPrefix(target, filepath.Clean(destDir)+string(os.PathSeparator)) {
		return apperrors.WrapWithDetail(apperrors.CodeArchiveExtract,
			"Archive extraction failed", "entry escapes destination: "+file.Name, nil)
	}

	if file.FileInfo().IsDir() {
		return os.MkdirAll(target, 0o755)
	}

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return apperrors.Wrap(apperrors.CodeArchiveExtract, "Archive extraction failed", err)
	}

	src, err := file.Open()
	if err != nil {
		return apperrors.Wrap(apperrors.CodeArchiveExtract, "Archive extraction failed", err)
	}
	defer src.Close()

	dst, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, file.Mode())
	if err != nil {
		return apperrors.Wrap(apperrors.CodeArchiveExtract, "Archive extraction failed", err)
	}
	defer dst.Close()

	if _, err = io.Copy(dst, src); err != nil {
		return apperrors.Wrap(apperrors.CodeArchiveExtract, "Archive extraction failed", err)
	}
	return nil
}

// FindVideos walks dir recursively and returns video file paths sorted by
// name, so task output order is stable regardless of filesystem order.
func FindVideos(dir string) ([]string, error) {
	var videos []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if videoExtensions[strings.ToLower(filepath.Ext(path))] {
			videos = append(videos, path)
		}
		return nil
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeArchiveExtract, "Archive extraction failed", err)
	}

	sort.Strings(videos)
	return videos, nil
}
