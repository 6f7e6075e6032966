package handler

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"lecture-scribe/config"
	"lecture-scribe/internal/response"
	"lecture-scribe/log"
	apperrors "lecture-scribe/pkg/errors"
)

const uploadDir = "uploads"

// UploadFile accepts one or more archives via multipart form and stores them
// for later task submission.
func (h *Handler) UploadFile(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		response.ErrorResponse(c, apperrors.Wrap(apperrors.CodeInvalidParams, "No file received", err))
		return
	}

	files := form.File["file"]
	if len(files) == 0 {
		response.ErrorResponse(c, apperrors.New(apperrors.CodeInvalidParams, "No file uploaded"))
		return
	}

	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		response.ErrorResponse(c, apperrors.Wrap(apperrors.CodeFileWriteError, "Failed to store file", err))
		return
	}

	var savedFiles []string
	for _, file := range files {
		if strings.ToLower(filepath.Ext(file.Filename)) != ".zip" {
			response.ErrorResponse(c, apperrors.WrapWithDetail(apperrors.CodeInvalidParams,
				"Only ZIP archives are accepted", file.Filename, nil))
			return
		}
		// Prefix with a short uuid so concurrent uploads of the same
		// archive name don't clobber each other.
		saveName := uuid.New().String()[:8] + "_" + filepath.Base(file.Filename)
		savePath := filepath.Join(uploadDir, saveName)
		if err := c.SaveUploadedFile(file, savePath); err != nil {
			log.GetLogger().Error("UploadFile save failed", zap.String("file", file.Filename), zap.Error(err))
			response.ErrorResponse(c, apperrors.Wrap(apperrors.CodeFileWriteError, "Failed to store file", err))
			return
		}
		savedFiles = append(savedFiles, "local:"+filepath.ToSlash(savePath))
	}

	response.Success(c, gin.H{"file_path": savedFiles})
}

// DownloadFile serves generated output (SRT files, event tables) from the
// task workspace. Only paths inside the task directory are reachable.
func (h *Handler) DownloadFile(c *gin.Context) {
	requested := strings.TrimPrefix(c.Param("filepath"), "/")
	if requested == "" {
		c.Status(http.StatusNotFound)
		return
	}

	taskDir := filepath.Clean(config.Conf.App.TaskDir)
	full := filepath.Clean(filepath.Join(".", filepath.FromSlash(requested)))
	if full != taskDir && !strings.HasPrefix(full, taskDir+string(os.PathSeparator)) {
		c.Status(http.StatusForbidden)
		return
	}

	info, err := os.Stat(full)
	if err != nil || info.IsDir() {
		c.Status(http.StatusNotFound)
		return
	}

	if c.Request.Method == http.MethodHead {
		c.Status(http.StatusOK)
		return
	}
	c.FileAttachment(full, filepath.Base(full))
}
