package handler

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lecture-scribe/config"
	"lecture-scribe/internal/response"
	"lecture-scribe/internal/service"
	"lecture-scribe/log"
	apperrors "lecture-scribe/pkg/errors"
)

func init() {
	log.InitLogger()
}

func setupWorkDir(t *testing.T) string {
	t.Helper()

	tmp := t.TempDir()
	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tmp))
	t.Cleanup(func() { _ = os.Chdir(cwd) })

	config.Conf = config.Config{}
	config.Conf.App.TaskDir = "tasks"
	return tmp
}

func buildRouter(h *Handler) *gin.Engine {
	router := gin.New()
	router.POST("/api/task", h.StartTask)
	router.GET("/api/presets", h.GetPresets)
	router.GET("/api/file/*filepath", h.DownloadFile)
	router.HEAD("/api/file/*filepath", h.DownloadFile)
	router.POST("/api/file", h.UploadFile)
	return router
}

func TestStartTask_InvalidJSON(t *testing.T) {
	gin.SetMode(gin.TestMode)
	setupWorkDir(t)

	router := buildRouter(&Handler{Service: &service.Service{}})

	req, _ := http.NewRequest("POST", "/api/task", strings.NewReader("{not json"))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int32(apperrors.CodeInvalidParams), resp.Error)
}

func TestGetPresets(t *testing.T) {
	gin.SetMode(gin.TestMode)
	setupWorkDir(t)

	router := buildRouter(&Handler{Service: &service.Service{}})

	req, _ := http.NewRequest("GET", "/api/presets", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int32(0), resp.Error)

	presets, ok := resp.Data.([]any)
	require.True(t, ok)
	assert.NotEmpty(t, presets)
}

func TestDownloadFile_NotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	setupWorkDir(t)

	router := buildRouter(&Handler{})

	req, _ := http.NewRequest("HEAD", "/api/file/tasks/nonexistent/output/lecture01.srt", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code, "Should return 404 for non-existent file")
}

func TestDownloadFile_Exists(t *testing.T) {
	gin.SetMode(gin.TestMode)
	setupWorkDir(t)

	outDir := filepath.Join("tasks", "task_x", "output")
	require.NoError(t, os.MkdirAll(outDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(outDir, "lecture01.srt"), []byte("1\n00:00:00,000 --> 00:00:05,000\nhi\n\n"), 0o644))

	router := buildRouter(&Handler{})

	req, _ := http.NewRequest("HEAD", "/api/file/tasks/task_x/output/lecture01.srt", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req, _ = http.NewRequest("GET", "/api/file/tasks/task_x/output/lecture01.srt", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "00:00:00,000 --> 00:00:05,000")
}

func TestUploadFile(t *testing.T) {
	gin.SetMode(gin.TestMode)
	setupWorkDir(t)

	router := buildRouter(&Handler{})

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "lectures.zip")
	require.NoError(t, err)
	_, err = part.Write([]byte("PK\x03\x04fake"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req, _ := http.NewRequest("POST", "/api/file", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int32(0), resp.Error)

	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	paths, ok := data["file_path"].([]any)
	require.True(t, ok)
	require.Len(t, paths, 1)
	saved, ok := paths[0].(string)
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(saved, "local:uploads/"))
	assert.True(t, strings.HasSuffix(saved, "_lectures.zip"))

	onDisk := strings.TrimPrefix(saved, "local:")
	_, err = os.Stat(filepath.FromSlash(onDisk))
	assert.NoError(t, err)
}

func TestUploadFile_RejectsNonZip(t *testing.T) {
	gin.SetMode(gin.TestMode)
	setupWorkDir(t)

	router := buildRouter(&Handler{})

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "lecture.mp4")
	require.NoError(t, err)
	_, err = part.Write([]byte("notazip"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req, _ := http.NewRequest("POST", "/api/file", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int32(apperrors.CodeInvalidParams), resp.Error)
}

func TestDownloadFile_OutsideTaskDirForbidden(t *testing.T) {
	gin.SetMode(gin.TestMode)
	setupWorkDir(t)

	require.NoError(t, os.WriteFile("secret.txt", []byte("nope"), 0o644))

	router := buildRouter(&Handler{})

	req, _ := http.NewRequest("GET", "/api/file/secret.txt", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	req, _ = http.NewRequest("GET", "/api/file/tasks/../secret.txt", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
