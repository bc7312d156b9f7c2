package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thereayou/movie-catalog/internal/models"
)

func newUploadRouter(uploadDir string) *gin.Engine {
	h := NewUploadHandler(uploadDir)

	r := gin.New()
	r.Use(authAs(uuid.New(), "alice", models.RoleUser))
	r.POST("/files", h.Upload)
	return r
}

func multipartRequest(t *testing.T, fieldName, fileName string, content []byte) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile(fieldName, fileName)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/files", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestUpload(t *testing.T) {
	dir := t.TempDir()
	router := newUploadRouter(dir)

	req := multipartRequest(t, "file", "постер.jpg", []byte("fake image bytes"))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeResponse(t, w)
	assert.Equal(t, "постер.jpg", resp["fileName"])

	url := resp["url"].(string)
	require.True(t, strings.HasPrefix(url, "/uploads/"))
	assert.True(t, strings.HasSuffix(url, ".jpg"))

	// Файл лежит на диске под случайным именем
	saved, err := os.ReadFile(filepath.Join(dir, strings.TrimPrefix(url, "/uploads/")))
	require.NoError(t, err)
	assert.Equal(t, []byte("fake image bytes"), saved)
}

func TestUpload_UniqueNames(t *testing.T) {
	dir := t.TempDir()
	router := newUploadRouter(dir)

	urls := make(map[string]bool)
	for i := 0; i < 2; i++ {
		req := multipartRequest(t, "file", "same.jpg", []byte("content"))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
		urls[decodeResponse(t, w)["url"].(string)] = true
	}

	assert.Len(t, urls, 2)
}

func TestUpload_NoFile(t *testing.T) {
	router := newUploadRouter(t.TempDir())

	req := httptest.NewRequest(http.MethodPost, "/files", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpload_EmptyFile(t *testing.T) {
	router := newUploadRouter(t.TempDir())

	req := multipartRequest(t, "file", "empty.jpg", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
