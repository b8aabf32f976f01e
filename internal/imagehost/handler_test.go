package imagehost

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func uploadRequest(t *testing.T, field, filename, content string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestUploadAndServe(t *testing.T) {
	h := NewHandler("http://localhost:8081")
	router := NewRouter(h, zap.NewNop())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, uploadRequest(t, "image", "avatar.png", "png bytes"))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data struct {
			URL string `json:"url"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.True(t, strings.HasPrefix(resp.Data.URL, "http://localhost:8081/i/"))

	path := strings.TrimPrefix(resp.Data.URL, "http://localhost:8081")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	require.Equal(t, http.StatusOK, rec.Code)

	data, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	require.Equal(t, "png bytes", string(data))
}

func TestUpload_MissingImageField(t *testing.T) {
	h := NewHandler("http://localhost:8081")
	router := NewRouter(h, zap.NewNop())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, uploadRequest(t, "file", "avatar.png", "png bytes"))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpload_NotMultipart(t *testing.T) {
	h := NewHandler("http://localhost:8081")
	router := NewRouter(h, zap.NewNop())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/upload", strings.NewReader("nope")))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServe_UnknownID(t *testing.T) {
	h := NewHandler("http://localhost:8081")
	router := NewRouter(h, zap.NewNop())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/i/nope", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
}
