// Package imagehost implements a small development image host that serves
// the upload contract the signup flow depends on: POST a multipart file,
// get back a hosted URL.
package imagehost

import (
	"encoding/json"
	"io"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// maxUploadSize caps the accepted multipart body.
const maxUploadSize = 10 << 20 // 10 MiB

type image struct {
	data        []byte
	contentType string
}

// Handler stores uploaded images in memory and serves them back by id.
type Handler struct {
	// BaseURL is the externally visible prefix of returned image URLs,
	// e.g. "http://localhost:8081".
	BaseURL string

	mu     sync.Mutex
	images map[string]image
}

// NewHandler creates an empty in-memory image host.
func NewHandler(baseURL string) *Handler {
	return &Handler{
		BaseURL: baseURL,
		images:  make(map[string]image),
	}
}

// Upload handles image upload requests. It expects a multipart form with
// an "image" file field and responds with the hosted URL:
//
//	{"data":{"url":"<base>/i/<id>"}}
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		http.Error(w, "invalid multipart request", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		http.Error(w, "missing image field", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, "failed to read image", http.StatusInternalServerError)
		return
	}

	id := uuid.NewString()

	h.mu.Lock()
	h.images[id] = image{
		data:        data,
		contentType: header.Header.Get("Content-Type"),
	}
	h.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]map[string]string{
		"data": {"url": h.BaseURL + "/i/" + id},
	})
}

// Serve returns a previously uploaded image by id.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	h.mu.Lock()
	img, ok := h.images[id]
	h.mu.Unlock()

	if !ok {
		http.Error(w, "image not found", http.StatusNotFound)
		return
	}

	if img.contentType != "" {
		w.Header().Set("Content-Type", img.contentType)
	}
	_, _ = w.Write(img.data)
}
