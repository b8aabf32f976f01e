package imagehost

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/avoronin/MiniFeed/internal/middleware"
)

// NewRouter constructs the image host's HTTP handler.
//
// Routes:
//
//	POST /api/upload → Handler.Upload
//	GET  /i/{id}     → Handler.Serve
//
// Every request is logged through the provided logger.
func NewRouter(h *Handler, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// Log each request and its metadata
	r.Use(middleware.WithRequestLogging(logger))

	r.Post("/api/upload", h.Upload)
	r.Get("/i/{id}", h.Serve)

	return r
}
