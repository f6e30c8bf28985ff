package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"energyaudit/internal/metrics"
)

const (
	readHeaderTimeout = 5 * time.Second
	corsMaxAgeSeconds = 300
)

// NewRouter wires the public endpoints and the metrics endpoint.
func NewRouter(h *Handler, m *metrics.Metrics, log *slog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(accessLog(log, m))
	r.Use(recoverer(log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"Content-Disposition"},
		MaxAge:         corsMaxAgeSeconds,
	}))

	h.Register(r)
	r.Method(http.MethodGet, "/metrics", m.Handler())

	return r
}

// NewHTTPServer builds an HTTP server with sane defaults for this project.
// There is no write timeout: /process blocks for as long as the model call takes.
func NewHTTPServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
	}
}
