// Package server assembles the HTTP surface of the metadata API.
package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/iucc-f4d/metadata-api/pkg/health"
	"github.com/iucc-f4d/metadata-api/pkg/metadata"
)

// Version is set at build time.
var Version = "dev"

// Server holds the handler dependencies.
type Server struct {
	svc     *metadata.Service
	checker *health.Checker
	logger  *slog.Logger
}

// New creates a Server around the metadata service.
func New(svc *metadata.Service, checker *health.Checker, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{svc: svc, checker: checker, logger: logger}
}

// Router builds the chi router with middleware, health probes, API routes
// and the Swagger UI. requestTimeout bounds each request's context; the
// warehouse call inherits it.
func (s *Server) Router(requestTimeout time.Duration) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	r.Get("/healthz", s.checker.LivenessHandler())
	r.Get("/readyz", s.checker.ReadinessHandler())

	r.Get("/GCP-BQ/metadata", s.handleDump)
	r.Get("/GCP-BQ/metadata/active", s.handleListing)
	r.Get("/GCP-BQ/metadata/validate", s.handleValidate)

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	return r
}
