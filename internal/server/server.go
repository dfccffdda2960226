// Package server implements the HTTP API for cutstack.
//
// The API exposes the same pipeline the CLI uses:
//
//	GET  /healthz              liveness probe
//	POST /api/v1/plan          compute an imposition plan
//	GET  /api/v1/preview       plan with demo defaults for quick inspection
//	POST /api/v1/count         count pages of an uploaded PDF
//	POST /api/v1/render        render a plan artifact (svg, png, pdf, json)
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/cutstack/cutstack/pkg/cache"
	"github.com/cutstack/cutstack/pkg/pipeline"
)

// maxUploadBytes bounds /api/v1/count uploads.
const maxUploadBytes = 64 << 20

// Server wires the pipeline runner into an HTTP handler.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
	router chi.Router
}

// Config holds server construction options.
type Config struct {
	Cache  cache.Cache
	Logger *log.Logger
}

// New creates a Server. A nil cache disables caching.
func New(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}

	// Server keys are scoped so a shared Redis backend can serve several
	// deployments side by side.
	keyer := cache.NewScopedKeyer("v1", nil)
	s := &Server{
		runner: pipeline.NewRunner(cfg.Cache, keyer, logger),
		logger: logger,
	}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/healthz", s.handleHealthz)
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/plan", s.handlePlan)
		r.Get("/preview", s.handlePreview)
		r.Post("/count", s.handleCount)
		r.Post("/render", s.handleRender)
	})
	s.router = r

	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Close releases the underlying runner's resources.
func (s *Server) Close() error {
	return s.runner.Close()
}

// ListenAndServe runs the server until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}
