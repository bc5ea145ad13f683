// Package server implements the chromepdf relay: an HTTP service that
// accepts render requests, applies them on top of server-side defaults and
// forwards them to the PDF service with the server's credentials.
//
// Routes:
//
//	POST /v1/pdf   render {"options": {...}, "html": "..."} or {"url": "..."}
//	GET  /health   liveness and build information
//	GET  /metrics  Prometheus metrics, when configured
package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matzehuels/chromepdf/pkg/pdf"
)

// DefaultMaxBodyBytes bounds the size of a render request body.
const DefaultMaxBodyBytes = 10 << 20

const shutdownTimeout = 15 * time.Second

// Renderer renders a target with explicit options.
// *browserless.Client satisfies it.
type Renderer interface {
	Render(ctx context.Context, opts *pdf.Options, t pdf.Target) ([]byte, error)
}

// Server is the relay HTTP server.
type Server struct {
	router    chi.Router
	logger    *log.Logger
	renderer  Renderer
	base      *pdf.Options
	registry  *prometheus.Registry
	metrics   *httpMetrics
	maxBody   int64
	startTime time.Time
}

// Option configures optional Server dependencies.
type Option func(*Server)

// WithBaseOptions sets the options every request starts from. The server
// clones them per request and never mutates base.
func WithBaseOptions(base *pdf.Options) Option {
	return func(s *Server) {
		if base != nil {
			s.base = base
		}
	}
}

// WithMetrics records request metrics on reg and serves it at /metrics.
func WithMetrics(reg *prometheus.Registry) Option {
	return func(s *Server) { s.registry = reg }
}

// WithMaxBodyBytes overrides [DefaultMaxBodyBytes].
func WithMaxBodyBytes(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxBody = n
		}
	}
}

// WithLogger sets the request logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a Server with all routes registered.
func New(r Renderer, opts ...Option) *Server {
	s := &Server{
		router:    chi.NewRouter(),
		logger:    log.New(io.Discard),
		renderer:  r,
		base:      pdf.New(),
		maxBody:   DefaultMaxBodyBytes,
		startTime: time.Now(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.registry != nil {
		s.metrics = newHTTPMetrics(s.registry)
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Handler returns the http.Handler for this server.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() {
	r := s.router

	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware(s.logger))
	if s.metrics != nil {
		r.Use(s.metrics.middleware)
	}

	r.Get("/health", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/pdf", s.handleRender)
	})
	if s.registry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusNotFound, "NOT_FOUND", "no route for "+r.Method+" "+r.URL.Path)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", r.Method+" not allowed on "+r.URL.Path)
	})
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
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
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
