// Package server exposes the butterfly pipeline over HTTP.
//
// Routes:
//
//	GET  /healthz        liveness and build info
//	POST /v1/parse       raw text (or JSON {"text": ...}) → dataset
//	POST /v1/transform   dataset → symmetric domain and signed records
//	POST /v1/layout      text or dataset plus display options → layout
//	POST /v1/csv         dataset → CSV text
//
// Every response carries an X-Request-ID header. Errors are JSON objects
// with "code" and "message" fields.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/butterfly/pkg/pipeline"
)

// Server defaults.
const (
	// DefaultMaxBodyBytes caps request bodies at 5 MiB.
	DefaultMaxBodyBytes = 5 << 20

	// DefaultRequestTimeout bounds each request.
	DefaultRequestTimeout = 30 * time.Second

	shutdownTimeout = 10 * time.Second
)

// Server serves the HTTP API.
type Server struct {
	router   chi.Router
	runner   *pipeline.Runner
	logger   *log.Logger
	defaults pipeline.Options
	maxBody  int64
}

// Option configures a [Server].
type Option func(*Server)

// WithDefaults sets the options requests start from, typically loaded
// from the config file.
func WithDefaults(opts pipeline.Options) Option {
	return func(s *Server) { s.defaults = opts }
}

// WithMaxBodyBytes caps request body size.
func WithMaxBodyBytes(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxBody = n
		}
	}
}

// New creates a server. A nil runner gets an uncached one.
func New(runner *pipeline.Runner, logger *log.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = log.Default()
	}
	if runner == nil {
		runner = pipeline.NewRunner(nil, nil, logger)
	}
	s := &Server{
		runner:   runner,
		logger:   logger,
		defaults: pipeline.DefaultOptions(),
		maxBody:  DefaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.router = s.routes()
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(DefaultRequestTimeout))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, errNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorBody{Code: "METHOD_NOT_ALLOWED", Message: r.Method + " not allowed"})
	})

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Use(s.limitBody)
		r.Post("/parse", s.handleParse)
		r.Post("/transform", s.handleTransform)
		r.Post("/layout", s.handleLayout)
		r.Post("/csv", s.handleCSV)
	})
	return r
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
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
