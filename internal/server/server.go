// Package server exposes the Optio pipeline over HTTP.
//
// Routes:
//
//	POST /api/v1/encrypt   {"key","message"}    -> {"ciphertext"}
//	POST /api/v1/decrypt   {"key","ciphertext"} -> {"message"}
//	GET  /api/v1/healthz
//	GET  /api/v1/version
//	GET  /metrics
//
// Errors are returned as {"code","message"} using the codes from
// [errors.Code]. Request bodies, passphrases and messages are never logged.
package server

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"

	"github.com/matzehuels/optio/internal/metrics"
	"github.com/matzehuels/optio/pkg/errors"
	"github.com/matzehuels/optio/pkg/pipeline"
)

const (
	// DefaultAddr is the listen address when none is configured.
	DefaultAddr = ":8080"

	// DefaultRateLimit is the per-IP budget in requests per minute.
	DefaultRateLimit = 120

	// MaxBodyBytes bounds request bodies. JSON escaping can inflate a
	// message of errors.MaxTextBytes well beyond its raw size.
	MaxBodyBytes int64 = 8 << 20

	shutdownTimeout   = 10 * time.Second
	readHeaderTimeout = 5 * time.Second
)

// Config configures a Server.
type Config struct {
	// Addr is the listen address. Empty means DefaultAddr.
	Addr string

	// RateLimit is the per-IP budget in requests per minute for the
	// /api/v1 routes. Zero or negative disables rate limiting.
	RateLimit int

	// Logger receives one line per request. Nil means log.Default().
	Logger *log.Logger

	// Metrics, when set, is served on /metrics.
	Metrics *metrics.Metrics
}

// Server holds the HTTP handlers.
type Server struct {
	cfg    Config
	logger *log.Logger
	runner *pipeline.Runner
}

// New builds a Server from cfg.
func New(cfg Config) *Server {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		cfg:    cfg,
		logger: logger,
		runner: pipeline.NewRunner(logger),
	}
}

// Router returns the configured HTTP handler.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.RealIP)
	r.Use(s.logMiddleware)
	r.Use(middleware.Recoverer)

	r.Route("/api/v1", func(api chi.Router) {
		api.Get("/healthz", s.healthz)
		api.Get("/version", s.version)

		api.Group(func(r chi.Router) {
			if s.cfg.RateLimit > 0 {
				r.Use(httprate.Limit(s.cfg.RateLimit, time.Minute,
					httprate.WithKeyFuncs(httprate.KeyByIP),
					httprate.WithLimitHandler(s.rateLimited),
				))
			}
			r.Post("/encrypt", s.encrypt)
			r.Post("/decrypt", s.decrypt)
		})
	})

	if s.cfg.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.cfg.Metrics.Handler())
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, errors.ErrCodeInvalidInput, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, errors.ErrCodeInvalidInput, "method not allowed")
	})

	return r
}

// ListenAndServe serves until ctx is canceled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	s.logger.Info("listening", "addr", s.cfg.Addr, "rate_limit", s.cfg.RateLimit)
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return ctx.Err()
	case err := <-errCh:
		return err
	}
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.cfg.Addr
}
