// Package server exposes skin resolutions over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/steviee/mcskin/internal/metrics"
	"github.com/steviee/mcskin/internal/mojang"
)

// Resolver resolves a username to its profile and textures.
type Resolver interface {
	Resolve(ctx context.Context, username string) (*mojang.Resolution, error)
}

// Config holds HTTP server configuration.
type Config struct {
	Listen string
	// RateLimit is requests per minute per client IP; zero disables it.
	RateLimit   int
	CORSOrigins []string
	// RequestTimeout bounds the resolution behind each request.
	RequestTimeout time.Duration
	Metrics        *metrics.Recorder
	Logger         *slog.Logger
}

// Server serves the skin API.
type Server struct {
	resolver Resolver
	config   Config
	logger   *slog.Logger
	router   chi.Router
}

// New creates a Server and builds its router.
func New(resolver Resolver, config *Config) *Server {
	if config == nil {
		config = &Config{}
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		resolver: resolver,
		config:   *config,
		logger:   logger,
	}
	s.router = s.routes()

	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	if s.config.Metrics != nil {
		r.Use(s.config.Metrics.Middleware)
	}

	if s.config.RateLimit > 0 {
		r.Use(httprate.LimitByIP(s.config.RateLimit, time.Minute))
	}

	if len(s.config.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: s.config.CORSOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "X-Request-Id"},
			MaxAge:         300,
		}))
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	if s.config.Metrics != nil {
		r.Handle("/metrics", s.config.Metrics.Handler())
	}

	r.Route("/v1/skins/{username}", func(r chi.Router) {
		r.Get("/", s.handleResolution)
		r.Get("/skin", s.handleSkinRedirect)
		r.Get("/properties", s.handleProperties)
	})

	return r
}

// ListenAndServe serves until ctx is canceled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.config.Listen,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("skin API listening", "addr", s.config.Listen)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen on %s: %w", s.config.Listen, err)

	case <-ctx.Done():
		s.logger.Info("shutting down skin API")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}
