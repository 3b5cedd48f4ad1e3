// Package server assembles the dashboard's HTTP handler: global middleware,
// health and metrics endpoints, static assets and the UI routes.
package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/me/botdash/internal/config"
	"github.com/me/botdash/internal/loaders"
	"github.com/me/botdash/internal/ui"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Version is reported by the health endpoint. It is set at build time.
var Version = "dev"

// Server is the botdash HTTP server.
type Server struct {
	router    chi.Router
	logger    *slog.Logger
	config    config.ServerConfig
	startTime time.Time
	loaders   *loaders.Loaders
	gatherer  prometheus.Gatherer
	ui        *ui.UI // UI handler for web interface
}

// Option configures optional Server dependencies.
type Option func(*Server)

// WithGatherer serves /metrics from the given registry instead of the default
// one.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.gatherer = g
	}
}

// New creates a new Server with all routes registered.
func New(cfg config.ServerConfig, l *loaders.Loaders, logger *slog.Logger, opts ...Option) *Server {
	s := &Server{
		router:    chi.NewRouter(),
		logger:    logger.With("component", "server"),
		config:    cfg,
		startTime: time.Now(),
		loaders:   l,
		gatherer:  prometheus.DefaultGatherer,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.ui = ui.New(l, logger, ui.Config{
		Secure:      cfg.SecureCookies,
		LandingPath: cfg.LandingPath,
	})

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

	// Global middleware
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware(s.logger))

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)
	if s.config.Metrics {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	// Static files (JS, CSS, images)
	r.Handle("/static/*", ui.StaticHandler(s.config.StaticDir))

	// UI routes (HTML)
	s.ui.RegisterRoutes(r)
}
