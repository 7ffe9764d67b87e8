// Package server provides the HTTP server for the freshness engine API.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/misebox/v1/internal/infrastructure/config"
	"github.com/misebox/v1/internal/infrastructure/http/handlers"
	"github.com/misebox/v1/internal/infrastructure/http/middleware"
	"github.com/misebox/v1/internal/ports/inbound"
)

// Server represents the HTTP server
type Server struct {
	config *config.Config
	logger *zap.Logger
	router *chi.Mux
	server *http.Server
}

// NewServer creates a new HTTP server instance
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	freshnessService inbound.FreshnessService,
	notificationService inbound.NotificationService,
) *Server {
	s := &Server{
		config: cfg,
		logger: logger,
	}

	s.router = s.setupRouter(freshnessService, notificationService)

	s.server = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           s.router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return s
}

// setupRouter configures the HTTP router with middleware and routes
func (s *Server) setupRouter(
	freshnessService inbound.FreshnessService,
	notificationService inbound.NotificationService,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(s.logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	r.Get(s.config.Monitoring.HealthCheckPath, s.handleHealth)
	if s.config.Monitoring.EnableMetrics {
		r.Handle(s.config.Monitoring.MetricsPath, promhttp.Handler())
	}

	fh := handlers.NewFreshnessHandlers(freshnessService, s.config.Scan.AllowAI, s.logger)
	nh := handlers.NewNotificationHandlers(notificationService, s.logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/scan", fh.HandleScan)
		r.Post("/scan/full", fh.HandleNightlyScan)
		r.Post("/items/{id}/freshness", fh.HandleClassifyItem)

		r.Get("/notifications", nh.HandleList)
		r.Post("/notifications/{id}/read", nh.HandleMarkRead)
		r.Post("/notifications/read-all", nh.HandleMarkAllRead)
		r.Delete("/notifications", nh.HandleClear)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `{"status":"healthy","service":%q,"version":%q}`,
		s.config.App.Name, s.config.App.Version)
}

// Start begins serving requests. It blocks until the server stops.
func (s *Server) Start() error {
	s.logger.Info("HTTP server starting", zap.String("addr", s.server.Addr))
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("HTTP server shutting down")
	return s.server.Shutdown(ctx)
}
