// Package server provides HTTP server management for the interactions API:
// middleware configuration, route setup, and graceful shutdown.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	_ "net/http/pprof"

	"github.com/medsafe/interactions-api/config"
	"github.com/medsafe/interactions-api/data"
	"github.com/medsafe/interactions-api/handlers"
	"github.com/medsafe/interactions-api/interfaces"
	"github.com/medsafe/interactions-api/logging"
	"github.com/medsafe/interactions-api/metrics"
	"github.com/medsafe/interactions-api/safety"
)

// Server represents the HTTP server.
type Server struct {
	server        *http.Server
	router        chi.Router
	dataContainer *data.DataContainer
	engine        *safety.Engine
	validator     interfaces.DataValidator
	checker       interfaces.HealthChecker
	config        *config.Config
}

// NewServer creates a new server instance.
func NewServer(cfg *config.Config, dataContainer *data.DataContainer,
	engine *safety.Engine, validator interfaces.DataValidator,
	checker interfaces.HealthChecker) *Server {

	router := chi.NewRouter()

	s := &Server{
		server: &http.Server{
			Handler:      router,
			Addr:         cfg.Address + ":" + cfg.Port,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		router:        router,
		dataContainer: dataContainer,
		engine:        engine,
		validator:     validator,
		checker:       checker,
		config:        cfg,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// setupMiddleware configures all middleware.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(RealIPMiddleware)
	s.router.Use(logging.RequestLogger(logging.DefaultLoggingService.Logger))
	s.router.Use(middleware.RedirectSlashes)
	s.router.Use(middleware.Recoverer)

	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	s.router.Use(RequestSizeMiddleware(s.config))
	s.router.Use(RateLimitHandler)
	s.router.Use(metrics.Metrics)
}

// setupRoutes configures all routes.
func (s *Server) setupRoutes() {
	s.router.Get("/", handlers.ServiceInfo())
	s.router.Get("/health", handlers.HealthCheck(s.checker))
	s.router.Get("/metrics", promhttp.Handler().ServeHTTP)

	s.router.Post("/api/check", handlers.CheckMedications(s.engine))
	s.router.Get("/api/medications", handlers.ListMedications(s.dataContainer))
	s.router.Get("/api/medications/{pageNumber}", handlers.ServePagedMedications(s.dataContainer))
	s.router.Get("/api/medication/{name}", handlers.GetMedication(s.engine, s.validator))
	s.router.Get("/api/interactions", handlers.ListInteractions(s.dataContainer))
}

// Start starts the server.
func (s *Server) Start() error {
	// Profiling endpoint (accessible at /debug/pprof/) - only for local dev
	if s.config.Env == "dev" {
		s.startProfilingServer()
	}

	logging.Info(fmt.Sprintf("Starting server at: %s:%s", s.config.Address, s.config.Port))
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	logging.Info("Shutting down server...")

	if err := s.server.Shutdown(ctx); err != nil {
		logging.Error("Server forced to shutdown", "error", err)
		if err := s.server.Close(); err != nil {
			logging.Error("Server close error", "error", err)
			return err
		}
	}

	logging.Info("Server shutdown complete")
	return nil
}

// Router exposes the configured router, mainly for tests.
func (s *Server) Router() chi.Router {
	return s.router
}

// startProfilingServer starts the pprof server in development mode.
func (s *Server) startProfilingServer() {
	go func() {
		logging.Info("Profiling server started at http://localhost:6060/debug/pprof/")
		if err := http.ListenAndServe("localhost:6060", nil); err != nil {
			logging.Error("Profiling server failed", "error", err)
		}
	}()
}
