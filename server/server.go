package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hpo-ontology-gateway/config"
	"hpo-ontology-gateway/handlers"
	"hpo-ontology-gateway/services"

	"github.com/gorilla/mux"
)

// Server represents the HTTP server
type Server struct {
	config     *config.Config
	router     *mux.Router
	httpServer *http.Server
	services   *services.ServiceContainer

	// Handlers
	termHandler     *handlers.TermHandler
	analysisHandler *handlers.AnalysisHandler
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config) *Server {
	serviceFactory := services.NewServiceFactory(cfg)
	serviceContainer, err := serviceFactory.CreateServices()
	if err != nil {
		log.Fatalf("Failed to create services: %v", err)
	}

	router := mux.NewRouter()

	server := &Server{
		config:          cfg,
		router:          router,
		services:        serviceContainer,
		termHandler:     handlers.NewTermHandler(serviceContainer.OntologyClient, serviceContainer.Resolver),
		analysisHandler: handlers.NewAnalysisHandler(serviceContainer.Path, serviceContainer.Relationship, serviceContainer.Stats, serviceContainer.Batch),
		httpServer: &http.Server{
			Addr:         ":" + cfg.Server.Port,
			Handler:      router,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
			IdleTimeout:  cfg.Server.IdleTimeout,
		},
	}

	server.setupRoutes()
	server.setupMiddleware()

	return server
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	// API version prefix
	api := s.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", s.healthCheck).Methods("GET", "OPTIONS")

	// Term routes
	api.HandleFunc("/terms/{id}", s.termHandler.GetTerm).Methods("GET")
	api.HandleFunc("/terms/{id}/parents", s.termHandler.GetParents).Methods("GET")
	api.HandleFunc("/terms/{id}/children", s.termHandler.GetChildren).Methods("GET")
	api.HandleFunc("/terms/{id}/ancestors", s.termHandler.GetAncestors).Methods("GET")
	api.HandleFunc("/terms/{id}/descendants", s.termHandler.GetDescendants).Methods("GET")

	// Analysis routes
	api.HandleFunc("/terms/{id}/path", s.analysisHandler.GetTermPath).Methods("GET")
	api.HandleFunc("/terms/{id}/stats", s.analysisHandler.GetTermStats).Methods("GET")
	api.HandleFunc("/compare", s.analysisHandler.CompareTerms).Methods("POST")
	api.HandleFunc("/batch", s.analysisHandler.BatchGetTerms).Methods("POST")
}

// setupMiddleware configures middleware
func (s *Server) setupMiddleware() {
	// CORS must be first to handle preflight requests
	s.router.Use(s.corsMiddleware)
	s.router.Use(s.requestIDMiddleware)
	s.router.Use(s.loggingMiddleware)
	s.router.Use(s.contentTypeMiddleware)
}

// Start starts the HTTP server
func (s *Server) Start() error {
	log.Printf("Starting server on port %s", s.config.Server.Port)

	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	return s.Shutdown()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return s.httpServer.Shutdown(ctx)
}

// healthCheck handles health check requests
func (s *Server) healthCheck(w http.ResponseWriter, r *http.Request) {
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	systemHealth := s.services.HealthService.CheckHealth(r.Context())

	statusCode := http.StatusOK
	if systemHealth.Status == services.HealthStatusUnhealthy {
		statusCode = http.StatusServiceUnavailable
	}

	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(systemHealth); err != nil {
		log.Printf("Failed to encode health response: %v", err)
	}
}
