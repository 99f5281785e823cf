package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"Website_Analysis/internal/logger"
	"Website_Analysis/internal/ratelimit"
)

// Server represents the HTTP server with all dependencies
type Server struct {
	handler *Handler
	logger  logger.Service
	server  *http.Server
}

// NewServer creates a new HTTP server
func NewServer(
	addr string,
	handler *Handler,
	logger logger.Service,
	rateLimiter ratelimit.Service,
	readTimeout, writeTimeout time.Duration,
) *Server {
	router := mux.NewRouter()

	srv := &Server{
		handler: handler,
		logger:  logger,
		server: &http.Server{
			Addr:         addr,
			Handler:      router,
			ReadTimeout:  readTimeout,
			WriteTimeout: writeTimeout,
		},
	}

	// Register middleware (order matters: logging -> rate limiting -> cors -> recovery)
	router.Use(loggingMiddleware(logger))
	router.Use(rateLimitingMiddleware(rateLimiter, logger))
	router.Use(corsMiddleware())
	router.Use(recoveryMiddleware(logger))

	srv.registerRoutes(router)

	return srv
}

// registerRoutes sets up all API routes
func (s *Server) registerRoutes(router *mux.Router) {
	// Health check
	router.HandleFunc("/health", s.handler.HealthCheck).Methods("GET")

	// Synchronous analysis
	router.HandleFunc("/api/analyze", s.handler.AnalyzeDomains).Methods("POST")
	router.HandleFunc("/api/analyze-batch", s.handler.AnalyzeDomainsSequential).Methods("POST")

	// Background jobs
	router.HandleFunc("/api/jobs", s.handler.SubmitJob).Methods("POST")
	router.HandleFunc("/api/jobs/{jobID}/status", s.handler.JobStatus).Methods("GET")
	router.HandleFunc("/api/jobs/{jobID}/results", s.handler.JobResults).Methods("GET")

	// Operational introspection
	router.HandleFunc("/api/queue/stats", s.handler.QueueStats).Methods("GET")
	router.HandleFunc("/api/performance", s.handler.Performance).Methods("GET")

	// Root handler
	router.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"message":"Website Analysis API","version":"1.0.0","endpoints":["/health","/api/analyze","/api/analyze-batch","/api/jobs","/api/jobs/{jobID}/status","/api/jobs/{jobID}/results","/api/queue/stats","/api/performance"]}`))
	}).Methods("GET")
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.LogInfo(context.Background(), logger.OpServerStart, "Starting HTTP server", map[string]interface{}{
		"addr": s.server.Addr,
	})

	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.LogInfo(ctx, logger.OpServerShutdown, "Shutting down HTTP server", nil)
	return s.server.Shutdown(ctx)
}
