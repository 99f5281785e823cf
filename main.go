package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"Website_Analysis/internal/cache"
	"Website_Analysis/internal/cache/resultCache"
	"Website_Analysis/internal/config"
	"Website_Analysis/internal/domainAnalysis"
	"Website_Analysis/internal/extractor"
	"Website_Analysis/internal/fetcher"
	"Website_Analysis/internal/http"
	"Website_Analysis/internal/jobqueue"
	"Website_Analysis/internal/logger"
	"Website_Analysis/internal/models"
	"Website_Analysis/internal/ratelimit"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database connection for logging
	db, err := logger.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to Postgres: %v", err)
	}
	defer db.Close()

	// Initialize logger
	appLogger := logger.NewDatabaseLogger(db)
	defer appLogger.Close()

	// Create internal log event for startup
	startupCtx := logger.WithLogEvent(context.Background(), logger.NewInternalLogEvent())

	appLogger.LogInfo(startupCtx, logger.OpServerStart, "Starting Website Analysis API", map[string]interface{}{
		"version": "1.0.0",
		"config": map[string]interface{}{
			"port":       cfg.Port,
			"cache_type": cfg.CacheType,
			"cache_ttl":  cfg.CacheTTL.Seconds(),
		},
	})

	// Initialize cache and analysis result cache
	cacheService, err := initializeCache(cfg)
	if err != nil {
		appLogger.LogError(
			startupCtx,
			"cache_init",
			"",
			"Failed to initialize cache",
			err,
			models.LogSeverityHigh,
			nil,
		)
		log.Fatalf("Failed to initialize cache: %v", err)
	}

	analysisCache := resultCache.New(cacheService, cfg.CacheTTL)

	// Initialize the fetch pipeline
	fetchLimiter := ratelimit.NewFetchLimiter(cfg.MaxConcurrentFetches, cfg.FetchMinDelay, cfg.FetchBurstLimit)
	connectionPool := fetcher.NewConnectionPool(cfg.SessionPoolSize)
	defer connectionPool.CloseAll()

	pageFetcher := fetcher.NewPageFetcher(connectionPool, fetchLimiter)
	emailExtractor := extractor.NewEmailExtractor(cfg.MaxEmails)

	// Inbound API rate limiter
	rateLimiter := ratelimit.NewTwoTierRateLimiter(
		int64(cfg.GlobalRateLimitPerSec),
		int64(cfg.GlobalRateLimitPerSec),
		int64(cfg.PerIPRateLimitPerSec),
		int64(cfg.PerIPRateLimitPerSec),
	)

	// Initialize service
	defaultTimeout := time.Duration(cfg.FetchTimeoutSeconds) * time.Second
	analysisService := domainAnalysis.NewService(
		pageFetcher,
		emailExtractor,
		analysisCache,
		appLogger,
		cfg.MaxPhones,
		cfg.MaxParallelBatchSize,
		cfg.MaxSequentialBatchSize,
		cfg.DefaultBatchSize,
		defaultTimeout,
	)

	// Initialize background job queue
	workerQueue := jobqueue.NewWorkerQueue(
		analysisService,
		appLogger,
		cfg.MaxWorkers,
		cfg.MaxQueueSize,
		cfg.DefaultJobBatchSize,
		cfg.MaxParallelBatchSize,
	)
	workerQueue.Start()
	defer workerQueue.Stop()

	// Initialize HTTP handler
	handler := http.NewHandler(
		analysisService,
		workerQueue,
		fetchLimiter,
		connectionPool,
		appLogger,
		cfg.MaxDomainsPerRequest,
		defaultTimeout,
	)

	// Initialize server
	addr := ":" + cfg.Port
	server := http.NewServer(
		addr,
		handler,
		appLogger,
		rateLimiter,
		cfg.ServerReadTimeout,
		cfg.ServerWriteTimeout,
	)

	// Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			appLogger.LogError(
				context.Background(),
				logger.OpServerStart,
				"",
				"Server failed to start",
				err,
				models.LogSeverityHigh,
				map[string]interface{}{"addr": addr},
			)
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	fmt.Printf("🚀 Website Analysis API server started on %s\n", addr)
	fmt.Println("📋 Available endpoints:")
	fmt.Println("  GET  /health                      - Health check")
	fmt.Println("  POST /api/analyze                 - Analyze domains in parallel")
	fmt.Println("  POST /api/analyze-batch           - Analyze domains in sequential batches")
	fmt.Println("  POST /api/jobs                    - Submit a background job")
	fmt.Println("  GET  /api/jobs/{jobID}/status     - Job progress")
	fmt.Println("  GET  /api/jobs/{jobID}/results    - Job results")
	fmt.Println("  GET  /api/queue/stats             - Queue statistics")
	fmt.Println("  GET  /api/performance             - Fetch pipeline statistics")

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("\n🛑 Shutting down server...")

	// Create context with timeout for shutdown
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ServerShutdownTimeout)
	defer cancel()

	// Shutdown server gracefully
	if err := server.Shutdown(ctx); err != nil {
		appLogger.LogError(
			ctx,
			logger.OpServerShutdown,
			"",
			"Server shutdown error",
			err,
			models.LogSeverityMedium,
			nil,
		)
		log.Printf("Server shutdown error: %v", err)
	} else {
		appLogger.LogInfo(ctx, logger.OpServerShutdown, "Server shutdown completed successfully", nil)
		fmt.Println("✅ Server shutdown completed")
	}
}

func initializeCache(cfg *config.Config) (cache.Service, error) {
	switch cfg.CacheType {
	case "redis":
		return cache.NewRedisCache(cfg.RedisURL)
	case "memory":
		return cache.NewMemoryCache(), nil
	default:
		return nil, fmt.Errorf("unsupported cache type: %s", cfg.CacheType)
	}
}
