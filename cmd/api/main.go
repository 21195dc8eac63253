// ABOUTME: Main entry point for the annotation API server
// ABOUTME: Wires together all components and starts the HTTP server

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/samling-jackyjyo/hoarder-sub003/api"
	"github.com/samling-jackyjyo/hoarder-sub003/api/handlers"
	"github.com/samling-jackyjyo/hoarder-sub003/api/middleware"
	"github.com/samling-jackyjyo/hoarder-sub003/core/content"
	"github.com/samling-jackyjyo/hoarder-sub003/core/highlights"
	"github.com/samling-jackyjyo/hoarder-sub003/core/interfaces"
	"github.com/samling-jackyjyo/hoarder-sub003/infrastructure/cache/memory"
	"github.com/samling-jackyjyo/hoarder-sub003/infrastructure/cache/redis"
	sqlitecache "github.com/samling-jackyjyo/hoarder-sub003/infrastructure/cache/sqlite"
	stdhttp "github.com/samling-jackyjyo/hoarder-sub003/infrastructure/http/standard"
	logruslogger "github.com/samling-jackyjyo/hoarder-sub003/infrastructure/logger/logrus"
	sqlitestorage "github.com/samling-jackyjyo/hoarder-sub003/infrastructure/storage/sqlite"
	"github.com/samling-jackyjyo/hoarder-sub003/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Create logger
	logger := logruslogger.New(os.Getenv("LOG_LEVEL"))
	logger.Info("Starting annotation API", map[string]interface{}{
		"port":       cfg.Server.Port,
		"cache_type": cfg.Cache.Type,
	})

	// Create cache
	var cache interfaces.Cache
	switch cfg.Cache.Type {
	case "redis":
		redisCache, err := redis.NewRedisCache(cfg.Cache.Redis)
		if err != nil {
			logger.Error("Failed to create Redis cache, falling back to memory", map[string]interface{}{
				"error": err.Error(),
			})
			cache = memory.NewMemoryCache(time.Duration(cfg.Cache.Memory.DefaultExpiration) * time.Second)
		} else {
			cache = redisCache
			logger.Info("Using Redis cache", map[string]interface{}{
				"address": cfg.Cache.Redis.Address,
			})
		}
	case "sqlite":
		sqliteCache, err := sqlitecache.NewSQLiteCache(cfg.Cache.SQLite.Path)
		if err != nil {
			logger.Error("Failed to create SQLite cache, falling back to memory", map[string]interface{}{
				"error": err.Error(),
			})
			cache = memory.NewMemoryCache(time.Duration(cfg.Cache.Memory.DefaultExpiration) * time.Second)
		} else {
			cache = sqliteCache
			logger.Info("Using SQLite cache", map[string]interface{}{
				"path": cfg.Cache.SQLite.Path,
			})
		}
	default:
		cache = memory.NewMemoryCache(time.Duration(cfg.Cache.Memory.DefaultExpiration) * time.Second)
		logger.Info("Using memory cache", nil)
	}

	// Create HTTP client with outbound request logging
	httpClient := stdhttp.NewStandardHTTPClientWithTransport(
		time.Duration(cfg.Content.FetchTimeout)*time.Second,
		&middleware.LoggingRoundTripper{Transport: http.DefaultTransport, Logger: logger},
	)

	// Create dependencies container
	deps := interfaces.Dependencies{
		Cache:      cache,
		HTTPClient: httpClient,
		Logger:     logger,
	}

	// Create highlight storage
	storage, err := sqlitestorage.NewHighlightStorage(cfg.Storage.Path)
	if err != nil {
		log.Fatalf("Failed to open highlight storage: %v", err)
	}
	defer storage.Close()

	// Create services
	contentService := content.NewService(deps)
	annotationService := highlights.NewService(contentService, storage, logger)

	// Create API with middleware
	apiConfig := api.APIConfig{
		Logger:     logger,
		RateLimit:  cfg.RateLimit.Requests,
		RateWindow: time.Duration(cfg.RateLimit.WindowSeconds) * time.Second,
	}
	humaAPI, router := api.NewAPIWithMiddleware(apiConfig)

	// Create and register handlers
	highlightHandler := handlers.NewHighlightHandler(annotationService)
	highlightHandler.RegisterRoutes(humaAPI)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("HTTP server starting", map[string]interface{}{
			"address": srv.Addr,
		})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", map[string]interface{}{
				"error": err.Error(),
			})
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...", nil)

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", map[string]interface{}{
			"error": err.Error(),
		})
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	// Drain in-flight highlight persistence before exit.
	annotationService.Flush()

	logger.Info("Server stopped", nil)
}
