package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"talentboard/internal/analyzer"
	"talentboard/internal/api/routes"
	"talentboard/internal/config"
	"talentboard/internal/llm"
	"talentboard/internal/logging"
	"talentboard/internal/ranking"
	"talentboard/internal/storage"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig("configs/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logging
	if err := logging.InitializeLogging(cfg); err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}
	defer logging.CloseLogging()

	logger := logging.GetGlobalLogger()
	logger.Info("Starting Talentboard Core")

	// Open storage
	store, err := storage.NewStore(cfg.Database.Path)
	if err != nil {
		logger.Fatal("Failed to open storage", map[string]interface{}{"error": err.Error()})
	}
	defer store.Close()

	// Initialize ranking cache; the server runs uncached when Redis is
	// unreachable.
	var cache *ranking.Cache
	redisCache := ranking.NewCache(cfg)
	pingCtx, cancelPing := context.WithTimeout(context.Background(), cfg.Redis.Timeout)
	if err := redisCache.Ping(pingCtx); err != nil {
		logger.Warn("Redis unavailable, ranking cache disabled", map[string]interface{}{
			"error": err.Error(),
		})
		redisCache.Close()
	} else {
		cache = redisCache
		defer redisCache.Close()
	}
	cancelPing()

	// Initialize LLM manager
	llmManager := llm.NewManager(cfg)
	if err := llmManager.Start(); err != nil {
		logger.Fatal("Failed to start LLM manager", map[string]interface{}{"error": err.Error()})
	}

	// Core services
	analyzerSvc := analyzer.New(cfg, llmManager, store, invalidator(cache))
	rankingSvc := ranking.NewService(store, cache)

	// Initialize Echo
	e := echo.New()
	e.HideBanner = true

	routes.SetupRoutes(e, cfg, store, llmManager, analyzerSvc, rankingSvc)

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		logger.Info("Stopping LLM manager...")
		if err := llmManager.Stop(); err != nil {
			logger.Error("Error stopping LLM manager", map[string]interface{}{"error": err.Error()})
		}

		logger.Info("Stopping HTTP server...")
		if err := e.Shutdown(shutdownCtx); err != nil {
			logger.Error("Error shutting down server", map[string]interface{}{"error": err.Error()})
		}

		logger.Info("Server shutdown complete")
	}()

	// Start server
	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", map[string]interface{}{"address": address})

	if err := e.Start(address); err != nil {
		logger.Fatal("Server failed to start", map[string]interface{}{"error": err.Error()})
	}
}

// invalidator keeps the analyzer's cache dependency nil when the cache
// is disabled; a typed nil pointer would not compare equal to nil behind
// the interface.
func invalidator(cache *ranking.Cache) analyzer.Invalidator {
	if cache == nil {
		return nil
	}
	return cache
}
