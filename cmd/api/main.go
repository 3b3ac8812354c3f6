// Command api is the Cricket Stats API server.
//
// Usage:
//
//	cricket-api
//	API_PORT=8080 DATABASE_URL=postgres://... cricket-api

// @title Cricket Stats API
// @version 1.0.0
// @description Cricket statistics over ingested match documents: batting and bowling summaries, comparisons, leaderboards, match summaries and recent form.
// @host localhost:8000
// @BasePath /api/v1
// @schemes http https
// @contact.name Cricket Stats
// @license.name MIT
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/albapepper/cricket-stats/internal/api"
	"github.com/albapepper/cricket-stats/internal/api/handler"
	"github.com/albapepper/cricket-stats/internal/cache"
	"github.com/albapepper/cricket-stats/internal/config"
	"github.com/albapepper/cricket-stats/internal/db"
	"github.com/albapepper/cricket-stats/internal/ingest"
	"github.com/albapepper/cricket-stats/internal/metrics"
	"github.com/albapepper/cricket-stats/internal/stats"
	"github.com/albapepper/cricket-stats/internal/tools"

	_ "github.com/albapepper/cricket-stats/docs" // swagger docs
)

const version = "1.0.0"

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	// Context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Connect to database
	logger.Info("Connecting to database...", "driver", cfg.DBDriver)
	store, err := db.New(ctx, cfg)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	logger.Info("Database connected",
		"dialect", store.Dialect,
		"min_conns", cfg.DBPoolMinConns,
		"max_conns", cfg.DBPoolMaxConns)

	// Initialize cache
	appCache := cache.New(cfg.CacheEnabled)
	defer appCache.Close()
	logger.Info("Cache initialized", "enabled", cfg.CacheEnabled)

	var collector *metrics.Collector
	if cfg.MetricsEnabled {
		collector = metrics.NewCollector()
	}

	engine := stats.NewEngine(store, collector, logger)
	loader := ingest.NewLoader(store, ingest.Options{
		DedupePerformances: cfg.IngestDedupePerformances,
	}, collector, logger)

	var mcpHandler http.Handler
	if cfg.MCPEnabled {
		mcpHandler = tools.NewServer(engine, version).HTTPHandler()
		logger.Info("MCP tools mounted", "path", "/mcp")
	}

	// Create router
	h := handler.New(store, engine, loader, appCache, cfg, logger)
	router := api.NewRouter(h, collector, mcpHandler, cfg)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.APIHost, cfg.APIPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in background
	go func() {
		logger.Info("Starting Cricket Stats API",
			"addr", addr,
			"environment", cfg.Environment,
			"docs", fmt.Sprintf("http://localhost:%d/docs/", cfg.APIPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt
	<-ctx.Done()
	logger.Info("Shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", "error", err)
	}
	logger.Info("Server stopped")
}
