// Package handler provides HTTP handlers for all API endpoints.
// Handlers are thin: they call the stats engine or the loader and serialize
// the structured result. Successful GET responses are cached with ETags.
package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/albapepper/cricket-stats/internal/api/respond"
	"github.com/albapepper/cricket-stats/internal/cache"
	"github.com/albapepper/cricket-stats/internal/config"
	"github.com/albapepper/cricket-stats/internal/db"
	"github.com/albapepper/cricket-stats/internal/ingest"
	"github.com/albapepper/cricket-stats/internal/stats"
)

// Handler holds shared dependencies for all endpoint handlers.
type Handler struct {
	db     *db.DB
	engine *stats.Engine
	loader *ingest.Loader
	cache  *cache.Cache
	cfg    *config.Config
	logger *slog.Logger
}

// New creates a Handler with shared dependencies.
func New(store *db.DB, engine *stats.Engine, loader *ingest.Loader, c *cache.Cache, cfg *config.Config, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		db:     store,
		engine: engine,
		loader: loader,
		cache:  c,
		cfg:    cfg,
		logger: logger,
	}
}

// Root serves API info at /.
// @Summary API root info
// @Description Returns API name, version, status, storage driver and enabled surfaces.
// @Tags meta
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"name":    "Cricket Stats API",
		"version": "1.0.0",
		"status":  "running",
		"docs":    "/docs",
		"driver":  h.cfg.DBDriver,
		"features": map[string]bool{
			"cache":   h.cfg.CacheEnabled,
			"metrics": h.cfg.MetricsEnabled,
			"mcp":     h.cfg.MCPEnabled,
		},
	})
}

// HealthCheck returns basic health status.
// @Summary Health check
// @Description Returns basic health status and timestamp.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckDB verifies database connectivity.
// @Summary Database health check
// @Description Verifies connectivity to the configured store (Postgres or SQLite).
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health/db [get]
func (h *Handler) HealthCheckDB(w http.ResponseWriter, r *http.Request) {
	if err := h.db.HealthCheck(r.Context()); err != nil {
		h.logger.Warn("Database health check failed", "error", err)
		respond.WriteJSONObject(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status":    "unhealthy",
			"database":  "disconnected",
			"error":     "Database connection check failed",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"database":  "connected",
		"dialect":   string(h.db.Dialect),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckCache returns cache statistics.
// @Summary Cache health check
// @Description Returns in-memory cache statistics: key counts, hits, misses and flushes.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health/cache [get]
func (h *Handler) HealthCheckCache(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"cache":     h.cache.Stats(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
