package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	corslib "github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/albapepper/cricket-stats/internal/api/handler"
	"github.com/albapepper/cricket-stats/internal/config"
	"github.com/albapepper/cricket-stats/internal/metrics"
)

// NewRouter creates and configures the Chi router with all middleware and routes.
// collector and mcpHandler are optional; their routes are skipped when nil.
func NewRouter(h *handler.Handler, collector *metrics.Collector, mcpHandler http.Handler, cfg *config.Config) *chi.Mux {
	r := chi.NewRouter()

	// --- Middleware stack ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(TimingMiddleware)
	r.Use(middleware.Compress(5)) // gzip

	// CORS
	c := corslib.New(corslib.Options{
		AllowedOrigins:   cfg.CORSAllowOrigins,
		AllowedMethods:   []string{"GET", "HEAD", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Accept-Encoding", "Content-Type", "If-None-Match", "Cache-Control", "Mcp-Session-Id"},
		ExposedHeaders:   []string{"X-Process-Time", "X-Cache", "ETag", "Mcp-Session-Id"},
		AllowCredentials: false,
	})
	r.Use(c.Handler)

	// Rate limiting
	if cfg.RateLimitEnabled {
		r.Use(RateLimitMiddleware(cfg.RateLimitRequests, cfg.RateLimitWindow))
	}

	// --- Routes ---

	// Root
	r.Get("/", h.Root)

	// Health checks
	r.Route("/health", func(r chi.Router) {
		r.Get("/", h.HealthCheck)
		r.Get("/db", h.HealthCheckDB)
		r.Get("/cache", h.HealthCheckCache)
	})

	// Swagger UI
	r.Get("/docs/*", httpSwagger.Handler(httpSwagger.URL("/docs/doc.json")))

	// Prometheus
	if collector != nil {
		r.Method(http.MethodGet, "/metrics", collector.Handler())
	}

	// MCP streamable HTTP (GET for the event stream, POST for calls, DELETE ends a session)
	if mcpHandler != nil {
		r.Handle("/mcp", mcpHandler)
	}

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Players
		r.Get("/players", h.GetPlayers)
		r.Get("/players/{name}/batting", h.GetBattingStats)
		r.Get("/players/{name}/bowling", h.GetBowlingStats)
		r.Get("/players/{name}/form", h.GetRecentForm)

		// Comparisons and leaderboards
		r.Get("/compare", h.ComparePlayers)
		r.Get("/leaders/{category}", h.GetLeaders)

		// Matches
		r.Get("/matches/summary", h.GetMatchSummary)

		// Ingestion
		r.Post("/ingest", h.PostIngest)
	})

	return r
}
