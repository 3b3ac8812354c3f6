// Package config provides centralized configuration loaded from environment
// variables, optionally layered over a YAML file. Shared by both cmd/api and
// cmd/ingest.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// --------------------------------------------------------------------------
// Table names, shared with db/schema.go.
// --------------------------------------------------------------------------

const (
	PlayersTable = "players"
	BattingTable = "batting_performances"
	BowlingTable = "bowling_performances"
	MatchesTable = "matches"
)

// Supported storage drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// --------------------------------------------------------------------------
// Config
// --------------------------------------------------------------------------

// Config is populated from defaults, then the YAML file, then environment
// variables.
type Config struct {
	// Database
	DBDriver       string        `yaml:"db_driver"`
	DatabaseURL    string        `yaml:"database_url"`
	SQLitePath     string        `yaml:"sqlite_path"`
	DBPoolMinConns int           `yaml:"db_pool_min_conns"`
	DBPoolMaxConns int           `yaml:"db_pool_max_conns"`
	DBPoolMaxLife  time.Duration `yaml:"db_pool_max_life"`

	// API server
	APIHost     string `yaml:"api_host"`
	APIPort     int    `yaml:"api_port"`
	Environment string `yaml:"environment"` // development, staging, production
	LogLevel    string `yaml:"log_level"`

	// CORS
	CORSAllowOrigins []string `yaml:"cors_allow_origins"`

	// Rate limiting
	RateLimitEnabled  bool          `yaml:"rate_limit_enabled"`
	RateLimitRequests int           `yaml:"rate_limit_requests"`
	RateLimitWindow   time.Duration `yaml:"rate_limit_window"`

	// Optional surfaces
	CacheEnabled   bool `yaml:"cache_enabled"`
	MetricsEnabled bool `yaml:"metrics_enabled"`
	MCPEnabled     bool `yaml:"mcp_enabled"`

	// Ingestion
	IngestDedupePerformances bool `yaml:"ingest_dedupe_performances"`
}

// Defaults returns the configuration used when neither a file nor the
// environment sets a value.
func Defaults() *Config {
	return &Config{
		SQLitePath:     "cricket_stats.db",
		DBPoolMinConns: 1,
		DBPoolMaxConns: 5,
		DBPoolMaxLife:  30 * time.Minute,

		APIHost:     "0.0.0.0",
		APIPort:     8000,
		Environment: "development",
		LogLevel:    "info",

		CORSAllowOrigins: []string{
			"http://localhost:3000",
			"http://localhost:8501",
		},

		RateLimitEnabled:  true,
		RateLimitRequests: 100,
		RateLimitWindow:   60 * time.Second,

		CacheEnabled:   true,
		MetricsEnabled: true,
		MCPEnabled:     true,
	}
}

// Load reads the optional YAML file named by CONFIG_FILE, then applies
// environment overrides.
func Load() (*Config, error) {
	cfg := Defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return nil, err
		}
	}

	cfg.DatabaseURL = envOr("DATABASE_URL", cfg.DatabaseURL)
	cfg.SQLitePath = envOr("SQLITE_PATH", cfg.SQLitePath)
	cfg.DBPoolMinConns = envInt("DB_POOL_MIN_CONNS", cfg.DBPoolMinConns)
	cfg.DBPoolMaxConns = envInt("DB_POOL_MAX_CONNS", cfg.DBPoolMaxConns)
	if v := envInt("DB_POOL_MAX_LIFE_MINUTES", 0); v > 0 {
		cfg.DBPoolMaxLife = time.Duration(v) * time.Minute
	}

	cfg.APIHost = envOr("API_HOST", cfg.APIHost)
	cfg.APIPort = envInt("API_PORT", envInt("PORT", cfg.APIPort))
	cfg.Environment = envOr("ENVIRONMENT", cfg.Environment)
	cfg.LogLevel = envOr("LOG_LEVEL", cfg.LogLevel)

	cfg.CORSAllowOrigins = envList("CORS_ALLOW_ORIGINS", cfg.CORSAllowOrigins)

	cfg.RateLimitEnabled = envBool("RATE_LIMIT_ENABLED", cfg.RateLimitEnabled)
	cfg.RateLimitRequests = envInt("RATE_LIMIT_REQUESTS", cfg.RateLimitRequests)
	if v := envInt("RATE_LIMIT_WINDOW", 0); v > 0 {
		cfg.RateLimitWindow = time.Duration(v) * time.Second
	}

	cfg.CacheEnabled = envBool("CACHE_ENABLED", cfg.CacheEnabled)
	cfg.MetricsEnabled = envBool("METRICS_ENABLED", cfg.MetricsEnabled)
	cfg.MCPEnabled = envBool("MCP_ENABLED", cfg.MCPEnabled)

	cfg.IngestDedupePerformances = envBool("INGEST_DEDUPE_PERFORMANCES", cfg.IngestDedupePerformances)

	cfg.DBDriver = envOr("DB_DRIVER", cfg.DBDriver)
	if cfg.DBDriver == "" {
		cfg.DBDriver = inferDriver(cfg.DatabaseURL)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// IsProduction returns true if running in production environment.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// SlogLevel maps LogLevel onto a slog level; unknown values fall back to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) validate() error {
	switch c.DBDriver {
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL must be set when DB_DRIVER=postgres")
		}
	case DriverSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH must not be empty when DB_DRIVER=sqlite")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q (want %s or %s)", c.DBDriver, DriverPostgres, DriverSQLite)
	}
	return nil
}

func inferDriver(databaseURL string) string {
	if strings.HasPrefix(databaseURL, "postgres://") || strings.HasPrefix(databaseURL, "postgresql://") {
		return DriverPostgres
	}
	return DriverSQLite
}

// --------------------------------------------------------------------------
// Env helpers
// --------------------------------------------------------------------------

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return fallback
}
