// Package db provides the process-wide storage handle: a database/sql pool
// backed either by pgxpool (Postgres) or by modernc SQLite, with schema
// migration and health checking.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/albapepper/cricket-stats/internal/config"
)

// Dialect identifies the SQL flavour behind a DB.
type Dialect string

const (
	Postgres Dialect = config.DriverPostgres
	SQLite   Dialect = config.DriverSQLite
)

const sqliteDriverName = "sqlite"

// DB wraps *sql.DB with the dialect it talks to. Queries are written with
// Postgres-style $N placeholders and passed through Rebind.
type DB struct {
	*sql.DB
	Dialect Dialect

	pool *pgxpool.Pool
}

// New opens the store selected by cfg, verifies connectivity and applies the
// schema.
func New(ctx context.Context, cfg *config.Config) (*DB, error) {
	var (
		d   *DB
		err error
	)
	switch cfg.DBDriver {
	case config.DriverPostgres:
		d, err = openPostgres(ctx, cfg)
	case config.DriverSQLite:
		d, err = OpenSQLite(ctx, cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("unsupported driver %q", cfg.DBDriver)
	}
	if err != nil {
		return nil, err
	}

	if err := d.Migrate(ctx); err != nil {
		d.Close()
		return nil, err
	}
	return d, nil
}

func openPostgres(ctx context.Context, cfg *config.Config) (*DB, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	poolCfg.MinConns = int32(cfg.DBPoolMinConns)
	poolCfg.MaxConns = int32(cfg.DBPoolMaxConns)
	poolCfg.MaxConnLifetime = cfg.DBPoolMaxLife
	poolCfg.MaxConnIdleTime = 5 * time.Minute
	poolCfg.ConnConfig.RuntimeParams["application_name"] = "cricket-stats"

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	// Verify connectivity
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &DB{DB: stdlib.OpenDBFromPool(pool), Dialect: Postgres, pool: pool}, nil
}

// OpenSQLite opens (creating if needed) a SQLite database file. The handle is
// limited to one connection so writes serialize. The schema is not applied;
// call Migrate.
func OpenSQLite(ctx context.Context, path string) (*DB, error) {
	cleanPath := strings.TrimSpace(path)
	if cleanPath == "" {
		return nil, fmt.Errorf("sqlite path must not be empty")
	}
	if dir := filepath.Dir(cleanPath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create sqlite directory %q: %w", dir, err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", cleanPath)
	sqlDB, err := sql.Open(sqliteDriverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %q: %w", cleanPath, err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetConnMaxLifetime(0)
	sqlDB.SetConnMaxIdleTime(0)

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite %q: %w", cleanPath, err)
	}

	return &DB{DB: sqlDB, Dialect: SQLite}, nil
}

// Close releases the sql handle and, for Postgres, the underlying pool.
func (d *DB) Close() {
	_ = d.DB.Close()
	if d.pool != nil {
		d.pool.Close()
	}
}

// HealthCheck runs a trivial query to verify the database is reachable.
func (d *DB) HealthCheck(ctx context.Context) error {
	var n int
	return d.QueryRowContext(ctx, "SELECT 1").Scan(&n)
}

var placeholderRe = regexp.MustCompile(`\$\d+`)

// Rebind rewrites $N placeholders for the active dialect. SQLite binds
// positionally, so every $N must appear exactly once and in ascending order.
func (d *DB) Rebind(query string) string {
	if d.Dialect != SQLite {
		return query
	}
	return placeholderRe.ReplaceAllString(query, "?")
}
