package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/albapepper/cricket-stats/internal/config"
)

// Migrate creates all tables and indexes. Safe to call multiple times.
func (d *DB) Migrate(ctx context.Context) error {
	for _, stmt := range d.schemaStatements() {
		if _, err := d.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}

// schemaStatements returns the DDL for the active dialect. Only the
// surrogate key type differs between Postgres and SQLite.
func (d *DB) schemaStatements() []string {
	serial := "BIGSERIAL PRIMARY KEY"
	if d.Dialect == SQLite {
		serial = "INTEGER PRIMARY KEY AUTOINCREMENT"
	}

	stmts := make([]string, 0, len(schema))
	for _, s := range schema {
		stmts = append(stmts, strings.ReplaceAll(s, "{{serial}}", serial))
	}
	return stmts
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS ` + config.PlayersTable + ` (
		player_id     TEXT PRIMARY KEY,
		first_name    TEXT NOT NULL DEFAULT '',
		last_name     TEXT NOT NULL DEFAULT '',
		full_name     TEXT NOT NULL DEFAULT '',
		batting_style TEXT NOT NULL DEFAULT '',
		bowling_style TEXT NOT NULL DEFAULT '',
		team          TEXT NOT NULL DEFAULT ''
	)`,

	`CREATE TABLE IF NOT EXISTS ` + config.BattingTable + ` (
		id          {{serial}},
		match_id    TEXT,
		player_id   TEXT NOT NULL,
		player_name TEXT NOT NULL DEFAULT '',
		runs_scored INTEGER NOT NULL DEFAULT 0,
		balls_faced INTEGER NOT NULL DEFAULT 0,
		fours       INTEGER NOT NULL DEFAULT 0,
		sixes       INTEGER NOT NULL DEFAULT 0,
		strike_rate DOUBLE PRECISION NOT NULL DEFAULT 0,
		is_out      BOOLEAN NOT NULL DEFAULT FALSE,
		how_out     TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_batting_player_name ON ` + config.BattingTable + ` (player_name)`,

	`CREATE TABLE IF NOT EXISTS ` + config.BowlingTable + ` (
		id            {{serial}},
		match_id      TEXT,
		player_id     TEXT NOT NULL,
		player_name   TEXT NOT NULL DEFAULT '',
		overs         TEXT NOT NULL DEFAULT '0',
		balls         INTEGER NOT NULL DEFAULT 0,
		runs_conceded INTEGER NOT NULL DEFAULT 0,
		wickets       INTEGER NOT NULL DEFAULT 0,
		maidens       INTEGER NOT NULL DEFAULT 0,
		dot_balls     INTEGER NOT NULL DEFAULT 0,
		wides         INTEGER NOT NULL DEFAULT 0,
		no_balls      INTEGER NOT NULL DEFAULT 0,
		economy       DOUBLE PRECISION NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS idx_bowling_player_name ON ` + config.BowlingTable + ` (player_name)`,

	`CREATE TABLE IF NOT EXISTS ` + config.MatchesTable + ` (
		match_id      TEXT PRIMARY KEY,
		team_name     TEXT NOT NULL DEFAULT '',
		total_runs    INTEGER NOT NULL DEFAULT 0,
		total_overs   TEXT NOT NULL DEFAULT '0',
		total_wickets INTEGER NOT NULL DEFAULT 0,
		run_rate      DOUBLE PRECISION NOT NULL DEFAULT 0,
		match_date    TEXT NOT NULL DEFAULT ''
	)`,
}
