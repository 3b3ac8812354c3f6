// Package testutil provides a migrated SQLite store and match-document
// builders for package tests.
package testutil

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/albapepper/cricket-stats/internal/db"
)

// SetupTestDB creates a fresh SQLite database with the full schema in a
// per-test temporary directory.
func SetupTestDB(t *testing.T) *db.DB {
	t.Helper()

	ctx := context.Background()
	store, err := db.OpenSQLite(ctx, filepath.Join(t.TempDir(), "cricket_test.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(store.Close)

	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}
	return store
}

// DiscardLogger returns a logger that drops everything.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Batter describes one latestBatting entry.
type Batter struct {
	ID        int
	First     string
	Last      string
	Runs      int
	Balls     int
	Fours     int
	Sixes     int
	Out       bool
	HowOut    string
	MatchID   string
	Style     string
	TeamName  string
	OmitBalls bool
}

// Bowler describes one latestBowling entry.
type Bowler struct {
	ID       int
	First    string
	Last     string
	MatchID  string
	Overs    string
	Balls    int
	Runs     int
	Wickets  int
	Maidens  int
	DotBalls int
	Wides    int
	NoBalls  int
	Style    string
}

// Innings describes the innings1Balls block.
type Innings struct {
	Team  string
	Runs  int
	Overs string
}

// Doc builds a raw match document. A nil innings omits innings1Balls.
func Doc(id string, batters []Batter, bowlers []Bowler, innings *Innings) json.RawMessage {
	doc := map[string]interface{}{}
	if id != "" {
		doc["_id"] = map[string]interface{}{"$oid": id}
	}

	if len(batters) > 0 {
		batting := map[string]interface{}{}
		for i, b := range batters {
			entry := map[string]interface{}{
				"playerID":     b.ID,
				"firstName":    b.First,
				"lastName":     b.Last,
				"battingStyle": b.Style,
				"runsScored":   b.Runs,
				"fours":        b.Fours,
				"sixers":       b.Sixes,
				"howOut":       b.HowOut,
			}
			if !b.OmitBalls {
				entry["ballsFaced"] = b.Balls
			}
			if b.Out {
				entry["isOut"] = "1"
			} else {
				entry["isOut"] = "0"
			}
			if b.MatchID != "" {
				entry["matchID"] = b.MatchID
			}
			if b.TeamName != "" {
				entry["teamName"] = b.TeamName
			}
			// Zero-padded keys keep encoding/json's sorted key order equal to
			// slice order.
			batting[fmt.Sprintf("b%03d", i)] = entry
		}
		doc["latestBatting"] = batting
	}

	if len(bowlers) > 0 {
		bowling := map[string]interface{}{}
		for i, b := range bowlers {
			entry := map[string]interface{}{
				"playerID":     b.ID,
				"firstName":    b.First,
				"lastName":     b.Last,
				"bowlingStyle": b.Style,
				"overs":        b.Overs,
				"balls":        b.Balls,
				"runs":         b.Runs,
				"wickets":      b.Wickets,
				"maidens":      b.Maidens,
				"dotBalls":     b.DotBalls,
				"wides":        b.Wides,
				"noBalls":      b.NoBalls,
			}
			if b.MatchID != "" {
				entry["matchID"] = b.MatchID
			}
			bowling[fmt.Sprintf("w%03d", i)] = entry
		}
		doc["latestBowling"] = bowling
	}

	if innings != nil {
		doc["innings1Balls"] = map[string]interface{}{
			"teamName": innings.Team,
			"runs":     innings.Runs,
			"overs":    innings.Overs,
		}
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		panic(fmt.Sprintf("marshal test document: %v", err))
	}
	return raw
}

// Count returns SELECT COUNT(*) for table.
func Count(t *testing.T, store *db.DB, table string) int {
	t.Helper()
	var n int
	if err := store.QueryRowContext(context.Background(), "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}
