package ingest

import (
	"context"
	"database/sql"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/albapepper/cricket-stats/internal/config"
	"github.com/albapepper/cricket-stats/internal/db"
	"github.com/albapepper/cricket-stats/internal/metrics"
	"github.com/albapepper/cricket-stats/internal/testutil"
)

func newLoader(t *testing.T, opts Options) (*Loader, *db.DB) {
	t.Helper()
	store := testutil.SetupTestDB(t)
	return NewLoader(store, opts, metrics.NewCollector(), testutil.DiscardLogger()), store
}

func sampleMatch(id string) json.RawMessage {
	return testutil.Doc(id,
		[]testutil.Batter{
			{ID: 1, First: "Rohit", Last: "Sharma", Runs: 45, Balls: 30, Fours: 6, Sixes: 1, Out: true, HowOut: "lbw", MatchID: "m-" + id},
			{ID: 2, First: "Virat", Last: "Kohli", Runs: 0, Balls: 0},
		},
		[]testutil.Bowler{
			{ID: 3, First: "Jasprit", Last: "Bumrah", MatchID: "m-" + id, Overs: "4", Balls: 24, Runs: 30, Wickets: 2},
			{ID: 4, First: "Kuldeep", Last: "Yadav", Overs: "0", Balls: 0, Runs: 0},
		},
		&testutil.Innings{Team: "India", Runs: 164, Overs: "20.3"},
	)
}

func TestIngestDerivedFields(t *testing.T) {
	loader, store := newLoader(t, Options{})
	ctx := context.Background()

	result := loader.Ingest(ctx, []json.RawMessage{sampleMatch("doc1")})
	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if result.DocumentsProcessed != 1 || result.PlayersInserted != 4 || result.BattingRows != 2 ||
		result.BowlingRows != 2 || result.MatchesInserted != 1 {
		t.Errorf("result = %s", result.Summary())
	}
	if result.RunID == "" {
		t.Error("RunID should be set")
	}

	t.Run("strike rate is zero when no balls faced", func(t *testing.T) {
		var sr float64
		if err := store.QueryRowContext(ctx,
			"SELECT strike_rate FROM batting_performances WHERE player_id = '2'").Scan(&sr); err != nil {
			t.Fatal(err)
		}
		if sr != 0 {
			t.Errorf("strike_rate = %v, want 0", sr)
		}

		if err := store.QueryRowContext(ctx,
			"SELECT strike_rate FROM batting_performances WHERE player_id = '1'").Scan(&sr); err != nil {
			t.Fatal(err)
		}
		if sr != 150 {
			t.Errorf("strike_rate = %v, want 150", sr)
		}
	})

	t.Run("economy is zero when no balls bowled", func(t *testing.T) {
		var eco float64
		if err := store.QueryRowContext(ctx,
			"SELECT economy FROM bowling_performances WHERE player_id = '4'").Scan(&eco); err != nil {
			t.Fatal(err)
		}
		if eco != 0 {
			t.Errorf("economy = %v, want 0", eco)
		}

		if err := store.QueryRowContext(ctx,
			"SELECT economy FROM bowling_performances WHERE player_id = '3'").Scan(&eco); err != nil {
			t.Fatal(err)
		}
		if eco != 7.5 {
			t.Errorf("economy = %v, want 7.5", eco)
		}
	})

	t.Run("dismissal and match references", func(t *testing.T) {
		var isOut bool
		var howOut string
		var matchID sql.NullString
		if err := store.QueryRowContext(ctx,
			"SELECT is_out, how_out, match_id FROM batting_performances WHERE player_id = '1'").Scan(&isOut, &howOut, &matchID); err != nil {
			t.Fatal(err)
		}
		if !isOut || howOut != "lbw" || matchID.String != "m-doc1" {
			t.Errorf("got is_out=%v how_out=%q match_id=%v", isOut, howOut, matchID)
		}

		if err := store.QueryRowContext(ctx,
			"SELECT is_out, match_id FROM batting_performances WHERE player_id = '2'").Scan(&isOut, &matchID); err != nil {
			t.Fatal(err)
		}
		if isOut || matchID.Valid {
			t.Errorf("not-out batter: is_out=%v match_id=%v", isOut, matchID)
		}

		// Bowling match_id comes from the bowler record, not the document id.
		if err := store.QueryRowContext(ctx,
			"SELECT match_id FROM bowling_performances WHERE player_id = '3'").Scan(&matchID); err != nil {
			t.Fatal(err)
		}
		if matchID.String != "m-doc1" {
			t.Errorf("bowling match_id = %v, want m-doc1", matchID)
		}
	})

	t.Run("match row keyed by document id", func(t *testing.T) {
		var team, overs string
		var runs int
		var runRate float64
		if err := store.QueryRowContext(ctx,
			"SELECT team_name, total_runs, total_overs, run_rate FROM matches WHERE match_id = 'doc1'").Scan(&team, &runs, &overs, &runRate); err != nil {
			t.Fatal(err)
		}
		if team != "India" || runs != 164 || overs != "20.3" || math.Abs(runRate-8) > 1e-9 {
			t.Errorf("match = %s %d %s %v", team, runs, overs, runRate)
		}
	})

	t.Run("player styles and names", func(t *testing.T) {
		var full, bowlingStyle string
		if err := store.QueryRowContext(ctx,
			"SELECT full_name, bowling_style FROM players WHERE player_id = '3'").Scan(&full, &bowlingStyle); err != nil {
			t.Fatal(err)
		}
		if full != "Jasprit Bumrah" {
			t.Errorf("full_name = %q", full)
		}
	})
}

func TestReingestDuplicatesPerformancesOnly(t *testing.T) {
	loader, store := newLoader(t, Options{})
	ctx := context.Background()

	doc := sampleMatch("doc1")
	first := loader.Ingest(ctx, []json.RawMessage{doc})
	second := loader.Ingest(ctx, []json.RawMessage{doc})

	if second.PlayersInserted != 0 || second.MatchesInserted != 0 {
		t.Errorf("second run inserted players=%d matches=%d, want 0", second.PlayersInserted, second.MatchesInserted)
	}
	if first.RunID == second.RunID {
		t.Error("each run should get its own id")
	}

	if n := testutil.Count(t, store, config.PlayersTable); n != 4 {
		t.Errorf("players = %d, want 4", n)
	}
	if n := testutil.Count(t, store, config.MatchesTable); n != 1 {
		t.Errorf("matches = %d, want 1", n)
	}
	if n := testutil.Count(t, store, config.BattingTable); n != 4 {
		t.Errorf("batting rows = %d, want 4 (duplicated)", n)
	}
	if n := testutil.Count(t, store, config.BowlingTable); n != 4 {
		t.Errorf("bowling rows = %d, want 4 (duplicated)", n)
	}
}

func TestDedupeOption(t *testing.T) {
	loader, store := newLoader(t, Options{DedupePerformances: true})
	ctx := context.Background()

	doc := sampleMatch("doc1")
	loader.Ingest(ctx, []json.RawMessage{doc})
	second := loader.Ingest(ctx, []json.RawMessage{doc})

	if second.DuplicatesSkipped != 4 || second.BattingRows != 0 || second.BowlingRows != 0 {
		t.Errorf("second run = %s", second.Summary())
	}
	if n := testutil.Count(t, store, config.BattingTable); n != 2 {
		t.Errorf("batting rows = %d, want 2", n)
	}
	if n := testutil.Count(t, store, config.BowlingTable); n != 2 {
		t.Errorf("bowling rows = %d, want 2", n)
	}
}

func TestFirstSeenPlayerWins(t *testing.T) {
	loader, store := newLoader(t, Options{})
	ctx := context.Background()

	loader.Ingest(ctx, []json.RawMessage{
		testutil.Doc("a", []testutil.Batter{{ID: 9, First: "Shubman", Last: "Gill", Style: "RHB", Runs: 10, Balls: 8}}, nil, nil),
		testutil.Doc("b", []testutil.Batter{{ID: 9, First: "S", Last: "Gill", Style: "LHB", Runs: 20, Balls: 10}}, nil, nil),
	})

	var full, style string
	if err := store.QueryRowContext(ctx,
		"SELECT full_name, batting_style FROM players WHERE player_id = '9'").Scan(&full, &style); err != nil {
		t.Fatal(err)
	}
	if full != "Shubman Gill" || style != "RHB" {
		t.Errorf("player = %q %q, first insert should persist", full, style)
	}

	// The performance row keeps the name snapshot of its own document.
	var names []string
	rows, err := store.QueryContext(ctx, "SELECT player_name FROM batting_performances ORDER BY id")
	if err != nil {
		t.Fatal(err)
	}
	defer rows.Close()
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			t.Fatal(err)
		}
		names = append(names, n)
	}
	if strings.Join(names, ",") != "Shubman Gill,S Gill" {
		t.Errorf("snapshots = %v", names)
	}
}

func TestMissingFieldsDefaultToZero(t *testing.T) {
	loader, store := newLoader(t, Options{})
	ctx := context.Background()

	raw := json.RawMessage(`{"latestBatting": {"x": {"playerID": 5}}, "innings1Balls": {"teamName": "Oman"}}`)
	result := loader.Ingest(ctx, []json.RawMessage{raw})
	if len(result.Errors) != 0 {
		t.Fatalf("errors: %v", result.Errors)
	}

	var runs, balls int
	var name string
	var sr float64
	if err := store.QueryRowContext(ctx,
		"SELECT runs_scored, balls_faced, strike_rate, player_name FROM batting_performances").Scan(&runs, &balls, &sr, &name); err != nil {
		t.Fatal(err)
	}
	if runs != 0 || balls != 0 || sr != 0 || name != "" {
		t.Errorf("defaults = %d %d %v %q", runs, balls, sr, name)
	}

	var matchID, overs string
	var runRate float64
	if err := store.QueryRowContext(ctx, "SELECT match_id, total_overs, run_rate FROM matches").Scan(&matchID, &overs, &runRate); err != nil {
		t.Fatal(err)
	}
	if matchID != "unknown" || overs != "0" || runRate != 0 {
		t.Errorf("match = %q %q %v", matchID, overs, runRate)
	}
}

func TestMalformedSectionSkipsOnlyThatPass(t *testing.T) {
	loader, store := newLoader(t, Options{})

	raw := json.RawMessage(`{
		"_id": {"$oid": "m1"},
		"latestBatting": "not a map",
		"latestBowling": {"a": {"playerID": 3, "firstName": "Trent", "lastName": "Boult", "balls": 12, "runs": 9}},
		"innings1Balls": {"teamName": "NZ", "runs": 120, "overs": "15"}
	}`)
	result := loader.Ingest(context.Background(), []json.RawMessage{raw})

	if len(result.Errors) != 0 {
		t.Fatalf("errors: %v", result.Errors)
	}
	if len(result.Warnings) != 1 {
		t.Errorf("warnings = %v, want 1", result.Warnings)
	}
	if result.BowlingRows != 1 || result.MatchesInserted != 1 || result.BattingRows != 0 {
		t.Errorf("result = %s", result.Summary())
	}
	if n := testutil.Count(t, store, config.BowlingTable); n != 1 {
		t.Errorf("bowling rows = %d", n)
	}
}

func TestFailedDocumentRollsBackAndBatchContinues(t *testing.T) {
	loader, store := newLoader(t, Options{})
	ctx := context.Background()

	// Breaking the bowling table makes the second pass of a document fail.
	if _, err := store.ExecContext(ctx, "DROP TABLE "+config.BowlingTable); err != nil {
		t.Fatal(err)
	}

	good := testutil.Doc("ok", []testutil.Batter{{ID: 20, First: "Ben", Last: "Stokes", Runs: 15, Balls: 10}}, nil, nil)
	result := loader.Ingest(ctx, []json.RawMessage{sampleMatch("bad"), json.RawMessage(`[1]`), good})

	if result.DocumentsProcessed != 3 || result.DocumentsFailed != 2 {
		t.Errorf("result = %s", result.Summary())
	}
	if len(result.Errors) != 2 {
		t.Errorf("errors = %v", result.Errors)
	}

	// Nothing from the failed document survives: its batting pass and
	// players were rolled back with it.
	if n := testutil.Count(t, store, config.PlayersTable); n != 1 {
		t.Errorf("players = %d, want 1", n)
	}
	if n := testutil.Count(t, store, config.BattingTable); n != 1 {
		t.Errorf("batting rows = %d, want 1", n)
	}
	if n := testutil.Count(t, store, config.MatchesTable); n != 0 {
		t.Errorf("matches = %d, want 0", n)
	}
}

func TestLoadFile(t *testing.T) {
	loader, store := newLoader(t, Options{})

	path := filepath.Join(t.TempDir(), "cricket_data.json")
	body := "[" + string(sampleMatch("f1")) + "," + string(sampleMatch("f2")) + "]"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}

	result, err := loader.LoadFile(context.Background(), path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if result.DocumentsProcessed != 2 || result.MatchesInserted != 2 {
		t.Errorf("result = %s", result.Summary())
	}
	if n := testutil.Count(t, store, config.BattingTable); n != 4 {
		t.Errorf("batting rows = %d", n)
	}

	if _, err := loader.LoadFile(context.Background(), filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestResultSummary(t *testing.T) {
	r := Result{DocumentsProcessed: 2, PlayersInserted: 3}
	r.Add(Result{DocumentsProcessed: 1, DocumentsFailed: 1, Errors: []string{"boom"}})
	r.AddWarningf("document %s: %s", "x", "odd")

	want := "documents=3 failed=1 players=3 batting=0 bowling=0 matches=0 duplicates=0 warnings=1 errors=1"
	if got := r.Summary(); got != want {
		t.Errorf("Summary() = %q, want %q", got, want)
	}
}
