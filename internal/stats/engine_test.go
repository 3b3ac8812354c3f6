package stats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/albapepper/cricket-stats/internal/config"
	"github.com/albapepper/cricket-stats/internal/db"
	"github.com/albapepper/cricket-stats/internal/ingest"
	"github.com/albapepper/cricket-stats/internal/metrics"
	"github.com/albapepper/cricket-stats/internal/testutil"
)

func setup(t *testing.T) (*Engine, *db.DB) {
	t.Helper()
	store := testutil.SetupTestDB(t)
	return NewEngine(store, metrics.NewCollector(), testutil.DiscardLogger()), store
}

func load(t *testing.T, store *db.DB, docs ...json.RawMessage) {
	t.Helper()
	loader := ingest.NewLoader(store, ingest.Options{}, nil, testutil.DiscardLogger())
	result := loader.Ingest(context.Background(), docs)
	if len(result.Errors) != 0 {
		t.Fatalf("ingest errors: %v", result.Errors)
	}
}

// battingDocs returns one document per score, ten balls per innings.
func battingDocs(id int, first, last string, scores ...int) []json.RawMessage {
	docs := make([]json.RawMessage, 0, len(scores))
	for _, runs := range scores {
		docs = append(docs, testutil.Doc("", []testutil.Batter{
			{ID: id, First: first, Last: last, Runs: runs, Balls: 10},
		}, nil, nil))
	}
	return docs
}

func bowlingDoc(id int, first, last string, runs, balls, wickets int) json.RawMessage {
	return testutil.Doc("", nil, []testutil.Bowler{
		{ID: id, First: first, Last: last, Overs: fmt.Sprint(balls / 6), Balls: balls, Runs: runs, Wickets: wickets, Maidens: 1, DotBalls: 8},
	}, nil)
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestBattingSummary(t *testing.T) {
	engine, store := setup(t)
	ctx := context.Background()
	load(t, store, battingDocs(1, "Rohit", "Sharma", 10, 20, 30)...)

	for _, query := range []string{"Rohit Sharma", "rohit", "SHARMA", "  hit sh  "} {
		t.Run(query, func(t *testing.T) {
			got, err := engine.BattingSummary(ctx, query)
			if err != nil {
				t.Fatalf("BattingSummary: %v", err)
			}
			if got.Status != StatusOK {
				t.Fatalf("status = %s", got.Status)
			}
			if got.PlayerName != "Rohit Sharma" || got.Innings != 3 || got.TotalRuns != 60 {
				t.Errorf("got %+v", got)
			}
			if !near(got.Average, 20) {
				t.Errorf("average = %v, want 20", got.Average)
			}
			if got.HighestScore != 30 || got.BallsFaced != 30 {
				t.Errorf("highest=%d balls=%d", got.HighestScore, got.BallsFaced)
			}
			if !near(got.StrikeRate, 200) {
				t.Errorf("strike rate = %v, want 200", got.StrikeRate)
			}
		})
	}

	t.Run("not found", func(t *testing.T) {
		got, err := engine.BattingSummary(ctx, "Bradman")
		if err != nil {
			t.Fatal(err)
		}
		if got.Status != StatusNotFound || got.Query != "Bradman" {
			t.Errorf("got %+v", got)
		}
	})

	t.Run("wildcards match literally", func(t *testing.T) {
		for _, q := range []string{"%", "_", `\`} {
			got, err := engine.BattingSummary(ctx, q)
			if err != nil {
				t.Fatal(err)
			}
			if got.Status != StatusNotFound {
				t.Errorf("query %q matched %v", q, got.MatchedPlayers)
			}
		}
	})

	t.Run("blank name rejected", func(t *testing.T) {
		_, err := engine.BattingSummary(ctx, "   ")
		if _, ok := AsInvalidArgument(err); !ok {
			t.Errorf("err = %v, want InvalidArgumentError", err)
		}
	})
}

func TestSubstringAmbiguityReportsFirstPlayer(t *testing.T) {
	engine, store := setup(t)
	load(t, store, battingDocs(1, "Rohit", "Sharma", 40)...)
	load(t, store, battingDocs(2, "Ishant", "Sharma", 5, 7)...)

	got, err := engine.BattingSummary(context.Background(), "sharma")
	if err != nil {
		t.Fatal(err)
	}
	if got.PlayerName != "Rohit Sharma" || got.TotalRuns != 40 {
		t.Errorf("got %+v, want first inserted player", got)
	}
	if want := []string{"Rohit Sharma", "Ishant Sharma"}; !reflect.DeepEqual(got.MatchedPlayers, want) {
		t.Errorf("MatchedPlayers = %v, want %v", got.MatchedPlayers, want)
	}
}

func TestBowlingSummary(t *testing.T) {
	engine, store := setup(t)
	ctx := context.Background()
	load(t, store,
		bowlingDoc(7, "Axar", "Patel", 24, 24, 0),
		bowlingDoc(7, "Axar", "Patel", 30, 24, 0),
		bowlingDoc(8, "Jasprit", "Bumrah", 20, 24, 2),
		bowlingDoc(8, "Jasprit", "Bumrah", 10, 24, 1),
	)

	t.Run("zero wickets", func(t *testing.T) {
		got, err := engine.BowlingSummary(ctx, "axar")
		if err != nil {
			t.Fatal(err)
		}
		if got.Status != StatusOK || got.Wickets != 0 || got.BowlingAverage != 0 {
			t.Errorf("got %+v", got)
		}
		if got.Matches != 2 || got.RunsConceded != 54 || got.Balls != 48 || got.Maidens != 2 || got.DotBalls != 16 {
			t.Errorf("got %+v", got)
		}
		if !near(got.Economy, 6.75) {
			t.Errorf("economy = %v, want 6.75", got.Economy)
		}
	})

	t.Run("with wickets", func(t *testing.T) {
		got, err := engine.BowlingSummary(ctx, "Bumrah")
		if err != nil {
			t.Fatal(err)
		}
		if got.Wickets != 3 || !near(got.BowlingAverage, 10) {
			t.Errorf("got %+v", got)
		}
	})

	t.Run("not found", func(t *testing.T) {
		got, err := engine.BowlingSummary(ctx, "Warne")
		if err != nil {
			t.Fatal(err)
		}
		if got.Status != StatusNotFound {
			t.Errorf("status = %s", got.Status)
		}
	})
}

func TestComparePlayers(t *testing.T) {
	engine, store := setup(t)
	ctx := context.Background()
	load(t, store, battingDocs(1, "Virat", "Kohli", 50, 70)...)
	load(t, store, battingDocs(2, "Babar", "Azam", 40)...)
	load(t, store, bowlingDoc(3, "Shaheen", "Afridi", 30, 24, 3), bowlingDoc(4, "Mohammed", "Siraj", 36, 24, 1))

	t.Run("runs family", func(t *testing.T) {
		for _, metric := range []string{"runs", "Batting", "average"} {
			got, err := engine.ComparePlayers(ctx, "kohli", "babar", metric)
			if err != nil {
				t.Fatalf("%s: %v", metric, err)
			}
			if got.Status != StatusOK || got.Metric != MetricRuns || len(got.Players) != 2 {
				t.Fatalf("%s: got %+v", metric, got)
			}
			first := got.Players[0]
			if first.PlayerName != "Virat Kohli" || first.TotalRuns != 120 || !near(first.Average, 60) || !near(first.StrikeRate, 600) {
				t.Errorf("first = %+v", first)
			}
		}
	})

	t.Run("wickets family", func(t *testing.T) {
		got, err := engine.ComparePlayers(ctx, "Afridi", "Siraj", "economy")
		if err != nil {
			t.Fatal(err)
		}
		if got.Status != StatusOK || got.Metric != MetricWickets || len(got.Players) != 2 {
			t.Fatalf("got %+v", got)
		}
		if p := got.Players[0]; p.TotalWickets != 3 || !near(p.Economy, 7.5) || p.RunsConceded != 30 {
			t.Errorf("first = %+v", p)
		}
	})

	t.Run("one side missing", func(t *testing.T) {
		got, err := engine.ComparePlayers(ctx, "Kohli", "Tendulkar", "runs")
		if err != nil {
			t.Fatal(err)
		}
		if got.Status != StatusInsufficientData {
			t.Errorf("status = %s", got.Status)
		}
	})

	t.Run("both fragments on one player", func(t *testing.T) {
		got, err := engine.ComparePlayers(ctx, "Virat", "Kohli", "runs")
		if err != nil {
			t.Fatal(err)
		}
		if got.Status != StatusInsufficientData {
			t.Errorf("status = %s", got.Status)
		}
	})

	t.Run("invalid metric", func(t *testing.T) {
		_, err := engine.ComparePlayers(ctx, "Kohli", "Babar", "strikeRate")
		var iae *InvalidArgumentError
		if !errors.As(err, &iae) {
			t.Fatalf("err = %v, want InvalidArgumentError", err)
		}
		if iae.Param != "metric" || !strings.Contains(err.Error(), "runs, wickets, average, economy") {
			t.Errorf("error = %q", err.Error())
		}
	})
}

func TestTopPerformers(t *testing.T) {
	engine, store := setup(t)
	ctx := context.Background()

	load(t, store, battingDocs(1, "A", "One", 10, 10)...)   // 20
	load(t, store, battingDocs(2, "B", "Two", 30, 30)...)   // 60
	load(t, store, battingDocs(3, "C", "Three", 25, 25)...) // 50
	load(t, store, battingDocs(4, "D", "Four", 5, 35)...)   // 40
	load(t, store, battingDocs(5, "E", "Five", 15, 15)...)  // 30
	load(t, store, battingDocs(6, "F", "Six", 200)...)      // one innings, never ranks

	t.Run("limit 3", func(t *testing.T) {
		got, err := engine.TopPerformers(ctx, "batsmen", 3)
		if err != nil {
			t.Fatal(err)
		}
		if got.Status != StatusOK || got.Category != CategoryBatting || len(got.Entries) != 3 {
			t.Fatalf("got %+v", got)
		}
		var names []string
		for i, e := range got.Entries {
			if e.Rank != i+1 || e.Appearances != 2 {
				t.Errorf("entry %d = %+v", i, e)
			}
			names = append(names, e.PlayerName)
		}
		if want := []string{"B Two", "C Three", "D Four"}; !reflect.DeepEqual(names, want) {
			t.Errorf("names = %v, want %v", names, want)
		}
		if !near(got.Entries[0].Average, 30) {
			t.Errorf("average = %v", got.Entries[0].Average)
		}
	})

	t.Run("default limit", func(t *testing.T) {
		got, err := engine.TopPerformers(ctx, "runs", 0)
		if err != nil {
			t.Fatal(err)
		}
		if got.Limit != DefaultLeaderLimit || len(got.Entries) != 5 {
			t.Errorf("limit=%d entries=%d", got.Limit, len(got.Entries))
		}
	})

	t.Run("no bowlers", func(t *testing.T) {
		got, err := engine.TopPerformers(ctx, "bowlers", 5)
		if err != nil {
			t.Fatal(err)
		}
		if got.Status != StatusNoData {
			t.Errorf("status = %s", got.Status)
		}
	})

	t.Run("invalid category", func(t *testing.T) {
		_, err := engine.TopPerformers(ctx, "fielders", 5)
		if _, ok := AsInvalidArgument(err); !ok {
			t.Errorf("err = %v", err)
		}
	})
}

func TestTopBowlersTieKeepsInsertionOrder(t *testing.T) {
	engine, store := setup(t)
	load(t, store,
		bowlingDoc(1, "First", "Bowler", 20, 24, 2),
		bowlingDoc(2, "Second", "Bowler", 20, 24, 3),
		bowlingDoc(1, "First", "Bowler", 20, 24, 2),
		bowlingDoc(2, "Second", "Bowler", 20, 24, 1),
	)

	got, err := engine.TopPerformers(context.Background(), "wickets", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Entries) != 2 || got.Entries[0].PlayerName != "First Bowler" || got.Entries[0].TotalWickets != 4 {
		t.Errorf("entries = %+v", got.Entries)
	}
}

func TestClampLimit(t *testing.T) {
	tests := []struct{ in, want int }{
		{-1, 5}, {0, 5}, {1, 1}, {3, 3}, {100, 100}, {1000, 100},
	}
	for _, tt := range tests {
		if got := ClampLimit(tt.in); got != tt.want {
			t.Errorf("ClampLimit(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestMatchSummary(t *testing.T) {
	engine, store := setup(t)
	ctx := context.Background()

	got, err := engine.MatchSummary(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != StatusNoData || got.TotalMatches != 0 {
		t.Errorf("empty store: %+v", got)
	}

	load(t, store,
		testutil.Doc("m1", nil, nil, &testutil.Innings{Team: "India", Runs: 180, Overs: "20"}),
		testutil.Doc("m2", nil, nil, &testutil.Innings{Team: "Oman", Runs: 101, Overs: "18.2"}),
		testutil.Doc("m2", nil, nil, &testutil.Innings{Team: "Oman", Runs: 999, Overs: "20"}),
	)

	got, err = engine.MatchSummary(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != StatusOK || got.TotalMatches != 2 || got.HighestScore != 180 || got.LowestScore != 101 {
		t.Errorf("got %+v", got)
	}
	if !near(got.AverageRuns, 140.5) {
		t.Errorf("average = %v", got.AverageRuns)
	}
}

func TestRecentForm(t *testing.T) {
	tests := []struct {
		name   string
		scores []int
		avg    float64
		form   string
	}{
		{"hot", []int{30, 34}, 32, FormHot},
		{"good", []int{10, 26}, 18, FormGood},
		{"needs improvement", []int{5, 5}, 5, FormNeedsImprovement},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, store := setup(t)
			load(t, store, battingDocs(1, "Suryakumar", "Yadav", tt.scores...)...)

			got, err := engine.RecentForm(context.Background(), "surya")
			if err != nil {
				t.Fatal(err)
			}
			if got.Status != StatusOK || len(got.Innings) != 2 {
				t.Fatalf("got %+v", got)
			}
			if !near(got.Average, tt.avg) || got.Form != tt.form {
				t.Errorf("average=%v form=%q, want %v %q", got.Average, got.Form, tt.avg, tt.form)
			}
		})
	}
}

func TestRecentFormWindow(t *testing.T) {
	engine, store := setup(t)
	load(t, store, battingDocs(1, "Shreyas", "Iyer", 1, 2, 3, 4, 5, 6, 7)...)

	got, err := engine.RecentForm(context.Background(), "iyer")
	if err != nil {
		t.Fatal(err)
	}
	if want := []int{7, 6, 5, 4, 3}; !reflect.DeepEqual(got.Scores(), want) {
		t.Errorf("scores = %v, want %v", got.Scores(), want)
	}
	if !near(got.Average, 5) || got.Form != FormNeedsImprovement {
		t.Errorf("average=%v form=%q", got.Average, got.Form)
	}

	none, err := engine.RecentForm(context.Background(), "nobody")
	if err != nil {
		t.Fatal(err)
	}
	if none.Status != StatusNotFound {
		t.Errorf("status = %s", none.Status)
	}
}

func TestFormBand(t *testing.T) {
	tests := []struct {
		avg  float64
		want string
	}{
		{30.01, FormHot}, {30, FormGood}, {15.5, FormGood}, {15, FormNeedsImprovement}, {0, FormNeedsImprovement},
	}
	for _, tt := range tests {
		if got := FormBand(tt.avg); got != tt.want {
			t.Errorf("FormBand(%v) = %q, want %q", tt.avg, got, tt.want)
		}
	}
}

func TestStorageFaultDegradesToEmptyResult(t *testing.T) {
	engine, store := setup(t)
	ctx := context.Background()
	load(t, store, battingDocs(1, "Rohit", "Sharma", 10, 20)...)

	for _, table := range []string{config.BattingTable, config.MatchesTable} {
		if _, err := store.ExecContext(ctx, "DROP TABLE "+table); err != nil {
			t.Fatal(err)
		}
	}

	batting, err := engine.BattingSummary(ctx, "Rohit")
	if err != nil || batting.Status != StatusNotFound {
		t.Errorf("batting = %+v, err = %v", batting, err)
	}
	leaders, err := engine.TopPerformers(ctx, "batting", 5)
	if err != nil || leaders.Status != StatusNoData {
		t.Errorf("leaders = %+v, err = %v", leaders, err)
	}
	summary, err := engine.MatchSummary(ctx)
	if err != nil || summary.Status != StatusNoData {
		t.Errorf("summary = %+v, err = %v", summary, err)
	}
}

func TestSearchPlayers(t *testing.T) {
	engine, store := setup(t)
	ctx := context.Background()
	load(t, store, battingDocs(1, "Rohit", "Sharma", 10)...)
	load(t, store, battingDocs(2, "Ishant", "Sharma", 1)...)
	load(t, store, battingDocs(3, "Virat", "Kohli", 1)...)

	got, err := engine.SearchPlayers(ctx, "SHARMA", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].FullName != "Ishant Sharma" || got[1].PlayerID != "1" {
		t.Errorf("got %+v", got)
	}

	all, err := engine.SearchPlayers(ctx, "", 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 {
		t.Errorf("limit ignored: %+v", all)
	}
}
