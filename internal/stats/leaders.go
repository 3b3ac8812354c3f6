package stats

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/albapepper/cricket-stats/internal/config"
)

// Leaderboard limits.
const (
	DefaultLeaderLimit = 5
	MaxLeaderLimit     = 100
)

// Players need at least two appearances to rank. Ties keep insertion order.
const (
	topBattersSQL = `
		SELECT player_name,
		       SUM(runs_scored),
		       AVG(CAST(runs_scored AS DOUBLE PRECISION)),
		       COUNT(*)
		FROM ` + config.BattingTable + `
		GROUP BY player_name
		HAVING COUNT(*) >= 2
		ORDER BY SUM(runs_scored) DESC, MIN(id)
		LIMIT $1`

	topBowlersSQL = `
		SELECT player_name,
		       SUM(wickets),
		       AVG(economy),
		       COUNT(*)
		FROM ` + config.BowlingTable + `
		GROUP BY player_name
		HAVING COUNT(*) >= 2
		ORDER BY SUM(wickets) DESC, MIN(id)
		LIMIT $1`

	matchSummarySQL = `
		SELECT COUNT(*),
		       AVG(CAST(total_runs AS DOUBLE PRECISION)),
		       MAX(total_runs),
		       MIN(total_runs)
		FROM ` + config.MatchesTable
)

// LeaderCategory maps a category alias onto CategoryBatting or CategoryBowling.
func LeaderCategory(category string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(category)) {
	case "batsmen", "batting", "runs":
		return CategoryBatting, nil
	case "bowlers", "bowling", "wickets":
		return CategoryBowling, nil
	default:
		return "", &InvalidArgumentError{Param: "category", Value: category, Valid: ValidCategories}
	}
}

// ClampLimit applies the default and the upper bound to a leaderboard limit.
func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultLeaderLimit
	}
	if limit > MaxLeaderLimit {
		return MaxLeaderLimit
	}
	return limit
}

// TopPerformers ranks players by total runs or total wickets.
func (e *Engine) TopPerformers(ctx context.Context, category string, limit int) (Leaderboard, error) {
	start := time.Now()
	cat, err := LeaderCategory(category)
	if err != nil {
		return Leaderboard{}, err
	}
	limit = ClampLimit(limit)
	out := Leaderboard{Status: StatusNoData, Category: cat, Limit: limit}

	query := topBattersSQL
	if cat == CategoryBowling {
		query = topBowlersSQL
	}
	rows, err := e.db.QueryContext(ctx, e.db.Rebind(query), limit)
	if err != nil {
		e.storageFault(OpLeaders, start, err, "category", cat)
		return out, nil
	}
	defer rows.Close()

	var entries []LeaderboardEntry
	for rows.Next() {
		ent := LeaderboardEntry{Rank: len(entries) + 1}
		if cat == CategoryBatting {
			err = rows.Scan(&ent.PlayerName, &ent.TotalRuns, &ent.Average, &ent.Appearances)
		} else {
			err = rows.Scan(&ent.PlayerName, &ent.TotalWickets, &ent.Economy, &ent.Appearances)
		}
		if err != nil {
			e.storageFault(OpLeaders, start, fmt.Errorf("scan leaderboard: %w", err), "category", cat)
			return out, nil
		}
		entries = append(entries, ent)
	}
	if err := rows.Err(); err != nil {
		e.storageFault(OpLeaders, start, err, "category", cat)
		return out, nil
	}

	if len(entries) > 0 {
		out.Status = StatusOK
		out.Entries = entries
	}
	e.observe(OpLeaders, out.Status, start)
	return out, nil
}

// MatchSummary aggregates team totals across every stored match.
func (e *Engine) MatchSummary(ctx context.Context) (MatchSummary, error) {
	start := time.Now()
	out := MatchSummary{Status: StatusNoData}

	var (
		count   int
		avg     sql.NullFloat64
		highest sql.NullInt64
		lowest  sql.NullInt64
	)
	err := e.db.QueryRowContext(ctx, matchSummarySQL).Scan(&count, &avg, &highest, &lowest)
	if err != nil {
		e.storageFault(OpMatches, start, err)
		return out, nil
	}

	if count > 0 {
		out = MatchSummary{
			Status:       StatusOK,
			TotalMatches: count,
			AverageRuns:  avg.Float64,
			HighestScore: int(highest.Int64),
			LowestScore:  int(lowest.Int64),
		}
	}
	e.observe(OpMatches, out.Status, start)
	return out, nil
}
