package stats

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/albapepper/cricket-stats/internal/config"
)

const (
	compareBattingSQL = `
		SELECT player_name,
		       SUM(runs_scored),
		       AVG(CAST(runs_scored AS DOUBLE PRECISION)),
		       AVG(strike_rate)
		FROM ` + config.BattingTable + `
		WHERE LOWER(player_name) LIKE $1 ESCAPE '\'
		   OR LOWER(player_name) LIKE $2 ESCAPE '\'
		GROUP BY player_name
		ORDER BY MIN(id)`

	compareBowlingSQL = `
		SELECT player_name,
		       SUM(wickets),
		       AVG(economy),
		       SUM(runs_conceded)
		FROM ` + config.BowlingTable + `
		WHERE LOWER(player_name) LIKE $1 ESCAPE '\'
		   OR LOWER(player_name) LIKE $2 ESCAPE '\'
		GROUP BY player_name
		ORDER BY MIN(id)`
)

// MetricFamily maps a metric alias onto MetricRuns or MetricWickets.
func MetricFamily(metric string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(metric)) {
	case "runs", "batting", "average":
		return MetricRuns, nil
	case "wickets", "bowling", "economy":
		return MetricWickets, nil
	default:
		return "", &InvalidArgumentError{Param: "metric", Value: metric, Valid: ValidMetrics}
	}
}

// ComparePlayers returns every grouped player row matching either fragment
// for the requested metric family. The result is StatusInsufficientData
// unless there are at least two rows and each fragment matched one of them.
func (e *Engine) ComparePlayers(ctx context.Context, player1, player2, metric string) (Comparison, error) {
	start := time.Now()
	family, err := MetricFamily(metric)
	if err != nil {
		return Comparison{}, err
	}
	if player1, err = normalizeName("player1", player1); err != nil {
		return Comparison{}, err
	}
	if player2, err = normalizeName("player2", player2); err != nil {
		return Comparison{}, err
	}

	out := Comparison{Status: StatusInsufficientData, Player1: player1, Player2: player2, Metric: family}

	query := compareBattingSQL
	if family == MetricWickets {
		query = compareBowlingSQL
	}
	rows, err := e.db.QueryContext(ctx, e.db.Rebind(query), likePattern(player1), likePattern(player2))
	if err != nil {
		e.storageFault(OpCompare, start, err, "player1", player1, "player2", player2)
		return out, nil
	}
	defer rows.Close()

	var players []PlayerComparison
	for rows.Next() {
		var p PlayerComparison
		if family == MetricRuns {
			err = rows.Scan(&p.PlayerName, &p.TotalRuns, &p.Average, &p.StrikeRate)
		} else {
			err = rows.Scan(&p.PlayerName, &p.TotalWickets, &p.Economy, &p.RunsConceded)
		}
		if err != nil {
			e.storageFault(OpCompare, start, fmt.Errorf("scan comparison: %w", err))
			return out, nil
		}
		players = append(players, p)
	}
	if err := rows.Err(); err != nil {
		e.storageFault(OpCompare, start, err)
		return out, nil
	}

	if len(players) >= 2 && anyMatches(players, player1) && anyMatches(players, player2) {
		out.Status = StatusOK
		out.Players = players
	}

	e.observe(OpCompare, out.Status, start)
	return out, nil
}

func anyMatches(players []PlayerComparison, fragment string) bool {
	for _, p := range players {
		if matches(p.PlayerName, fragment) {
			return true
		}
	}
	return false
}
