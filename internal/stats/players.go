package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/albapepper/cricket-stats/internal/config"
)

// RecentFormWindow is the number of innings RecentForm looks at.
const RecentFormWindow = 5

// Grouped rows are ordered by their first insertion so "first match" is stable.
const (
	battingSummarySQL = `
		SELECT player_name,
		       COUNT(*),
		       SUM(runs_scored),
		       AVG(CAST(runs_scored AS DOUBLE PRECISION)),
		       MAX(runs_scored),
		       AVG(strike_rate),
		       SUM(fours),
		       SUM(sixes),
		       SUM(balls_faced)
		FROM ` + config.BattingTable + `
		WHERE LOWER(player_name) LIKE $1 ESCAPE '\'
		GROUP BY player_name
		ORDER BY MIN(id)`

	bowlingSummarySQL = `
		SELECT player_name,
		       COUNT(*),
		       SUM(wickets),
		       SUM(runs_conceded),
		       AVG(economy),
		       SUM(maidens),
		       SUM(dot_balls),
		       SUM(balls)
		FROM ` + config.BowlingTable + `
		WHERE LOWER(player_name) LIKE $1 ESCAPE '\'
		GROUP BY player_name
		ORDER BY MIN(id)`

	recentFormSQL = `
		SELECT player_name, runs_scored, balls_faced, strike_rate, fours, sixes
		FROM ` + config.BattingTable + `
		WHERE LOWER(player_name) LIKE $1 ESCAPE '\'
		ORDER BY id DESC
		LIMIT $2`
)

// BattingSummary aggregates batting rows for the players whose name contains
// name. Zero matching rows gives StatusNotFound.
func (e *Engine) BattingSummary(ctx context.Context, name string) (BattingSummary, error) {
	start := time.Now()
	name, err := normalizeName("player_name", name)
	if err != nil {
		return BattingSummary{}, err
	}
	out := BattingSummary{Status: StatusNotFound, Query: name}

	rows, err := e.db.QueryContext(ctx, e.db.Rebind(battingSummarySQL), likePattern(name))
	if err != nil {
		e.storageFault(OpBatting, start, err, "player", name)
		return out, nil
	}
	defer rows.Close()

	for rows.Next() {
		var (
			s      BattingSummary
			player string
		)
		if err := rows.Scan(&player, &s.Innings, &s.TotalRuns, &s.Average, &s.HighestScore,
			&s.StrikeRate, &s.Fours, &s.Sixes, &s.BallsFaced); err != nil {
			e.storageFault(OpBatting, start, fmt.Errorf("scan batting summary: %w", err), "player", name)
			return BattingSummary{Status: StatusNotFound, Query: name}, nil
		}
		if out.Status != StatusOK {
			s.Status = StatusOK
			s.Query = name
			s.PlayerName = player
			out = s
		}
		out.MatchedPlayers = append(out.MatchedPlayers, player)
	}
	if err := rows.Err(); err != nil {
		e.storageFault(OpBatting, start, err, "player", name)
		return BattingSummary{Status: StatusNotFound, Query: name}, nil
	}

	e.observe(OpBatting, out.Status, start)
	return out, nil
}

// BowlingSummary aggregates bowling rows for the players whose name contains
// name. BowlingAverage is runs conceded per wicket, 0 without wickets.
func (e *Engine) BowlingSummary(ctx context.Context, name string) (BowlingSummary, error) {
	start := time.Now()
	name, err := normalizeName("player_name", name)
	if err != nil {
		return BowlingSummary{}, err
	}
	out := BowlingSummary{Status: StatusNotFound, Query: name}

	rows, err := e.db.QueryContext(ctx, e.db.Rebind(bowlingSummarySQL), likePattern(name))
	if err != nil {
		e.storageFault(OpBowling, start, err, "player", name)
		return out, nil
	}
	defer rows.Close()

	for rows.Next() {
		var (
			s      BowlingSummary
			player string
		)
		if err := rows.Scan(&player, &s.Matches, &s.Wickets, &s.RunsConceded, &s.Economy,
			&s.Maidens, &s.DotBalls, &s.Balls); err != nil {
			e.storageFault(OpBowling, start, fmt.Errorf("scan bowling summary: %w", err), "player", name)
			return BowlingSummary{Status: StatusNotFound, Query: name}, nil
		}
		if out.Status != StatusOK {
			s.Status = StatusOK
			s.Query = name
			s.PlayerName = player
			s.BowlingAverage = BowlingAverage(s.RunsConceded, s.Wickets)
			out = s
		}
		out.MatchedPlayers = append(out.MatchedPlayers, player)
	}
	if err := rows.Err(); err != nil {
		e.storageFault(OpBowling, start, err, "player", name)
		return BowlingSummary{Status: StatusNotFound, Query: name}, nil
	}

	e.observe(OpBowling, out.Status, start)
	return out, nil
}

// RecentForm looks at the most recently inserted innings of the players whose
// name contains name, newest first. Fewer than RecentFormWindow rows are used
// as they are.
func (e *Engine) RecentForm(ctx context.Context, name string) (RecentForm, error) {
	start := time.Now()
	name, err := normalizeName("player_name", name)
	if err != nil {
		return RecentForm{}, err
	}
	out := RecentForm{Status: StatusNotFound, Query: name}

	rows, err := e.db.QueryContext(ctx, e.db.Rebind(recentFormSQL), likePattern(name), RecentFormWindow)
	if err != nil {
		e.storageFault(OpForm, start, err, "player", name)
		return out, nil
	}
	defer rows.Close()

	var innings []FormInnings
	seen := map[string]bool{}
	for rows.Next() {
		var in FormInnings
		if err := rows.Scan(&in.PlayerName, &in.Runs, &in.Balls, &in.StrikeRate, &in.Fours, &in.Sixes); err != nil {
			e.storageFault(OpForm, start, fmt.Errorf("scan recent form: %w", err), "player", name)
			return RecentForm{Status: StatusNotFound, Query: name}, nil
		}
		innings = append(innings, in)
		if !seen[in.PlayerName] {
			seen[in.PlayerName] = true
			out.MatchedPlayers = append(out.MatchedPlayers, in.PlayerName)
		}
	}
	if err := rows.Err(); err != nil {
		e.storageFault(OpForm, start, err, "player", name)
		return RecentForm{Status: StatusNotFound, Query: name}, nil
	}

	if len(innings) > 0 {
		total := 0
		for _, in := range innings {
			total += in.Runs
		}
		out.Status = StatusOK
		out.Innings = innings
		out.Average = float64(total) / float64(len(innings))
		out.Form = FormBand(out.Average)
	}

	e.observe(OpForm, out.Status, start)
	return out, nil
}

// BowlingAverage is runs conceded per wicket, or 0 when no wickets fell.
func BowlingAverage(runsConceded, wickets int) float64 {
	if wickets <= 0 {
		return 0
	}
	return float64(runsConceded) / float64(wickets)
}
