package ingest

import (
	"context"
	"database/sql"

	"github.com/albapepper/cricket-stats/internal/config"
	"github.com/albapepper/cricket-stats/internal/provider"
)

// execer is satisfied by *sql.Tx; every write of a document goes through the
// document's transaction.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// Insert-if-absent: the first writer of a player_id or match_id wins.
const (
	insertPlayerSQL = `
		INSERT INTO ` + config.PlayersTable + ` (
			player_id, first_name, last_name, full_name,
			batting_style, bowling_style, team
		) VALUES ($1,$2,$3,$4,$5,$6,$7)
		ON CONFLICT (player_id) DO NOTHING`

	insertMatchSQL = `
		INSERT INTO ` + config.MatchesTable + ` (
			match_id, team_name, total_runs, total_overs,
			total_wickets, run_rate, match_date
		) VALUES ($1,$2,$3,$4,$5,$6,$7)
		ON CONFLICT (match_id) DO NOTHING`

	insertBattingSQL = `
		INSERT INTO ` + config.BattingTable + ` (
			match_id, player_id, player_name, runs_scored, balls_faced,
			fours, sixes, strike_rate, is_out, how_out
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`

	insertBowlingSQL = `
		INSERT INTO ` + config.BowlingTable + ` (
			match_id, player_id, player_name, overs, balls, runs_conceded,
			wickets, maidens, dot_balls, wides, no_balls, economy
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`

	// Dedupe probes compare NULL match ids as equal via COALESCE.
	battingExistsSQL = `
		SELECT COUNT(*) FROM ` + config.BattingTable + `
		WHERE COALESCE(match_id, '') = $1 AND player_id = $2
		  AND runs_scored = $3 AND balls_faced = $4 AND fours = $5
		  AND sixes = $6 AND is_out = $7 AND how_out = $8`

	bowlingExistsSQL = `
		SELECT COUNT(*) FROM ` + config.BowlingTable + `
		WHERE COALESCE(match_id, '') = $1 AND player_id = $2
		  AND overs = $3 AND balls = $4 AND runs_conceded = $5
		  AND wickets = $6 AND maidens = $7 AND dot_balls = $8
		  AND wides = $9 AND no_balls = $10`
)

// nullIfEmpty maps an absent match reference to SQL NULL.
func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func (l *Loader) insertPlayer(ctx context.Context, tx execer, id, first, last, battingStyle, bowlingStyle, team string) (int, error) {
	res, err := tx.ExecContext(ctx, l.db.Rebind(insertPlayerSQL),
		id, first, last, provider.FullName(first, last), battingStyle, bowlingStyle, team)
	if err != nil {
		return 0, err
	}
	return affected(res), nil
}

func (l *Loader) insertBatting(ctx context.Context, tx execer, rec provider.BattingRecord) (inserted bool, err error) {
	if l.opts.DedupePerformances {
		var n int
		err := tx.QueryRowContext(ctx, l.db.Rebind(battingExistsSQL),
			rec.MatchID, rec.PlayerID, rec.Runs, rec.Balls, rec.Fours,
			rec.Sixes, rec.IsOut, rec.HowOut,
		).Scan(&n)
		if err != nil {
			return false, err
		}
		if n > 0 {
			return false, nil
		}
	}

	_, err = tx.ExecContext(ctx, l.db.Rebind(insertBattingSQL),
		nullIfEmpty(rec.MatchID), rec.PlayerID, rec.FullName(),
		rec.Runs, rec.Balls, rec.Fours, rec.Sixes,
		rec.StrikeRate(), rec.IsOut, rec.HowOut,
	)
	return err == nil, err
}

func (l *Loader) insertBowling(ctx context.Context, tx execer, rec provider.BowlingRecord) (inserted bool, err error) {
	if l.opts.DedupePerformances {
		var n int
		err := tx.QueryRowContext(ctx, l.db.Rebind(bowlingExistsSQL),
			rec.MatchID, rec.PlayerID, rec.Overs, rec.Balls, rec.Runs,
			rec.Wickets, rec.Maidens, rec.DotBalls, rec.Wides, rec.NoBalls,
		).Scan(&n)
		if err != nil {
			return false, err
		}
		if n > 0 {
			return false, nil
		}
	}

	_, err = tx.ExecContext(ctx, l.db.Rebind(insertBowlingSQL),
		nullIfEmpty(rec.MatchID), rec.PlayerID, rec.FullName(),
		rec.Overs, rec.Balls, rec.Runs, rec.Wickets, rec.Maidens,
		rec.DotBalls, rec.Wides, rec.NoBalls, rec.Economy(),
	)
	return err == nil, err
}

func (l *Loader) insertMatch(ctx context.Context, tx execer, id string, in provider.InningsTotals) (int, error) {
	overs := in.Overs
	if overs == "" {
		overs = "0"
	}
	res, err := tx.ExecContext(ctx, l.db.Rebind(insertMatchSQL),
		id, in.TeamName, in.Runs, overs, in.Wickets, in.RunRate(), in.MatchDate)
	if err != nil {
		return 0, err
	}
	return affected(res), nil
}

func affected(res sql.Result) int {
	n, err := res.RowsAffected()
	if err != nil {
		return 0
	}
	return int(n)
}
