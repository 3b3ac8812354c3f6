package stats

import (
	"context"
	"fmt"
	"strings"

	"github.com/albapepper/cricket-stats/internal/config"
)

// PlayerRef is one row of the players relation.
type PlayerRef struct {
	PlayerID     string `json:"player_id"`
	FullName     string `json:"full_name"`
	BattingStyle string `json:"batting_style,omitempty"`
	BowlingStyle string `json:"bowling_style,omitempty"`
	Team         string `json:"team,omitempty"`
}

const searchPlayersSQL = `
	SELECT player_id, full_name, batting_style, bowling_style, team
	FROM ` + config.PlayersTable + `
	WHERE LOWER(full_name) LIKE $1 ESCAPE '\'
	ORDER BY full_name, player_id
	LIMIT $2`

// SearchPlayers lists known players whose full name contains fragment. An
// empty fragment lists everyone up to limit. Used for autocomplete so
// callers can pick an unambiguous fragment.
func (e *Engine) SearchPlayers(ctx context.Context, fragment string, limit int) ([]PlayerRef, error) {
	limit = ClampLimit(limit)
	rows, err := e.db.QueryContext(ctx, e.db.Rebind(searchPlayersSQL),
		likePattern(strings.TrimSpace(fragment)), limit)
	if err != nil {
		return nil, fmt.Errorf("search players: %w", err)
	}
	defer rows.Close()

	out := make([]PlayerRef, 0, limit)
	for rows.Next() {
		var p PlayerRef
		if err := rows.Scan(&p.PlayerID, &p.FullName, &p.BattingStyle, &p.BowlingStyle, &p.Team); err != nil {
			return nil, fmt.Errorf("scan player: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
