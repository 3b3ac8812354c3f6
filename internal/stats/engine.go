// Package stats answers read-only statistics questions over the ingested
// relations. Every operation returns a structured result carrying a Status;
// only invalid caller input produces an error.
package stats

import (
	"log/slog"
	"strings"
	"time"

	"github.com/albapepper/cricket-stats/internal/db"
	"github.com/albapepper/cricket-stats/internal/metrics"
)

// Engine runs the statistics queries against one store handle.
type Engine struct {
	db      *db.DB
	metrics *metrics.Collector
	logger  *slog.Logger
}

// NewEngine creates an Engine. m may be nil.
func NewEngine(store *db.DB, m *metrics.Collector, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{db: store, metrics: m, logger: logger}
}

// Operation names used for logs and metrics.
const (
	OpBatting = "batting_summary"
	OpBowling = "bowling_summary"
	OpCompare = "compare_players"
	OpLeaders = "top_performers"
	OpMatches = "match_summary"
	OpForm    = "recent_form"
)

// observe records the outcome of one operation.
func (e *Engine) observe(op string, status Status, start time.Time) {
	e.metrics.QueryObserved(op, string(status), time.Since(start))
}

// storageFault logs a failed read. Callers degrade to an empty result.
func (e *Engine) storageFault(op string, start time.Time, err error, args ...any) {
	attrs := append([]any{"operation", op, "error", err}, args...)
	e.logger.Error("Stats query failed", attrs...)
	e.metrics.QueryObserved(op, "error", time.Since(start))
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern builds a bound LIKE argument that matches fragment anywhere in
// a lowercased name. Wildcards inside the fragment match literally.
func likePattern(fragment string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(fragment)) + "%"
}

// normalizeName trims a name fragment and rejects blanks.
func normalizeName(param, name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", &InvalidArgumentError{Param: param, Value: name, Reason: "must not be blank"}
	}
	return trimmed, nil
}

func matches(name, fragment string) bool {
	return strings.Contains(strings.ToLower(name), strings.ToLower(fragment))
}
