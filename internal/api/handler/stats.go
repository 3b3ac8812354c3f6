package handler

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/albapepper/cricket-stats/internal/api/respond"
	"github.com/albapepper/cricket-stats/internal/cache"
	"github.com/albapepper/cricket-stats/internal/report"
	"github.com/albapepper/cricket-stats/internal/stats"
)

// outcome is what a stats handler hands to serveStats.
type outcome struct {
	body   interface{}
	status stats.Status
	text   string // rendered report, used as the message of non-ok responses
}

// serveStats answers from the cache when possible, otherwise runs compute,
// maps its status onto an HTTP response and caches successful bodies.
func (h *Handler) serveStats(w http.ResponseWriter, r *http.Request, cacheKey string, ttl time.Duration, compute func() (outcome, error)) {
	if data, etag, ok := h.cache.Get(cacheKey); ok {
		if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
			respond.WriteNotModified(w, etag)
			return
		}
		respond.WriteJSON(w, data, etag, ttl, true)
		return
	}

	out, err := compute()
	if err != nil {
		if iae, ok := stats.AsInvalidArgument(err); ok {
			respond.WriteErrorDetail(w, http.StatusBadRequest, "INVALID_ARGUMENT", err.Error(), strings.Join(iae.Valid, ", "))
			return
		}
		h.logger.Error("Stats request failed", "path", r.URL.Path, "error", err)
		respond.WriteError(w, http.StatusInternalServerError, "INTERNAL", "Internal error")
		return
	}

	if out.status != stats.StatusOK {
		respond.WriteError(w, http.StatusNotFound, errorCode(out.status), out.text)
		return
	}

	data, err := json.Marshal(out.body)
	if err != nil {
		h.logger.Error("Failed to encode response", "path", r.URL.Path, "error", err)
		respond.WriteError(w, http.StatusInternalServerError, "INTERNAL", "Internal error")
		return
	}
	etag := h.cache.Set(cacheKey, data, ttl)
	respond.WriteJSON(w, data, etag, ttl, false)
}

func errorCode(s stats.Status) string {
	switch s {
	case stats.StatusNoData:
		return "NO_DATA"
	case stats.StatusInsufficientData:
		return "INSUFFICIENT_DATA"
	default:
		return "NOT_FOUND"
	}
}

// playerParam returns the decoded {name} path segment.
func playerParam(r *http.Request) string {
	name := chi.URLParam(r, "name")
	if decoded, err := url.PathUnescape(name); err == nil {
		name = decoded
	}
	return name
}

// GetBattingStats returns a player's batting summary.
// @Summary Batting summary
// @Description Aggregates every batting innings whose player name contains the fragment (case-insensitive). When several players match, figures belong to the first one ingested and matched_players lists all of them.
// @Tags players
// @Produce json
// @Param name path string true "Player name fragment"
// @Success 200 {object} stats.BattingSummary
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Router /players/{name}/batting [get]
func (h *Handler) GetBattingStats(w http.ResponseWriter, r *http.Request) {
	name := playerParam(r)
	h.serveStats(w, r, cache.Key("batting", name), cache.TTLPlayerStats, func() (outcome, error) {
		s, err := h.engine.BattingSummary(r.Context(), name)
		return outcome{body: s, status: s.Status, text: report.Batting(s)}, err
	})
}

// GetBowlingStats returns a player's bowling summary.
// @Summary Bowling summary
// @Description Aggregates every bowling spell whose player name contains the fragment. bowling_average is runs conceded per wicket, 0 without wickets.
// @Tags players
// @Produce json
// @Param name path string true "Player name fragment"
// @Success 200 {object} stats.BowlingSummary
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Router /players/{name}/bowling [get]
func (h *Handler) GetBowlingStats(w http.ResponseWriter, r *http.Request) {
	name := playerParam(r)
	h.serveStats(w, r, cache.Key("bowling", name), cache.TTLPlayerStats, func() (outcome, error) {
		s, err := h.engine.BowlingSummary(r.Context(), name)
		return outcome{body: s, status: s.Status, text: report.Bowling(s)}, err
	})
}

// GetRecentForm returns the last five innings and a form band.
// @Summary Recent form
// @Description Uses up to the five most recently ingested innings of matching players and classifies the average as hot (>30), good (>15) or needs improvement.
// @Tags players
// @Produce json
// @Param name path string true "Player name fragment"
// @Success 200 {object} stats.RecentForm
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Router /players/{name}/form [get]
func (h *Handler) GetRecentForm(w http.ResponseWriter, r *http.Request) {
	name := playerParam(r)
	h.serveStats(w, r, cache.Key("form", name), cache.TTLPlayerStats, func() (outcome, error) {
		f, err := h.engine.RecentForm(r.Context(), name)
		return outcome{body: f, status: f.Status, text: report.Form(f)}, err
	})
}

// ComparePlayers compares two players on a metric family.
// @Summary Compare players
// @Description Compares every player matching either fragment. metric runs/batting/average compares runs, average and strike rate; wickets/bowling/economy compares wickets, economy and runs conceded.
// @Tags players
// @Produce json
// @Param player1 query string true "First player name fragment"
// @Param player2 query string true "Second player name fragment"
// @Param metric query string false "Metric" default(runs)
// @Success 200 {object} stats.Comparison
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Router /compare [get]
func (h *Handler) ComparePlayers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	p1, p2, metric := q.Get("player1"), q.Get("player2"), q.Get("metric")
	if metric == "" {
		metric = stats.MetricRuns
	}
	key := cache.Key("compare", p1, p2, metric)
	h.serveStats(w, r, key, cache.TTLPlayerStats, func() (outcome, error) {
		c, err := h.engine.ComparePlayers(r.Context(), p1, p2, metric)
		return outcome{body: c, status: c.Status, text: report.Comparison(c)}, err
	})
}

// GetLeaders returns the top batsmen or bowlers.
// @Summary Top performers
// @Description Ranks players with at least two appearances by total runs (batsmen) or total wickets (bowlers).
// @Tags leaders
// @Produce json
// @Param category path string true "Category" Enums(batsmen, bowlers, batting, bowling, runs, wickets)
// @Param limit query int false "Number of players (default 5, max 100)"
// @Success 200 {object} stats.Leaderboard
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Router /leaders/{category} [get]
func (h *Handler) GetLeaders(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			respond.WriteError(w, http.StatusBadRequest, "INVALID_LIMIT", "limit must be an integer")
			return
		}
		limit = n
	}

	key := cache.Key("leaders", category, strconv.Itoa(stats.ClampLimit(limit)))
	h.serveStats(w, r, key, cache.TTLLeaderboard, func() (outcome, error) {
		l, err := h.engine.TopPerformers(r.Context(), category, limit)
		return outcome{body: l, status: l.Status, text: report.Leaderboard(l)}, err
	})
}

// GetMatchSummary returns aggregate team totals.
// @Summary Match summary
// @Description Count of matches with average, highest and lowest team total.
// @Tags matches
// @Produce json
// @Success 200 {object} stats.MatchSummary
// @Failure 404 {object} respond.ErrorResponse
// @Router /matches/summary [get]
func (h *Handler) GetMatchSummary(w http.ResponseWriter, r *http.Request) {
	h.serveStats(w, r, cache.Key("matches", "summary"), cache.TTLMatchSummary, func() (outcome, error) {
		m, err := h.engine.MatchSummary(r.Context())
		return outcome{body: m, status: m.Status, text: report.Matches(m)}, err
	})
}
