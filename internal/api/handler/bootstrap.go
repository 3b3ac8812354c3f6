package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/albapepper/cricket-stats/internal/api/respond"
	"github.com/albapepper/cricket-stats/internal/cache"
	"github.com/albapepper/cricket-stats/internal/stats"
)

// GetPlayers returns the player directory for search/autofill.
// @Summary List players
// @Description Returns known players whose full name contains q, for frontend search/autofill. Lets a client choose a fragment that matches exactly one player before calling the stats endpoints.
// @Tags players
// @Produce json
// @Param q query string false "Name fragment"
// @Param limit query int false "Maximum rows (default 5, max 100)"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Failure 503 {object} respond.ErrorResponse
// @Router /players [get]
func (h *Handler) GetPlayers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			respond.WriteError(w, http.StatusBadRequest, "INVALID_LIMIT", "limit must be an integer")
			return
		}
		limit = n
	}

	cacheKey := cache.Key("players", q, strconv.Itoa(stats.ClampLimit(limit)))
	ttl := cache.TTLPlayerStats

	if data, etag, ok := h.cache.Get(cacheKey); ok {
		if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
			respond.WriteNotModified(w, etag)
			return
		}
		respond.WriteJSON(w, data, etag, ttl, true)
		return
	}

	players, err := h.engine.SearchPlayers(r.Context(), q, limit)
	if err != nil {
		h.logger.Error("Player search failed", "query", q, "error", err)
		respond.WriteError(w, http.StatusServiceUnavailable, "STORE_UNAVAILABLE", "Player directory unavailable")
		return
	}

	data, err := json.Marshal(map[string]interface{}{
		"query":   strings.TrimSpace(q),
		"count":   len(players),
		"players": players,
	})
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "INTERNAL", "Internal error")
		return
	}
	etag := h.cache.Set(cacheKey, data, ttl)
	respond.WriteJSON(w, data, etag, ttl, false)
}
