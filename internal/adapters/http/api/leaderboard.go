package api

import (
	"fmt"
	"net/http"
	"strconv"
)

// LeaderboardHandler handles leaderboard requests
type LeaderboardHandler struct {
	deps Dependencies
}

// NewLeaderboardHandler creates a new leaderboard handler
func NewLeaderboardHandler(deps Dependencies) *LeaderboardHandler {
	return &LeaderboardHandler{deps: deps}
}

// HandleGetLeaderboard handles GET /leaderboard[?limit=N] requests. Without
// a limit the whole exposed leaderboard is returned.
func (h *LeaderboardHandler) HandleGetLeaderboard(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_leaderboard"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	limitStr := r.URL.Query().Get("limit")
	if limitStr == "" {
		entries, err := h.deps.Leaderboard(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", fmt.Errorf("%s: %w", op, ErrInternal))
			return
		}
		writeJSON(w, http.StatusOK, entries)
		return
	}

	n, err := strconv.Atoi(limitStr)
	if err != nil || n < 1 {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%s: %w: limit must be a positive integer", op, ErrBadRequest))
		return
	}
	if maxLimit := h.deps.LeaderboardSize(); n > maxLimit {
		writeError(w, http.StatusBadRequest, "limit_exceeded", fmt.Errorf("%s: %w: limit must not exceed %d", op, ErrBadRequest, maxLimit))
		return
	}
	entries, err := h.deps.TopN(r.Context(), n)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", fmt.Errorf("%s: %w", op, ErrInternal))
		return
	}
	writeJSON(w, http.StatusOK, entries)
}
