package api

import (
	"context"
	"net/http"

	"github.com/okian/dreamxi/internal/domain/ranking"
	"github.com/okian/dreamxi/internal/domain/types"
)

// LeaderboardDependencies defines the interface for league table operations
type LeaderboardDependencies interface {
	Days(ctx context.Context) ([]int, error)
	Leaderboard(ctx context.Context, day int) (types.Leaderboard, error)
	Summary(ctx context.Context, day int) (ranking.Summary, error)
}

// LeaderboardHandler handles leaderboard requests
type LeaderboardHandler struct {
	deps LeaderboardDependencies
}

// NewLeaderboardHandler creates a new leaderboard handler
func NewLeaderboardHandler(deps LeaderboardDependencies) *LeaderboardHandler {
	return &LeaderboardHandler{deps: deps}
}

// HandleGetDays handles GET /days requests
func (h *LeaderboardHandler) HandleGetDays(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_days"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	days, err := h.deps.Days(r.Context())
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]int{"days": days})
}

// HandleGetLeaderboard handles GET /leaderboard?day=N requests
func (h *LeaderboardHandler) HandleGetLeaderboard(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_leaderboard"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	day, err := queryDay(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", Wrap(op, err))
		return
	}
	lb, err := h.deps.Leaderboard(r.Context(), day)
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, lb)
}

// HandleGetSummary handles GET /summary?day=N requests
func (h *LeaderboardHandler) HandleGetSummary(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_summary"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	day, err := queryDay(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", Wrap(op, err))
		return
	}
	sum, err := h.deps.Summary(r.Context(), day)
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, sum)
}
