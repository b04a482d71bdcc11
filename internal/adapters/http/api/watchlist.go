package api

import (
	"context"
	"net/http"

	"github.com/okian/dreamxi/internal/domain/types"
)

// WatchlistDependencies defines the interface for schedule lookups.
type WatchlistDependencies interface {
	Watchlist(ctx context.Context, day int) (types.Watchlist, error)
	Captains() map[string]types.CaptainPick
}

// WatchlistHandler serves the per-day watchlist and the captain table.
type WatchlistHandler struct {
	deps WatchlistDependencies
}

// NewWatchlistHandler creates a new watchlist handler.
func NewWatchlistHandler(deps WatchlistDependencies) *WatchlistHandler {
	return &WatchlistHandler{deps: deps}
}

// HandleGetWatchlist handles GET /watchlist?day=N requests.
func (h *WatchlistHandler) HandleGetWatchlist(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_watchlist"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	day, err := queryDay(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", Wrap(op, err))
		return
	}
	wl, err := h.deps.Watchlist(r.Context(), day)
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, wl)
}

// HandleGetCaptains handles GET /captains requests.
func (h *WatchlistHandler) HandleGetCaptains(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Captains())
}
