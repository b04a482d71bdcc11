package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/okian/dreamxi/internal/domain/scoring"
	"github.com/okian/dreamxi/internal/domain/trend"
)

// PlayersDependencies defines the interface for per-player and trend queries.
type PlayersDependencies interface {
	Players(ctx context.Context, day int, owner string) ([]scoring.PlayerPoints, error)
	Trend(ctx context.Context) (map[string][]trend.Point, error)
}

// PlayersHandler serves player points and owner trend series.
type PlayersHandler struct {
	deps PlayersDependencies
}

// NewPlayersHandler creates a new players handler.
func NewPlayersHandler(deps PlayersDependencies) *PlayersHandler {
	return &PlayersHandler{deps: deps}
}

// HandleGetPlayers handles GET /players?day=N&owner=O requests.
func (h *PlayersHandler) HandleGetPlayers(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_players"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	day, err := queryDay(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", Wrap(op, err))
		return
	}
	owner := strings.TrimSpace(r.URL.Query().Get("owner"))
	players, err := h.deps.Players(r.Context(), day, owner)
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, players)
}

// HandleGetTrend handles GET /trend requests.
func (h *PlayersHandler) HandleGetTrend(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_trend"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	series, err := h.deps.Trend(r.Context())
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, series)
}
