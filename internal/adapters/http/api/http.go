// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/okian/dreamxi/internal/adapters/repository"
	"github.com/okian/dreamxi/internal/domain/model"
	"github.com/okian/dreamxi/internal/domain/ranking"
	"github.com/okian/dreamxi/internal/domain/replacement"
	"github.com/okian/dreamxi/internal/domain/scoring"
	"github.com/okian/dreamxi/internal/domain/trend"
	"github.com/okian/dreamxi/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	Days(ctx context.Context) ([]int, error)
	Leaderboard(ctx context.Context, day int) (types.Leaderboard, error)
	Summary(ctx context.Context, day int) (ranking.Summary, error)
	Players(ctx context.Context, day int, owner string) ([]scoring.PlayerPoints, error)
	Trend(ctx context.Context) (map[string][]trend.Point, error)
	Replacements(ctx context.Context, owner, player string, day int) (replacement.Result, error)
	Watchlist(ctx context.Context, day int) (types.Watchlist, error)
	Captains() map[string]types.CaptainPick
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler      *HealthHandler
	statsHandler       *StatsHandler
	leaderboardHandler *LeaderboardHandler
	playersHandler     *PlayersHandler
	replacementHandler *ReplacementHandler
	watchlistHandler   *WatchlistHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:      NewHealthHandler(),
		statsHandler:       NewStatsHandler(statsProvider),
		leaderboardHandler: NewLeaderboardHandler(deps),
		playersHandler:     NewPlayersHandler(deps),
		replacementHandler: NewReplacementHandler(deps),
		watchlistHandler:   NewWatchlistHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/days", MetricsMiddleware(s.leaderboardHandler.HandleGetDays, "days"))
	mux.HandleFunc("/leaderboard", MetricsMiddleware(s.leaderboardHandler.HandleGetLeaderboard, "leaderboard"))
	mux.HandleFunc("/summary", MetricsMiddleware(s.leaderboardHandler.HandleGetSummary, "summary"))
	mux.HandleFunc("/players", MetricsMiddleware(s.playersHandler.HandleGetPlayers, "players"))
	mux.HandleFunc("/trend", MetricsMiddleware(s.playersHandler.HandleGetTrend, "trend"))
	mux.HandleFunc("/replacements", MetricsMiddleware(s.replacementHandler.HandleGetReplacements, "replacements"))
	mux.HandleFunc("/watchlist", MetricsMiddleware(s.watchlistHandler.HandleGetWatchlist, "watchlist"))
	mux.HandleFunc("/captains", MetricsMiddleware(s.watchlistHandler.HandleGetCaptains, "captains"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// emptyResponse is returned with 200 when the roster has no players.
type emptyResponse struct {
	Empty bool `json:"empty"`
	Day   int  `json:"day,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeDomainError maps engine errors onto HTTP statuses.
func writeDomainError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, ranking.ErrEmptyRoster):
		writeJSON(w, http.StatusOK, emptyResponse{Empty: true})
	case errors.Is(err, ErrBadRequest), errors.Is(err, scoring.ErrInvalidDayRange):
		writeError(w, http.StatusBadRequest, "bad_request", Wrap(op, err))
	case errors.Is(err, replacement.ErrIneligible):
		writeError(w, http.StatusUnprocessableEntity, "ineligible", Wrap(op, err))
	case errors.Is(err, replacement.ErrUnknownPlayer),
		errors.Is(err, replacement.ErrNotOnRoster),
		errors.Is(err, types.ErrUnknownOwner):
		writeError(w, http.StatusNotFound, "not_found", WrapKind(op, ErrNotFound, err))
	case errors.Is(err, repository.ErrNotLoaded):
		writeError(w, http.StatusServiceUnavailable, "not_loaded", Wrap(op, err))
	case errors.Is(err, model.ErrDataShape):
		writeError(w, http.StatusInternalServerError, "data_shape", Wrap(op, err))
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
	}
}

// queryDay reads the optional day parameter; absent or 0 means latest.
func queryDay(r *http.Request) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("day"))
	if raw == "" {
		return 0, nil
	}
	day, err := strconv.Atoi(raw)
	if err != nil || day < 0 {
		return 0, fmt.Errorf("%w: day must be a non-negative integer", ErrBadRequest)
	}
	return day, nil
}
