package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/okian/dreamxi/internal/domain/replacement"
)

// ReplacementDependencies defines the interface for replacement lookups.
type ReplacementDependencies interface {
	Replacements(ctx context.Context, owner, player string, day int) (replacement.Result, error)
}

// ReplacementHandler handles replacement eligibility requests.
type ReplacementHandler struct {
	deps ReplacementDependencies
}

// NewReplacementHandler creates a new replacement handler.
func NewReplacementHandler(deps ReplacementDependencies) *ReplacementHandler {
	return &ReplacementHandler{deps: deps}
}

// HandleGetReplacements handles GET /replacements?owner=O&player=P&day=N requests.
func (h *ReplacementHandler) HandleGetReplacements(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_replacements"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	q := r.URL.Query()
	owner := strings.TrimSpace(q.Get("owner"))
	player := strings.TrimSpace(q.Get("player"))
	if owner == "" || player == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	day, err := queryDay(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", Wrap(op, err))
		return
	}
	res, err := h.deps.Replacements(r.Context(), owner, player, day)
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
