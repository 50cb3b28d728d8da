package httpapi

import (
	"net/http"

	"github.com/riskibarqy/draft-roster/internal/domain/roster"
)

// ListPlayers serves the aggregated roster. Query parameters league,
// position, nationality and type narrow the result; "all" style values are
// ignored.
func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayers")
	defer span.End()

	query := r.URL.Query()
	filter := roster.Filter{
		League:      query.Get("league"),
		Position:    query.Get("position"),
		Nationality: query.Get("nationality"),
		Type:        query.Get("type"),
	}

	result, err := h.rosterService.Query(ctx, filter)
	if err != nil {
		h.logger.WarnContext(ctx, "list players failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]playerDTO, 0, len(result.Players))
	for _, p := range result.Players {
		items = append(items, playerToDTO(p))
	}

	writeSuccess(ctx, w, http.StatusOK, playerListDTO{
		Players:        items,
		Total:          result.Total,
		FiltersApplied: result.FiltersApplied,
	})
}

func (h *Handler) InvalidateRoster(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.InvalidateRoster")
	defer span.End()

	h.rosterService.Invalidate(ctx)
	h.logger.InfoContext(ctx, "roster invalidated by internal request")
	writeSuccess(ctx, w, http.StatusAccepted, map[string]string{"status": "invalidated"})
}
