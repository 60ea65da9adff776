package httpapi

import (
	"net/http"

	"github.com/riskibarqy/squad-builder/internal/usecase"
)

func (h *Handler) GenerateLineup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GenerateLineup")
	defer span.End()

	var req generateLineupRequest
	if err := h.decodeRequest(ctx, r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.lineupService.Generate(ctx, usecase.GenerateLineupInput{
		FormationID:       req.FormationID,
		Discarded:         req.Discarded,
		League:            req.League,
		Nationality:       req.Nationality,
		SortBy:            req.SortBy,
		FlexibleFullBacks: req.FlexibleFullBacks,
		FlexibleWingers:   req.FlexibleWingers,
		Tactic:            req.Tactic,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "generate lineup failed", "formation_id", req.FormationID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, lineupToDTO(ctx, item))
}
