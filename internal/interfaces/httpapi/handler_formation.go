package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/riskibarqy/squad-builder/internal/usecase"
)

func (h *Handler) ListFormations(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListFormations")
	defer span.End()

	items, err := h.formationService.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list formations failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]usecase.FormationDocument, 0, len(items))
	for _, item := range items {
		out = append(out, usecase.NewFormationDocument(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetFormation(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetFormation")
	defer span.End()

	formationID := strings.TrimSpace(r.PathValue("formationID"))
	item, err := h.formationService.Get(ctx, formationID)
	if err != nil {
		h.logger.WarnContext(ctx, "get formation failed", "formation_id", formationID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, usecase.NewFormationDocument(item))
}

func (h *Handler) CreateFormation(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateFormation")
	defer span.End()

	var req formationRequest
	if err := h.decodeRequest(ctx, r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.formationService.Create(ctx, formationInput(req))
	if err != nil {
		h.logger.WarnContext(ctx, "create formation failed", "name", req.Name, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, usecase.NewFormationDocument(item))
}

func (h *Handler) UpdateFormation(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateFormation")
	defer span.End()

	formationID := strings.TrimSpace(r.PathValue("formationID"))
	var req formationRequest
	if err := h.decodeRequest(ctx, r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.formationService.Update(ctx, formationID, formationInput(req))
	if err != nil {
		h.logger.WarnContext(ctx, "update formation failed", "formation_id", formationID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, usecase.NewFormationDocument(item))
}

func (h *Handler) DeleteFormation(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteFormation")
	defer span.End()

	formationID := strings.TrimSpace(r.PathValue("formationID"))
	if err := h.formationService.Delete(ctx, formationID); err != nil {
		h.logger.WarnContext(ctx, "delete formation failed", "formation_id", formationID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]bool{"deleted": true})
}

func (h *Handler) RecordFormationResult(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecordFormationResult")
	defer span.End()

	formationID := strings.TrimSpace(r.PathValue("formationID"))
	var req matchResultRequest
	if err := h.decodeRequest(ctx, r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	var playedAt time.Time
	if req.PlayedAt != nil {
		playedAt = *req.PlayedAt
	}
	item, err := h.formationService.RecordResult(ctx, formationID, usecase.MatchResultInput{
		GoalsFor:     *req.GoalsFor,
		GoalsAgainst: *req.GoalsAgainst,
		PlayedAt:     playedAt,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "record formation result failed", "formation_id", formationID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, usecase.NewFormationDocument(item))
}

func (h *Handler) GetFormationSummary(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetFormationSummary")
	defer span.End()

	formationID := strings.TrimSpace(r.PathValue("formationID"))
	summary, err := h.formationService.Summary(ctx, formationID)
	if err != nil {
		h.logger.WarnContext(ctx, "get formation summary failed", "formation_id", formationID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, formationSummaryToDTO(summary))
}

func formationInput(req formationRequest) usecase.FormationInput {
	slots := make([]usecase.SlotInput, 0, len(req.Slots))
	for _, slot := range req.Slots {
		slots = append(slots, usecase.SlotInput{
			Positions:     slot.Positions,
			Flexible:      slot.Flexible,
			AllowedStyles: slot.AllowedStyles,
			X:             slot.X,
			Y:             slot.Y,
		})
	}
	return usecase.FormationInput{
		Name:         req.Name,
		Creator:      req.Creator,
		Tactic:       req.Tactic,
		Slots:        slots,
		TacticImages: req.TacticImages,
	}
}
