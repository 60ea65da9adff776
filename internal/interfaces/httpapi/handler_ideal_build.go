package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/squad-builder/internal/usecase"
)

func (h *Handler) ListIdealBuilds(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListIdealBuilds")
	defer span.End()

	query := r.URL.Query()
	items, err := h.idealBuildService.List(ctx, usecase.IdealBuildFilter{
		Tactic:   strings.TrimSpace(query.Get("tactic")),
		Position: strings.TrimSpace(query.Get("position")),
	})
	if err != nil {
		h.logger.WarnContext(ctx, "list ideal builds failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]usecase.IdealBuildDocument, 0, len(items))
	for _, item := range items {
		out = append(out, usecase.NewIdealBuildDocument(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) UpsertIdealBuild(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpsertIdealBuild")
	defer span.End()

	var req upsertIdealBuildRequest
	if err := h.decodeRequest(ctx, r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.idealBuildService.Upsert(ctx, usecase.UpsertIdealBuildInput{
		ID:              req.ID,
		Tactic:          req.Tactic,
		Position:        req.Position,
		Style:           req.Style,
		Profile:         req.Profile,
		Stats:           req.Stats,
		PrimarySkills:   req.PrimarySkills,
		SecondarySkills: req.SecondarySkills,
		Height:          usecase.RangeInput{Min: req.HeightMin, Max: req.HeightMax},
		Weight:          usecase.RangeInput{Min: req.WeightMin, Max: req.WeightMax},
	})
	if err != nil {
		h.logger.WarnContext(ctx, "upsert ideal build failed", "build_id", req.ID, "position", req.Position, "style", req.Style, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, usecase.NewIdealBuildDocument(item))
}

func (h *Handler) DeleteIdealBuild(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteIdealBuild")
	defer span.End()

	buildID := strings.TrimSpace(r.PathValue("buildID"))
	if err := h.idealBuildService.Delete(ctx, buildID); err != nil {
		h.logger.WarnContext(ctx, "delete ideal build failed", "build_id", buildID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]bool{"deleted": true})
}
