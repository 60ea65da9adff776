package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/riskibarqy/squad-builder/internal/usecase"
)

type cardPath struct {
	PlayerID string
	CardID   string
	Position string
}

func readCardPath(r *http.Request) cardPath {
	return cardPath{
		PlayerID: strings.TrimSpace(r.PathValue("playerID")),
		CardID:   strings.TrimSpace(r.PathValue("cardID")),
		Position: strings.TrimSpace(r.PathValue("position")),
	}
}

func (h *Handler) UpdateCard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateCard")
	defer span.End()

	path := readCardPath(r)
	var req updateCardRequest
	if err := h.decodeRequest(ctx, r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.playerService.UpdateCard(ctx, usecase.UpdateCardInput{
		PlayerID: path.PlayerID,
		CardID:   path.CardID,
		Name:     req.Name,
		Style:    req.Style,
		League:   req.League,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "update card failed", "player_id", path.PlayerID, "card_id", path.CardID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, usecase.NewPlayerDocument(item))
}

func (h *Handler) UpdateCardStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateCardStats")
	defer span.End()

	path := readCardPath(r)
	var req updateCardStatsRequest
	if err := h.decodeRequest(ctx, r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.playerService.UpdateCardStats(ctx, usecase.UpdateCardStatsInput{
		PlayerID:          path.PlayerID,
		CardID:            path.CardID,
		BaseStats:         req.BaseStats,
		Height:            req.Height,
		Weight:            req.Weight,
		Skills:            req.Skills,
		ProgressionPoints: req.ProgressionPoints,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "update card stats failed", "player_id", path.PlayerID, "card_id", path.CardID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, usecase.NewPlayerDocument(item))
}

// RemoveLastRating undoes the most recent rating. Empty positions, cards and
// players are removed in cascade; the response reports what went away.
func (h *Handler) RemoveLastRating(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RemoveLastRating")
	defer span.End()

	path := readCardPath(r)
	result, err := h.playerService.RemoveLastRating(ctx, path.PlayerID, path.CardID, path.Position)
	if err != nil {
		h.logger.WarnContext(ctx, "remove last rating failed", "player_id", path.PlayerID, "card_id", path.CardID, "position", path.Position, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := removeRatingDTO{
		CardRemoved:   result.CardRemoved,
		PlayerRemoved: result.PlayerRemoved,
	}
	if result.Player != nil {
		doc := usecase.NewPlayerDocument(*result.Player)
		out.Player = &doc
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) SaveBuild(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SaveBuild")
	defer span.End()

	path := readCardPath(r)
	var req saveBuildRequest
	if err := h.decodeRequest(ctx, r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	analysis, err := h.playerService.SaveBuild(ctx, usecase.SaveBuildInput{
		PlayerID: path.PlayerID,
		CardID:   path.CardID,
		Position: path.Position,
		Build:    req.Build,
		Tactic:   req.Tactic,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "save build failed", "player_id", path.PlayerID, "card_id", path.CardID, "position", path.Position, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, cardAnalysisToDTO(analysis))
}

func (h *Handler) AnalyzeCard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AnalyzeCard")
	defer span.End()

	path := readCardPath(r)
	analysis, err := h.playerService.AnalyzeCard(ctx, usecase.CardPositionInput{
		PlayerID: path.PlayerID,
		CardID:   path.CardID,
		Position: path.Position,
		Tactic:   strings.TrimSpace(r.URL.Query().Get("tactic")),
	})
	if err != nil {
		h.logger.WarnContext(ctx, "analyze card failed", "player_id", path.PlayerID, "card_id", path.CardID, "position", path.Position, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, cardAnalysisToDTO(analysis))
}

func (h *Handler) SuggestBuild(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SuggestBuild")
	defer span.End()

	path := readCardPath(r)
	query := r.URL.Query()
	input := usecase.SuggestBuildInput{
		CardPositionInput: usecase.CardPositionInput{
			PlayerID: path.PlayerID,
			CardID:   path.CardID,
			Position: path.Position,
			Tactic:   strings.TrimSpace(query.Get("tactic")),
		},
	}
	if raw := strings.TrimSpace(query.Get("budget")); raw != "" {
		budget, err := strconv.Atoi(raw)
		if err != nil || budget < 0 {
			writeError(ctx, w, fmt.Errorf("%w: budget must be a non-negative integer", usecase.ErrInvalidInput))
			return
		}
		input.Budget = &budget
	}

	suggestion, err := h.playerService.SuggestBuild(ctx, input)
	if err != nil {
		h.logger.WarnContext(ctx, "suggest build failed", "player_id", path.PlayerID, "card_id", path.CardID, "position", path.Position, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, buildSuggestionDTO{
		Build:    buildToMap(suggestion.Build),
		Cost:     suggestion.Cost,
		Budget:   suggestion.Budget,
		Analysis: cardAnalysisToDTO(suggestion.Analysis),
	})
}
