package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/squad-builder/internal/usecase"
)

func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayers")
	defer span.End()

	query := r.URL.Query()
	items, err := h.playerService.ListPlayers(ctx, usecase.PlayerFilter{
		League:      strings.TrimSpace(query.Get("league")),
		Nationality: strings.TrimSpace(query.Get("nationality")),
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "list players failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playersToDTO(ctx, items))
}

func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayer")
	defer span.End()

	playerID := strings.TrimSpace(r.PathValue("playerID"))
	item, err := h.playerService.GetPlayer(ctx, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "get player failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, usecase.NewPlayerDocument(item))
}

func (h *Handler) CreatePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreatePlayer")
	defer span.End()

	var req createPlayerRequest
	if err := h.decodeRequest(ctx, r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.playerService.CreatePlayer(ctx, usecase.CreatePlayerInput{
		Name:        req.Name,
		Nationality: req.Nationality,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create player failed", "name", req.Name, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, usecase.NewPlayerDocument(item))
}

// AddRating records a match rating, creating the player and card on the
// fly when their ids are omitted.
func (h *Handler) AddRating(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AddRating")
	defer span.End()

	var req addRatingRequest
	if err := h.decodeRequest(ctx, r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.playerService.AddRating(ctx, usecase.AddRatingInput{
		PlayerID:    req.PlayerID,
		PlayerName:  req.PlayerName,
		Nationality: req.Nationality,
		CardID:      req.CardID,
		CardName:    req.CardName,
		Style:       req.Style,
		League:      req.League,
		Position:    req.Position,
		Rating:      *req.Rating,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "add rating failed", "player_id", req.PlayerID, "card_id", req.CardID, "position", req.Position, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, usecase.NewPlayerDocument(item))
}

func (h *Handler) SetLiveForm(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetLiveForm")
	defer span.End()

	playerID := strings.TrimSpace(r.PathValue("playerID"))
	var req setLiveFormRequest
	if err := h.decodeRequest(ctx, r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.playerService.SetLiveForm(ctx, usecase.SetLiveFormInput{
		PlayerID:    playerID,
		LiveForm:    req.LiveForm,
		NonExpiring: req.NonExpiring,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "set live form failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, usecase.NewPlayerDocument(item))
}

func (h *Handler) RefreshAffinities(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RefreshAffinities")
	defer span.End()

	result, err := h.playerService.RefreshAffinities(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "refresh affinities failed", "failed", result.Failed, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, refreshAffinitiesDTO{
		Players:   result.Players,
		Positions: result.Positions,
		Updated:   result.Updated,
		Failed:    result.Failed,
	})
}
