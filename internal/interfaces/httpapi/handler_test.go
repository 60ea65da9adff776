package httpapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/squad-builder/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/squad-builder/internal/platform/id"
	"github.com/riskibarqy/squad-builder/internal/platform/logging"
	"github.com/riskibarqy/squad-builder/internal/usecase"
)

type testEnvelope[T any] struct {
	APIVersion string           `json:"apiVersion"`
	Data       T                `json:"data"`
	Error      *googleErrorBody `json:"error"`
}

func newTestRouter(t *testing.T, seeded bool) http.Handler {
	t.Helper()

	var (
		players    = memory.NewPlayerRepository(nil)
		formations = memory.NewFormationRepository(nil)
		builds     = memory.NewIdealBuildRepository(nil)
	)
	if seeded {
		players = memory.NewPlayerRepository(memory.SeedPlayers())
		formations = memory.NewFormationRepository(memory.SeedFormations())
		builds = memory.NewIdealBuildRepository(memory.SeedIdealBuilds())
	}

	logger := logging.NewNop()
	ids := id.NewUUIDGenerator()
	liveFormTTL := 7 * 24 * time.Hour
	handler := NewHandler(
		usecase.NewPlayerService(players, builds, ids, 2, liveFormTTL, logger),
		usecase.NewIdealBuildService(builds, ids, logger),
		usecase.NewFormationService(formations, ids, logger),
		usecase.NewLineupService(players, formations, builds, liveFormTTL, logger),
		usecase.NewBackupService(players, formations, builds, logger),
		logger,
	)
	return NewRouter(handler, logger, []string{"*"})
}

func serve(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope[T any](t *testing.T, rec *httptest.ResponseRecorder) testEnvelope[T] {
	t.Helper()

	var out testEnvelope[T]
	if err := sonic.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal response body: %v (%s)", err, rec.Body.String())
	}
	return out
}

func TestHandler_Healthz(t *testing.T) {
	rec := serve(newTestRouter(t, false), http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
}

func TestHandler_ListPlayersFiltersByLeague(t *testing.T) {
	rec := serve(newTestRouter(t, true), http.MethodGet, "/v1/players?league=laliga", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	body := decodeEnvelope[[]usecase.PlayerDocument](t, rec)
	if len(body.Data) != 2 {
		t.Fatalf("expected 2 LaLiga players, got %d", len(body.Data))
	}
}

func TestHandler_GetPlayerNotFound(t *testing.T) {
	rec := serve(newTestRouter(t, true), http.MethodGet, "/v1/players/missing", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}

	body := decodeEnvelope[any](t, rec)
	if body.Error == nil || body.Error.Status != "NOT_FOUND" {
		t.Fatalf("unexpected error body: %+v", body.Error)
	}
}

func TestHandler_AddRatingCreatesPlayerAndCard(t *testing.T) {
	router := newTestRouter(t, false)

	rec := serve(router, http.MethodPost, "/v1/ratings",
		`{"playerName":"Nico Vidal","nationality":"Chile","style":"Orquestador","league":"LaLiga","position":"MC","rating":7.5}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	body := decodeEnvelope[usecase.PlayerDocument](t, rec)
	if body.Data.Name != "Nico Vidal" || len(body.Data.Cards) != 1 {
		t.Fatalf("unexpected player: %+v", body.Data)
	}
	card := body.Data.Cards[0]
	if card.Name != "Nico Vidal" || len(card.Positions) != 1 {
		t.Fatalf("unexpected card: %+v", card)
	}
	if card.Positions[0].Position != "MC" || card.Positions[0].Average != 7.5 {
		t.Fatalf("unexpected position record: %+v", card.Positions[0])
	}
}

func TestHandler_AddRatingRejectsInvalidPayload(t *testing.T) {
	router := newTestRouter(t, true)
	payloads := map[string]string{
		"missing rating":   `{"playerId":"player-striker-01","cardId":"card-striker-01","position":"DC"}`,
		"rating too high":  `{"playerId":"player-striker-01","cardId":"card-striker-01","position":"DC","rating":11}`,
		"unknown field":    `{"playerId":"player-striker-01","position":"DC","rating":7,"goals":2}`,
		"unknown position": `{"playerId":"player-striker-01","cardId":"card-striker-01","position":"XX","rating":7}`,
		"archetype":        `{"playerId":"player-striker-01","cardId":"card-striker-01","position":"EXT","rating":7}`,
		"no player":        `{"position":"DC","rating":7}`,
		"malformed json":   `{"position":`,
	}

	for name, payload := range payloads {
		t.Run(name, func(t *testing.T) {
			rec := serve(router, http.MethodPost, "/v1/ratings", payload)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected status 400, got %d: %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestHandler_RemoveLastRatingDropsEmptyPosition(t *testing.T) {
	router := newTestRouter(t, true)

	rec := serve(router, http.MethodDelete, "/v1/players/player-striker-01/cards/card-striker-01/positions/SD/ratings/last", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	body := decodeEnvelope[removeRatingDTO](t, rec)
	if body.Data.CardRemoved || body.Data.PlayerRemoved || body.Data.Player == nil {
		t.Fatalf("unexpected result: %+v", body.Data)
	}
	for _, pos := range body.Data.Player.Cards[0].Positions {
		if pos.Position == "SD" {
			t.Fatalf("expected SD record to be removed")
		}
	}
}

func TestHandler_AnalyzeCard(t *testing.T) {
	rec := serve(newTestRouter(t, true), http.MethodGet,
		"/v1/players/player-striker-01/cards/card-striker-01/positions/DC/analysis", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	body := decodeEnvelope[cardAnalysisDTO](t, rec)
	if body.Data.Position != "DC" || body.Data.Matches != 4 {
		t.Fatalf("unexpected analysis: %+v", body.Data)
	}
	if body.Data.IdealBuild == nil {
		t.Fatalf("expected a resolved ideal build")
	}
}

func TestHandler_SuggestBuildRejectsNegativeBudget(t *testing.T) {
	rec := serve(newTestRouter(t, true), http.MethodGet,
		"/v1/players/player-striker-01/cards/card-striker-01/positions/DC/suggestion?budget=-3", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestHandler_GenerateLineup(t *testing.T) {
	rec := serve(newTestRouter(t, true), http.MethodPost, "/v1/lineups/generate",
		`{"formationId":"`+memory.FormationID433+`","sortBy":"general"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	body := decodeEnvelope[lineupDTO](t, rec)
	if len(body.Data.Starters) != 11 || len(body.Data.Substitutes) != 11 {
		t.Fatalf("unexpected lineup size: %d starters, %d substitutes", len(body.Data.Starters), len(body.Data.Substitutes))
	}
	if body.Data.Starters[0].PlayerID != "player-keeper-01" {
		t.Fatalf("expected seeded keeper in goal, got %+v", body.Data.Starters[0])
	}
}

func TestHandler_GenerateLineupUnknownFormation(t *testing.T) {
	rec := serve(newTestRouter(t, true), http.MethodPost, "/v1/lineups/generate", `{"formationId":"missing"}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
}

func TestHandler_FormationLifecycle(t *testing.T) {
	router := newTestRouter(t, false)

	slots := make([]string, 0, 11)
	for _, pos := range []string{"PT", "LI", "DFC", "DFC", "LD", "MDI", "MC", "MC", "MDD", "DC", "DC"} {
		slots = append(slots, `{"positions":["`+pos+`"],"x":50,"y":50}`)
	}
	payload := `{"name":"4-4-2","tactic":"counter","slots":[` + strings.Join(slots, ",") + `]}`

	rec := serve(router, http.MethodPost, "/v1/formations", payload)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}
	created := decodeEnvelope[usecase.FormationDocument](t, rec)
	if created.Data.ID == "" || len(created.Data.Slots) != 11 {
		t.Fatalf("unexpected formation: %+v", created.Data)
	}

	base := "/v1/formations/" + created.Data.ID
	rec = serve(router, http.MethodPost, base+"/results", `{"goalsFor":2,"goalsAgainst":1}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = serve(router, http.MethodGet, base+"/summary", "")
	summary := decodeEnvelope[formationSummaryDTO](t, rec)
	if summary.Data.Played != 1 || summary.Data.Wins != 1 || summary.Data.GoalDifference != 1 {
		t.Fatalf("unexpected summary: %+v", summary.Data)
	}

	rec = serve(router, http.MethodDelete, base, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	rec = serve(router, http.MethodGet, base, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404 after delete, got %d", rec.Code)
	}
}

func TestHandler_CreateFormationRejectsShortSlots(t *testing.T) {
	rec := serve(newTestRouter(t, false), http.MethodPost, "/v1/formations",
		`{"name":"broken","slots":[{"positions":["PT"]}]}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestHandler_IdealBuilds(t *testing.T) {
	router := newTestRouter(t, true)

	rec := serve(router, http.MethodGet, "/v1/ideal-builds?position=DC", "")
	list := decodeEnvelope[[]usecase.IdealBuildDocument](t, rec)
	if len(list.Data) != 2 {
		t.Fatalf("expected 2 DC builds, got %d", len(list.Data))
	}

	rec = serve(router, http.MethodDelete, "/v1/ideal-builds/missing", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}

	rec = serve(router, http.MethodDelete, "/v1/ideal-builds/"+list.Data[0].ID, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestHandler_BackupRoundTrip(t *testing.T) {
	rec := serve(newTestRouter(t, true), http.MethodGet, "/v1/backup", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Disposition"); !strings.Contains(got, "attachment") {
		t.Fatalf("unexpected Content-Disposition: %q", got)
	}

	target := newTestRouter(t, false)
	rec = serve(target, http.MethodPost, "/v1/backup", rec.Body.String())
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	result := decodeEnvelope[importResultDTO](t, rec)
	if result.Data.Players != 4 || result.Data.Formations != 2 || result.Data.IdealBuilds != 8 {
		t.Fatalf("unexpected import result: %+v", result.Data)
	}

	rec = serve(target, http.MethodGet, "/v1/players", "")
	players := decodeEnvelope[[]usecase.PlayerDocument](t, rec)
	if len(players.Data) != 4 {
		t.Fatalf("expected 4 imported players, got %d", len(players.Data))
	}
}
