package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/squad-builder/internal/domain/player"
	"github.com/riskibarqy/squad-builder/internal/infrastructure/repository/memory"
)

func TestPlayerService_AddRating_CreatesThenAppends(t *testing.T) {
	ctx := context.Background()
	repos := seededRepos{
		players: memory.NewPlayerRepository(nil),
		builds:  memory.NewIdealBuildRepository(memory.SeedIdealBuilds()),
	}
	service := newTestPlayerService(repos)

	created, err := service.AddRating(ctx, AddRatingInput{
		PlayerName:  "Nico Valdés",
		Nationality: "Spain",
		Style:       "cazagoles",
		League:      "LaLiga",
		Position:    "dc",
		Rating:      7.5,
	})
	if err != nil {
		t.Fatalf("add first rating: %v", err)
	}
	if created.ID != "id-1" || len(created.Cards) != 1 {
		t.Fatalf("unexpected created player: %+v", created)
	}
	card := created.Cards[0]
	if card.ID != "id-2" || card.Name != "Nico Valdés" || card.Style != player.StyleGoalPoacher {
		t.Fatalf("unexpected created card: %+v", card)
	}

	updated, err := service.AddRating(ctx, AddRatingInput{
		PlayerID: created.ID,
		CardID:   card.ID,
		Position: "DC",
		Rating:   8,
	})
	if err != nil {
		t.Fatalf("add second rating: %v", err)
	}
	ratings := updated.Cards[0].Positions[player.PositionCentreForward].Ratings
	if len(ratings) != 2 || ratings[0] != 7.5 || ratings[1] != 8 {
		t.Fatalf("unexpected ratings: %v", ratings)
	}

	stored, err := service.GetPlayer(ctx, created.ID)
	if err != nil {
		t.Fatalf("get player: %v", err)
	}
	if !stored.UpdatedAt.Equal(testNow) {
		t.Fatalf("unexpected UpdatedAt: %s", stored.UpdatedAt)
	}
}

func TestPlayerService_AddRating_InvalidInput(t *testing.T) {
	service := newTestPlayerService(newSeededRepos())

	tests := []struct {
		name  string
		input AddRatingInput
		want  error
	}{
		{name: "rating above ten", input: AddRatingInput{PlayerName: "A", Position: "DC", Rating: 10.5}, want: ErrInvalidInput},
		{name: "negative rating", input: AddRatingInput{PlayerName: "A", Position: "DC", Rating: -1}, want: ErrInvalidInput},
		{name: "archetype position", input: AddRatingInput{PlayerName: "A", Position: "LAT", Rating: 7}, want: ErrInvalidInput},
		{name: "unknown position", input: AddRatingInput{PlayerName: "A", Position: "XX", Rating: 7}, want: ErrInvalidInput},
		{name: "unknown style", input: AddRatingInput{PlayerName: "A", Style: "Libero", Position: "DC", Rating: 7}, want: ErrInvalidInput},
		{name: "missing name", input: AddRatingInput{Position: "DC", Rating: 7}, want: ErrInvalidInput},
		{name: "unknown player", input: AddRatingInput{PlayerID: "missing", Position: "DC", Rating: 7}, want: ErrNotFound},
		{name: "unknown card", input: AddRatingInput{PlayerID: "player-striker-01", CardID: "missing", Position: "DC", Rating: 7}, want: ErrNotFound},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := service.AddRating(context.Background(), tc.input)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestPlayerService_RemoveLastRating_Cascades(t *testing.T) {
	ctx := context.Background()
	repos := newSeededRepos()
	service := newTestPlayerService(repos)

	result, err := service.RemoveLastRating(ctx, "player-striker-01", "card-striker-01", "SD")
	if err != nil {
		t.Fatalf("remove SD rating: %v", err)
	}
	if result.CardRemoved || result.PlayerRemoved || result.Player == nil {
		t.Fatalf("unexpected result: %+v", result)
	}
	if _, ok := result.Player.Cards[0].Positions[player.PositionSecondStriker]; ok {
		t.Fatalf("expected emptied SD record to be removed")
	}

	created, err := service.AddRating(ctx, AddRatingInput{PlayerName: "One Match", Position: "MC", Rating: 6})
	if err != nil {
		t.Fatalf("add rating: %v", err)
	}
	result, err = service.RemoveLastRating(ctx, created.ID, created.Cards[0].ID, "MC")
	if err != nil {
		t.Fatalf("remove only rating: %v", err)
	}
	if !result.CardRemoved || !result.PlayerRemoved || result.Player != nil {
		t.Fatalf("expected full cascade, got %+v", result)
	}
	if _, err := service.GetPlayer(ctx, created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected removed player, got %v", err)
	}

	if _, err := service.RemoveLastRating(ctx, "player-striker-01", "card-striker-01", "SD"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for empty position, got %v", err)
	}
}

func TestPlayerService_RemoveLastRating_KeepsPlayerWithOtherCards(t *testing.T) {
	ctx := context.Background()
	service := newTestPlayerService(newSeededRepos())

	result, err := service.RemoveLastRating(ctx, "player-midfielder-01", "card-midfielder-01-potm", "MC")
	if err != nil {
		t.Fatalf("remove rating: %v", err)
	}
	if result.CardRemoved {
		t.Fatalf("card still has one rating")
	}
	result, err = service.RemoveLastRating(ctx, "player-midfielder-01", "card-midfielder-01-potm", "MC")
	if err != nil {
		t.Fatalf("remove rating: %v", err)
	}
	if !result.CardRemoved || result.PlayerRemoved || len(result.Player.Cards) != 1 {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestPlayerService_UpdateCardAndStats(t *testing.T) {
	ctx := context.Background()
	service := newTestPlayerService(newSeededRepos())

	name := "Mateo Arriaga TOTS"
	style := "Hombre de área"
	updated, err := service.UpdateCard(ctx, UpdateCardInput{
		PlayerID: "player-striker-01",
		CardID:   "card-striker-01",
		Name:     &name,
		Style:    &style,
	})
	if err != nil {
		t.Fatalf("update card: %v", err)
	}
	card := updated.Cards[0]
	if card.Name != name || card.Style != player.StyleFoxInTheBox || card.League != "Serie A" {
		t.Fatalf("unexpected card after update: %+v", card)
	}

	badStyle := "Libero"
	if _, err := service.UpdateCard(ctx, UpdateCardInput{PlayerID: "player-striker-01", CardID: "card-striker-01", Style: &badStyle}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown style, got %v", err)
	}

	height := 188
	updated, err = service.UpdateCardStats(ctx, UpdateCardStatsInput{
		PlayerID:          "player-striker-01",
		CardID:            "card-striker-01",
		BaseStats:         map[string]int{"finishing": 90, "heading": 80},
		Height:            &height,
		Skills:            []string{"cabezazo"},
		ProgressionPoints: 60,
	})
	if err != nil {
		t.Fatalf("update stats: %v", err)
	}
	card = updated.Cards[0]
	if card.BaseStats[player.StatFinishing] != 90 || len(card.BaseStats) != 2 {
		t.Fatalf("unexpected base stats: %v", card.BaseStats)
	}
	if card.Physical.Height == nil || *card.Physical.Height != 188 || !card.Skills.Has("Cabezazo") {
		t.Fatalf("unexpected physical/skills: %+v", card)
	}

	_, err = service.UpdateCardStats(ctx, UpdateCardStatsInput{
		PlayerID:  "player-striker-01",
		CardID:    "card-striker-01",
		BaseStats: map[string]int{"shotPower": 90},
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown stat, got %v", err)
	}
}

func TestPlayerService_SaveBuild(t *testing.T) {
	ctx := context.Background()
	repos := newSeededRepos()
	service := newTestPlayerService(repos)

	analysis, err := service.SaveBuild(ctx, SaveBuildInput{
		PlayerID: "player-striker-01",
		CardID:   "card-striker-01",
		Position: "DC",
		Build:    map[string]int{"shooting": 4, "dribbling": 2},
	})
	if err != nil {
		t.Fatalf("save build: %v", err)
	}
	if analysis.BuildCost != 6 || analysis.CachedAffinity == nil || analysis.Stale {
		t.Fatalf("unexpected analysis: %+v", analysis)
	}
	if analysis.Resolution.Build == nil || analysis.Resolution.Build.ID != "build-dc-short" {
		t.Fatalf("unexpected resolved build: %+v", analysis.Resolution)
	}

	stored, _, err := repos.players.GetByID(ctx, "player-striker-01")
	if err != nil {
		t.Fatalf("get player: %v", err)
	}
	record := stored.Cards[0].Positions[player.PositionCentreForward]
	if record.Build.Level(player.CategoryShooting) != 4 || record.CachedAffinity == nil {
		t.Fatalf("unexpected stored record: %+v", record)
	}
	if *record.CachedAffinity != analysis.Affinity.Score || !record.AffinityComputedAt.Equal(testNow) {
		t.Fatalf("unexpected cached affinity: %v at %s", *record.CachedAffinity, record.AffinityComputedAt)
	}
	if len(record.Ratings) != 4 {
		t.Fatalf("ratings must survive a build save: %v", record.Ratings)
	}
}

func TestPlayerService_SaveBuild_Rejections(t *testing.T) {
	service := newTestPlayerService(newSeededRepos())

	tests := []struct {
		name  string
		input SaveBuildInput
	}{
		{
			name:  "over budget",
			input: SaveBuildInput{PlayerID: "player-striker-01", CardID: "card-striker-01", Position: "DC", Build: map[string]int{"shooting": 16, "dribbling": 16}},
		},
		{
			name:  "level above sixteen",
			input: SaveBuildInput{PlayerID: "player-striker-01", CardID: "card-striker-01", Position: "DC", Build: map[string]int{"shooting": 17}},
		},
		{
			name:  "goalkeeper category on outfield position",
			input: SaveBuildInput{PlayerID: "player-striker-01", CardID: "card-striker-01", Position: "DC", Build: map[string]int{"gk1": 1}},
		},
		{
			name:  "special card",
			input: SaveBuildInput{PlayerID: "player-midfielder-01", CardID: "card-midfielder-01-potm", Position: "MC", Build: map[string]int{"passing": 1}},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := service.SaveBuild(context.Background(), tc.input); !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestPlayerService_SetLiveForm(t *testing.T) {
	ctx := context.Background()
	service := newTestPlayerService(newSeededRepos())

	updated, err := service.SetLiveForm(ctx, SetLiveFormInput{PlayerID: "player-keeper-01", LiveForm: "d"})
	if err != nil {
		t.Fatalf("set live form: %v", err)
	}
	if updated.LiveForm != player.LiveFormD || !updated.LiveFormSetAt.Equal(testNow) {
		t.Fatalf("unexpected live form: %s at %s", updated.LiveForm, updated.LiveFormSetAt)
	}

	cleared, err := service.SetLiveForm(ctx, SetLiveFormInput{PlayerID: "player-winger-01", LiveForm: "", NonExpiring: true})
	if err != nil {
		t.Fatalf("clear live form: %v", err)
	}
	if cleared.LiveForm != player.LiveFormNone || cleared.LiveFormNonExpiring || !cleared.LiveFormSetAt.IsZero() {
		t.Fatalf("unexpected cleared live form: %+v", cleared)
	}

	if _, err := service.SetLiveForm(ctx, SetLiveFormInput{PlayerID: "player-keeper-01", LiveForm: "F"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestPlayerService_AnalyzeCard(t *testing.T) {
	service := newTestPlayerService(newSeededRepos())

	analysis, err := service.AnalyzeCard(context.Background(), CardPositionInput{
		PlayerID: "player-striker-01",
		CardID:   "card-striker-01",
		Position: "DC",
	})
	if err != nil {
		t.Fatalf("analyze card: %v", err)
	}
	if analysis.Tactic != "possession" {
		t.Fatalf("expected stored tactic to be used, got %q", analysis.Tactic)
	}
	if analysis.Resolution.ResolvedStyle != player.StyleGoalPoacherShort {
		t.Fatalf("unexpected resolved style: %s", analysis.Resolution.ResolvedStyle)
	}
	if analysis.Stats.Matches != 4 || analysis.LiveForm != player.LiveFormB {
		t.Fatalf("unexpected stats/live form: %+v %s", analysis.Stats, analysis.LiveForm)
	}
	if analysis.SubstituteScore != analysis.StarterScore {
		t.Fatalf("striker has no super-sub skill, scores should match: %v %v", analysis.StarterScore, analysis.SubstituteScore)
	}
	if analysis.CachedAffinity != nil || analysis.Stale {
		t.Fatalf("seed data has no cached affinity")
	}

	service.now = func() time.Time { return testNow.Add(30 * 24 * time.Hour) }
	analysis, err = service.AnalyzeCard(context.Background(), CardPositionInput{
		PlayerID: "player-striker-01",
		CardID:   "card-striker-01",
		Position: "DC",
	})
	if err != nil {
		t.Fatalf("analyze card: %v", err)
	}
	if analysis.LiveForm != player.LiveFormNone {
		t.Fatalf("expected expired live form, got %s", analysis.LiveForm)
	}
}

func TestPlayerService_AnalyzeCard_SuperSub(t *testing.T) {
	service := newTestPlayerService(newSeededRepos())

	analysis, err := service.AnalyzeCard(context.Background(), CardPositionInput{
		PlayerID: "player-winger-01",
		CardID:   "card-winger-01",
		Position: "EI",
	})
	if err != nil {
		t.Fatalf("analyze card: %v", err)
	}
	if analysis.SubstituteScore != analysis.StarterScore+1 {
		t.Fatalf("expected +1 bench bonus: starter=%v substitute=%v", analysis.StarterScore, analysis.SubstituteScore)
	}
	if analysis.Resolution.Build == nil || analysis.Resolution.Build.ID != "build-ext" {
		t.Fatalf("expected archetype build, got %+v", analysis.Resolution)
	}
}

func TestPlayerService_SuggestBuild(t *testing.T) {
	service := newTestPlayerService(newSeededRepos())

	budget := 10
	suggestion, err := service.SuggestBuild(context.Background(), SuggestBuildInput{
		CardPositionInput: CardPositionInput{PlayerID: "player-striker-01", CardID: "card-striker-01", Position: "DC"},
		Budget:            &budget,
	})
	if err != nil {
		t.Fatalf("suggest build: %v", err)
	}
	if suggestion.Budget != 10 || suggestion.Cost > 10 || suggestion.Cost == 0 {
		t.Fatalf("unexpected suggestion cost: %+v", suggestion)
	}
	if suggestion.Analysis.BuildCost != suggestion.Cost {
		t.Fatalf("analysis must evaluate the suggested build: %d vs %d", suggestion.Analysis.BuildCost, suggestion.Cost)
	}

	stored, err := service.GetPlayer(context.Background(), "player-striker-01")
	if err != nil {
		t.Fatalf("get player: %v", err)
	}
	if len(stored.Cards[0].Positions[player.PositionCentreForward].Build) != 0 {
		t.Fatalf("suggestion must not be saved")
	}

	_, err = service.SuggestBuild(context.Background(), SuggestBuildInput{
		CardPositionInput: CardPositionInput{PlayerID: "player-midfielder-01", CardID: "card-midfielder-01-potm", Position: "MC"},
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for special card, got %v", err)
	}
}

func TestPlayerService_RefreshAffinities(t *testing.T) {
	ctx := context.Background()
	repos := newSeededRepos()
	service := newTestPlayerService(repos)

	result, err := service.RefreshAffinities(ctx)
	if err != nil {
		t.Fatalf("refresh affinities: %v", err)
	}
	if result.Players != 4 || result.Positions != 8 || result.Updated != 8 || result.Failed != 0 {
		t.Fatalf("unexpected first refresh: %+v", result)
	}

	stored, _, err := repos.players.GetByID(ctx, "player-keeper-01")
	if err != nil {
		t.Fatalf("get player: %v", err)
	}
	record := stored.Cards[0].Positions[player.PositionGoalkeeper]
	if record.CachedAffinity == nil || !record.AffinityComputedAt.Equal(testNow) {
		t.Fatalf("expected cached affinity on keeper, got %+v", record)
	}

	result, err = service.RefreshAffinities(ctx)
	if err != nil {
		t.Fatalf("second refresh: %v", err)
	}
	if result.Updated != 0 {
		t.Fatalf("expected no changes on second refresh, got %+v", result)
	}
}

func TestPlayerService_ListPlayers_Filters(t *testing.T) {
	service := newTestPlayerService(newSeededRepos())

	tests := []struct {
		name   string
		filter PlayerFilter
		want   []string
	}{
		{name: "no filter", filter: PlayerFilter{}, want: []string{"player-keeper-01", "player-midfielder-01", "player-striker-01", "player-winger-01"}},
		{name: "league", filter: PlayerFilter{League: "laliga"}, want: []string{"player-keeper-01", "player-midfielder-01"}},
		{name: "nationality", filter: PlayerFilter{Nationality: "Japan"}, want: []string{"player-winger-01"}},
		{name: "both", filter: PlayerFilter{League: "LaLiga", Nationality: "Japan"}, want: nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := service.ListPlayers(context.Background(), tc.filter)
			if err != nil {
				t.Fatalf("list players: %v", err)
			}
			if len(got) != len(tc.want) {
				t.Fatalf("unexpected count: got=%d want=%d", len(got), len(tc.want))
			}
			for i := range got {
				if got[i].ID != tc.want[i] {
					t.Fatalf("unexpected player at %d: %s", i, got[i].ID)
				}
			}
		})
	}
}

func TestPlayerService_CreatePlayer(t *testing.T) {
	ctx := context.Background()
	repos := seededRepos{
		players: memory.NewPlayerRepository(nil),
		builds:  memory.NewIdealBuildRepository(nil),
	}
	service := newTestPlayerService(repos)

	created, err := service.CreatePlayer(ctx, CreatePlayerInput{Name: "  Iker Sanz ", Nationality: "Spain"})
	if err != nil {
		t.Fatalf("create player: %v", err)
	}
	if created.ID != "id-1" || created.Name != "Iker Sanz" || len(created.Cards) != 0 {
		t.Fatalf("unexpected created player: %+v", created)
	}
	if !created.CreatedAt.Equal(testNow) {
		t.Fatalf("unexpected CreatedAt: %s", created.CreatedAt)
	}
	if _, err := service.GetPlayer(ctx, created.ID); err != nil {
		t.Fatalf("get created player: %v", err)
	}

	if _, err := service.CreatePlayer(ctx, CreatePlayerInput{Name: " "}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank name, got %v", err)
	}
}
