package usecase

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/riskibarqy/squad-builder/internal/domain/player"
	"github.com/riskibarqy/squad-builder/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/squad-builder/internal/platform/logging"
)

func TestBackupService_ExportThenImport(t *testing.T) {
	ctx := context.Background()
	source := newSeededRepos()
	exporter := NewBackupService(source.players, source.formations, source.builds, logging.NewNop())
	exporter.now = func() time.Time { return testNow }

	raw, err := exporter.Export(ctx)
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	var snapshot Snapshot
	if err := sonic.Unmarshal(raw, &snapshot); err != nil {
		t.Fatalf("decode export: %v", err)
	}
	if !snapshot.ExportedAt.Equal(testNow) {
		t.Fatalf("unexpected exportedAt: %s", snapshot.ExportedAt)
	}
	if len(snapshot.Players) != 4 || len(snapshot.Formations) != 2 || len(snapshot.IdealBuilds) != 8 {
		t.Fatalf("unexpected counts: %d players %d formations %d builds",
			len(snapshot.Players), len(snapshot.Formations), len(snapshot.IdealBuilds))
	}
	if !strings.Contains(string(raw), `"players":[`) || !strings.Contains(string(raw), `"formations":[`) {
		t.Fatalf("unexpected snapshot layout: %s", raw[:min(len(raw), 200)])
	}

	target := seededRepos{
		players:    memory.NewPlayerRepository(nil),
		formations: memory.NewFormationRepository(nil),
		builds:     memory.NewIdealBuildRepository(nil),
	}
	importer := NewBackupService(target.players, target.formations, target.builds, logging.NewNop())
	result, err := importer.Import(ctx, raw)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if result.Players != 4 || result.Formations != 2 || result.IdealBuilds != 8 {
		t.Fatalf("unexpected import result: %+v", result)
	}

	want, _, _ := source.players.GetByID(ctx, "player-midfielder-01")
	got, exists, err := target.players.GetByID(ctx, "player-midfielder-01")
	if err != nil || !exists {
		t.Fatalf("imported player missing: exists=%t err=%v", exists, err)
	}
	if len(got.Cards) != len(want.Cards) {
		t.Fatalf("unexpected card count: %d", len(got.Cards))
	}
	for i := range want.Cards {
		if !reflect.DeepEqual(got.Cards[i].Positions[player.PositionCentralMidfielder].Ratings,
			want.Cards[i].Positions[player.PositionCentralMidfielder].Ratings) {
			t.Fatalf("ratings differ for card %s", want.Cards[i].ID)
		}
		if !reflect.DeepEqual(got.Cards[i].Skills.Sorted(), want.Cards[i].Skills.Sorted()) {
			t.Fatalf("skills differ for card %s", want.Cards[i].ID)
		}
	}

	formation, exists, err := target.formations.GetByID(ctx, memory.FormationID433)
	if err != nil || !exists {
		t.Fatalf("imported formation missing: exists=%t err=%v", exists, err)
	}
	if !formation.Slots[6].Target.IsFlexible() || len(formation.Slots[9].AllowedStyles) != 2 {
		t.Fatalf("slot targets not restored: %+v", formation.Slots)
	}
}

func TestBackupService_Import_RejectsInvalidSnapshots(t *testing.T) {
	target := seededRepos{
		players:    memory.NewPlayerRepository(nil),
		formations: memory.NewFormationRepository(nil),
		builds:     memory.NewIdealBuildRepository(nil),
	}
	service := NewBackupService(target.players, target.formations, target.builds, logging.NewNop())

	tests := []struct {
		name string
		raw  string
	}{
		{name: "not json", raw: `{"players":`},
		{name: "bad position", raw: `{"players":[{"id":"p","name":"P","cards":[{"id":"c","name":"C","style":"Ninguno","positions":[{"position":"XX","ratings":[7]}]}]}],"formations":[]}`},
		{name: "short formation", raw: `{"players":[],"formations":[{"id":"f","name":"F","slots":[{"positions":["PT"]}]}]}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := service.Import(context.Background(), []byte(tc.raw)); !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}

	players, _ := target.players.List(context.Background())
	if len(players) != 0 {
		t.Fatalf("nothing must be written from an invalid snapshot")
	}
}

func TestBackupService_Import_PlainSnapshotWithoutVersion(t *testing.T) {
	ctx := context.Background()
	target := seededRepos{
		players:    memory.NewPlayerRepository(nil),
		formations: memory.NewFormationRepository(nil),
		builds:     memory.NewIdealBuildRepository(nil),
	}
	service := NewBackupService(target.players, target.formations, target.builds, logging.NewNop())

	result, err := service.Import(ctx, []byte(`{"players":[],"formations":[]}`))
	if err != nil {
		t.Fatalf("import empty snapshot: %v", err)
	}
	if result != (ImportResult{}) {
		t.Fatalf("unexpected result for empty snapshot: %+v", result)
	}

	raw := `{"players":[{"id":"p-1","name":"Pau","cards":[{"id":"c-1","name":"Pau","style":"Ninguno","positions":[{"position":"DFC","ratings":[7,8]}]}]}],"formations":[]}`
	result, err = service.Import(ctx, []byte(raw))
	if err != nil {
		t.Fatalf("import snapshot: %v", err)
	}
	if result.Players != 1 || result.Formations != 0 || result.IdealBuilds != 0 {
		t.Fatalf("unexpected result: %+v", result)
	}
	stored, ok, err := target.players.GetByID(ctx, "p-1")
	if err != nil || !ok {
		t.Fatalf("imported player missing: ok=%v err=%v", ok, err)
	}
	ratings := stored.Cards[0].Positions[player.PositionCentreBack].Ratings
	if len(ratings) != 2 || ratings[1] != 8 {
		t.Fatalf("unexpected ratings: %v", ratings)
	}
}
