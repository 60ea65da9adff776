package formation

import (
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/squad-builder/internal/domain/player"
)

func elevenSlots() []Slot {
	positions := []player.Position{
		player.PositionGoalkeeper,
		player.PositionLeftBack,
		player.PositionCentreBack,
		player.PositionCentreBack,
		player.PositionRightBack,
		player.PositionDefensiveMidfielder,
		player.PositionCentralMidfielder,
		player.PositionCentralMidfielder,
		player.PositionLeftWinger,
		player.PositionRightWinger,
		player.PositionCentreForward,
	}
	out := make([]Slot, 0, len(positions))
	for _, pos := range positions {
		out = append(out, Slot{Target: SingleTarget(pos)})
	}
	return out
}

func TestFormation_Validate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Formation)
		targetErr error
		wantErr   bool
	}{
		{name: "valid", mutate: func(*Formation) {}},
		{
			name:      "too few slots",
			mutate:    func(f *Formation) { f.Slots = f.Slots[:10] },
			targetErr: ErrTooFewSlots,
			wantErr:   true,
		},
		{
			name:      "empty flexible target",
			mutate:    func(f *Formation) { f.Slots[8].Target = FlexibleTarget() },
			targetErr: ErrInvalidSlotTarget,
			wantErr:   true,
		},
		{
			name:      "archetype is not a slot position",
			mutate:    func(f *Formation) { f.Slots[1].Target = SingleTarget(player.ArchetypeFullBack) },
			targetErr: player.ErrUnknownPosition,
			wantErr:   true,
		},
		{
			name:      "unknown style",
			mutate:    func(f *Formation) { f.Slots[10].AllowedStyles = []player.Style{"Pichichi"} },
			targetErr: player.ErrUnknownStyle,
			wantErr:   true,
		},
		{
			name:    "negative goals",
			mutate:  func(f *Formation) { f.Results = []MatchResult{{GoalsFor: -1}} },
			wantErr: true,
		},
		{
			name:    "missing name",
			mutate:  func(f *Formation) { f.Name = " " },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := Formation{ID: "f-1", Name: "4-3-3", Slots: elevenSlots()}
			tt.mutate(&f)
			err := f.Validate()
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error")
			}
			if tt.targetErr != nil && !errors.Is(err, tt.targetErr) {
				t.Fatalf("expected %v, got %v", tt.targetErr, err)
			}
		})
	}
}

func TestSlotTarget(t *testing.T) {
	single := SingleTarget(player.PositionCentreBack)
	if single.IsFlexible() || single.Primary() != player.PositionCentreBack {
		t.Fatalf("unexpected single target: %+v", single)
	}

	flex := FlexibleTarget(player.PositionLeftWinger, player.PositionRightWinger)
	if !flex.IsFlexible() || !flex.Contains(player.PositionRightWinger) || flex.Contains(player.PositionCentreForward) {
		t.Fatalf("unexpected flexible target: %+v", flex)
	}

	positions := flex.Positions()
	positions[0] = player.PositionGoalkeeper
	if flex.Primary() != player.PositionLeftWinger {
		t.Fatalf("Positions must return a copy")
	}
}

func TestSlot_StyleFilter(t *testing.T) {
	if (Slot{}).HasStyleFilter() {
		t.Fatalf("empty filter reported as set")
	}
	unstyled := Slot{AllowedStyles: []player.Style{player.StyleNone}}
	if !unstyled.RequiresUnstyled() {
		t.Fatalf("Ninguno-only slot must require an unstyled card")
	}
	mixed := Slot{AllowedStyles: []player.Style{player.StyleNone, player.StyleDestroyer}}
	if mixed.RequiresUnstyled() {
		t.Fatalf("mixed filter must not require an unstyled card")
	}
}

func TestFormation_Summary(t *testing.T) {
	day := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	f := Formation{Results: []MatchResult{
		{GoalsFor: 3, GoalsAgainst: 1, PlayedAt: day},
		{GoalsFor: 0, GoalsAgainst: 0, PlayedAt: day.AddDate(0, 0, 1)},
		{GoalsFor: 1, GoalsAgainst: 2, PlayedAt: day.AddDate(0, 0, 2)},
		{GoalsFor: 2, GoalsAgainst: 0, PlayedAt: day.AddDate(0, 0, 3)},
	}}

	got := f.Summary()
	want := Summary{Played: 4, Wins: 2, Draws: 1, Losses: 1, GoalsFor: 6, GoalsAgainst: 3, GoalDifference: 3, WinRate: 0.5}
	if got != want {
		t.Fatalf("unexpected summary: got=%+v want=%+v", got, want)
	}

	if empty := (Formation{}).Summary(); empty != (Summary{}) {
		t.Fatalf("expected zero summary, got %+v", empty)
	}
}
