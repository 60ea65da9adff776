package player

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

func TestParsePosition(t *testing.T) {
	tests := []struct {
		raw     string
		want    Position
		wantErr bool
	}{
		{raw: "DC", want: PositionCentreForward},
		{raw: " li ", want: PositionLeftBack},
		{raw: "lat", want: ArchetypeFullBack},
		{raw: "ST", wantErr: true},
		{raw: "", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParsePosition(tt.raw)
		if tt.wantErr {
			if !errors.Is(err, ErrUnknownPosition) {
				t.Fatalf("ParsePosition(%q): expected ErrUnknownPosition, got %v", tt.raw, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Fatalf("ParsePosition(%q): got=%q err=%v", tt.raw, got, err)
		}
	}
}

func TestPosition_ArchetypeAndMirror(t *testing.T) {
	if PositionLeftBack.Archetype() != ArchetypeFullBack || PositionRightBack.Archetype() != ArchetypeFullBack {
		t.Fatalf("full-backs should share an archetype")
	}
	if PositionRightMidfielder.Archetype() != ArchetypeWideMidfielder {
		t.Fatalf("unexpected archetype for MDD")
	}
	if PositionCentreBack.Archetype() != PositionCentreBack {
		t.Fatalf("centre-back is its own archetype")
	}
	if mirror, ok := PositionLeftWinger.Mirror(); !ok || mirror != PositionRightWinger {
		t.Fatalf("unexpected mirror: %s %v", mirror, ok)
	}
	if _, ok := PositionLeftMidfielder.Mirror(); ok {
		t.Fatalf("wide midfielders are not interchangeable")
	}
}

func TestParseStyle(t *testing.T) {
	if got, err := ParseStyle(""); err != nil || got != StyleNone {
		t.Fatalf("empty style: got=%q err=%v", got, err)
	}
	if got, err := ParseStyle("señuelo"); err != nil || got != StyleDummyRunner {
		t.Fatalf("legacy style must parse: got=%q err=%v", got, err)
	}
	if _, err := ParseStyle(string(StyleGoalPoacherTall)); !errors.Is(err, ErrUnknownStyle) {
		t.Fatalf("build-only style must not parse as card style: %v", err)
	}
	if got, err := ParseBuildStyle("cazagoles BAJO"); err != nil || got != StyleGoalPoacherShort {
		t.Fatalf("build style: got=%q err=%v", got, err)
	}
	if NormalizeStyle(StyleDummyRunner) != StyleDeepLyingForward {
		t.Fatalf("alias not applied")
	}
	if !IsActiveStyle(PositionSecondStriker, StyleDummyRunner) {
		t.Fatalf("active check must normalize first")
	}
}

func TestSkillSet(t *testing.T) {
	set, err := ParseSkillSet([]string{"revulsivo", "Liderazgo"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !set.Has(SkillSuperSub) {
		t.Fatalf("expected super sub skill")
	}
	if got := set.Sorted(); !reflect.DeepEqual(got, []Skill{"Liderazgo", SkillSuperSub}) {
		t.Fatalf("unexpected order: %v", got)
	}
	if _, err := ParseSkillSet([]string{"Teletransporte"}); !errors.Is(err, ErrUnknownSkill) {
		t.Fatalf("expected ErrUnknownSkill, got %v", err)
	}
}

func TestProgressionBuild_Validate(t *testing.T) {
	if err := (ProgressionBuild{CategoryShooting: 16}).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := (ProgressionBuild{CategoryShooting: 17}).Validate(); !errors.Is(err, ErrInvalidLevel) {
		t.Fatalf("expected ErrInvalidLevel, got %v", err)
	}
	if _, err := ParseProgressionBuild(map[string]int{"speed": 2}); !errors.Is(err, ErrUnknownCategory) {
		t.Fatalf("expected ErrUnknownCategory, got %v", err)
	}
	if got := (ProgressionBuild{CategoryPassing: 40}).Level(CategoryPassing); got != MaxCategoryLevel {
		t.Fatalf("level must clamp, got %d", got)
	}
}

func TestParseAttributeStats(t *testing.T) {
	got, err := ParseAttributeStats(map[string]int{"finishing": 88, "gkReach": 40})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got[StatFinishing] != 88 || got[StatGKReach] != 40 {
		t.Fatalf("unexpected stats: %+v", got)
	}
	if _, err := ParseAttributeStats(map[string]int{"finishing": 120}); !errors.Is(err, ErrInvalidStat) {
		t.Fatalf("expected ErrInvalidStat, got %v", err)
	}
	if _, err := ParseAttributeStats(map[string]int{"vision": 80}); !errors.Is(err, ErrUnknownStat) {
		t.Fatalf("expected ErrUnknownStat, got %v", err)
	}
}

func TestCard_IsSpecial(t *testing.T) {
	tests := map[string]bool{
		"Pedri":                 false,
		"Pedri POTW 02/03":      true,
		"Vinicius potm febrero": true,
		"Rodri POTS 24/25":      true,
		"Mbappé Epic":           false,
	}
	for name, want := range tests {
		if got := (Card{Name: name}).IsSpecial(); got != want {
			t.Fatalf("IsSpecial(%q): got=%v want=%v", name, got, want)
		}
	}
}

func TestCard_RatedPositionsInFormationOrder(t *testing.T) {
	card := Card{Positions: map[Position]PositionRecord{
		PositionCentreForward: {Ratings: []float64{7}},
		PositionGoalkeeper:    {Ratings: []float64{6}},
		PositionLeftWinger:    {},
	}}

	got := card.RatedPositions()
	if !reflect.DeepEqual(got, []Position{PositionGoalkeeper, PositionCentreForward}) {
		t.Fatalf("unexpected positions: %v", got)
	}
	if len(card.Histories()) != 2 {
		t.Fatalf("empty histories must be skipped")
	}
}

func TestPlayer_CloneIsDeep(t *testing.T) {
	height := 180
	p := Player{
		ID: "p",
		Cards: []Card{{
			ID:        "c",
			BaseStats: AttributeStats{StatSpeed: 80},
			Physical:  PhysicalAttributes{Height: &height},
			Positions: map[Position]PositionRecord{PositionCentreBack: {Ratings: []float64{7}}},
		}},
	}

	clone := p.Clone()
	clone.Cards[0].BaseStats[StatSpeed] = 10
	*clone.Cards[0].Physical.Height = 150
	record := clone.Cards[0].Positions[PositionCentreBack]
	record.Ratings[0] = 1

	if p.Cards[0].BaseStats[StatSpeed] != 80 || *p.Cards[0].Physical.Height != 180 || p.Cards[0].Positions[PositionCentreBack].Ratings[0] != 7 {
		t.Fatalf("clone shares state with the original")
	}
}

func TestPlayer_Validate(t *testing.T) {
	valid := Player{ID: "p", Name: "Pedri", Cards: []Card{{ID: "c", Name: "Pedri"}}}
	if err := valid.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	dup := valid.Clone()
	dup.Cards = append(dup.Cards, Card{ID: "c", Name: "Pedri 2"})
	if err := dup.Validate(); err == nil {
		t.Fatalf("expected duplicate card error")
	}

	badRating := valid.Clone()
	badRating.Cards[0].Positions = map[Position]PositionRecord{PositionCentralMidfielder: {Ratings: []float64{11}}}
	if err := badRating.Validate(); err == nil {
		t.Fatalf("expected rating range error")
	}
}

func TestEffectiveLiveForm(t *testing.T) {
	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	ttl := 7 * 24 * time.Hour

	tests := []struct {
		name   string
		player Player
		now    time.Time
		want   LiveForm
	}{
		{name: "fresh", player: Player{LiveForm: LiveFormA, LiveFormSetAt: now.Add(-time.Hour)}, now: now, want: LiveFormA},
		{name: "expired", player: Player{LiveForm: LiveFormA, LiveFormSetAt: now.Add(-8 * 24 * time.Hour)}, now: now, want: LiveFormNone},
		{name: "non-expiring", player: Player{LiveForm: LiveFormE, LiveFormNonExpiring: true, LiveFormSetAt: now.Add(-80 * 24 * time.Hour)}, now: now, want: LiveFormE},
		{name: "expiry disabled", player: Player{LiveForm: LiveFormB, LiveFormSetAt: now.Add(-80 * 24 * time.Hour)}, want: LiveFormB},
		{name: "none", player: Player{}, now: now, want: LiveFormNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.player.EffectiveLiveForm(tt.now, ttl); got != tt.want {
				t.Fatalf("unexpected live form: got=%q want=%q", got, tt.want)
			}
		})
	}
}

func TestLiveFormBonus(t *testing.T) {
	want := map[LiveForm]float64{LiveFormA: 8, LiveFormB: 4, LiveFormC: 0, LiveFormD: -5, LiveFormE: -10, LiveFormNone: 0}
	for form, bonus := range want {
		if got := form.Bonus(); got != bonus {
			t.Fatalf("bonus for %q: got=%v want=%v", form, got, bonus)
		}
	}
	if _, err := ParseLiveForm("F"); !errors.Is(err, ErrUnknownLiveForm) {
		t.Fatalf("expected ErrUnknownLiveForm, got %v", err)
	}
}
