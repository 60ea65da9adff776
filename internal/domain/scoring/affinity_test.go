package scoring

import (
	"math"
	"testing"

	"github.com/riskibarqy/squad-builder/internal/domain/idealbuild"
	"github.com/riskibarqy/squad-builder/internal/domain/player"
)

func intPtr(v int) *int { return &v }

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestComputeAffinity_NilBuildIsZero(t *testing.T) {
	got := ComputeAffinity(player.AttributeStats{player.StatFinishing: 90}, nil, player.PhysicalAttributes{}, nil)
	if got.Score != 0 || len(got.Stats) != 0 || len(got.Physical) != 0 || len(got.Skills) != 0 {
		t.Fatalf("expected empty affinity, got %+v", got)
	}
}

func TestComputeAffinity_StatWeights(t *testing.T) {
	build := &idealbuild.IdealBuild{
		ID:       "dc-1",
		Position: player.PositionCentreForward,
		Stats: player.AttributeStats{
			player.StatFinishing:      90,
			player.StatSpeed:          85,
			player.StatHeading:        75,
			player.StatBallControl:    80,
			player.StatDribbling:      95,
			player.StatSetPieceTaking: 95,
			player.StatStamina:        60,
		},
	}
	projected := player.AttributeStats{
		player.StatFinishing:      85, // -5 * 0.5
		player.StatSpeed:          90, // +5 * 0.25
		player.StatHeading:        40, // -35 * 0.2
		player.StatBallControl:    50, // -30 * 0.3
		player.StatDribbling:      60, // floored at -10
		player.StatSetPieceTaking: 10,
		player.StatStamina:        20,
	}

	got := ComputeAffinity(projected, build, player.PhysicalAttributes{}, nil)

	if !almostEqual(got.Score, 72.75) {
		t.Fatalf("unexpected score: %v", got.Score)
	}
	if len(got.Stats) != 5 {
		t.Fatalf("expected 5 scored stats, got %d", len(got.Stats))
	}
	for _, item := range got.Stats {
		if item.Stat == player.StatSetPieceTaking || item.Stat == player.StatStamina {
			t.Fatalf("stat %s must not be scored", item.Stat)
		}
		if item.Diff != item.PlayerValue-item.IdealValue {
			t.Fatalf("diff mismatch for %s", item.Stat)
		}
	}
}

func TestComputeAffinity_GoalkeeperUsesGoalkeeperStats(t *testing.T) {
	build := &idealbuild.IdealBuild{
		ID:       "pt-1",
		Position: player.PositionGoalkeeper,
		Stats: player.AttributeStats{
			player.StatFinishing:   90,
			player.StatGKReflexes:  85,
			player.StatGKAwareness: 80,
		},
	}
	projected := player.AttributeStats{
		player.StatFinishing:   20,
		player.StatGKReflexes:  85,
		player.StatGKAwareness: 84,
	}

	got := ComputeAffinity(projected, build, player.PhysicalAttributes{}, nil)
	if !almostEqual(got.Score, 101) {
		t.Fatalf("unexpected score: %v", got.Score)
	}
	for _, item := range got.Stats {
		if item.Stat == player.StatFinishing {
			t.Fatalf("outfield stat scored for goalkeeper build")
		}
	}
}

func TestComputeAffinity_Physical(t *testing.T) {
	tests := []struct {
		name     string
		height   *int
		weight   *int
		build    idealbuild.IdealBuild
		want     float64
		inRanges int
	}{
		{
			name:     "in range and overweight",
			height:   intPtr(185),
			weight:   intPtr(90),
			build:    idealbuild.IdealBuild{Height: idealbuild.Range{Min: intPtr(180), Max: intPtr(190)}, Weight: idealbuild.Range{Max: intPtr(80)}},
			want:     100 + 2.5 - 2.5,
			inRanges: 1,
		},
		{
			name:   "too short",
			height: intPtr(175),
			build:  idealbuild.IdealBuild{Height: idealbuild.Range{Min: intPtr(180)}},
			want:   100 - 2.5,
		},
		{
			name:  "unknown body is skipped",
			build: idealbuild.IdealBuild{Height: idealbuild.Range{Min: intPtr(180)}},
			want:  100,
		},
		{
			name:   "unset range is skipped",
			height: intPtr(150),
			want:   100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			build := tt.build
			build.Position = player.PositionCentreBack
			got := ComputeAffinity(player.AttributeStats{}, &build, player.PhysicalAttributes{Height: tt.height, Weight: tt.weight}, nil)
			if !almostEqual(got.Score, tt.want) {
				t.Fatalf("unexpected score: got=%v want=%v", got.Score, tt.want)
			}
			inRange := 0
			for _, item := range got.Physical {
				if item.InRange {
					inRange++
				}
			}
			if inRange != tt.inRanges {
				t.Fatalf("unexpected in-range count: %d", inRange)
			}
		})
	}
}

func TestComputeAffinity_Skills(t *testing.T) {
	build := &idealbuild.IdealBuild{
		Position:        player.PositionCentralMidfielder,
		PrimarySkills:   []player.Skill{"Pase al primer toque", "Visión de juego"},
		SecondarySkills: []player.Skill{"Liderazgo", "Marcaje"},
	}
	skills := player.NewSkillSet("Pase al primer toque", "Liderazgo")

	got := ComputeAffinity(player.AttributeStats{}, build, player.PhysicalAttributes{}, skills)
	want := 100 + 1 - 0.5 + 0.5 - 0.25
	if !almostEqual(got.Score, want) {
		t.Fatalf("unexpected score: got=%v want=%v", got.Score, want)
	}
	if len(got.Skills) != 4 {
		t.Fatalf("expected 4 skill entries, got %d", len(got.Skills))
	}
}

func TestComputeAffinity_IgnoresLowTargets(t *testing.T) {
	build := &idealbuild.IdealBuild{
		Position: player.PositionCentreBack,
		Stats:    player.AttributeStats{player.StatTackling: 69},
	}
	got := ComputeAffinity(player.AttributeStats{player.StatTackling: 10}, build, player.PhysicalAttributes{}, nil)
	if got.Score != 100 || len(got.Stats) != 0 {
		t.Fatalf("targets under threshold must be ignored, got %+v", got)
	}
}
