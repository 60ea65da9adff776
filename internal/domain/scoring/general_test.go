package scoring

import (
	"testing"

	"github.com/riskibarqy/squad-builder/internal/domain/player"
)

func TestGeneralScore(t *testing.T) {
	tests := []struct {
		name string
		in   GeneralScoreInput
		want float64
	}{
		{
			name: "no matches uses affinity only",
			in:   GeneralScoreInput{Affinity: 90},
			want: 90,
		},
		{
			name: "half ramp",
			in:   GeneralScoreInput{Affinity: 80, Average: 7, Matches: 50},
			want: 100,
		},
		{
			name: "full ramp ignores affinity",
			in:   GeneralScoreInput{Affinity: 10, Average: 8, Matches: 100},
			want: 130,
		},
		{
			name: "ramp is capped",
			in:   GeneralScoreInput{Affinity: 10, Average: 8, Matches: 250},
			want: 130,
		},
		{
			name: "flag and live form bonuses",
			in: GeneralScoreInput{
				Affinity: 90,
				Flags:    PerformanceFlags{HotStreak: true, Specialist: true},
				LiveForm: player.LiveFormA,
			},
			want: 90 + 3 + 3 + 8,
		},
		{
			name: "poor live form",
			in:   GeneralScoreInput{Affinity: 90, LiveForm: player.LiveFormE},
			want: 80,
		},
		{
			name: "super sub on bench",
			in:   GeneralScoreInput{Affinity: 90, Skills: player.NewSkillSet(player.SkillSuperSub), IsSubstitute: true},
			want: 91,
		},
		{
			name: "super sub as starter",
			in:   GeneralScoreInput{Affinity: 90, Skills: player.NewSkillSet(player.SkillSuperSub)},
			want: 90,
		},
		{
			name: "floored at zero",
			in:   GeneralScoreInput{Affinity: -50, LiveForm: player.LiveFormE},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GeneralScore(tt.in); !almostEqual(got, tt.want) {
				t.Fatalf("unexpected score: got=%v want=%v", got, tt.want)
			}
		})
	}
}

func TestGeneralScore_FullRampIndependentOfAffinity(t *testing.T) {
	low := GeneralScore(GeneralScoreInput{Affinity: 0, Average: 7.2, Matches: 100})
	high := GeneralScore(GeneralScoreInput{Affinity: 200, Average: 7.2, Matches: 100})
	if !almostEqual(low, high) {
		t.Fatalf("affinity leaked into full-ramp score: %v vs %v", low, high)
	}
}

func TestPerformanceFlags_BonusAndNames(t *testing.T) {
	flags := PerformanceFlags{
		HotStreak:   true,
		Consistent:  true,
		Versatile:   true,
		Promising:   true,
		GameChanger: true,
		Stalwart:    true,
		Specialist:  true,
	}
	if got := flags.Bonus(); got != 14 {
		t.Fatalf("unexpected bonus: %v", got)
	}
	if got := len(flags.Names()); got != 7 {
		t.Fatalf("unexpected names: %d", got)
	}
	if got := (PerformanceFlags{}).Names(); len(got) != 0 {
		t.Fatalf("expected no names, got %v", got)
	}
}
