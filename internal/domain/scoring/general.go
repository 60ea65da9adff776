package scoring

import (
	"math"

	"github.com/riskibarqy/squad-builder/internal/domain/player"
)

// matchRampCeiling is the match count at which the rating average fully
// replaces affinity in the general score.
const matchRampCeiling = 100

// PerformanceFlags are badges derived from the shape of a rating history.
type PerformanceFlags struct {
	HotStreak   bool
	Consistent  bool
	Versatile   bool
	Promising   bool
	GameChanger bool
	Stalwart    bool
	Specialist  bool
}

// Bonus is the sum of the fixed bonuses of every active flag.
func (f PerformanceFlags) Bonus() float64 {
	total := 0.0
	for _, item := range []struct {
		on    bool
		bonus float64
	}{
		{f.HotStreak, 3},
		{f.Consistent, 2},
		{f.Versatile, 1},
		{f.Promising, 1},
		{f.GameChanger, 2},
		{f.Stalwart, 2},
		{f.Specialist, 3},
	} {
		if item.on {
			total += item.bonus
		}
	}
	return total
}

// Names lists the active flags for display.
func (f PerformanceFlags) Names() []string {
	var out []string
	for _, item := range []struct {
		on   bool
		name string
	}{
		{f.HotStreak, "hotStreak"},
		{f.Consistent, "consistent"},
		{f.Versatile, "versatile"},
		{f.Promising, "promising"},
		{f.GameChanger, "gameChanger"},
		{f.Stalwart, "stalwart"},
		{f.Specialist, "specialist"},
	} {
		if item.on {
			out = append(out, item.name)
		}
	}
	return out
}

// GeneralScoreInput carries everything the composite ranking reads.
type GeneralScoreInput struct {
	Affinity     float64
	Average      float64
	Matches      int
	Flags        PerformanceFlags
	LiveForm     player.LiveForm
	Skills       player.SkillSet
	IsSubstitute bool
}

// GeneralScore blends rating average and affinity by match depth, then adds
// badge, live form and super-sub bonuses. Never negative.
func GeneralScore(in GeneralScoreInput) float64 {
	weight := float64(min(matchRampCeiling, max(0, in.Matches))) / matchRampCeiling
	avgComponent := in.Average*10 + 50
	score := avgComponent*weight + in.Affinity*(1-weight)
	score += in.Flags.Bonus()
	score += in.LiveForm.Bonus()
	if in.IsSubstitute && in.Skills.Has(player.SkillSuperSub) {
		score++
	}
	return math.Max(0, score)
}
