package scoring

import (
	"github.com/riskibarqy/squad-builder/internal/domain/player"
)

const (
	hotStreakWindow     = 3
	hotStreakMargin     = 0.5
	consistentMinMatch  = 5
	consistentMaxStdDev = 0.5
	versatileMinPos     = 3
	versatileMinAverage = 7.0
	promisingMaxMatches = 9
	promisingMinAverage = 7.5
	gameChangerRating   = 9.0
	gameChangerMinCount = 3
	stalwartMinMatches  = 50
	stalwartMinAverage  = 7.0
	specialistMinAvg    = 8.5
	specialistMargin    = 1.5
)

// EvaluatePerformance derives the badges of one rated position from the
// card's full set of histories.
func EvaluatePerformance(pos player.Position, histories map[player.Position][]float64) PerformanceFlags {
	ratings := histories[pos]
	current := ComputeStats(ratings)
	var flags PerformanceFlags

	if current.Matches >= hotStreakWindow {
		recent := Average(ratings[len(ratings)-hotStreakWindow:])
		flags.HotStreak = recent-current.Average > hotStreakMargin
	}
	flags.Consistent = current.Matches >= consistentMinMatch && current.StdDev < consistentMaxStdDev
	flags.Promising = current.Matches > 0 && current.Matches <= promisingMaxMatches && current.Average >= promisingMinAverage
	flags.Stalwart = current.Matches >= stalwartMinMatches && current.Average >= stalwartMinAverage

	standout := 0
	for _, rating := range ratings {
		if rating >= gameChangerRating {
			standout++
		}
	}
	flags.GameChanger = standout >= gameChangerMinCount

	rated := 0
	allStrong := true
	specialist := current.Matches > 0 && current.Average >= specialistMinAvg
	for other, history := range histories {
		if len(history) == 0 {
			continue
		}
		rated++
		avg := Average(history)
		if avg < versatileMinAverage {
			allStrong = false
		}
		if other != pos && current.Average-avg < specialistMargin {
			specialist = false
		}
	}
	flags.Versatile = rated >= versatileMinPos && allStrong
	flags.Specialist = rated >= 2 && specialist

	return flags
}
