package scoring

import (
	"github.com/riskibarqy/squad-builder/internal/domain/idealbuild"
	"github.com/riskibarqy/squad-builder/internal/domain/player"
)

// SuggestProgression spends budget points greedily. The first phase buys the
// level with the best weighted-deficit reduction per point until no level
// helps; the second phase spends what is left on the cheapest affordable
// level, ties going to the earlier category. The returned build lists every
// category of the card's class.
func SuggestProgression(base player.AttributeStats, build *idealbuild.IdealBuild, isGoalkeeper bool, budget int) player.ProgressionBuild {
	categories := player.CategoriesFor(isGoalkeeper)
	out := make(player.ProgressionBuild, len(categories))
	for _, category := range categories {
		out[category] = 0
	}
	remaining := budget

	for {
		var (
			best      player.Category
			bestRatio float64
			bestCost  int
			found     bool
		)
		projected := ProjectStats(base, out, isGoalkeeper)
		for _, category := range categories {
			level := out[category]
			if level >= player.MaxCategoryLevel {
				continue
			}
			cost := MarginalCost(level)
			if cost > remaining {
				continue
			}
			value := deficitValue(category, projected, build)
			if value <= 0 {
				continue
			}
			ratio := value / float64(cost)
			if !found || ratio > bestRatio {
				best, bestRatio, bestCost, found = category, ratio, cost, true
			}
		}
		if !found {
			break
		}
		out[best]++
		remaining -= bestCost
	}

	for {
		var (
			cheapest player.Category
			minCost  int
			found    bool
		)
		for _, category := range categories {
			level := out[category]
			if level >= player.MaxCategoryLevel {
				continue
			}
			cost := MarginalCost(level)
			if cost > remaining {
				continue
			}
			if !found || cost < minCost {
				cheapest, minCost, found = category, cost, true
			}
		}
		if !found {
			break
		}
		out[cheapest]++
		remaining -= minCost
	}

	return out
}

// deficitValue weights every unmet target (>=70) of the category's stats.
func deficitValue(category player.Category, projected player.AttributeStats, build *idealbuild.IdealBuild) float64 {
	if build == nil {
		return 0
	}
	total := 0.0
	for _, stat := range categoryStats[category] {
		target, ok := build.Target(stat)
		if !ok {
			continue
		}
		value, ok := projected[stat]
		if !ok || value >= target {
			continue
		}
		total += targetWeight(target)
	}
	return total
}

func targetWeight(target int) float64 {
	switch {
	case target >= 90:
		return 3
	case target >= 80:
		return 2
	default:
		return 1
	}
}
