package scoring

import (
	"github.com/riskibarqy/squad-builder/internal/domain/player"
)

// categoryStats lists the attributes each progression category raises.
//
// Jump appears in both aerialStrength and gk1. It is one in-game stat fed by
// two bundles: outfield projections read aerialStrength, goalkeeper
// projections read gk1. Needs confirming against the game if either bundle
// changes.
var categoryStats = map[player.Category][]player.Stat{
	player.CategoryShooting:          {player.StatFinishing, player.StatSetPieceTaking, player.StatCurl},
	player.CategoryPassing:           {player.StatLowPass, player.StatLoftedPass},
	player.CategoryDribbling:         {player.StatBallControl, player.StatDribbling, player.StatTightPossession},
	player.CategoryDexterity:         {player.StatOffensiveAwareness, player.StatAcceleration, player.StatBalance},
	player.CategoryLowerBodyStrength: {player.StatSpeed, player.StatKickingPower, player.StatStamina},
	player.CategoryAerialStrength:    {player.StatHeading, player.StatJump, player.StatPhysicalContact},
	player.CategoryDefending:         {player.StatDefensiveAwareness, player.StatTackling, player.StatAggression, player.StatDefensiveEngagement},
	player.CategoryGK1:               {player.StatGKAwareness, player.StatJump},
	player.CategoryGK2:               {player.StatGKParrying, player.StatGKReach},
	player.CategoryGK3:               {player.StatGKCatching, player.StatGKReflexes},
}

// CategoryStats returns a copy of the attributes raised by category.
func CategoryStats(category player.Category) []player.Stat {
	return append([]player.Stat(nil), categoryStats[category]...)
}

// ProjectStats applies build on top of base. Only categories of the card's
// class are read; every projected value is clamped to 0..99 and stats
// missing from base stay missing.
func ProjectStats(base player.AttributeStats, build player.ProgressionBuild, isGoalkeeper bool) player.AttributeStats {
	out := make(player.AttributeStats, len(base))
	for stat, value := range base {
		out[stat] = clampStat(value)
	}
	for _, category := range player.CategoriesFor(isGoalkeeper) {
		level := build.Level(category)
		if level == 0 {
			continue
		}
		for _, stat := range categoryStats[category] {
			value, ok := base[stat]
			if !ok {
				continue
			}
			out[stat] = clampStat(value + level)
		}
	}
	return out
}

// ProjectCard projects a card's base stats, skipping progression for
// special cards.
func ProjectCard(card player.Card, build player.ProgressionBuild, isGoalkeeper bool) player.AttributeStats {
	if card.IsSpecial() {
		return card.BaseStats.Clone()
	}
	return ProjectStats(card.BaseStats, build, isGoalkeeper)
}

func clampStat(v int) int {
	if v < player.MinStatValue {
		return player.MinStatValue
	}
	if v > player.MaxStatValue {
		return player.MaxStatValue
	}
	return v
}

// PointsForLevel is the cumulative point cost of reaching level from 0.
func PointsForLevel(level int) int {
	switch {
	case level <= 0:
		return 0
	case level <= 4:
		return level
	case level <= 8:
		return 4 + 2*(level-4)
	case level <= 12:
		return 12 + 3*(level-8)
	default:
		return 24 + 4*(level-12)
	}
}

// MaxLevelForPoints is the highest level (capped at 16) affordable with points.
func MaxLevelForPoints(points int) int {
	level := 0
	for level < player.MaxCategoryLevel && PointsForLevel(level+1) <= points {
		level++
	}
	return level
}

// MarginalCost is the price of going from level to level+1.
func MarginalCost(level int) int {
	return PointsForLevel(level+1) - PointsForLevel(level)
}

// BuildCost is the total points spent by a build.
func BuildCost(build player.ProgressionBuild) int {
	total := 0
	for category := range build {
		total += PointsForLevel(build.Level(category))
	}
	return total
}
