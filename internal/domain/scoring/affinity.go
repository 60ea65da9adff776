package scoring

import (
	"github.com/riskibarqy/squad-builder/internal/domain/idealbuild"
	"github.com/riskibarqy/squad-builder/internal/domain/player"
)

const (
	affinityBase = 100.0

	surplusWeight        = 0.25
	deficitWeightElite   = 0.5 // target >= 90
	deficitWeightHigh    = 0.3 // 80 <= target < 90
	deficitWeightDefault = 0.2
	deficitFloor         = -10.0

	physicalInRangeBonus = 2.5
	physicalBelowWeight  = 0.5
	physicalAboveWeight  = 0.25

	primarySkillHit    = 1.0
	primarySkillMiss   = -0.5
	secondarySkillHit  = 0.5
	secondarySkillMiss = -0.25
)

// StatContribution is one scored attribute in an affinity breakdown.
type StatContribution struct {
	Stat         player.Stat
	PlayerValue  int
	IdealValue   int
	Diff         int
	Contribution float64
}

// PhysicalContribution is one scored body measurement.
type PhysicalContribution struct {
	Attribute    string
	PlayerValue  int
	Min          *int
	Max          *int
	InRange      bool
	Contribution float64
}

// SkillContribution is one ideal skill checked against the card.
type SkillContribution struct {
	Skill        player.Skill
	Primary      bool
	Present      bool
	Contribution float64
}

// Affinity is the fit between a card and an ideal build.
type Affinity struct {
	Score    float64
	Stats    []StatContribution
	Physical []PhysicalContribution
	Skills   []SkillContribution
}

// ComputeAffinity scores projected stats, body and skills against build. A nil
// build scores 0 with empty breakdowns. The total is not clamped.
func ComputeAffinity(projected player.AttributeStats, build *idealbuild.IdealBuild, physical player.PhysicalAttributes, skills player.SkillSet) Affinity {
	if build == nil {
		return Affinity{}
	}

	out := Affinity{Score: affinityBase}
	for _, stat := range player.RelevantStats(build.IsGoalkeeper()) {
		// Set piece taking is never scored regardless of target.
		if stat == player.StatSetPieceTaking {
			continue
		}
		ideal, ok := build.Target(stat)
		if !ok {
			continue
		}
		value, ok := projected[stat]
		if !ok {
			continue
		}
		contribution := statContribution(value, ideal)
		out.Score += contribution
		out.Stats = append(out.Stats, StatContribution{
			Stat:         stat,
			PlayerValue:  value,
			IdealValue:   ideal,
			Diff:         value - ideal,
			Contribution: contribution,
		})
	}

	for _, item := range []struct {
		name  string
		value *int
		rng   idealbuild.Range
	}{
		{"height", physical.Height, build.Height},
		{"weight", physical.Weight, build.Weight},
	} {
		if item.value == nil || !item.rng.IsSet() {
			continue
		}
		entry := physicalContribution(item.name, *item.value, item.rng)
		out.Score += entry.Contribution
		out.Physical = append(out.Physical, entry)
	}

	for _, skill := range build.PrimarySkills {
		entry := SkillContribution{Skill: skill, Primary: true, Present: skills.Has(skill), Contribution: primarySkillMiss}
		if entry.Present {
			entry.Contribution = primarySkillHit
		}
		out.Score += entry.Contribution
		out.Skills = append(out.Skills, entry)
	}
	for _, skill := range build.SecondarySkills {
		entry := SkillContribution{Skill: skill, Present: skills.Has(skill), Contribution: secondarySkillMiss}
		if entry.Present {
			entry.Contribution = secondarySkillHit
		}
		out.Score += entry.Contribution
		out.Skills = append(out.Skills, entry)
	}

	return out
}

func statContribution(value, ideal int) float64 {
	diff := float64(value - ideal)
	if diff >= 0 {
		return diff * surplusWeight
	}
	weight := deficitWeightDefault
	switch {
	case ideal >= 90:
		weight = deficitWeightElite
	case ideal >= 80:
		weight = deficitWeightHigh
	}
	contribution := diff * weight
	if contribution < deficitFloor {
		return deficitFloor
	}
	return contribution
}

func physicalContribution(name string, value int, rng idealbuild.Range) PhysicalContribution {
	entry := PhysicalContribution{Attribute: name, PlayerValue: value, Min: rng.Min, Max: rng.Max}
	switch {
	case rng.Min != nil && value < *rng.Min:
		entry.Contribution = -float64(*rng.Min-value) * physicalBelowWeight
	case rng.Max != nil && value > *rng.Max:
		entry.Contribution = -float64(value-*rng.Max) * physicalAboveWeight
	default:
		entry.InRange = true
		entry.Contribution = physicalInRangeBonus
	}
	return entry
}
