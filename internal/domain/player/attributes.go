package player

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownStat     = errors.New("unknown attribute stat")
	ErrUnknownCategory = errors.New("unknown progression category")
	ErrInvalidLevel    = errors.New("invalid progression level")
	ErrInvalidStat     = errors.New("invalid attribute value")
)

const (
	MinStatValue     = 0
	MaxStatValue     = 99
	MaxCategoryLevel = 16
)

// Stat names one in-game attribute.
type Stat string

const (
	StatOffensiveAwareness  Stat = "offensiveAwareness"
	StatBallControl         Stat = "ballControl"
	StatDribbling           Stat = "dribbling"
	StatTightPossession     Stat = "tightPossession"
	StatLowPass             Stat = "lowPass"
	StatLoftedPass          Stat = "loftedPass"
	StatFinishing           Stat = "finishing"
	StatHeading             Stat = "heading"
	StatSetPieceTaking      Stat = "setPieceTaking"
	StatCurl                Stat = "curl"
	StatSpeed               Stat = "speed"
	StatAcceleration        Stat = "acceleration"
	StatKickingPower        Stat = "kickingPower"
	StatJump                Stat = "jump"
	StatPhysicalContact     Stat = "physicalContact"
	StatBalance             Stat = "balance"
	StatStamina             Stat = "stamina"
	StatDefensiveAwareness  Stat = "defensiveAwareness"
	StatTackling            Stat = "tackling"
	StatAggression          Stat = "aggression"
	StatDefensiveEngagement Stat = "defensiveEngagement"
	StatGKAwareness         Stat = "gkAwareness"
	StatGKCatching          Stat = "gkCatching"
	StatGKParrying          Stat = "gkParrying"
	StatGKReflexes          Stat = "gkReflexes"
	StatGKReach             Stat = "gkReach"
)

// AllStats is the full attribute list in display order. It is also the set
// scored for outfield builds.
var AllStats = []Stat{
	StatOffensiveAwareness,
	StatBallControl,
	StatDribbling,
	StatTightPossession,
	StatLowPass,
	StatLoftedPass,
	StatFinishing,
	StatHeading,
	StatSetPieceTaking,
	StatCurl,
	StatSpeed,
	StatAcceleration,
	StatKickingPower,
	StatJump,
	StatPhysicalContact,
	StatBalance,
	StatStamina,
	StatDefensiveAwareness,
	StatTackling,
	StatAggression,
	StatDefensiveEngagement,
	StatGKAwareness,
	StatGKCatching,
	StatGKParrying,
	StatGKReflexes,
	StatGKReach,
}

// GoalkeeperStats is the subset scored for goalkeeper builds. Defending
// stats are shared with outfield players.
var GoalkeeperStats = []Stat{
	StatGKAwareness,
	StatGKCatching,
	StatGKParrying,
	StatGKReflexes,
	StatGKReach,
	StatJump,
	StatDefensiveAwareness,
	StatTackling,
	StatAggression,
	StatDefensiveEngagement,
}

// RelevantStats returns the attribute set scored for a position class.
func RelevantStats(isGoalkeeper bool) []Stat {
	if isGoalkeeper {
		return GoalkeeperStats
	}
	return AllStats
}

func ParseStat(raw string) (Stat, error) {
	value := strings.TrimSpace(raw)
	for _, stat := range AllStats {
		if strings.EqualFold(string(stat), value) {
			return stat, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStat, raw)
}

// AttributeStats maps attributes to values. Missing keys mean "unknown".
type AttributeStats map[Stat]int

func (s AttributeStats) Get(stat Stat) (int, bool) {
	v, ok := s[stat]
	return v, ok
}

func (s AttributeStats) Clone() AttributeStats {
	if s == nil {
		return nil
	}
	out := make(AttributeStats, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Validate rejects unknown keys and out-of-range values.
func (s AttributeStats) Validate() error {
	for stat, value := range s {
		if _, err := ParseStat(string(stat)); err != nil {
			return err
		}
		if value < MinStatValue || value > MaxStatValue {
			return fmt.Errorf("%w: %s=%d", ErrInvalidStat, stat, value)
		}
	}
	return nil
}

// ParseAttributeStats converts a loosely keyed map (JSON payloads, storage rows).
func ParseAttributeStats(raw map[string]int) (AttributeStats, error) {
	out := make(AttributeStats, len(raw))
	for key, value := range raw {
		stat, err := ParseStat(key)
		if err != nil {
			return nil, err
		}
		out[stat] = value
	}
	if err := out.Validate(); err != nil {
		return nil, err
	}
	return out, nil
}

// PhysicalAttributes holds optional body measurements (cm, kg).
type PhysicalAttributes struct {
	Height *int
	Weight *int
}

// Category is a progression bundle leveled as a unit.
type Category string

const (
	CategoryShooting          Category = "shooting"
	CategoryPassing           Category = "passing"
	CategoryDribbling         Category = "dribbling"
	CategoryDexterity         Category = "dexterity"
	CategoryLowerBodyStrength Category = "lowerBodyStrength"
	CategoryAerialStrength    Category = "aerialStrength"
	CategoryDefending         Category = "defending"
	CategoryGK1               Category = "gk1"
	CategoryGK2               Category = "gk2"
	CategoryGK3               Category = "gk3"
)

// OutfieldCategories and GoalkeeperCategories are in enumeration order; that
// order breaks ties in the suggestion optimizer.
var (
	OutfieldCategories = []Category{
		CategoryShooting,
		CategoryPassing,
		CategoryDribbling,
		CategoryDexterity,
		CategoryLowerBodyStrength,
		CategoryAerialStrength,
		CategoryDefending,
	}
	GoalkeeperCategories = []Category{
		CategoryDefending,
		CategoryGK1,
		CategoryGK2,
		CategoryGK3,
	}
	AllCategories = []Category{
		CategoryShooting,
		CategoryPassing,
		CategoryDribbling,
		CategoryDexterity,
		CategoryLowerBodyStrength,
		CategoryAerialStrength,
		CategoryDefending,
		CategoryGK1,
		CategoryGK2,
		CategoryGK3,
	}
)

func CategoriesFor(isGoalkeeper bool) []Category {
	if isGoalkeeper {
		return GoalkeeperCategories
	}
	return OutfieldCategories
}

func ParseCategory(raw string) (Category, error) {
	value := strings.TrimSpace(raw)
	for _, category := range AllCategories {
		if strings.EqualFold(string(category), value) {
			return category, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, raw)
}

// ProgressionBuild maps categories to levels 0..16.
type ProgressionBuild map[Category]int

// Level reads a category level clamped to the valid range.
func (b ProgressionBuild) Level(category Category) int {
	level := b[category]
	if level < 0 {
		return 0
	}
	if level > MaxCategoryLevel {
		return MaxCategoryLevel
	}
	return level
}

func (b ProgressionBuild) Clone() ProgressionBuild {
	if b == nil {
		return nil
	}
	out := make(ProgressionBuild, len(b))
	for k, v := range b {
		out[k] = v
	}
	return out
}

func (b ProgressionBuild) Validate() error {
	for category, level := range b {
		if _, err := ParseCategory(string(category)); err != nil {
			return err
		}
		if level < 0 || level > MaxCategoryLevel {
			return fmt.Errorf("%w: %s=%d", ErrInvalidLevel, category, level)
		}
	}
	return nil
}

// ParseProgressionBuild converts a loosely keyed map and validates it.
func ParseProgressionBuild(raw map[string]int) (ProgressionBuild, error) {
	out := make(ProgressionBuild, len(raw))
	for key, level := range raw {
		category, err := ParseCategory(key)
		if err != nil {
			return nil, err
		}
		out[category] = level
	}
	if err := out.Validate(); err != nil {
		return nil, err
	}
	return out, nil
}
