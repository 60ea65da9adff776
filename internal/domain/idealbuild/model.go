package idealbuild

import (
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/squad-builder/internal/domain/player"
)

// ScoringThreshold is the minimum target value that counts. Lower targets
// mean "don't care".
const ScoringThreshold = 70

// Range is an optional inclusive bound pair.
type Range struct {
	Min *int
	Max *int
}

func (r Range) IsSet() bool {
	return r.Min != nil || r.Max != nil
}

// IdealBuild is the target profile for (tactic, position, style, profile).
type IdealBuild struct {
	ID              string
	Tactic          string
	Position        player.Position
	Style           player.Style
	Profile         string
	Stats           player.AttributeStats
	PrimarySkills   []player.Skill
	SecondarySkills []player.Skill
	Height          Range
	Weight          Range
	UpdatedAt       time.Time
}

// Target returns the scoring-relevant target for stat, if any.
func (b IdealBuild) Target(stat player.Stat) (int, bool) {
	v, ok := b.Stats[stat]
	if !ok || v < ScoringThreshold {
		return 0, false
	}
	return v, true
}

// IsGoalkeeper reports whether the build is scored on the goalkeeper subset.
func (b IdealBuild) IsGoalkeeper() bool {
	return b.Position.IsGoalkeeper()
}

func (b IdealBuild) Validate() error {
	if strings.TrimSpace(b.ID) == "" {
		return fmt.Errorf("ideal build id is required")
	}
	if _, err := player.ParsePosition(string(b.Position)); err != nil {
		return err
	}
	if _, err := player.ParseBuildStyle(string(b.Style)); err != nil {
		return err
	}
	if err := b.Stats.Validate(); err != nil {
		return err
	}
	for _, r := range []Range{b.Height, b.Weight} {
		if r.Min != nil && r.Max != nil && *r.Min > *r.Max {
			return fmt.Errorf("range min %d exceeds max %d", *r.Min, *r.Max)
		}
	}
	return nil
}

func (b IdealBuild) Clone() IdealBuild {
	out := b
	out.Stats = b.Stats.Clone()
	out.PrimarySkills = append([]player.Skill(nil), b.PrimarySkills...)
	out.SecondarySkills = append([]player.Skill(nil), b.SecondarySkills...)
	return out
}
