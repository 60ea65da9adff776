package idealbuild

import (
	"sort"
	"strings"

	"github.com/riskibarqy/squad-builder/internal/domain/player"
)

// Match steps reported by Resolve, in the order they are tried.
const (
	StepNone = iota
	StepExactStyle
	StepArchetypeStyle
	StepExactNone
	StepArchetypeNone
	StepAnyForPosition
)

// Resolution is the outcome of an ideal build lookup. Build is nil when
// nothing matched; callers treat that as affinity 0.
type Resolution struct {
	Build         *IdealBuild
	ResolvedStyle player.Style
	Step          int
}

// ResolveStyle turns a card style into the style key used for build lookup:
// alias normalization, inactive styles forced to Ninguno, and the
// height-gated poacher split. The card's stored style is never changed.
func ResolveStyle(style player.Style, pos player.Position, height *int) player.Style {
	resolved := player.NormalizeStyle(style)
	if resolved != player.StyleNone && !player.IsActiveStyle(pos, resolved) {
		return player.StyleNone
	}
	if resolved == player.StyleGoalPoacher && height != nil {
		if *height >= player.GoalPoacherHeightThreshold {
			return player.StyleGoalPoacherTall
		}
		return player.StyleGoalPoacherShort
	}
	return resolved
}

// Resolve finds the most specific ideal build for a card at pos under tactic.
// An empty tactic matches builds of every tactic.
func Resolve(style player.Style, pos player.Position, builds []IdealBuild, tactic string, height *int) Resolution {
	resolved := ResolveStyle(style, pos, height)
	out := Resolution{ResolvedStyle: resolved}

	candidates := filterByTactic(builds, tactic)
	if len(candidates) == 0 {
		return out
	}
	archetype := pos.Archetype()

	steps := []struct {
		step  int
		pos   player.Position
		style player.Style
	}{
		{StepExactStyle, pos, resolved},
		{StepArchetypeStyle, archetype, resolved},
		{StepExactNone, pos, player.StyleNone},
		{StepArchetypeNone, archetype, player.StyleNone},
	}
	for _, s := range steps {
		if s.step == StepArchetypeStyle || s.step == StepArchetypeNone {
			if archetype == pos {
				continue
			}
		}
		if build := firstMatch(candidates, s.pos, s.style); build != nil {
			out.Build = build
			out.Step = s.step
			return out
		}
	}

	var fallback []IdealBuild
	for _, build := range candidates {
		if build.Position == pos || build.Position == archetype {
			fallback = append(fallback, build)
		}
	}
	if len(fallback) == 0 {
		return out
	}
	sort.SliceStable(fallback, func(i, j int) bool {
		si, sj := player.NormalizeStyle(fallback[i].Style), player.NormalizeStyle(fallback[j].Style)
		if si != sj {
			return si < sj
		}
		return lessByProfile(fallback[i], fallback[j])
	})
	build := fallback[0].Clone()
	out.Build = &build
	out.Step = StepAnyForPosition
	return out
}

func filterByTactic(builds []IdealBuild, tactic string) []IdealBuild {
	tactic = strings.TrimSpace(tactic)
	if tactic == "" {
		return builds
	}
	out := make([]IdealBuild, 0, len(builds))
	for _, build := range builds {
		if strings.EqualFold(strings.TrimSpace(build.Tactic), tactic) {
			out = append(out, build)
		}
	}
	return out
}

func firstMatch(builds []IdealBuild, pos player.Position, style player.Style) *IdealBuild {
	var best *IdealBuild
	for i := range builds {
		build := builds[i]
		if build.Position != pos || player.NormalizeStyle(build.Style) != style {
			continue
		}
		if best == nil || lessByProfile(build, *best) {
			best = &builds[i]
		}
	}
	if best == nil {
		return nil
	}
	clone := best.Clone()
	return &clone
}

// lessByProfile orders builds of the same key: unnamed profile first, then
// profile name, then id.
func lessByProfile(a, b IdealBuild) bool {
	pa, pb := strings.TrimSpace(a.Profile), strings.TrimSpace(b.Profile)
	if (pa == "") != (pb == "") {
		return pa == ""
	}
	if pa != pb {
		return pa < pb
	}
	return a.ID < b.ID
}
