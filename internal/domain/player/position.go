package player

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownPosition = errors.New("unknown position")

// Position is a pitch role a card can be rated in.
type Position string

const (
	PositionGoalkeeper          Position = "PT"
	PositionCentreBack          Position = "DFC"
	PositionLeftBack            Position = "LI"
	PositionRightBack           Position = "LD"
	PositionDefensiveMidfielder Position = "MCD"
	PositionCentralMidfielder   Position = "MC"
	PositionLeftMidfielder      Position = "MDI"
	PositionRightMidfielder     Position = "MDD"
	PositionAttackingMidfielder Position = "MO"
	PositionLeftWinger          Position = "EI"
	PositionRightWinger         Position = "ED"
	PositionSecondStriker       Position = "SD"
	PositionCentreForward       Position = "DC"
	ArchetypeFullBack           Position = "LAT"
	ArchetypeWideMidfielder     Position = "MD"
	ArchetypeWinger             Position = "EXT"
)

// Positions lists real pitch positions in formation order.
var Positions = []Position{
	PositionGoalkeeper,
	PositionCentreBack,
	PositionLeftBack,
	PositionRightBack,
	PositionDefensiveMidfielder,
	PositionCentralMidfielder,
	PositionLeftMidfielder,
	PositionRightMidfielder,
	PositionAttackingMidfielder,
	PositionLeftWinger,
	PositionRightWinger,
	PositionSecondStriker,
	PositionCentreForward,
}

var archetypeByPosition = map[Position]Position{
	PositionLeftBack:        ArchetypeFullBack,
	PositionRightBack:       ArchetypeFullBack,
	PositionLeftMidfielder:  ArchetypeWideMidfielder,
	PositionRightMidfielder: ArchetypeWideMidfielder,
	PositionLeftWinger:      ArchetypeWinger,
	PositionRightWinger:     ArchetypeWinger,
}

var mirrorByPosition = map[Position]Position{
	PositionLeftBack:    PositionRightBack,
	PositionRightBack:   PositionLeftBack,
	PositionLeftWinger:  PositionRightWinger,
	PositionRightWinger: PositionLeftWinger,
}

// ParsePosition accepts real positions and archetype keys.
func ParsePosition(raw string) (Position, error) {
	pos := Position(strings.ToUpper(strings.TrimSpace(raw)))
	if pos.IsValid() || pos.IsArchetype() {
		return pos, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPosition, raw)
}

func (p Position) IsValid() bool {
	for _, item := range Positions {
		if item == p {
			return true
		}
	}
	return false
}

func (p Position) IsArchetype() bool {
	switch p {
	case ArchetypeFullBack, ArchetypeWideMidfielder, ArchetypeWinger:
		return true
	default:
		return false
	}
}

func (p Position) IsGoalkeeper() bool {
	return p == PositionGoalkeeper
}

// Archetype returns the shared ideal-build key for mirrored positions, or the
// position itself when it has none.
func (p Position) Archetype() Position {
	if archetype, ok := archetypeByPosition[p]; ok {
		return archetype
	}
	return p
}

// Mirror returns the opposite-flank position, if any.
func (p Position) Mirror() (Position, bool) {
	mirror, ok := mirrorByPosition[p]
	return mirror, ok
}

func (p Position) IsFullBack() bool {
	return p == PositionLeftBack || p == PositionRightBack
}

func (p Position) IsWinger() bool {
	return p == PositionLeftWinger || p == PositionRightWinger
}
