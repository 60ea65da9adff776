package formation

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/squad-builder/internal/domain/player"
)

const MinSlots = 11

var (
	ErrInvalidSlotTarget = errors.New("invalid slot target")
	ErrTooFewSlots       = errors.New("formation needs at least 11 slots")
)

// SlotTarget is either a single position or a flexible list of positions.
// Build one with SingleTarget or FlexibleTarget.
type SlotTarget struct {
	positions []player.Position
	flexible  bool
}

func SingleTarget(pos player.Position) SlotTarget {
	return SlotTarget{positions: []player.Position{pos}}
}

func FlexibleTarget(positions ...player.Position) SlotTarget {
	return SlotTarget{positions: append([]player.Position(nil), positions...), flexible: true}
}

func (t SlotTarget) IsFlexible() bool {
	return t.flexible
}

// Positions returns a copy of the targeted positions.
func (t SlotTarget) Positions() []player.Position {
	return append([]player.Position(nil), t.positions...)
}

// Primary is the nominal position used for labels.
func (t SlotTarget) Primary() player.Position {
	if len(t.positions) == 0 {
		return ""
	}
	return t.positions[0]
}

func (t SlotTarget) Contains(pos player.Position) bool {
	for _, item := range t.positions {
		if item == pos {
			return true
		}
	}
	return false
}

func (t SlotTarget) Validate() error {
	if len(t.positions) == 0 {
		return fmt.Errorf("%w: no positions", ErrInvalidSlotTarget)
	}
	if !t.flexible && len(t.positions) != 1 {
		return fmt.Errorf("%w: single target with %d positions", ErrInvalidSlotTarget, len(t.positions))
	}
	for _, pos := range t.positions {
		if !pos.IsValid() {
			return fmt.Errorf("%w: %q", player.ErrUnknownPosition, pos)
		}
	}
	return nil
}

// Slot is one place in the starting eleven.
type Slot struct {
	Target        SlotTarget
	AllowedStyles []player.Style
	X             float64
	Y             float64
}

// HasStyleFilter reports whether the slot restricts card styles.
func (s Slot) HasStyleFilter() bool {
	return len(s.AllowedStyles) > 0
}

// RequiresUnstyled is the "Ninguno only" filter: cards with a style active at
// the slot's positions are excluded.
func (s Slot) RequiresUnstyled() bool {
	return len(s.AllowedStyles) == 1 && player.NormalizeStyle(s.AllowedStyles[0]) == player.StyleNone
}

// MatchResult records one played match with the formation.
type MatchResult struct {
	GoalsFor     int
	GoalsAgainst int
	PlayedAt     time.Time
}

// Formation is a tactical layout with its match history.
type Formation struct {
	ID           string
	Name         string
	Creator      string
	Tactic       string
	Slots        []Slot
	Results      []MatchResult
	TacticImages []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (f Formation) Validate() error {
	if strings.TrimSpace(f.ID) == "" {
		return fmt.Errorf("formation id is required")
	}
	if strings.TrimSpace(f.Name) == "" {
		return fmt.Errorf("formation name is required")
	}
	if len(f.Slots) < MinSlots {
		return fmt.Errorf("%w: got %d", ErrTooFewSlots, len(f.Slots))
	}
	for i, slot := range f.Slots {
		if err := slot.Target.Validate(); err != nil {
			return fmt.Errorf("slot %d: %w", i, err)
		}
		for _, style := range slot.AllowedStyles {
			if _, err := player.ParseStyle(string(style)); err != nil {
				return fmt.Errorf("slot %d: %w", i, err)
			}
		}
	}
	for i, result := range f.Results {
		if result.GoalsFor < 0 || result.GoalsAgainst < 0 {
			return fmt.Errorf("result %d: goals cannot be negative", i)
		}
	}
	return nil
}

// Summary aggregates the match history.
type Summary struct {
	Played         int
	Wins           int
	Draws          int
	Losses         int
	GoalsFor       int
	GoalsAgainst   int
	GoalDifference int
	WinRate        float64
}

func (f Formation) Summary() Summary {
	var out Summary
	for _, result := range f.Results {
		out.Played++
		out.GoalsFor += result.GoalsFor
		out.GoalsAgainst += result.GoalsAgainst
		switch {
		case result.GoalsFor > result.GoalsAgainst:
			out.Wins++
		case result.GoalsFor < result.GoalsAgainst:
			out.Losses++
		default:
			out.Draws++
		}
	}
	out.GoalDifference = out.GoalsFor - out.GoalsAgainst
	if out.Played > 0 {
		out.WinRate = float64(out.Wins) / float64(out.Played)
	}
	return out
}

func (f Formation) Clone() Formation {
	out := f
	out.Slots = nil
	for _, slot := range f.Slots {
		slot.Target = SlotTarget{positions: slot.Target.Positions(), flexible: slot.Target.flexible}
		slot.AllowedStyles = append([]player.Style(nil), slot.AllowedStyles...)
		out.Slots = append(out.Slots, slot)
	}
	out.Results = append([]MatchResult(nil), f.Results...)
	out.TacticImages = append([]string(nil), f.TacticImages...)
	return out
}
