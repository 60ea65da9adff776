package lineup

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/squad-builder/internal/domain/formation"
	"github.com/riskibarqy/squad-builder/internal/domain/idealbuild"
	"github.com/riskibarqy/squad-builder/internal/domain/player"
)

var ErrUnknownSortBy = errors.New("unknown sort order")

// Sentinel ids rendered for slots nobody could fill.
const (
	PlaceholderPlayerID = "placeholder-player"
	PlaceholderCardID   = "placeholder-card"
)

// MinAffinity is the hard eligibility cutoff for any slot.
const MinAffinity = 80.0

// SortBy selects the ranking policy.
type SortBy string

const (
	SortByAverage SortBy = "average"
	SortByGeneral SortBy = "general"
)

// ParseSortBy defaults empty input to SortByGeneral.
func ParseSortBy(raw string) (SortBy, error) {
	switch SortBy(strings.ToLower(strings.TrimSpace(raw))) {
	case "", SortByGeneral:
		return SortByGeneral, nil
	case SortByAverage:
		return SortByAverage, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownSortBy, raw)
	}
}

// Role is the lineup section an assignment belongs to.
type Role string

const (
	RoleStarter    Role = "starter"
	RoleSubstitute Role = "substitute"
	RoleExtra      Role = "extra"
)

// Filters narrow the candidate pool. Empty fields match everything.
type Filters struct {
	League      string
	Nationality string
}

// Flexibility toggles left/right interchange for mirrored slots.
type Flexibility struct {
	FullBacks bool
	Wingers   bool
}

// Request is one generation run over an in-memory snapshot. Generate never
// mutates it.
type Request struct {
	Players     []player.Player
	Formation   formation.Formation
	IdealBuilds []idealbuild.IdealBuild
	Discarded   []string
	Filters     Filters
	SortBy      SortBy
	Flexibility Flexibility
	// Tactic overrides the formation tactic for ideal build lookup.
	Tactic      string
	Now         time.Time
	LiveFormTTL time.Duration
}

// Assignment is one filled (or placeholder) lineup slot.
type Assignment struct {
	SlotIndex    int
	Role         Role
	SlotPosition player.Position
	Position     player.Position
	PlayerID     string
	PlayerName   string
	CardID       string
	CardName     string
	Style        player.Style
	Average      float64
	Matches      int
	Affinity     float64
	Score        float64
	LiveForm     player.LiveForm
	Flags        []string
	Placeholder  bool
}

// Lineup holds one starter and one substitute per formation slot and an
// optional extra substitute.
type Lineup struct {
	Starters    []Assignment
	Substitutes []Assignment
	Extra       *Assignment
}

// Filled counts the non-placeholder assignments.
func (l Lineup) Filled() (starters, substitutes int) {
	for _, item := range l.Starters {
		if !item.Placeholder {
			starters++
		}
	}
	for _, item := range l.Substitutes {
		if !item.Placeholder {
			substitutes++
		}
	}
	return starters, substitutes
}

// CardIDs lists every real card in the lineup.
func (l Lineup) CardIDs() []string {
	var out []string
	for _, group := range [][]Assignment{l.Starters, l.Substitutes} {
		for _, item := range group {
			if !item.Placeholder {
				out = append(out, item.CardID)
			}
		}
	}
	if l.Extra != nil {
		out = append(out, l.Extra.CardID)
	}
	return out
}

func placeholder(index int, role Role, pos player.Position) Assignment {
	return Assignment{
		SlotIndex:    index,
		Role:         role,
		SlotPosition: pos,
		Position:     pos,
		PlayerID:     PlaceholderPlayerID,
		CardID:       PlaceholderCardID,
		Placeholder:  true,
	}
}
