package player

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Special card name markers (week, month, season). Special cards have fixed
// stats and no progression.
var specialCardMarkers = []string{"POTW", "POTM", "POTS"}

// Player is a real-life footballer owning one or more cards.
type Player struct {
	ID                  string
	Name                string
	Nationality         string
	Cards               []Card
	LiveForm            LiveForm
	LiveFormNonExpiring bool
	LiveFormSetAt       time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// Card is one collectible version of a player.
type Card struct {
	ID                string
	Name              string
	Style             Style
	League            string
	ImageURL          string
	Positions         map[Position]PositionRecord
	BaseStats         AttributeStats
	Physical          PhysicalAttributes
	Skills            SkillSet
	ProgressionPoints int
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// PositionRecord is the per-position state of a card: rating history in
// chronological order, the saved build and the last computed affinity.
type PositionRecord struct {
	Ratings            []float64
	Build              ProgressionBuild
	Tactic             string
	CachedAffinity     *float64
	AffinityComputedAt time.Time
	UpdatedAt          time.Time
}

func (p Player) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("player id is required")
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("player name is required")
	}
	if _, err := ParseLiveForm(string(p.LiveForm)); err != nil {
		return err
	}
	seen := make(map[string]struct{}, len(p.Cards))
	for _, card := range p.Cards {
		if err := card.Validate(); err != nil {
			return fmt.Errorf("card %s: %w", card.ID, err)
		}
		if _, ok := seen[card.ID]; ok {
			return fmt.Errorf("duplicate card id %s", card.ID)
		}
		seen[card.ID] = struct{}{}
	}
	return nil
}

func (c Card) Validate() error {
	if strings.TrimSpace(c.ID) == "" {
		return fmt.Errorf("card id is required")
	}
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("card name is required")
	}
	if _, err := ParseStyle(string(c.Style)); err != nil {
		return err
	}
	for pos, record := range c.Positions {
		if !pos.IsValid() {
			return fmt.Errorf("%w: %q", ErrUnknownPosition, pos)
		}
		if err := record.Build.Validate(); err != nil {
			return err
		}
		for _, rating := range record.Ratings {
			if rating < 0 || rating > 10 {
				return fmt.Errorf("rating out of range at %s: %v", pos, rating)
			}
		}
	}
	if err := c.BaseStats.Validate(); err != nil {
		return err
	}
	if c.ProgressionPoints < 0 {
		return fmt.Errorf("progression points cannot be negative")
	}
	return nil
}

// IsSpecial reports whether the card is a fixed-stat featured card.
func (c Card) IsSpecial() bool {
	name := strings.ToUpper(c.Name)
	for _, marker := range specialCardMarkers {
		if strings.Contains(name, marker) {
			return true
		}
	}
	return false
}

// RatedPositions returns positions with a non-empty history, in formation order.
func (c Card) RatedPositions() []Position {
	out := make([]Position, 0, len(c.Positions))
	for pos, record := range c.Positions {
		if len(record.Ratings) == 0 {
			continue
		}
		out = append(out, pos)
	}
	sort.Slice(out, func(i, j int) bool { return positionOrder(out[i]) < positionOrder(out[j]) })
	return out
}

// Histories returns every non-empty rating history keyed by position.
func (c Card) Histories() map[Position][]float64 {
	out := make(map[Position][]float64, len(c.Positions))
	for pos, record := range c.Positions {
		if len(record.Ratings) == 0 {
			continue
		}
		out[pos] = record.Ratings
	}
	return out
}

// Card returns a pointer into p.Cards for in-place edits.
func (p *Player) Card(cardID string) (*Card, bool) {
	for i := range p.Cards {
		if p.Cards[i].ID == cardID {
			return &p.Cards[i], true
		}
	}
	return nil, false
}

// Clone deep-copies the player so callers can mutate freely.
func (p Player) Clone() Player {
	out := p
	out.Cards = nil
	for _, card := range p.Cards {
		out.Cards = append(out.Cards, card.Clone())
	}
	return out
}

func (c Card) Clone() Card {
	out := c
	out.BaseStats = c.BaseStats.Clone()
	out.Skills = c.Skills.Clone()
	out.Physical = PhysicalAttributes{Height: cloneInt(c.Physical.Height), Weight: cloneInt(c.Physical.Weight)}
	if c.Positions != nil {
		out.Positions = make(map[Position]PositionRecord, len(c.Positions))
		for pos, record := range c.Positions {
			out.Positions[pos] = record.Clone()
		}
	}
	return out
}

func (r PositionRecord) Clone() PositionRecord {
	out := r
	out.Ratings = append([]float64(nil), r.Ratings...)
	out.Build = r.Build.Clone()
	if r.CachedAffinity != nil {
		v := *r.CachedAffinity
		out.CachedAffinity = &v
	}
	return out
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}

func positionOrder(pos Position) int {
	for i, item := range Positions {
		if item == pos {
			return i
		}
	}
	return len(Positions)
}
