package usecase

import (
	"fmt"
	"sort"
	"time"

	"github.com/riskibarqy/squad-builder/internal/domain/formation"
	"github.com/riskibarqy/squad-builder/internal/domain/idealbuild"
	"github.com/riskibarqy/squad-builder/internal/domain/player"
	"github.com/riskibarqy/squad-builder/internal/domain/scoring"
)

// PlayerDocument is the JSON shape of a player shared by the API and backups.
type PlayerDocument struct {
	ID                  string         `json:"id"`
	Name                string         `json:"name"`
	Nationality         string         `json:"nationality,omitempty"`
	LiveForm            string         `json:"liveForm,omitempty"`
	LiveFormNonExpiring bool           `json:"liveFormNonExpiring,omitempty"`
	LiveFormSetAt       *time.Time     `json:"liveFormSetAt,omitempty"`
	Cards               []CardDocument `json:"cards"`
	CreatedAt           time.Time      `json:"createdAt"`
	UpdatedAt           time.Time      `json:"updatedAt"`
}

type CardDocument struct {
	ID                string             `json:"id"`
	Name              string             `json:"name"`
	Style             string             `json:"style"`
	League            string             `json:"league,omitempty"`
	ImageURL          string             `json:"imageUrl,omitempty"`
	Special           bool               `json:"special"`
	Positions         []PositionDocument `json:"positions"`
	BaseStats         map[string]int     `json:"baseStats"`
	Height            *int               `json:"height,omitempty"`
	Weight            *int               `json:"weight,omitempty"`
	Skills            []string           `json:"skills"`
	ProgressionPoints int                `json:"progressionPoints"`
	CreatedAt         time.Time          `json:"createdAt"`
	UpdatedAt         time.Time          `json:"updatedAt"`
}

type PositionDocument struct {
	Position           string         `json:"position"`
	Ratings            []float64      `json:"ratings"`
	Average            float64        `json:"average"`
	Build              map[string]int `json:"build,omitempty"`
	Tactic             string         `json:"tactic,omitempty"`
	CachedAffinity     *float64       `json:"cachedAffinity,omitempty"`
	AffinityComputedAt *time.Time     `json:"affinityComputedAt,omitempty"`
	UpdatedAt          *time.Time     `json:"updatedAt,omitempty"`
}

type FormationDocument struct {
	ID           string                `json:"id"`
	Name         string                `json:"name"`
	Creator      string                `json:"creator,omitempty"`
	Tactic       string                `json:"tactic,omitempty"`
	Slots        []SlotDocument        `json:"slots"`
	Results      []MatchResultDocument `json:"results"`
	TacticImages []string              `json:"tacticImages,omitempty"`
	CreatedAt    time.Time             `json:"createdAt"`
	UpdatedAt    time.Time             `json:"updatedAt"`
}

type SlotDocument struct {
	Positions     []string `json:"positions"`
	Flexible      bool     `json:"flexible"`
	AllowedStyles []string `json:"allowedStyles,omitempty"`
	X             float64  `json:"x"`
	Y             float64  `json:"y"`
}

type MatchResultDocument struct {
	GoalsFor     int       `json:"goalsFor"`
	GoalsAgainst int       `json:"goalsAgainst"`
	PlayedAt     time.Time `json:"playedAt"`
}

type IdealBuildDocument struct {
	ID              string         `json:"id"`
	Tactic          string         `json:"tactic,omitempty"`
	Position        string         `json:"position"`
	Style           string         `json:"style"`
	Profile         string         `json:"profile,omitempty"`
	Stats           map[string]int `json:"stats"`
	PrimarySkills   []string       `json:"primarySkills"`
	SecondarySkills []string       `json:"secondarySkills"`
	HeightMin       *int           `json:"heightMin,omitempty"`
	HeightMax       *int           `json:"heightMax,omitempty"`
	WeightMin       *int           `json:"weightMin,omitempty"`
	WeightMax       *int           `json:"weightMax,omitempty"`
	UpdatedAt       time.Time      `json:"updatedAt"`
}

func NewPlayerDocument(item player.Player) PlayerDocument {
	cards := make([]CardDocument, 0, len(item.Cards))
	for _, card := range item.Cards {
		cards = append(cards, newCardDocument(card))
	}
	return PlayerDocument{
		ID:                  item.ID,
		Name:                item.Name,
		Nationality:         item.Nationality,
		LiveForm:            string(item.LiveForm),
		LiveFormNonExpiring: item.LiveFormNonExpiring,
		LiveFormSetAt:       optionalTime(item.LiveFormSetAt),
		Cards:               cards,
		CreatedAt:           item.CreatedAt,
		UpdatedAt:           item.UpdatedAt,
	}
}

func newCardDocument(card player.Card) CardDocument {
	positions := make([]PositionDocument, 0, len(card.Positions))
	for pos, record := range card.Positions {
		doc := PositionDocument{
			Position:           string(pos),
			Ratings:            append([]float64{}, record.Ratings...),
			Tactic:             record.Tactic,
			CachedAffinity:     record.CachedAffinity,
			AffinityComputedAt: optionalTime(record.AffinityComputedAt),
			UpdatedAt:          optionalTime(record.UpdatedAt),
		}
		doc.Average = scoring.Average(record.Ratings)
		if len(record.Build) > 0 {
			doc.Build = make(map[string]int, len(record.Build))
			for category, level := range record.Build {
				doc.Build[string(category)] = level
			}
		}
		positions = append(positions, doc)
	}
	sort.Slice(positions, func(i, j int) bool {
		return positionIndex(positions[i].Position) < positionIndex(positions[j].Position)
	})

	stats := make(map[string]int, len(card.BaseStats))
	for stat, value := range card.BaseStats {
		stats[string(stat)] = value
	}
	skills := make([]string, 0, len(card.Skills))
	for _, skill := range card.Skills.Sorted() {
		skills = append(skills, string(skill))
	}

	return CardDocument{
		ID:                card.ID,
		Name:              card.Name,
		Style:             string(card.Style),
		League:            card.League,
		ImageURL:          card.ImageURL,
		Special:           card.IsSpecial(),
		Positions:         positions,
		BaseStats:         stats,
		Height:            card.Physical.Height,
		Weight:            card.Physical.Weight,
		Skills:            skills,
		ProgressionPoints: card.ProgressionPoints,
		CreatedAt:         card.CreatedAt,
		UpdatedAt:         card.UpdatedAt,
	}
}

// Player converts a document back into a validated domain player.
func (d PlayerDocument) Player() (player.Player, error) {
	form, err := player.ParseLiveForm(d.LiveForm)
	if err != nil {
		return player.Player{}, err
	}
	out := player.Player{
		ID:                  d.ID,
		Name:                d.Name,
		Nationality:         d.Nationality,
		LiveForm:            form,
		LiveFormNonExpiring: d.LiveFormNonExpiring,
		LiveFormSetAt:       timeValue(d.LiveFormSetAt),
		CreatedAt:           d.CreatedAt,
		UpdatedAt:           d.UpdatedAt,
	}
	for _, doc := range d.Cards {
		card, err := doc.card()
		if err != nil {
			return player.Player{}, fmt.Errorf("card %s: %w", doc.ID, err)
		}
		out.Cards = append(out.Cards, card)
	}
	if err := out.Validate(); err != nil {
		return player.Player{}, err
	}
	return out, nil
}

func (d CardDocument) card() (player.Card, error) {
	style, err := player.ParseStyle(d.Style)
	if err != nil {
		return player.Card{}, err
	}
	stats, err := player.ParseAttributeStats(d.BaseStats)
	if err != nil {
		return player.Card{}, err
	}
	skills, err := player.ParseSkillSet(d.Skills)
	if err != nil {
		return player.Card{}, err
	}

	positions := make(map[player.Position]player.PositionRecord, len(d.Positions))
	for _, doc := range d.Positions {
		pos, err := player.ParsePosition(doc.Position)
		if err != nil {
			return player.Card{}, err
		}
		build, err := player.ParseProgressionBuild(doc.Build)
		if err != nil {
			return player.Card{}, err
		}
		if len(build) == 0 {
			build = nil
		}
		positions[pos] = player.PositionRecord{
			Ratings:            append([]float64(nil), doc.Ratings...),
			Build:              build,
			Tactic:             doc.Tactic,
			CachedAffinity:     doc.CachedAffinity,
			AffinityComputedAt: timeValue(doc.AffinityComputedAt),
			UpdatedAt:          timeValue(doc.UpdatedAt),
		}
	}

	return player.Card{
		ID:                d.ID,
		Name:              d.Name,
		Style:             style,
		League:            d.League,
		ImageURL:          d.ImageURL,
		Positions:         positions,
		BaseStats:         stats,
		Physical:          player.PhysicalAttributes{Height: d.Height, Weight: d.Weight},
		Skills:            skills,
		ProgressionPoints: d.ProgressionPoints,
		CreatedAt:         d.CreatedAt,
		UpdatedAt:         d.UpdatedAt,
	}, nil
}

func NewFormationDocument(item formation.Formation) FormationDocument {
	slots := make([]SlotDocument, 0, len(item.Slots))
	for _, slot := range item.Slots {
		doc := SlotDocument{Flexible: slot.Target.IsFlexible(), X: slot.X, Y: slot.Y}
		for _, pos := range slot.Target.Positions() {
			doc.Positions = append(doc.Positions, string(pos))
		}
		for _, style := range slot.AllowedStyles {
			doc.AllowedStyles = append(doc.AllowedStyles, string(style))
		}
		slots = append(slots, doc)
	}
	results := make([]MatchResultDocument, 0, len(item.Results))
	for _, result := range item.Results {
		results = append(results, MatchResultDocument{
			GoalsFor:     result.GoalsFor,
			GoalsAgainst: result.GoalsAgainst,
			PlayedAt:     result.PlayedAt,
		})
	}
	return FormationDocument{
		ID:           item.ID,
		Name:         item.Name,
		Creator:      item.Creator,
		Tactic:       item.Tactic,
		Slots:        slots,
		Results:      results,
		TacticImages: append([]string(nil), item.TacticImages...),
		CreatedAt:    item.CreatedAt,
		UpdatedAt:    item.UpdatedAt,
	}
}

// Formation converts a document back into a validated domain formation.
func (d FormationDocument) Formation() (formation.Formation, error) {
	input := FormationInput{
		Name:         d.Name,
		Creator:      d.Creator,
		Tactic:       d.Tactic,
		TacticImages: d.TacticImages,
	}
	for _, slot := range d.Slots {
		input.Slots = append(input.Slots, SlotInput{
			Positions:     slot.Positions,
			Flexible:      slot.Flexible,
			AllowedStyles: slot.AllowedStyles,
			X:             slot.X,
			Y:             slot.Y,
		})
	}
	out, err := buildFormation(d.ID, input)
	if err != nil {
		return formation.Formation{}, err
	}
	for _, result := range d.Results {
		out.Results = append(out.Results, formation.MatchResult{
			GoalsFor:     result.GoalsFor,
			GoalsAgainst: result.GoalsAgainst,
			PlayedAt:     result.PlayedAt,
		})
	}
	out.CreatedAt = d.CreatedAt
	out.UpdatedAt = d.UpdatedAt
	if err := out.Validate(); err != nil {
		return formation.Formation{}, err
	}
	return out, nil
}

func NewIdealBuildDocument(item idealbuild.IdealBuild) IdealBuildDocument {
	stats := make(map[string]int, len(item.Stats))
	for stat, value := range item.Stats {
		stats[string(stat)] = value
	}
	return IdealBuildDocument{
		ID:              item.ID,
		Tactic:          item.Tactic,
		Position:        string(item.Position),
		Style:           string(item.Style),
		Profile:         item.Profile,
		Stats:           stats,
		PrimarySkills:   skillNames(item.PrimarySkills),
		SecondarySkills: skillNames(item.SecondarySkills),
		HeightMin:       item.Height.Min,
		HeightMax:       item.Height.Max,
		WeightMin:       item.Weight.Min,
		WeightMax:       item.Weight.Max,
		UpdatedAt:       item.UpdatedAt,
	}
}

// IdealBuild converts a document back into a validated domain build.
func (d IdealBuildDocument) IdealBuild() (idealbuild.IdealBuild, error) {
	out, err := parseIdealBuild(UpsertIdealBuildInput{
		ID:              d.ID,
		Tactic:          d.Tactic,
		Position:        d.Position,
		Style:           d.Style,
		Profile:         d.Profile,
		Stats:           d.Stats,
		PrimarySkills:   d.PrimarySkills,
		SecondarySkills: d.SecondarySkills,
		Height:          RangeInput{Min: d.HeightMin, Max: d.HeightMax},
		Weight:          RangeInput{Min: d.WeightMin, Max: d.WeightMax},
	})
	if err != nil {
		return idealbuild.IdealBuild{}, err
	}
	out.UpdatedAt = d.UpdatedAt
	if err := out.Validate(); err != nil {
		return idealbuild.IdealBuild{}, err
	}
	return out, nil
}

func skillNames(skills []player.Skill) []string {
	out := make([]string, 0, len(skills))
	for _, skill := range skills {
		out = append(out, string(skill))
	}
	return out
}

func positionIndex(raw string) int {
	for i, pos := range player.Positions {
		if string(pos) == raw {
			return i
		}
	}
	return len(player.Positions)
}

func optionalTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	out := t
	return &out
}

func timeValue(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
