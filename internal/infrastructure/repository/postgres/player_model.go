package postgres

import (
	"time"

	"github.com/riskibarqy/squad-builder/internal/domain/player"
)

type playerTableModel struct {
	ID                  string     `db:"id"`
	Name                string     `db:"name"`
	Nationality         string     `db:"nationality"`
	LiveForm            string     `db:"live_form"`
	LiveFormNonExpiring bool       `db:"live_form_non_expiring"`
	LiveFormSetAt       *time.Time `db:"live_form_set_at"`
	Cards               string     `db:"cards"`
	CreatedAt           time.Time  `db:"created_at,readonly"`
	UpdatedAt           time.Time  `db:"updated_at"`
	DeletedAt           *time.Time `db:"deleted_at"`
}

// cardDocument is the JSONB shape of one card inside players.cards.
type cardDocument struct {
	ID                string                            `json:"id"`
	Name              string                            `json:"name"`
	Style             string                            `json:"style"`
	League            string                            `json:"league,omitempty"`
	ImageURL          string                            `json:"imageUrl,omitempty"`
	Positions         map[string]positionRecordDocument `json:"positions,omitempty"`
	BaseStats         map[string]int                    `json:"baseStats,omitempty"`
	Height            *int                              `json:"height,omitempty"`
	Weight            *int                              `json:"weight,omitempty"`
	Skills            []string                          `json:"skills,omitempty"`
	ProgressionPoints int                               `json:"progressionPoints"`
	CreatedAt         *time.Time                        `json:"createdAt,omitempty"`
	UpdatedAt         *time.Time                        `json:"updatedAt,omitempty"`
}

type positionRecordDocument struct {
	Ratings            []float64      `json:"ratings"`
	Build              map[string]int `json:"build,omitempty"`
	Tactic             string         `json:"tactic,omitempty"`
	CachedAffinity     *float64       `json:"cachedAffinity,omitempty"`
	AffinityComputedAt *time.Time     `json:"affinityComputedAt,omitempty"`
	UpdatedAt          *time.Time     `json:"updatedAt,omitempty"`
}

func playerToRow(item player.Player, now time.Time) (playerTableModel, error) {
	docs := make([]cardDocument, 0, len(item.Cards))
	for _, card := range item.Cards {
		docs = append(docs, cardToDocument(card))
	}
	cards, err := encodeJSON(docs)
	if err != nil {
		return playerTableModel{}, err
	}

	createdAt := item.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}
	return playerTableModel{
		ID:                  item.ID,
		Name:                item.Name,
		Nationality:         item.Nationality,
		LiveForm:            string(item.LiveForm),
		LiveFormNonExpiring: item.LiveFormNonExpiring,
		LiveFormSetAt:       nullTime(item.LiveFormSetAt),
		Cards:               cards,
		CreatedAt:           createdAt.UTC(),
		UpdatedAt:           now.UTC(),
	}, nil
}

func playerFromRow(row playerTableModel) (player.Player, error) {
	var docs []cardDocument
	if err := decodeJSON(row.Cards, &docs); err != nil {
		return player.Player{}, err
	}

	out := player.Player{
		ID:                  row.ID,
		Name:                row.Name,
		Nationality:         row.Nationality,
		LiveForm:            player.LiveForm(row.LiveForm),
		LiveFormNonExpiring: row.LiveFormNonExpiring,
		LiveFormSetAt:       timeOrZero(row.LiveFormSetAt),
		CreatedAt:           row.CreatedAt,
		UpdatedAt:           row.UpdatedAt,
	}
	for _, doc := range docs {
		out.Cards = append(out.Cards, cardFromDocument(doc))
	}
	return out, nil
}

func cardToDocument(card player.Card) cardDocument {
	doc := cardDocument{
		ID:                card.ID,
		Name:              card.Name,
		Style:             string(card.Style),
		League:            card.League,
		ImageURL:          card.ImageURL,
		Height:            card.Physical.Height,
		Weight:            card.Physical.Weight,
		ProgressionPoints: card.ProgressionPoints,
		CreatedAt:         nullTime(card.CreatedAt),
		UpdatedAt:         nullTime(card.UpdatedAt),
	}
	if len(card.Positions) > 0 {
		doc.Positions = make(map[string]positionRecordDocument, len(card.Positions))
		for pos, record := range card.Positions {
			doc.Positions[string(pos)] = positionRecordDocument{
				Ratings:            append([]float64{}, record.Ratings...),
				Build:              categoryLevels(record.Build),
				Tactic:             record.Tactic,
				CachedAffinity:     record.CachedAffinity,
				AffinityComputedAt: nullTime(record.AffinityComputedAt),
				UpdatedAt:          nullTime(record.UpdatedAt),
			}
		}
	}
	if len(card.BaseStats) > 0 {
		doc.BaseStats = make(map[string]int, len(card.BaseStats))
		for stat, value := range card.BaseStats {
			doc.BaseStats[string(stat)] = value
		}
	}
	for _, skill := range card.Skills.Sorted() {
		doc.Skills = append(doc.Skills, string(skill))
	}
	return doc
}

// cardFromDocument trusts stored values; they were validated on write.
func cardFromDocument(doc cardDocument) player.Card {
	card := player.Card{
		ID:                doc.ID,
		Name:              doc.Name,
		Style:             player.Style(doc.Style),
		League:            doc.League,
		ImageURL:          doc.ImageURL,
		Physical:          player.PhysicalAttributes{Height: doc.Height, Weight: doc.Weight},
		ProgressionPoints: doc.ProgressionPoints,
		CreatedAt:         timeOrZero(doc.CreatedAt),
		UpdatedAt:         timeOrZero(doc.UpdatedAt),
	}
	if len(doc.Positions) > 0 {
		card.Positions = make(map[player.Position]player.PositionRecord, len(doc.Positions))
		for pos, record := range doc.Positions {
			var build player.ProgressionBuild
			if len(record.Build) > 0 {
				build = make(player.ProgressionBuild, len(record.Build))
				for category, level := range record.Build {
					build[player.Category(category)] = level
				}
			}
			card.Positions[player.Position(pos)] = player.PositionRecord{
				Ratings:            record.Ratings,
				Build:              build,
				Tactic:             record.Tactic,
				CachedAffinity:     record.CachedAffinity,
				AffinityComputedAt: timeOrZero(record.AffinityComputedAt),
				UpdatedAt:          timeOrZero(record.UpdatedAt),
			}
		}
	}
	if len(doc.BaseStats) > 0 {
		card.BaseStats = make(player.AttributeStats, len(doc.BaseStats))
		for stat, value := range doc.BaseStats {
			card.BaseStats[player.Stat(stat)] = value
		}
	}
	if len(doc.Skills) > 0 {
		card.Skills = make(player.SkillSet, len(doc.Skills))
		for _, skill := range doc.Skills {
			card.Skills[player.Skill(skill)] = struct{}{}
		}
	}
	return card
}

func categoryLevels(build player.ProgressionBuild) map[string]int {
	if len(build) == 0 {
		return nil
	}
	out := make(map[string]int, len(build))
	for category, level := range build {
		out[string(category)] = level
	}
	return out
}
