package postgres

import (
	"time"

	"github.com/lib/pq"
	"github.com/riskibarqy/squad-builder/internal/domain/formation"
	"github.com/riskibarqy/squad-builder/internal/domain/player"
)

type formationTableModel struct {
	ID           string         `db:"id"`
	Name         string         `db:"name"`
	Creator      string         `db:"creator"`
	Tactic       string         `db:"tactic"`
	Slots        string         `db:"slots"`
	Results      string         `db:"results"`
	TacticImages pq.StringArray `db:"tactic_images"`
	CreatedAt    time.Time      `db:"created_at,readonly"`
	UpdatedAt    time.Time      `db:"updated_at"`
	DeletedAt    *time.Time     `db:"deleted_at"`
}

type slotDocument struct {
	Positions     []string `json:"positions"`
	Flexible      bool     `json:"flexible,omitempty"`
	AllowedStyles []string `json:"allowedStyles,omitempty"`
	X             float64  `json:"x"`
	Y             float64  `json:"y"`
}

type matchResultDocument struct {
	GoalsFor     int       `json:"goalsFor"`
	GoalsAgainst int       `json:"goalsAgainst"`
	PlayedAt     time.Time `json:"playedAt"`
}

func formationToRow(item formation.Formation, now time.Time) (formationTableModel, error) {
	slots := make([]slotDocument, 0, len(item.Slots))
	for _, slot := range item.Slots {
		doc := slotDocument{Flexible: slot.Target.IsFlexible(), X: slot.X, Y: slot.Y}
		for _, pos := range slot.Target.Positions() {
			doc.Positions = append(doc.Positions, string(pos))
		}
		for _, style := range slot.AllowedStyles {
			doc.AllowedStyles = append(doc.AllowedStyles, string(style))
		}
		slots = append(slots, doc)
	}
	encodedSlots, err := encodeJSON(slots)
	if err != nil {
		return formationTableModel{}, err
	}

	results := make([]matchResultDocument, 0, len(item.Results))
	for _, result := range item.Results {
		results = append(results, matchResultDocument{
			GoalsFor:     result.GoalsFor,
			GoalsAgainst: result.GoalsAgainst,
			PlayedAt:     result.PlayedAt.UTC(),
		})
	}
	encodedResults, err := encodeJSON(results)
	if err != nil {
		return formationTableModel{}, err
	}

	createdAt := item.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}
	return formationTableModel{
		ID:           item.ID,
		Name:         item.Name,
		Creator:      item.Creator,
		Tactic:       item.Tactic,
		Slots:        encodedSlots,
		Results:      encodedResults,
		TacticImages: pq.StringArray(append([]string{}, item.TacticImages...)),
		CreatedAt:    createdAt.UTC(),
		UpdatedAt:    now.UTC(),
	}, nil
}

func formationFromRow(row formationTableModel) (formation.Formation, error) {
	var slots []slotDocument
	if err := decodeJSON(row.Slots, &slots); err != nil {
		return formation.Formation{}, err
	}
	var results []matchResultDocument
	if err := decodeJSON(row.Results, &results); err != nil {
		return formation.Formation{}, err
	}

	out := formation.Formation{
		ID:        row.ID,
		Name:      row.Name,
		Creator:   row.Creator,
		Tactic:    row.Tactic,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
	for _, doc := range slots {
		positions := make([]player.Position, 0, len(doc.Positions))
		for _, pos := range doc.Positions {
			positions = append(positions, player.Position(pos))
		}
		slot := formation.Slot{X: doc.X, Y: doc.Y}
		if doc.Flexible {
			slot.Target = formation.FlexibleTarget(positions...)
		} else if len(positions) > 0 {
			slot.Target = formation.SingleTarget(positions[0])
		}
		for _, style := range doc.AllowedStyles {
			slot.AllowedStyles = append(slot.AllowedStyles, player.Style(style))
		}
		out.Slots = append(out.Slots, slot)
	}
	for _, doc := range results {
		out.Results = append(out.Results, formation.MatchResult{
			GoalsFor:     doc.GoalsFor,
			GoalsAgainst: doc.GoalsAgainst,
			PlayedAt:     doc.PlayedAt,
		})
	}
	if len(row.TacticImages) > 0 {
		out.TacticImages = append([]string(nil), row.TacticImages...)
	}
	return out, nil
}
