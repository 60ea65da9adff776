package postgres

import (
	"database/sql"
	"time"

	"github.com/lib/pq"
	"github.com/riskibarqy/squad-builder/internal/domain/idealbuild"
	"github.com/riskibarqy/squad-builder/internal/domain/player"
)

type idealBuildTableModel struct {
	ID              string         `db:"id"`
	Tactic          string         `db:"tactic"`
	Position        string         `db:"position"`
	Style           string         `db:"style"`
	Profile         string         `db:"profile"`
	Stats           string         `db:"stats"`
	PrimarySkills   pq.StringArray `db:"primary_skills"`
	SecondarySkills pq.StringArray `db:"secondary_skills"`
	HeightMin       sql.NullInt64  `db:"height_min"`
	HeightMax       sql.NullInt64  `db:"height_max"`
	WeightMin       sql.NullInt64  `db:"weight_min"`
	WeightMax       sql.NullInt64  `db:"weight_max"`
	UpdatedAt       time.Time      `db:"updated_at"`
}

func idealBuildToRow(item idealbuild.IdealBuild, now time.Time) (idealBuildTableModel, error) {
	stats := make(map[string]int, len(item.Stats))
	for stat, value := range item.Stats {
		stats[string(stat)] = value
	}
	encoded, err := encodeJSON(stats)
	if err != nil {
		return idealBuildTableModel{}, err
	}

	return idealBuildTableModel{
		ID:              item.ID,
		Tactic:          item.Tactic,
		Position:        string(item.Position),
		Style:           string(item.Style),
		Profile:         item.Profile,
		Stats:           encoded,
		PrimarySkills:   skillNames(item.PrimarySkills),
		SecondarySkills: skillNames(item.SecondarySkills),
		HeightMin:       nullInt(item.Height.Min),
		HeightMax:       nullInt(item.Height.Max),
		WeightMin:       nullInt(item.Weight.Min),
		WeightMax:       nullInt(item.Weight.Max),
		UpdatedAt:       now.UTC(),
	}, nil
}

func idealBuildFromRow(row idealBuildTableModel) (idealbuild.IdealBuild, error) {
	var stats map[string]int
	if err := decodeJSON(row.Stats, &stats); err != nil {
		return idealbuild.IdealBuild{}, err
	}

	out := idealbuild.IdealBuild{
		ID:        row.ID,
		Tactic:    row.Tactic,
		Position:  player.Position(row.Position),
		Style:     player.Style(row.Style),
		Profile:   row.Profile,
		Stats:     make(player.AttributeStats, len(stats)),
		Height:    idealbuild.Range{Min: intOrNil(row.HeightMin), Max: intOrNil(row.HeightMax)},
		Weight:    idealbuild.Range{Min: intOrNil(row.WeightMin), Max: intOrNil(row.WeightMax)},
		UpdatedAt: row.UpdatedAt,
	}
	for stat, value := range stats {
		out.Stats[player.Stat(stat)] = value
	}
	for _, skill := range row.PrimarySkills {
		out.PrimarySkills = append(out.PrimarySkills, player.Skill(skill))
	}
	for _, skill := range row.SecondarySkills {
		out.SecondarySkills = append(out.SecondarySkills, player.Skill(skill))
	}
	return out, nil
}

func skillNames(skills []player.Skill) pq.StringArray {
	out := make(pq.StringArray, 0, len(skills))
	for _, skill := range skills {
		out = append(out, string(skill))
	}
	return out
}
