package memory

import (
	"time"

	"github.com/riskibarqy/squad-builder/internal/domain/formation"
	"github.com/riskibarqy/squad-builder/internal/domain/idealbuild"
	"github.com/riskibarqy/squad-builder/internal/domain/player"
)

const (
	SeedTactic      = "possession"
	FormationID433  = "formation-433"
	FormationID4231 = "formation-4231"
	seedCreator     = "squad-builder"
)

var seedTime = time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)

func SeedFormations() []formation.Formation {
	out := make([]formation.Formation, 0, 2)
	out = append(out, formation.Formation{
		ID:      FormationID433,
		Name:    "4-3-3",
		Creator: seedCreator,
		Tactic:  SeedTactic,
		Slots: []formation.Slot{
			{Target: formation.SingleTarget(player.PositionGoalkeeper), X: 50, Y: 95},
			{Target: formation.SingleTarget(player.PositionLeftBack), X: 15, Y: 75},
			{Target: formation.SingleTarget(player.PositionCentreBack), X: 38, Y: 80},
			{Target: formation.SingleTarget(player.PositionCentreBack), X: 62, Y: 80},
			{Target: formation.SingleTarget(player.PositionRightBack), X: 85, Y: 75},
			{Target: formation.SingleTarget(player.PositionDefensiveMidfielder), X: 50, Y: 62},
			{Target: formation.FlexibleTarget(player.PositionCentralMidfielder, player.PositionAttackingMidfielder), X: 32, Y: 50},
			{Target: formation.FlexibleTarget(player.PositionCentralMidfielder, player.PositionAttackingMidfielder), X: 68, Y: 50},
			{Target: formation.SingleTarget(player.PositionLeftWinger), X: 15, Y: 25},
			{
				Target:        formation.SingleTarget(player.PositionCentreForward),
				AllowedStyles: []player.Style{player.StyleGoalPoacher, player.StyleFoxInTheBox},
				X:             50,
				Y:             15,
			},
			{Target: formation.SingleTarget(player.PositionRightWinger), X: 85, Y: 25},
		},
		CreatedAt: seedTime,
		UpdatedAt: seedTime,
	})
	out = append(out, formation.Formation{
		ID:      FormationID4231,
		Name:    "4-2-3-1",
		Creator: seedCreator,
		Tactic:  SeedTactic,
		Slots: []formation.Slot{
			{Target: formation.SingleTarget(player.PositionGoalkeeper), X: 50, Y: 95},
			{Target: formation.SingleTarget(player.PositionLeftBack), X: 15, Y: 75},
			{Target: formation.SingleTarget(player.PositionCentreBack), X: 38, Y: 80},
			{Target: formation.SingleTarget(player.PositionCentreBack), X: 62, Y: 80},
			{Target: formation.SingleTarget(player.PositionRightBack), X: 85, Y: 75},
			{Target: formation.SingleTarget(player.PositionDefensiveMidfielder), X: 38, Y: 60},
			{Target: formation.SingleTarget(player.PositionCentralMidfielder), X: 62, Y: 60},
			{Target: formation.SingleTarget(player.PositionLeftMidfielder), X: 18, Y: 38},
			{Target: formation.SingleTarget(player.PositionAttackingMidfielder), X: 50, Y: 38},
			{Target: formation.SingleTarget(player.PositionRightMidfielder), X: 82, Y: 38},
			{Target: formation.FlexibleTarget(player.PositionCentreForward, player.PositionSecondStriker), X: 50, Y: 15},
		},
		CreatedAt: seedTime,
		UpdatedAt: seedTime,
	})
	return out
}

func SeedIdealBuilds() []idealbuild.IdealBuild {
	tall, short := 187, 186
	return []idealbuild.IdealBuild{
		{
			ID:       "build-pt",
			Tactic:   SeedTactic,
			Position: player.PositionGoalkeeper,
			Style:    player.StyleNone,
			Stats: player.AttributeStats{
				player.StatGKAwareness: 90, player.StatGKCatching: 85, player.StatGKParrying: 85,
				player.StatGKReflexes: 90, player.StatGKReach: 88, player.StatJump: 80,
			},
			PrimarySkills: []player.Skill{"Portero atajador de penaltis"},
			UpdatedAt:     seedTime,
		},
		{
			ID:       "build-dfc",
			Tactic:   SeedTactic,
			Position: player.PositionCentreBack,
			Style:    player.StyleNone,
			Stats: player.AttributeStats{
				player.StatDefensiveAwareness: 90, player.StatTackling: 88, player.StatDefensiveEngagement: 88,
				player.StatHeading: 80, player.StatJump: 82, player.StatPhysicalContact: 85, player.StatLowPass: 75,
			},
			PrimarySkills:   []player.Skill{"Interceptación", "Marcaje"},
			SecondarySkills: []player.Skill{"Liderazgo"},
			Height:          idealbuild.Range{Min: &tall},
			UpdatedAt:       seedTime,
		},
		{
			ID:       "build-lat",
			Tactic:   SeedTactic,
			Position: player.ArchetypeFullBack,
			Style:    player.StyleNone,
			Stats: player.AttributeStats{
				player.StatSpeed: 85, player.StatAcceleration: 85, player.StatStamina: 88,
				player.StatDefensiveAwareness: 80, player.StatTackling: 80, player.StatLoftedPass: 78,
			},
			PrimarySkills: []player.Skill{"Interceptación"},
			UpdatedAt:     seedTime,
		},
		{
			ID:       "build-mcd",
			Tactic:   SeedTactic,
			Position: player.PositionDefensiveMidfielder,
			Style:    player.StyleAnchorMan,
			Stats: player.AttributeStats{
				player.StatDefensiveAwareness: 88, player.StatTackling: 85, player.StatLowPass: 82,
				player.StatStamina: 85, player.StatPhysicalContact: 82,
			},
			PrimarySkills: []player.Skill{"Interceptación"},
			UpdatedAt:     seedTime,
		},
		{
			ID:       "build-mc",
			Tactic:   SeedTactic,
			Position: player.PositionCentralMidfielder,
			Style:    player.StyleNone,
			Stats: player.AttributeStats{
				player.StatLowPass: 88, player.StatLoftedPass: 85, player.StatBallControl: 85,
				player.StatTightPossession: 82, player.StatStamina: 85,
			},
			PrimarySkills:   []player.Skill{"Pase al primer toque", "Visión de juego"},
			SecondarySkills: []player.Skill{"Pase en profundidad"},
			UpdatedAt:       seedTime,
		},
		{
			ID:       "build-ext",
			Tactic:   SeedTactic,
			Position: player.ArchetypeWinger,
			Style:    player.StyleNone,
			Stats: player.AttributeStats{
				player.StatSpeed: 90, player.StatAcceleration: 90, player.StatDribbling: 88,
				player.StatBallControl: 85, player.StatFinishing: 78, player.StatCurl: 80,
			},
			PrimarySkills: []player.Skill{"Recorte", "Cambio de dirección"},
			UpdatedAt:     seedTime,
		},
		{
			ID:       "build-dc-tall",
			Tactic:   SeedTactic,
			Position: player.PositionCentreForward,
			Style:    player.StyleGoalPoacherTall,
			Stats: player.AttributeStats{
				player.StatFinishing: 92, player.StatOffensiveAwareness: 90, player.StatHeading: 85,
				player.StatJump: 82, player.StatPhysicalContact: 82, player.StatKickingPower: 85,
			},
			PrimarySkills: []player.Skill{"Cabezazo", "Remate de primeras"},
			Height:        idealbuild.Range{Min: &tall},
			UpdatedAt:     seedTime,
		},
		{
			ID:       "build-dc-short",
			Tactic:   SeedTactic,
			Position: player.PositionCentreForward,
			Style:    player.StyleGoalPoacherShort,
			Stats: player.AttributeStats{
				player.StatFinishing: 92, player.StatOffensiveAwareness: 92, player.StatAcceleration: 88,
				player.StatBalance: 85, player.StatBallControl: 82,
			},
			PrimarySkills: []player.Skill{"Remate de primeras", "Tiro con efecto"},
			Height:        idealbuild.Range{Max: &short},
			UpdatedAt:     seedTime,
		},
	}
}

func SeedPlayers() []player.Player {
	height := func(v int) *int { return &v }
	return []player.Player{
		{
			ID:          "player-keeper-01",
			Name:        "Iker Zubia",
			Nationality: "Spain",
			Cards: []player.Card{{
				ID:     "card-keeper-01",
				Name:   "Iker Zubia",
				Style:  player.StyleDefensiveGoalkeeper,
				League: "LaLiga",
				Positions: map[player.Position]player.PositionRecord{
					player.PositionGoalkeeper: {Ratings: []float64{7.2, 7.8, 8.1}, Tactic: SeedTactic, UpdatedAt: seedTime},
				},
				BaseStats: player.AttributeStats{
					player.StatGKAwareness: 84, player.StatGKCatching: 80, player.StatGKParrying: 82,
					player.StatGKReflexes: 86, player.StatGKReach: 83, player.StatJump: 74,
					player.StatDefensiveAwareness: 40, player.StatTackling: 35, player.StatAggression: 45,
					player.StatDefensiveEngagement: 38,
				},
				Physical:          player.PhysicalAttributes{Height: height(191)},
				Skills:            player.NewSkillSet("Portero atajador de penaltis"),
				ProgressionPoints: 40,
				CreatedAt:         seedTime,
				UpdatedAt:         seedTime,
			}},
			CreatedAt: seedTime,
			UpdatedAt: seedTime,
		},
		{
			ID:          "player-striker-01",
			Name:        "Mateo Arriaga",
			Nationality: "Argentina",
			Cards: []player.Card{{
				ID:     "card-striker-01",
				Name:   "Mateo Arriaga",
				Style:  player.StyleGoalPoacher,
				League: "Serie A",
				Positions: map[player.Position]player.PositionRecord{
					player.PositionCentreForward: {Ratings: []float64{8.0, 7.4, 9.1, 8.6}, Tactic: SeedTactic, UpdatedAt: seedTime},
					player.PositionSecondStriker: {Ratings: []float64{7.0}, UpdatedAt: seedTime},
				},
				BaseStats: player.AttributeStats{
					player.StatFinishing: 86, player.StatOffensiveAwareness: 85, player.StatAcceleration: 82,
					player.StatBalance: 80, player.StatBallControl: 79, player.StatHeading: 70,
					player.StatJump: 68, player.StatPhysicalContact: 72, player.StatKickingPower: 80,
				},
				Physical:          player.PhysicalAttributes{Height: height(178)},
				Skills:            player.NewSkillSet("Remate de primeras", "Tiro con efecto"),
				ProgressionPoints: 52,
				CreatedAt:         seedTime,
				UpdatedAt:         seedTime,
			}},
			LiveForm:      player.LiveFormB,
			LiveFormSetAt: seedTime,
			CreatedAt:     seedTime,
			UpdatedAt:     seedTime,
		},
		{
			ID:          "player-midfielder-01",
			Name:        "Lucas Ferreira",
			Nationality: "Brazil",
			Cards: []player.Card{
				{
					ID:     "card-midfielder-01",
					Name:   "Lucas Ferreira",
					Style:  player.StyleOrchestrator,
					League: "LaLiga",
					Positions: map[player.Position]player.PositionRecord{
						player.PositionCentralMidfielder:   {Ratings: []float64{7.5, 7.7, 7.9, 8.0, 7.6}, UpdatedAt: seedTime},
						player.PositionAttackingMidfielder: {Ratings: []float64{7.1}, UpdatedAt: seedTime},
					},
					BaseStats: player.AttributeStats{
						player.StatLowPass: 84, player.StatLoftedPass: 82, player.StatBallControl: 83,
						player.StatTightPossession: 80, player.StatStamina: 78,
					},
					Physical:          player.PhysicalAttributes{Height: height(180)},
					Skills:            player.NewSkillSet("Pase al primer toque", "Visión de juego"),
					ProgressionPoints: 46,
					CreatedAt:         seedTime,
					UpdatedAt:         seedTime,
				},
				{
					ID:     "card-midfielder-01-potm",
					Name:   "Lucas Ferreira POTM",
					Style:  player.StyleOrchestrator,
					League: "LaLiga",
					Positions: map[player.Position]player.PositionRecord{
						player.PositionCentralMidfielder: {Ratings: []float64{8.4, 8.9}, UpdatedAt: seedTime},
					},
					BaseStats: player.AttributeStats{
						player.StatLowPass: 91, player.StatLoftedPass: 89, player.StatBallControl: 90,
						player.StatTightPossession: 88, player.StatStamina: 86,
					},
					Physical:  player.PhysicalAttributes{Height: height(180)},
					Skills:    player.NewSkillSet("Pase al primer toque", "Visión de juego", "Pase en profundidad"),
					CreatedAt: seedTime,
					UpdatedAt: seedTime,
				},
			},
			CreatedAt: seedTime,
			UpdatedAt: seedTime,
		},
		{
			ID:          "player-winger-01",
			Name:        "Kaito Mori",
			Nationality: "Japan",
			Cards: []player.Card{{
				ID:     "card-winger-01",
				Name:   "Kaito Mori",
				Style:  player.StyleRoamingFlank,
				League: "Premier League",
				Positions: map[player.Position]player.PositionRecord{
					player.PositionLeftWinger:  {Ratings: []float64{7.8, 8.2, 6.9}, UpdatedAt: seedTime},
					player.PositionRightWinger: {Ratings: []float64{7.4, 7.6}, UpdatedAt: seedTime},
				},
				BaseStats: player.AttributeStats{
					player.StatSpeed: 88, player.StatAcceleration: 90, player.StatDribbling: 86,
					player.StatBallControl: 83, player.StatFinishing: 74, player.StatCurl: 78,
				},
				Physical:          player.PhysicalAttributes{Height: height(170)},
				Skills:            player.NewSkillSet("Recorte", "Cambio de dirección", "Revulsivo"),
				ProgressionPoints: 48,
				CreatedAt:         seedTime,
				UpdatedAt:         seedTime,
			}},
			LiveForm:            player.LiveFormA,
			LiveFormNonExpiring: true,
			LiveFormSetAt:       seedTime,
			CreatedAt:           seedTime,
			UpdatedAt:           seedTime,
		},
	}
}
