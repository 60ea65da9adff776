package player

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownStyle = errors.New("unknown play style")

// Style is a card's play-style label.
type Style string

const (
	StyleNone                Style = "Ninguno"
	StyleGoalPoacher         Style = "Cazagoles"
	StyleDummyRunner         Style = "Señuelo"
	StyleFoxInTheBox         Style = "Hombre de área"
	StyleDeepLyingForward    Style = "Segundo delantero"
	StyleTargetMan           Style = "Hombre objetivo"
	StyleExtraFrontman       Style = "Atacante extra"
	StyleProlificWinger      Style = "Extremo prolífico"
	StyleRoamingFlank        Style = "Extremo móvil"
	StyleCrossSpecialist     Style = "Especialista en centros"
	StyleClassicNo10         Style = "Diez clásico"
	StyleHolePlayer          Style = "Jugador de huecos"
	StyleCreativePlaymaker   Style = "Creador de jugadas"
	StyleBoxToBox            Style = "Omnipresente"
	StyleOrchestrator        Style = "Orquestador"
	StyleAnchorMan           Style = "Medio escudo"
	StyleDestroyer           Style = "Destructor"
	StyleBuildUp             Style = "Organizador"
	StyleOffensiveFullBack   Style = "Lateral ofensivo"
	StyleDefensiveFullBack   Style = "Lateral defensivo"
	StyleFullBackFinisher    Style = "Lateral finalizador"
	StyleOffensiveGoalkeeper Style = "Portero ofensivo"
	StyleDefensiveGoalkeeper Style = "Portero defensivo"

	// Height-gated sub-profiles of StyleGoalPoacher. They only exist as ideal
	// build keys and are never stored on a card.
	StyleGoalPoacherTall  Style = "Cazagoles alto"
	StyleGoalPoacherShort Style = "Cazagoles bajo"
)

// GoalPoacherHeightThreshold splits poachers into tall and short profiles (cm).
const GoalPoacherHeightThreshold = 187

var cardStyles = []Style{
	StyleNone,
	StyleGoalPoacher,
	StyleDummyRunner,
	StyleFoxInTheBox,
	StyleDeepLyingForward,
	StyleTargetMan,
	StyleExtraFrontman,
	StyleProlificWinger,
	StyleRoamingFlank,
	StyleCrossSpecialist,
	StyleClassicNo10,
	StyleHolePlayer,
	StyleCreativePlaymaker,
	StyleBoxToBox,
	StyleOrchestrator,
	StyleAnchorMan,
	StyleDestroyer,
	StyleBuildUp,
	StyleOffensiveFullBack,
	StyleDefensiveFullBack,
	StyleFullBackFinisher,
	StyleOffensiveGoalkeeper,
	StyleDefensiveGoalkeeper,
}

var styleAliases = map[Style]Style{
	StyleDummyRunner: StyleDeepLyingForward,
}

var activeStylesByPosition = map[Position][]Style{
	PositionGoalkeeper:          {StyleOffensiveGoalkeeper, StyleDefensiveGoalkeeper},
	PositionCentreBack:          {StyleBuildUp, StyleDestroyer, StyleExtraFrontman},
	PositionLeftBack:            {StyleOffensiveFullBack, StyleDefensiveFullBack, StyleFullBackFinisher},
	PositionRightBack:           {StyleOffensiveFullBack, StyleDefensiveFullBack, StyleFullBackFinisher},
	PositionDefensiveMidfielder: {StyleAnchorMan, StyleDestroyer, StyleOrchestrator, StyleBoxToBox},
	PositionCentralMidfielder:   {StyleBoxToBox, StyleOrchestrator, StyleHolePlayer, StyleCreativePlaymaker, StyleDestroyer},
	PositionLeftMidfielder:      {StyleCrossSpecialist, StyleRoamingFlank, StyleBoxToBox},
	PositionRightMidfielder:     {StyleCrossSpecialist, StyleRoamingFlank, StyleBoxToBox},
	PositionAttackingMidfielder: {StyleClassicNo10, StyleHolePlayer, StyleCreativePlaymaker},
	PositionLeftWinger:          {StyleProlificWinger, StyleRoamingFlank, StyleCrossSpecialist, StyleCreativePlaymaker},
	PositionRightWinger:         {StyleProlificWinger, StyleRoamingFlank, StyleCrossSpecialist, StyleCreativePlaymaker},
	PositionSecondStriker:       {StyleDeepLyingForward, StyleClassicNo10, StyleHolePlayer, StyleCreativePlaymaker},
	PositionCentreForward:       {StyleGoalPoacher, StyleFoxInTheBox, StyleTargetMan, StyleDeepLyingForward},
}

// ParseStyle validates a card style. Empty input maps to StyleNone.
func ParseStyle(raw string) (Style, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return StyleNone, nil
	}
	for _, style := range cardStyles {
		if strings.EqualFold(string(style), value) {
			return style, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStyle, raw)
}

// ParseBuildStyle is ParseStyle plus the build-only sub-profiles.
func ParseBuildStyle(raw string) (Style, error) {
	value := strings.TrimSpace(raw)
	for _, style := range []Style{StyleGoalPoacherTall, StyleGoalPoacherShort} {
		if strings.EqualFold(string(style), value) {
			return style, nil
		}
	}
	return ParseStyle(raw)
}

// NormalizeStyle applies the historical alias table. Empty becomes StyleNone.
func NormalizeStyle(style Style) Style {
	if strings.TrimSpace(string(style)) == "" {
		return StyleNone
	}
	if canonical, ok := styleAliases[style]; ok {
		return canonical
	}
	return style
}

// ActiveStyles returns the named styles currently meaningful at a position.
func ActiveStyles(pos Position) []Style {
	return activeStylesByPosition[pos]
}

// IsActiveStyle reports whether the normalized style is active at pos.
func IsActiveStyle(pos Position, style Style) bool {
	style = NormalizeStyle(style)
	for _, active := range activeStylesByPosition[pos] {
		if active == style {
			return true
		}
	}
	return false
}
