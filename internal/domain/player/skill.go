package player

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var ErrUnknownSkill = errors.New("unknown skill")

type Skill string

// SkillSuperSub is the trump-card skill that only pays off from the bench.
const SkillSuperSub Skill = "Revulsivo"

var skillCatalogue = []Skill{
	"Amago por detrás",
	"Bicicleta",
	"Cabezazo",
	"Cambio de dirección",
	"Caño",
	"Centro al segundo palo",
	"Control con la suela",
	"Despeje acrobático",
	"Disparo con empeine",
	"Disparo de larga distancia",
	"Disparo lejano con rosca",
	"Entrada agresiva",
	"Espíritu de lucha",
	"Interceptación",
	"Lanzamiento largo del portero",
	"Lanzamiento largo",
	"Liderazgo",
	"Marcaje",
	"Pase al primer toque",
	"Pase bombeado bajo",
	"Pase con el exterior",
	"Pase en profundidad",
	"Pase elevado en profundidad",
	"Pase de tacón",
	"Portero atajador de penaltis",
	"Precisión a balón parado",
	"Recorte",
	"Remate acrobático",
	"Remate de primeras",
	"Revulsivo",
	"Sombrero",
	"Tiro con efecto",
	"Tiro de vaselina",
	"Toque doble",
	"Trabajo en equipo",
	"Visión de juego",
}

var skillIndex = func() map[string]Skill {
	out := make(map[string]Skill, len(skillCatalogue))
	for _, skill := range skillCatalogue {
		out[strings.ToLower(string(skill))] = skill
	}
	return out
}()

func ParseSkill(raw string) (Skill, error) {
	if skill, ok := skillIndex[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return skill, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSkill, raw)
}

// SkillSet is an unordered set of skills.
type SkillSet map[Skill]struct{}

func NewSkillSet(skills ...Skill) SkillSet {
	out := make(SkillSet, len(skills))
	for _, skill := range skills {
		out[skill] = struct{}{}
	}
	return out
}

// ParseSkillSet validates every name and returns the set.
func ParseSkillSet(raw []string) (SkillSet, error) {
	out := make(SkillSet, len(raw))
	for _, item := range raw {
		skill, err := ParseSkill(item)
		if err != nil {
			return nil, err
		}
		out[skill] = struct{}{}
	}
	return out, nil
}

func (s SkillSet) Has(skill Skill) bool {
	_, ok := s[skill]
	return ok
}

// Sorted returns the skills in lexical order.
func (s SkillSet) Sorted() []Skill {
	out := make([]Skill, 0, len(s))
	for skill := range s {
		out = append(out, skill)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (s SkillSet) Clone() SkillSet {
	if s == nil {
		return nil
	}
	out := make(SkillSet, len(s))
	for skill := range s {
		out[skill] = struct{}{}
	}
	return out
}
