package lineup

import (
	"math"
	"sort"
	"strings"

	"github.com/riskibarqy/squad-builder/internal/domain/formation"
	"github.com/riskibarqy/squad-builder/internal/domain/idealbuild"
	"github.com/riskibarqy/squad-builder/internal/domain/player"
	"github.com/riskibarqy/squad-builder/internal/domain/scoring"
)

const (
	averageTolerance  = 0.01
	scoreTolerance    = 0.01
	affinityTolerance = 0.1

	benchFirstTier  = 5
	benchSecondTier = 10
	unlimitedTier   = math.MaxInt
)

// candidate is one (player, card, rated position) tuple with every score the
// ranking reads. Candidates are rebuilt per run.
type candidate struct {
	playerID   string
	playerName string
	card       *player.Card
	position   player.Position
	style      player.Style
	stats      scoring.Stats
	affinity   float64
	flags      scoring.PerformanceFlags
	liveForm   player.LiveForm
	starter    float64
	substitute float64
}

func (c *candidate) score(role Role) float64 {
	if role == RoleStarter {
		return c.starter
	}
	return c.substitute
}

// run owns the exclusivity state of one Generate call.
type run struct {
	req         Request
	candidates  []*candidate
	discarded   map[string]struct{}
	usedCards   map[string]struct{}
	usedPlayers map[string]struct{}
}

// Generate assigns starters slot by slot, then one substitute per slot, then
// the extra substitute. Unfillable starter and substitute slots come back as
// placeholders.
func Generate(req Request) Lineup {
	r := &run{
		req:         req,
		discarded:   make(map[string]struct{}, len(req.Discarded)),
		usedCards:   make(map[string]struct{}),
		usedPlayers: make(map[string]struct{}),
	}
	if r.req.SortBy == "" {
		r.req.SortBy = SortByGeneral
	}
	for _, id := range req.Discarded {
		r.discarded[id] = struct{}{}
	}
	r.candidates = r.buildCandidates()

	slots := req.Formation.Slots
	out := Lineup{
		Starters:    make([]Assignment, len(slots)),
		Substitutes: make([]Assignment, len(slots)),
	}

	for i, slot := range slots {
		positions := r.expand(slot.Target.Positions())
		picked := r.pickFor(slot, positions, RoleStarter, unlimitedTier)
		if picked == nil && slot.HasStyleFilter() {
			picked = r.pickFor(formation.Slot{Target: slot.Target}, positions, RoleStarter, unlimitedTier)
		}
		out.Starters[i] = r.assign(i, RoleStarter, slot.Target.Primary(), picked)
	}

	for i, slot := range slots {
		positions := slot.Target.Positions()
		if starter := out.Starters[i]; !starter.Placeholder {
			positions = []player.Position{starter.Position}
		}
		positions = r.expand(positions)

		picked := r.pickTiered(slot, positions, benchFirstTier, benchSecondTier, unlimitedTier)
		if picked == nil && slot.HasStyleFilter() {
			picked = r.pickTiered(formation.Slot{Target: slot.Target}, positions, benchFirstTier, benchSecondTier, unlimitedTier)
		}
		out.Substitutes[i] = r.assign(i, RoleSubstitute, slot.Target.Primary(), picked)
	}

	if picked := r.pickTiered(formation.Slot{}, nil, benchSecondTier, unlimitedTier); picked != nil {
		extra := r.assign(len(slots), RoleExtra, picked.position, picked)
		out.Extra = &extra
	}

	return out
}

func (r *run) buildCandidates() []*candidate {
	tactic := strings.TrimSpace(r.req.Tactic)
	if tactic == "" {
		tactic = r.req.Formation.Tactic
	}

	players := make([]player.Player, 0, len(r.req.Players))
	for _, item := range r.req.Players {
		players = append(players, item.Clone())
	}
	sort.SliceStable(players, func(i, j int) bool { return players[i].ID < players[j].ID })

	var out []*candidate
	for pi := range players {
		p := &players[pi]
		if !matchesFilter(r.req.Filters.Nationality, p.Nationality) {
			continue
		}
		liveForm := p.EffectiveLiveForm(r.req.Now, r.req.LiveFormTTL)
		for ci := range p.Cards {
			card := &p.Cards[ci]
			if _, skip := r.discarded[card.ID]; skip {
				continue
			}
			if !matchesFilter(r.req.Filters.League, card.League) {
				continue
			}
			histories := card.Histories()
			for _, pos := range card.RatedPositions() {
				record := card.Positions[pos]
				projected := scoring.ProjectCard(*card, record.Build, pos.IsGoalkeeper())
				resolution := idealbuild.Resolve(card.Style, pos, r.req.IdealBuilds, tactic, card.Physical.Height)
				affinity := scoring.ComputeAffinity(projected, resolution.Build, card.Physical, card.Skills)
				stats := scoring.ComputeStats(record.Ratings)
				flags := scoring.EvaluatePerformance(pos, histories)

				input := scoring.GeneralScoreInput{
					Affinity: affinity.Score,
					Average:  stats.Average,
					Matches:  stats.Matches,
					Flags:    flags,
					LiveForm: liveForm,
					Skills:   card.Skills,
				}
				starter := scoring.GeneralScore(input)
				input.IsSubstitute = true

				out = append(out, &candidate{
					playerID:   p.ID,
					playerName: p.Name,
					card:       card,
					position:   pos,
					style:      player.NormalizeStyle(card.Style),
					stats:      stats,
					affinity:   affinity.Score,
					flags:      flags,
					liveForm:   liveForm,
					starter:    starter,
					substitute: scoring.GeneralScore(input),
				})
			}
		}
	}
	return out
}

// expand adds the mirrored position of every full-back or winger when the
// matching toggle is on.
func (r *run) expand(positions []player.Position) []player.Position {
	out := append([]player.Position(nil), positions...)
	for _, pos := range positions {
		mirror, ok := pos.Mirror()
		if !ok {
			continue
		}
		if pos.IsFullBack() && !r.req.Flexibility.FullBacks {
			continue
		}
		if pos.IsWinger() && !r.req.Flexibility.Wingers {
			continue
		}
		if !containsPosition(out, mirror) {
			out = append(out, mirror)
		}
	}
	return out
}

func (r *run) pickTiered(slot formation.Slot, positions []player.Position, tiers ...int) *candidate {
	for _, limit := range tiers {
		if picked := r.pickFor(slot, positions, RoleSubstitute, limit); picked != nil {
			return picked
		}
	}
	return nil
}

// pickFor returns the best eligible candidate for positions (nil = any) with
// fewer than maxMatches ratings.
func (r *run) pickFor(slot formation.Slot, positions []player.Position, role Role, maxMatches int) *candidate {
	var pool []*candidate
	for _, c := range r.candidates {
		if positions != nil && !containsPosition(positions, c.position) {
			continue
		}
		if c.stats.Matches >= maxMatches {
			continue
		}
		if !styleAllowed(slot, c) {
			continue
		}
		pool = append(pool, c)
	}
	r.rank(pool, role)
	for _, c := range pool {
		if r.eligible(c) {
			return c
		}
	}
	return nil
}

func (r *run) eligible(c *candidate) bool {
	if c.affinity < MinAffinity {
		return false
	}
	if _, used := r.usedCards[c.card.ID]; used {
		return false
	}
	if _, used := r.usedPlayers[c.playerID]; used {
		return false
	}
	if _, skip := r.discarded[c.card.ID]; skip {
		return false
	}
	switch r.req.SortBy {
	case SortByAverage:
		return c.liveForm == player.LiveFormA || c.liveForm == player.LiveFormB
	default:
		return c.liveForm != player.LiveFormD && c.liveForm != player.LiveFormE
	}
}

func (r *run) rank(pool []*candidate, role Role) {
	sort.SliceStable(pool, func(i, j int) bool {
		a, b := pool[i], pool[j]
		sa, sb := a.score(role), b.score(role)
		if r.req.SortBy == SortByAverage {
			if math.Abs(a.stats.Average-b.stats.Average) > averageTolerance {
				return a.stats.Average > b.stats.Average
			}
			if sa != sb {
				return sa > sb
			}
		} else {
			if math.Abs(sa-sb) > scoreTolerance {
				return sa > sb
			}
			if math.Abs(a.affinity-b.affinity) > affinityTolerance {
				return a.affinity > b.affinity
			}
		}
		if a.stats.Matches != b.stats.Matches {
			return a.stats.Matches > b.stats.Matches
		}
		if a.playerID != b.playerID {
			return a.playerID < b.playerID
		}
		if a.card.ID != b.card.ID {
			return a.card.ID < b.card.ID
		}
		return a.position < b.position
	})
}

func (r *run) assign(index int, role Role, slotPos player.Position, c *candidate) Assignment {
	if c == nil {
		return placeholder(index, role, slotPos)
	}
	r.usedCards[c.card.ID] = struct{}{}
	r.usedPlayers[c.playerID] = struct{}{}
	return Assignment{
		SlotIndex:    index,
		Role:         role,
		SlotPosition: slotPos,
		Position:     c.position,
		PlayerID:     c.playerID,
		PlayerName:   c.playerName,
		CardID:       c.card.ID,
		CardName:     c.card.Name,
		Style:        c.style,
		Average:      c.stats.Average,
		Matches:      c.stats.Matches,
		Affinity:     c.affinity,
		Score:        c.score(role),
		LiveForm:     c.liveForm,
		Flags:        c.flags.Names(),
	}
}

// styleAllowed applies the slot's style filter. A slot allowing only Ninguno
// rejects any card whose style is active at the candidate's position.
func styleAllowed(slot formation.Slot, c *candidate) bool {
	if !slot.HasStyleFilter() {
		return true
	}
	if slot.RequiresUnstyled() {
		return c.style == player.StyleNone || !player.IsActiveStyle(c.position, c.style)
	}
	for _, allowed := range slot.AllowedStyles {
		if player.NormalizeStyle(allowed) == c.style {
			return true
		}
	}
	return false
}

func matchesFilter(filter, value string) bool {
	filter = strings.TrimSpace(filter)
	return filter == "" || strings.EqualFold(filter, strings.TrimSpace(value))
}

func containsPosition(items []player.Position, pos player.Position) bool {
	for _, item := range items {
		if item == pos {
			return true
		}
	}
	return false
}
