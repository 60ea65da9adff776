package usecase

import (
	"math"
	"time"

	"github.com/riskibarqy/squad-builder/internal/domain/idealbuild"
	"github.com/riskibarqy/squad-builder/internal/domain/player"
	"github.com/riskibarqy/squad-builder/internal/domain/scoring"
)

// affinityDriftTolerance is how far a cached affinity may sit from a fresh
// computation before the record is reported stale.
const affinityDriftTolerance = 0.01

// CardAnalysis is the full evaluation of one card at one position.
type CardAnalysis struct {
	PlayerID           string
	CardID             string
	Position           player.Position
	Tactic             string
	Special            bool
	Build              player.ProgressionBuild
	BuildCost          int
	Projected          player.AttributeStats
	Resolution         idealbuild.Resolution
	Affinity           scoring.Affinity
	Stats              scoring.Stats
	Flags              scoring.PerformanceFlags
	LiveForm           player.LiveForm
	StarterScore       float64
	SubstituteScore    float64
	CachedAffinity     *float64
	AffinityComputedAt time.Time
	Stale              bool
}

// evaluateCard recomputes everything derived from the stored card state.
// The record may be the zero value for a position without history.
func evaluateCard(p player.Player, card player.Card, pos player.Position, builds []idealbuild.IdealBuild, tactic string, now time.Time, liveFormTTL time.Duration) CardAnalysis {
	record := card.Positions[pos]
	isGK := pos.IsGoalkeeper()
	if tactic == "" {
		tactic = record.Tactic
	}

	build := record.Build
	if card.IsSpecial() {
		build = nil
	}
	projected := scoring.ProjectCard(card, build, isGK)
	resolution := idealbuild.Resolve(card.Style, pos, builds, tactic, card.Physical.Height)
	affinity := scoring.ComputeAffinity(projected, resolution.Build, card.Physical, card.Skills)
	stats := scoring.ComputeStats(record.Ratings)
	flags := scoring.EvaluatePerformance(pos, card.Histories())
	form := p.EffectiveLiveForm(now, liveFormTTL)

	score := scoring.GeneralScoreInput{
		Affinity: affinity.Score,
		Average:  stats.Average,
		Matches:  stats.Matches,
		Flags:    flags,
		LiveForm: form,
		Skills:   card.Skills,
	}
	starter := scoring.GeneralScore(score)
	score.IsSubstitute = true
	substitute := scoring.GeneralScore(score)

	out := CardAnalysis{
		PlayerID:           p.ID,
		CardID:             card.ID,
		Position:           pos,
		Tactic:             tactic,
		Special:            card.IsSpecial(),
		Build:              build.Clone(),
		BuildCost:          scoring.BuildCost(build),
		Projected:          projected,
		Resolution:         resolution,
		Affinity:           affinity,
		Stats:              stats,
		Flags:              flags,
		LiveForm:           form,
		StarterScore:       starter,
		SubstituteScore:    substitute,
		AffinityComputedAt: record.AffinityComputedAt,
	}
	if record.CachedAffinity != nil {
		cached := *record.CachedAffinity
		out.CachedAffinity = &cached
		out.Stale = math.Abs(cached-affinity.Score) > affinityDriftTolerance ||
			card.UpdatedAt.After(record.AffinityComputedAt)
	}
	return out
}

// stampAffinity stores a freshly computed affinity on the record and reports
// whether the stored value changed.
func stampAffinity(record *player.PositionRecord, score float64, now time.Time) bool {
	changed := record.CachedAffinity == nil || math.Abs(*record.CachedAffinity-score) > affinityDriftTolerance
	value := score
	record.CachedAffinity = &value
	record.AffinityComputedAt = now
	return changed
}
