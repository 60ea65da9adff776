package httpapi

import (
	"context"
	"fmt"
	"io"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/squad-builder/internal/domain/formation"
	"github.com/riskibarqy/squad-builder/internal/domain/lineup"
	"github.com/riskibarqy/squad-builder/internal/domain/player"
	"github.com/riskibarqy/squad-builder/internal/domain/scoring"
	"github.com/riskibarqy/squad-builder/internal/platform/logging"
	"github.com/riskibarqy/squad-builder/internal/usecase"
)

type Handler struct {
	playerService     *usecase.PlayerService
	idealBuildService *usecase.IdealBuildService
	formationService  *usecase.FormationService
	lineupService     *usecase.LineupService
	backupService     *usecase.BackupService
	logger            *logging.Logger
	validator         *validator.Validate
}

func NewHandler(
	playerService *usecase.PlayerService,
	idealBuildService *usecase.IdealBuildService,
	formationService *usecase.FormationService,
	lineupService *usecase.LineupService,
	backupService *usecase.BackupService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		playerService:     playerService,
		idealBuildService: idealBuildService,
		formationService:  formationService,
		lineupService:     lineupService,
		backupService:     backupService,
		logger:            logger,
		validator:         validator.New(),
	}
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

// decodeRequest reads a strict JSON body into out and validates it.
func (h *Handler) decodeRequest(ctx context.Context, body io.Reader, out any) error {
	decoder := sonic.ConfigDefault.NewDecoder(body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(out); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return h.validateRequest(ctx, out)
}

type createPlayerRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Nationality string `json:"nationality" validate:"max=60"`
}

type addRatingRequest struct {
	PlayerID    string   `json:"playerId" validate:"required_without=PlayerName"`
	PlayerName  string   `json:"playerName" validate:"max=100"`
	Nationality string   `json:"nationality" validate:"max=60"`
	CardID      string   `json:"cardId"`
	CardName    string   `json:"cardName" validate:"max=100"`
	Style       string   `json:"style"`
	League      string   `json:"league" validate:"max=60"`
	Position    string   `json:"position" validate:"required"`
	Rating      *float64 `json:"rating" validate:"required,gte=0,lte=10"`
}

type updateCardRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=100"`
	Style    *string `json:"style"`
	League   *string `json:"league" validate:"omitempty,max=60"`
	ImageURL *string `json:"imageUrl" validate:"omitempty,url"`
}

type updateCardStatsRequest struct {
	BaseStats         map[string]int `json:"baseStats" validate:"required"`
	Height            *int           `json:"height" validate:"omitempty,gte=100,lte=250"`
	Weight            *int           `json:"weight" validate:"omitempty,gte=30,lte=200"`
	Skills            []string       `json:"skills" validate:"dive,required"`
	ProgressionPoints int            `json:"progressionPoints" validate:"gte=0"`
}

type saveBuildRequest struct {
	Build  map[string]int `json:"build" validate:"required"`
	Tactic string         `json:"tactic" validate:"max=60"`
}

type setLiveFormRequest struct {
	LiveForm    string `json:"liveForm" validate:"omitempty,oneof=A B C D E"`
	NonExpiring bool   `json:"nonExpiring"`
}

type upsertIdealBuildRequest struct {
	ID              string         `json:"id"`
	Tactic          string         `json:"tactic" validate:"max=60"`
	Position        string         `json:"position" validate:"required"`
	Style           string         `json:"style" validate:"required"`
	Profile         string         `json:"profile" validate:"max=60"`
	Stats           map[string]int `json:"stats" validate:"required"`
	PrimarySkills   []string       `json:"primarySkills" validate:"dive,required"`
	SecondarySkills []string       `json:"secondarySkills" validate:"dive,required"`
	HeightMin       *int           `json:"heightMin"`
	HeightMax       *int           `json:"heightMax"`
	WeightMin       *int           `json:"weightMin"`
	WeightMax       *int           `json:"weightMax"`
}

type slotRequest struct {
	Positions     []string `json:"positions" validate:"required,min=1,dive,required"`
	Flexible      bool     `json:"flexible"`
	AllowedStyles []string `json:"allowedStyles" validate:"dive,required"`
	X             float64  `json:"x" validate:"gte=0,lte=100"`
	Y             float64  `json:"y" validate:"gte=0,lte=100"`
}

type formationRequest struct {
	Name         string        `json:"name" validate:"required,max=100"`
	Creator      string        `json:"creator" validate:"max=100"`
	Tactic       string        `json:"tactic" validate:"max=60"`
	Slots        []slotRequest `json:"slots" validate:"required,dive"`
	TacticImages []string      `json:"tacticImages" validate:"dive,url"`
}

type matchResultRequest struct {
	GoalsFor     *int       `json:"goalsFor" validate:"required,gte=0"`
	GoalsAgainst *int       `json:"goalsAgainst" validate:"required,gte=0"`
	PlayedAt     *time.Time `json:"playedAt"`
}

type generateLineupRequest struct {
	FormationID       string   `json:"formationId" validate:"required"`
	Discarded         []string `json:"discarded" validate:"dive,required"`
	League            string   `json:"league"`
	Nationality       string   `json:"nationality"`
	SortBy            string   `json:"sortBy" validate:"omitempty,oneof=general average"`
	FlexibleFullBacks bool     `json:"flexibleFullBacks"`
	FlexibleWingers   bool     `json:"flexibleWingers"`
	Tactic            string   `json:"tactic" validate:"max=60"`
}

type removeRatingDTO struct {
	Player        *usecase.PlayerDocument `json:"player,omitempty"`
	CardRemoved   bool                    `json:"cardRemoved"`
	PlayerRemoved bool                    `json:"playerRemoved"`
}

type statContributionDTO struct {
	Stat         string  `json:"stat"`
	PlayerValue  int     `json:"playerValue"`
	IdealValue   int     `json:"idealValue"`
	Diff         int     `json:"diff"`
	Contribution float64 `json:"contribution"`
}

type physicalContributionDTO struct {
	Attribute    string  `json:"attribute"`
	PlayerValue  int     `json:"playerValue"`
	Min          *int    `json:"min,omitempty"`
	Max          *int    `json:"max,omitempty"`
	InRange      bool    `json:"inRange"`
	Contribution float64 `json:"contribution"`
}

type skillContributionDTO struct {
	Skill        string  `json:"skill"`
	Primary      bool    `json:"primary"`
	Present      bool    `json:"present"`
	Contribution float64 `json:"contribution"`
}

type affinityDTO struct {
	Score    float64                   `json:"score"`
	Stats    []statContributionDTO     `json:"stats"`
	Physical []physicalContributionDTO `json:"physical"`
	Skills   []skillContributionDTO    `json:"skills"`
}

type cardAnalysisDTO struct {
	PlayerID           string                      `json:"playerId"`
	CardID             string                      `json:"cardId"`
	Position           string                      `json:"position"`
	Tactic             string                      `json:"tactic,omitempty"`
	Special            bool                        `json:"special"`
	Build              map[string]int              `json:"build"`
	BuildCost          int                         `json:"buildCost"`
	Projected          map[string]int              `json:"projected"`
	IdealBuild         *usecase.IdealBuildDocument `json:"idealBuild,omitempty"`
	ResolvedStyle      string                      `json:"resolvedStyle"`
	ResolutionStep     int                         `json:"resolutionStep"`
	Affinity           affinityDTO                 `json:"affinity"`
	Average            float64                     `json:"average"`
	Matches            int                         `json:"matches"`
	StdDev             float64                     `json:"stdDev"`
	Flags              []string                    `json:"flags"`
	LiveForm           string                      `json:"liveForm,omitempty"`
	StarterScore       float64                     `json:"starterScore"`
	SubstituteScore    float64                     `json:"substituteScore"`
	CachedAffinity     *float64                    `json:"cachedAffinity,omitempty"`
	AffinityComputedAt *time.Time                  `json:"affinityComputedAt,omitempty"`
	Stale              bool                        `json:"stale"`
}

type buildSuggestionDTO struct {
	Build    map[string]int  `json:"build"`
	Cost     int             `json:"cost"`
	Budget   int             `json:"budget"`
	Analysis cardAnalysisDTO `json:"analysis"`
}

type refreshAffinitiesDTO struct {
	Players   int `json:"players"`
	Positions int `json:"positions"`
	Updated   int `json:"updated"`
	Failed    int `json:"failed"`
}

type formationSummaryDTO struct {
	Played         int     `json:"played"`
	Wins           int     `json:"wins"`
	Draws          int     `json:"draws"`
	Losses         int     `json:"losses"`
	GoalsFor       int     `json:"goalsFor"`
	GoalsAgainst   int     `json:"goalsAgainst"`
	GoalDifference int     `json:"goalDifference"`
	WinRate        float64 `json:"winRate"`
}

type assignmentDTO struct {
	SlotIndex    int      `json:"slotIndex"`
	Role         string   `json:"role"`
	SlotPosition string   `json:"slotPosition"`
	Position     string   `json:"position,omitempty"`
	PlayerID     string   `json:"playerId,omitempty"`
	PlayerName   string   `json:"playerName,omitempty"`
	CardID       string   `json:"cardId,omitempty"`
	CardName     string   `json:"cardName,omitempty"`
	Style        string   `json:"style,omitempty"`
	Average      float64  `json:"average"`
	Matches      int      `json:"matches"`
	Affinity     float64  `json:"affinity"`
	Score        float64  `json:"score"`
	LiveForm     string   `json:"liveForm,omitempty"`
	Flags        []string `json:"flags,omitempty"`
	Placeholder  bool     `json:"placeholder"`
}

type lineupDTO struct {
	Starters          []assignmentDTO `json:"starters"`
	Substitutes       []assignmentDTO `json:"substitutes"`
	Extra             *assignmentDTO  `json:"extra,omitempty"`
	FilledStarters    int             `json:"filledStarters"`
	FilledSubstitutes int             `json:"filledSubstitutes"`
}

type importResultDTO struct {
	Players     int `json:"players"`
	Formations  int `json:"formations"`
	IdealBuilds int `json:"idealBuilds"`
}

func playersToDTO(ctx context.Context, items []player.Player) []usecase.PlayerDocument {
	_, span := startSpan(ctx, "httpapi.playersToDTO")
	defer span.End()

	out := make([]usecase.PlayerDocument, 0, len(items))
	for _, item := range items {
		out = append(out, usecase.NewPlayerDocument(item))
	}
	return out
}

func cardAnalysisToDTO(item usecase.CardAnalysis) cardAnalysisDTO {
	out := cardAnalysisDTO{
		PlayerID:        item.PlayerID,
		CardID:          item.CardID,
		Position:        string(item.Position),
		Tactic:          item.Tactic,
		Special:         item.Special,
		Build:           buildToMap(item.Build),
		BuildCost:       item.BuildCost,
		Projected:       statsToMap(item.Projected),
		ResolvedStyle:   string(item.Resolution.ResolvedStyle),
		ResolutionStep:  item.Resolution.Step,
		Affinity:        affinityToDTO(item.Affinity),
		Average:         item.Stats.Average,
		Matches:         item.Stats.Matches,
		StdDev:          item.Stats.StdDev,
		Flags:           item.Flags.Names(),
		LiveForm:        string(item.LiveForm),
		StarterScore:    item.StarterScore,
		SubstituteScore: item.SubstituteScore,
		CachedAffinity:  item.CachedAffinity,
		Stale:           item.Stale,
	}
	if out.Flags == nil {
		out.Flags = []string{}
	}
	if item.Resolution.Build != nil {
		doc := usecase.NewIdealBuildDocument(*item.Resolution.Build)
		out.IdealBuild = &doc
	}
	if !item.AffinityComputedAt.IsZero() {
		computedAt := item.AffinityComputedAt
		out.AffinityComputedAt = &computedAt
	}
	return out
}

func affinityToDTO(item scoring.Affinity) affinityDTO {
	out := affinityDTO{
		Score:    item.Score,
		Stats:    make([]statContributionDTO, 0, len(item.Stats)),
		Physical: make([]physicalContributionDTO, 0, len(item.Physical)),
		Skills:   make([]skillContributionDTO, 0, len(item.Skills)),
	}
	for _, c := range item.Stats {
		out.Stats = append(out.Stats, statContributionDTO{
			Stat:         string(c.Stat),
			PlayerValue:  c.PlayerValue,
			IdealValue:   c.IdealValue,
			Diff:         c.Diff,
			Contribution: c.Contribution,
		})
	}
	for _, c := range item.Physical {
		out.Physical = append(out.Physical, physicalContributionDTO{
			Attribute:    c.Attribute,
			PlayerValue:  c.PlayerValue,
			Min:          c.Min,
			Max:          c.Max,
			InRange:      c.InRange,
			Contribution: c.Contribution,
		})
	}
	for _, c := range item.Skills {
		out.Skills = append(out.Skills, skillContributionDTO{
			Skill:        string(c.Skill),
			Primary:      c.Primary,
			Present:      c.Present,
			Contribution: c.Contribution,
		})
	}
	return out
}

func buildToMap(build player.ProgressionBuild) map[string]int {
	out := make(map[string]int, len(build))
	for category, level := range build {
		out[string(category)] = level
	}
	return out
}

func statsToMap(stats player.AttributeStats) map[string]int {
	out := make(map[string]int, len(stats))
	for stat, value := range stats {
		out[string(stat)] = value
	}
	return out
}

func formationSummaryToDTO(item formation.Summary) formationSummaryDTO {
	return formationSummaryDTO{
		Played:         item.Played,
		Wins:           item.Wins,
		Draws:          item.Draws,
		Losses:         item.Losses,
		GoalsFor:       item.GoalsFor,
		GoalsAgainst:   item.GoalsAgainst,
		GoalDifference: item.GoalDifference,
		WinRate:        item.WinRate,
	}
}

func lineupToDTO(ctx context.Context, item lineup.Lineup) lineupDTO {
	_, span := startSpan(ctx, "httpapi.lineupToDTO")
	defer span.End()

	out := lineupDTO{
		Starters:    make([]assignmentDTO, 0, len(item.Starters)),
		Substitutes: make([]assignmentDTO, 0, len(item.Substitutes)),
	}
	for _, a := range item.Starters {
		out.Starters = append(out.Starters, assignmentToDTO(a))
	}
	for _, a := range item.Substitutes {
		out.Substitutes = append(out.Substitutes, assignmentToDTO(a))
	}
	if item.Extra != nil {
		extra := assignmentToDTO(*item.Extra)
		out.Extra = &extra
	}
	out.FilledStarters, out.FilledSubstitutes = item.Filled()
	return out
}

func assignmentToDTO(a lineup.Assignment) assignmentDTO {
	return assignmentDTO{
		SlotIndex:    a.SlotIndex,
		Role:         string(a.Role),
		SlotPosition: string(a.SlotPosition),
		Position:     string(a.Position),
		PlayerID:     a.PlayerID,
		PlayerName:   a.PlayerName,
		CardID:       a.CardID,
		CardName:     a.CardName,
		Style:        string(a.Style),
		Average:      a.Average,
		Matches:      a.Matches,
		Affinity:     a.Affinity,
		Score:        a.Score,
		LiveForm:     string(a.LiveForm),
		Flags:        a.Flags,
		Placeholder:  a.Placeholder,
	}
}
