package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/squad-builder/internal/domain/idealbuild"
	"github.com/riskibarqy/squad-builder/internal/domain/player"
	idgen "github.com/riskibarqy/squad-builder/internal/platform/id"
	"github.com/riskibarqy/squad-builder/internal/platform/logging"
)

type IdealBuildFilter struct {
	Tactic   string
	Position string
}

type RangeInput struct {
	Min *int
	Max *int
}

type UpsertIdealBuildInput struct {
	ID              string
	Tactic          string
	Position        string
	Style           string
	Profile         string
	Stats           map[string]int
	PrimarySkills   []string
	SecondarySkills []string
	Height          RangeInput
	Weight          RangeInput
}

type IdealBuildService struct {
	repo   idealbuild.Repository
	idGen  idgen.Generator
	logger *logging.Logger
	now    func() time.Time
}

func NewIdealBuildService(repo idealbuild.Repository, idGen idgen.Generator, logger *logging.Logger) *IdealBuildService {
	if logger == nil {
		logger = logging.Default()
	}
	return &IdealBuildService{
		repo:   repo,
		idGen:  idGen,
		logger: logger,
		now:    time.Now,
	}
}

// List returns builds matching the filter. An empty tactic or position
// matches everything; a position filter also matches its archetype.
func (s *IdealBuildService) List(ctx context.Context, filter IdealBuildFilter) ([]idealbuild.IdealBuild, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IdealBuildService.List")
	defer span.End()

	var pos player.Position
	if strings.TrimSpace(filter.Position) != "" {
		parsed, err := player.ParsePosition(filter.Position)
		if err != nil {
			return nil, invalidInput(err)
		}
		pos = parsed
	}
	tactic := strings.TrimSpace(filter.Tactic)

	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, storageError("list ideal builds", err)
	}
	out := make([]idealbuild.IdealBuild, 0, len(items))
	for _, item := range items {
		if tactic != "" && !strings.EqualFold(item.Tactic, tactic) {
			continue
		}
		if pos != "" && item.Position != pos && item.Position != pos.Archetype() {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

func (s *IdealBuildService) Upsert(ctx context.Context, input UpsertIdealBuildInput) (idealbuild.IdealBuild, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IdealBuildService.Upsert")
	defer span.End()

	item, err := parseIdealBuild(input)
	if err != nil {
		return idealbuild.IdealBuild{}, err
	}
	if item.ID == "" {
		id, err := s.idGen.NewID()
		if err != nil {
			return idealbuild.IdealBuild{}, fmt.Errorf("generate ideal build id: %w", err)
		}
		item.ID = id
	}
	item.UpdatedAt = s.now().UTC()
	if err := item.Validate(); err != nil {
		return idealbuild.IdealBuild{}, invalidInput(err)
	}

	if err := s.repo.Upsert(ctx, item); err != nil {
		return idealbuild.IdealBuild{}, storageError("upsert ideal build", err)
	}
	s.logger.InfoContext(ctx, "ideal build saved",
		"build_id", item.ID,
		"tactic", item.Tactic,
		"position", item.Position,
		"style", item.Style,
	)
	return item, nil
}

func (s *IdealBuildService) Delete(ctx context.Context, buildID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.IdealBuildService.Delete")
	defer span.End()

	buildID = strings.TrimSpace(buildID)
	if buildID == "" {
		return fmt.Errorf("%w: ideal build id is required", ErrInvalidInput)
	}
	items, err := s.repo.List(ctx)
	if err != nil {
		return storageError("list ideal builds", err)
	}
	found := false
	for _, item := range items {
		if item.ID == buildID {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("%w: ideal build id=%s", ErrNotFound, buildID)
	}
	if err := s.repo.Delete(ctx, buildID); err != nil {
		return storageError("delete ideal build", err)
	}
	return nil
}

func parseIdealBuild(input UpsertIdealBuildInput) (idealbuild.IdealBuild, error) {
	pos, err := player.ParsePosition(input.Position)
	if err != nil {
		return idealbuild.IdealBuild{}, invalidInput(err)
	}
	style, err := player.ParseBuildStyle(input.Style)
	if err != nil {
		return idealbuild.IdealBuild{}, invalidInput(err)
	}
	stats, err := player.ParseAttributeStats(input.Stats)
	if err != nil {
		return idealbuild.IdealBuild{}, invalidInput(err)
	}
	primary, err := parseSkillList(input.PrimarySkills)
	if err != nil {
		return idealbuild.IdealBuild{}, err
	}
	secondary, err := parseSkillList(input.SecondarySkills)
	if err != nil {
		return idealbuild.IdealBuild{}, err
	}

	return idealbuild.IdealBuild{
		ID:              strings.TrimSpace(input.ID),
		Tactic:          strings.TrimSpace(input.Tactic),
		Position:        pos,
		Style:           style,
		Profile:         strings.TrimSpace(input.Profile),
		Stats:           stats,
		PrimarySkills:   primary,
		SecondarySkills: secondary,
		Height:          idealbuild.Range{Min: input.Height.Min, Max: input.Height.Max},
		Weight:          idealbuild.Range{Min: input.Weight.Min, Max: input.Weight.Max},
	}, nil
}

// parseSkillList keeps the caller's order and drops duplicates.
func parseSkillList(raw []string) ([]player.Skill, error) {
	out := make([]player.Skill, 0, len(raw))
	seen := make(map[player.Skill]struct{}, len(raw))
	for _, item := range raw {
		skill, err := player.ParseSkill(item)
		if err != nil {
			return nil, invalidInput(err)
		}
		if _, ok := seen[skill]; ok {
			continue
		}
		seen[skill] = struct{}{}
		out = append(out, skill)
	}
	return out, nil
}
