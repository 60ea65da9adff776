package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/squad-builder/internal/domain/formation"
	"github.com/riskibarqy/squad-builder/internal/domain/idealbuild"
	"github.com/riskibarqy/squad-builder/internal/domain/lineup"
	"github.com/riskibarqy/squad-builder/internal/domain/player"
	"github.com/riskibarqy/squad-builder/internal/platform/logging"
	"github.com/sourcegraph/conc/pool"
	"go.opentelemetry.io/otel/attribute"
)

type GenerateLineupInput struct {
	FormationID       string
	Discarded         []string
	League            string
	Nationality       string
	SortBy            string
	FlexibleFullBacks bool
	FlexibleWingers   bool
	Tactic            string
}

type LineupService struct {
	playerRepo    player.Repository
	formationRepo formation.Repository
	buildRepo     idealbuild.Repository
	liveFormTTL   time.Duration
	logger        *logging.Logger
	now           func() time.Time
}

func NewLineupService(
	playerRepo player.Repository,
	formationRepo formation.Repository,
	buildRepo idealbuild.Repository,
	liveFormTTL time.Duration,
	logger *logging.Logger,
) *LineupService {
	if logger == nil {
		logger = logging.Default()
	}
	return &LineupService{
		playerRepo:    playerRepo,
		formationRepo: formationRepo,
		buildRepo:     buildRepo,
		liveFormTTL:   liveFormTTL,
		logger:        logger,
		now:           time.Now,
	}
}

// Generate builds the best starting eleven and bench for a formation from the
// current card collection.
func (s *LineupService) Generate(ctx context.Context, input GenerateLineupInput) (lineup.Lineup, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LineupService.Generate")
	defer span.End()

	formationID := strings.TrimSpace(input.FormationID)
	if formationID == "" {
		return lineup.Lineup{}, fmt.Errorf("%w: formation id is required", ErrInvalidInput)
	}
	sortBy, err := lineup.ParseSortBy(input.SortBy)
	if err != nil {
		return lineup.Lineup{}, invalidInput(err)
	}

	var (
		players  []player.Player
		builds   []idealbuild.IdealBuild
		selected formation.Formation
		found    bool
	)
	loaders := pool.New().WithContext(ctx).WithCancelOnError()
	loaders.Go(func(ctx context.Context) error {
		items, err := s.playerRepo.List(ctx)
		if err != nil {
			return storageError("list players", err)
		}
		players = items
		return nil
	})
	loaders.Go(func(ctx context.Context) error {
		items, err := s.buildRepo.List(ctx)
		if err != nil {
			return storageError("list ideal builds", err)
		}
		builds = items
		return nil
	})
	loaders.Go(func(ctx context.Context) error {
		item, exists, err := s.formationRepo.GetByID(ctx, formationID)
		if err != nil {
			return storageError("get formation", err)
		}
		selected, found = item, exists
		return nil
	})
	if err := loaders.Wait(); err != nil {
		return lineup.Lineup{}, err
	}
	if !found {
		return lineup.Lineup{}, fmt.Errorf("%w: formation id=%s", ErrNotFound, formationID)
	}

	start := time.Now()
	result := lineup.Generate(lineup.Request{
		Players:     players,
		Formation:   selected,
		IdealBuilds: builds,
		Discarded:   input.Discarded,
		Filters: lineup.Filters{
			League:      strings.TrimSpace(input.League),
			Nationality: strings.TrimSpace(input.Nationality),
		},
		SortBy: sortBy,
		Flexibility: lineup.Flexibility{
			FullBacks: input.FlexibleFullBacks,
			Wingers:   input.FlexibleWingers,
		},
		Tactic:      strings.TrimSpace(input.Tactic),
		Now:         s.now().UTC(),
		LiveFormTTL: s.liveFormTTL,
	})

	starters, substitutes := result.Filled()
	span.SetAttributes(
		attribute.String("formation.id", selected.ID),
		attribute.Int("lineup.starters", starters),
		attribute.Int("lineup.substitutes", substitutes),
	)
	s.logger.InfoContext(ctx, "lineup generated",
		"formation_id", selected.ID,
		"players", len(players),
		"starters", starters,
		"substitutes", substitutes,
		"extra", result.Extra != nil,
		"sort_by", sortBy,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return result, nil
}
