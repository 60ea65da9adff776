package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/squad-builder/internal/domain/formation"
	"github.com/riskibarqy/squad-builder/internal/domain/player"
	idgen "github.com/riskibarqy/squad-builder/internal/platform/id"
	"github.com/riskibarqy/squad-builder/internal/platform/logging"
)

type SlotInput struct {
	Positions     []string
	Flexible      bool
	AllowedStyles []string
	X             float64
	Y             float64
}

type FormationInput struct {
	Name         string
	Creator      string
	Tactic       string
	Slots        []SlotInput
	TacticImages []string
}

type MatchResultInput struct {
	GoalsFor     int
	GoalsAgainst int
	PlayedAt     time.Time
}

type FormationService struct {
	repo   formation.Repository
	idGen  idgen.Generator
	logger *logging.Logger
	now    func() time.Time
}

func NewFormationService(repo formation.Repository, idGen idgen.Generator, logger *logging.Logger) *FormationService {
	if logger == nil {
		logger = logging.Default()
	}
	return &FormationService{
		repo:   repo,
		idGen:  idGen,
		logger: logger,
		now:    time.Now,
	}
}

func (s *FormationService) List(ctx context.Context) ([]formation.Formation, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FormationService.List")
	defer span.End()

	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, storageError("list formations", err)
	}
	return items, nil
}

func (s *FormationService) Get(ctx context.Context, formationID string) (formation.Formation, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FormationService.Get")
	defer span.End()

	return s.load(ctx, formationID)
}

func (s *FormationService) Create(ctx context.Context, input FormationInput) (formation.Formation, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FormationService.Create")
	defer span.End()

	id, err := s.idGen.NewID()
	if err != nil {
		return formation.Formation{}, fmt.Errorf("generate formation id: %w", err)
	}
	now := s.now().UTC()
	item, err := buildFormation(id, input)
	if err != nil {
		return formation.Formation{}, err
	}
	item.CreatedAt = now
	item.UpdatedAt = now

	if err := s.save(ctx, item); err != nil {
		return formation.Formation{}, err
	}
	s.logger.InfoContext(ctx, "formation created", "formation_id", item.ID, "slots", len(item.Slots))
	return item, nil
}

// Update replaces the layout of a formation; its match history is kept.
func (s *FormationService) Update(ctx context.Context, formationID string, input FormationInput) (formation.Formation, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FormationService.Update")
	defer span.End()

	current, err := s.load(ctx, formationID)
	if err != nil {
		return formation.Formation{}, err
	}
	item, err := buildFormation(current.ID, input)
	if err != nil {
		return formation.Formation{}, err
	}
	item.Results = current.Results
	item.CreatedAt = current.CreatedAt
	item.UpdatedAt = s.now().UTC()

	if err := s.save(ctx, item); err != nil {
		return formation.Formation{}, err
	}
	return item, nil
}

func (s *FormationService) Delete(ctx context.Context, formationID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.FormationService.Delete")
	defer span.End()

	item, err := s.load(ctx, formationID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, item.ID); err != nil {
		return storageError("delete formation", err)
	}
	s.logger.InfoContext(ctx, "formation deleted", "formation_id", item.ID)
	return nil
}

func (s *FormationService) RecordResult(ctx context.Context, formationID string, input MatchResultInput) (formation.Formation, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FormationService.RecordResult")
	defer span.End()

	if input.GoalsFor < 0 || input.GoalsAgainst < 0 {
		return formation.Formation{}, fmt.Errorf("%w: goals cannot be negative", ErrInvalidInput)
	}
	item, err := s.load(ctx, formationID)
	if err != nil {
		return formation.Formation{}, err
	}

	now := s.now().UTC()
	playedAt := input.PlayedAt.UTC()
	if input.PlayedAt.IsZero() {
		playedAt = now
	}
	item.Results = append(item.Results, formation.MatchResult{
		GoalsFor:     input.GoalsFor,
		GoalsAgainst: input.GoalsAgainst,
		PlayedAt:     playedAt,
	})
	item.UpdatedAt = now

	if err := s.save(ctx, item); err != nil {
		return formation.Formation{}, err
	}
	return item, nil
}

func (s *FormationService) Summary(ctx context.Context, formationID string) (formation.Summary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FormationService.Summary")
	defer span.End()

	item, err := s.load(ctx, formationID)
	if err != nil {
		return formation.Summary{}, err
	}
	return item.Summary(), nil
}

func (s *FormationService) load(ctx context.Context, formationID string) (formation.Formation, error) {
	formationID = strings.TrimSpace(formationID)
	if formationID == "" {
		return formation.Formation{}, fmt.Errorf("%w: formation id is required", ErrInvalidInput)
	}
	item, exists, err := s.repo.GetByID(ctx, formationID)
	if err != nil {
		return formation.Formation{}, storageError("get formation", err)
	}
	if !exists {
		return formation.Formation{}, fmt.Errorf("%w: formation id=%s", ErrNotFound, formationID)
	}
	return item, nil
}

func (s *FormationService) save(ctx context.Context, item formation.Formation) error {
	if err := item.Validate(); err != nil {
		return invalidInput(err)
	}
	if err := s.repo.Upsert(ctx, item); err != nil {
		return storageError("save formation", err)
	}
	return nil
}

func buildFormation(id string, input FormationInput) (formation.Formation, error) {
	slots := make([]formation.Slot, 0, len(input.Slots))
	for i, raw := range input.Slots {
		slot, err := parseSlot(raw)
		if err != nil {
			return formation.Formation{}, fmt.Errorf("%w: slot %d: %v", ErrInvalidInput, i, err)
		}
		slots = append(slots, slot)
	}

	images := make([]string, 0, len(input.TacticImages))
	for _, image := range input.TacticImages {
		if image = strings.TrimSpace(image); image != "" {
			images = append(images, image)
		}
	}

	return formation.Formation{
		ID:           id,
		Name:         strings.TrimSpace(input.Name),
		Creator:      strings.TrimSpace(input.Creator),
		Tactic:       strings.TrimSpace(input.Tactic),
		Slots:        slots,
		TacticImages: images,
	}, nil
}

// parseSlot builds a single target from one position and a flexible target
// from several, or when Flexible is set explicitly.
func parseSlot(input SlotInput) (formation.Slot, error) {
	positions := make([]player.Position, 0, len(input.Positions))
	for _, raw := range input.Positions {
		pos, err := player.ParsePosition(raw)
		if err != nil {
			return formation.Slot{}, err
		}
		if pos.IsArchetype() {
			return formation.Slot{}, fmt.Errorf("%s is an archetype, not a playable position", pos)
		}
		positions = append(positions, pos)
	}
	if len(positions) == 0 {
		return formation.Slot{}, fmt.Errorf("slot needs at least one position")
	}

	target := formation.SingleTarget(positions[0])
	if input.Flexible || len(positions) > 1 {
		target = formation.FlexibleTarget(positions...)
	}

	styles := make([]player.Style, 0, len(input.AllowedStyles))
	for _, raw := range input.AllowedStyles {
		style, err := player.ParseStyle(raw)
		if err != nil {
			return formation.Slot{}, err
		}
		styles = append(styles, style)
	}

	return formation.Slot{
		Target:        target,
		AllowedStyles: styles,
		X:             input.X,
		Y:             input.Y,
	}, nil
}
