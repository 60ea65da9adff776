package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/squad-builder/internal/domain/idealbuild"
	"github.com/riskibarqy/squad-builder/internal/domain/player"
	"github.com/riskibarqy/squad-builder/internal/domain/scoring"
	idgen "github.com/riskibarqy/squad-builder/internal/platform/id"
	"github.com/riskibarqy/squad-builder/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

const defaultScoringWorkers = 8

type PlayerFilter struct {
	League      string
	Nationality string
}

type CreatePlayerInput struct {
	Name        string
	Nationality string
}

type AddRatingInput struct {
	PlayerID    string
	PlayerName  string
	Nationality string
	CardID      string
	CardName    string
	Style       string
	League      string
	Position    string
	Rating      float64
}

type RemoveRatingResult struct {
	Player        *player.Player
	CardRemoved   bool
	PlayerRemoved bool
}

type UpdateCardInput struct {
	PlayerID string
	CardID   string
	Name     *string
	Style    *string
	League   *string
	ImageURL *string
}

type UpdateCardStatsInput struct {
	PlayerID          string
	CardID            string
	BaseStats         map[string]int
	Height            *int
	Weight            *int
	Skills            []string
	ProgressionPoints int
}

type SaveBuildInput struct {
	PlayerID string
	CardID   string
	Position string
	Build    map[string]int
	Tactic   string
}

type CardPositionInput struct {
	PlayerID string
	CardID   string
	Position string
	Tactic   string
}

type SuggestBuildInput struct {
	CardPositionInput
	// Budget overrides the card's progression points when set.
	Budget *int
}

type BuildSuggestion struct {
	Build    player.ProgressionBuild
	Cost     int
	Budget   int
	Analysis CardAnalysis
}

type SetLiveFormInput struct {
	PlayerID    string
	LiveForm    string
	NonExpiring bool
}

type RefreshAffinitiesResult struct {
	Players   int
	Positions int
	Updated   int
	Failed    int
}

type PlayerService struct {
	playerRepo  player.Repository
	buildRepo   idealbuild.Repository
	idGen       idgen.Generator
	workers     int
	liveFormTTL time.Duration
	logger      *logging.Logger
	now         func() time.Time
}

func NewPlayerService(
	playerRepo player.Repository,
	buildRepo idealbuild.Repository,
	idGen idgen.Generator,
	workers int,
	liveFormTTL time.Duration,
	logger *logging.Logger,
) *PlayerService {
	if workers <= 0 {
		workers = defaultScoringWorkers
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &PlayerService{
		playerRepo:  playerRepo,
		buildRepo:   buildRepo,
		idGen:       idGen,
		workers:     workers,
		liveFormTTL: liveFormTTL,
		logger:      logger,
		now:         time.Now,
	}
}

func (s *PlayerService) ListPlayers(ctx context.Context, filter PlayerFilter) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.ListPlayers")
	defer span.End()

	items, err := s.playerRepo.List(ctx)
	if err != nil {
		return nil, storageError("list players", err)
	}

	league := strings.TrimSpace(filter.League)
	nationality := strings.TrimSpace(filter.Nationality)
	out := make([]player.Player, 0, len(items))
	for _, item := range items {
		if nationality != "" && !strings.EqualFold(item.Nationality, nationality) {
			continue
		}
		if league != "" && !playsInLeague(item, league) {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

func (s *PlayerService) GetPlayer(ctx context.Context, playerID string) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.GetPlayer")
	defer span.End()

	return s.loadPlayer(ctx, playerID)
}

func (s *PlayerService) CreatePlayer(ctx context.Context, input CreatePlayerInput) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.CreatePlayer")
	defer span.End()

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return player.Player{}, fmt.Errorf("%w: player name is required", ErrInvalidInput)
	}
	id, err := s.idGen.NewID()
	if err != nil {
		return player.Player{}, fmt.Errorf("generate player id: %w", err)
	}

	now := s.now().UTC()
	item := player.Player{
		ID:          id,
		Name:        name,
		Nationality: strings.TrimSpace(input.Nationality),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.playerRepo.Upsert(ctx, item); err != nil {
		return player.Player{}, storageError("create player", err)
	}
	s.logger.InfoContext(ctx, "player created", "player_id", id)
	return item, nil
}

// AddRating appends a match rating, creating the player, card and position
// record on first use.
func (s *PlayerService) AddRating(ctx context.Context, input AddRatingInput) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.AddRating")
	defer span.End()

	if input.Rating < 0 || input.Rating > 10 {
		return player.Player{}, fmt.Errorf("%w: rating must be within [0, 10], got %v", ErrInvalidInput, input.Rating)
	}
	pos, err := parseRatedPosition(input.Position)
	if err != nil {
		return player.Player{}, err
	}

	now := s.now().UTC()
	var item player.Player
	if strings.TrimSpace(input.PlayerID) == "" {
		name := strings.TrimSpace(input.PlayerName)
		if name == "" {
			return player.Player{}, fmt.Errorf("%w: player name is required for a new player", ErrInvalidInput)
		}
		id, err := s.idGen.NewID()
		if err != nil {
			return player.Player{}, fmt.Errorf("generate player id: %w", err)
		}
		item = player.Player{
			ID:          id,
			Name:        name,
			Nationality: strings.TrimSpace(input.Nationality),
			CreatedAt:   now,
		}
	} else {
		item, err = s.loadPlayer(ctx, input.PlayerID)
		if err != nil {
			return player.Player{}, err
		}
	}

	var card *player.Card
	if strings.TrimSpace(input.CardID) != "" {
		var ok bool
		card, ok = item.Card(strings.TrimSpace(input.CardID))
		if !ok {
			return player.Player{}, fmt.Errorf("%w: card id=%s", ErrNotFound, input.CardID)
		}
	} else {
		created, err := s.newCard(item, input, now)
		if err != nil {
			return player.Player{}, err
		}
		item.Cards = append(item.Cards, created)
		card = &item.Cards[len(item.Cards)-1]
	}

	if card.Positions == nil {
		card.Positions = make(map[player.Position]player.PositionRecord)
	}
	record := card.Positions[pos]
	record.Ratings = append(record.Ratings, input.Rating)
	record.UpdatedAt = now
	card.Positions[pos] = record
	card.UpdatedAt = now
	item.UpdatedAt = now

	if err := s.save(ctx, item); err != nil {
		return player.Player{}, err
	}
	span.SetAttributes(attribute.String("player.id", item.ID), attribute.String("card.id", card.ID))
	s.logger.DebugContext(ctx, "rating added",
		"player_id", item.ID,
		"card_id", card.ID,
		"position", pos,
		"matches", len(record.Ratings),
	)
	return item, nil
}

func (s *PlayerService) newCard(owner player.Player, input AddRatingInput, now time.Time) (player.Card, error) {
	style, err := player.ParseStyle(input.Style)
	if err != nil {
		return player.Card{}, invalidInput(err)
	}
	name := strings.TrimSpace(input.CardName)
	if name == "" {
		name = owner.Name
	}
	id, err := s.idGen.NewID()
	if err != nil {
		return player.Card{}, fmt.Errorf("generate card id: %w", err)
	}
	return player.Card{
		ID:        id,
		Name:      name,
		Style:     style,
		League:    strings.TrimSpace(input.League),
		Positions: make(map[player.Position]player.PositionRecord),
		BaseStats: player.AttributeStats{},
		Skills:    player.NewSkillSet(),
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// RemoveLastRating pops the newest rating. An emptied position is removed,
// then an emptied card, then an emptied player.
func (s *PlayerService) RemoveLastRating(ctx context.Context, playerID, cardID, position string) (RemoveRatingResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.RemoveLastRating")
	defer span.End()

	pos, err := parseRatedPosition(position)
	if err != nil {
		return RemoveRatingResult{}, err
	}
	item, card, err := s.loadCard(ctx, playerID, cardID)
	if err != nil {
		return RemoveRatingResult{}, err
	}
	record, ok := card.Positions[pos]
	if !ok || len(record.Ratings) == 0 {
		return RemoveRatingResult{}, fmt.Errorf("%w: no ratings for card id=%s at %s", ErrNotFound, card.ID, pos)
	}

	now := s.now().UTC()
	record.Ratings = record.Ratings[:len(record.Ratings)-1]
	record.UpdatedAt = now
	if len(record.Ratings) == 0 {
		delete(card.Positions, pos)
	} else {
		card.Positions[pos] = record
	}
	card.UpdatedAt = now

	var result RemoveRatingResult
	if len(card.Positions) == 0 {
		item.Cards = removeCard(item.Cards, card.ID)
		result.CardRemoved = true
	}
	if len(item.Cards) == 0 {
		if err := s.playerRepo.Delete(ctx, item.ID); err != nil {
			return RemoveRatingResult{}, storageError("delete player", err)
		}
		s.logger.InfoContext(ctx, "player removed after last rating", "player_id", item.ID)
		result.PlayerRemoved = true
		return result, nil
	}

	item.UpdatedAt = now
	if err := s.save(ctx, item); err != nil {
		return RemoveRatingResult{}, err
	}
	result.Player = &item
	return result, nil
}

func (s *PlayerService) UpdateCard(ctx context.Context, input UpdateCardInput) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.UpdateCard")
	defer span.End()

	item, card, err := s.loadCard(ctx, input.PlayerID, input.CardID)
	if err != nil {
		return player.Player{}, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return player.Player{}, fmt.Errorf("%w: card name cannot be empty", ErrInvalidInput)
		}
		card.Name = name
	}
	if input.Style != nil {
		style, err := player.ParseStyle(*input.Style)
		if err != nil {
			return player.Player{}, invalidInput(err)
		}
		card.Style = style
	}
	if input.League != nil {
		card.League = strings.TrimSpace(*input.League)
	}
	if input.ImageURL != nil {
		card.ImageURL = strings.TrimSpace(*input.ImageURL)
	}

	now := s.now().UTC()
	card.UpdatedAt = now
	item.UpdatedAt = now
	if err := s.save(ctx, item); err != nil {
		return player.Player{}, err
	}
	return item, nil
}

func (s *PlayerService) UpdateCardStats(ctx context.Context, input UpdateCardStatsInput) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.UpdateCardStats")
	defer span.End()

	stats, err := player.ParseAttributeStats(input.BaseStats)
	if err != nil {
		return player.Player{}, invalidInput(err)
	}
	skills, err := player.ParseSkillSet(input.Skills)
	if err != nil {
		return player.Player{}, invalidInput(err)
	}
	if input.ProgressionPoints < 0 {
		return player.Player{}, fmt.Errorf("%w: progression points cannot be negative", ErrInvalidInput)
	}
	for name, value := range map[string]*int{"height": input.Height, "weight": input.Weight} {
		if value != nil && *value <= 0 {
			return player.Player{}, fmt.Errorf("%w: %s must be positive", ErrInvalidInput, name)
		}
	}

	item, card, err := s.loadCard(ctx, input.PlayerID, input.CardID)
	if err != nil {
		return player.Player{}, err
	}
	card.BaseStats = stats
	card.Skills = skills
	card.Physical = player.PhysicalAttributes{Height: input.Height, Weight: input.Weight}
	card.ProgressionPoints = input.ProgressionPoints

	now := s.now().UTC()
	card.UpdatedAt = now
	item.UpdatedAt = now
	if err := s.save(ctx, item); err != nil {
		return player.Player{}, err
	}
	return item, nil
}

// SaveBuild stores the progression build of a card at a position and caches
// the affinity it yields.
func (s *PlayerService) SaveBuild(ctx context.Context, input SaveBuildInput) (CardAnalysis, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.SaveBuild")
	defer span.End()

	pos, err := parseRatedPosition(input.Position)
	if err != nil {
		return CardAnalysis{}, err
	}
	build, err := player.ParseProgressionBuild(input.Build)
	if err != nil {
		return CardAnalysis{}, invalidInput(err)
	}
	allowed := player.CategoriesFor(pos.IsGoalkeeper())
	for category, level := range build {
		if level > 0 && !containsCategory(allowed, category) {
			return CardAnalysis{}, fmt.Errorf("%w: category %s does not apply at %s", ErrInvalidInput, category, pos)
		}
	}

	item, card, err := s.loadCard(ctx, input.PlayerID, input.CardID)
	if err != nil {
		return CardAnalysis{}, err
	}
	if card.IsSpecial() && scoring.BuildCost(build) > 0 {
		return CardAnalysis{}, fmt.Errorf("%w: special card %s has fixed stats", ErrInvalidInput, card.Name)
	}
	if cost := scoring.BuildCost(build); cost > card.ProgressionPoints {
		return CardAnalysis{}, fmt.Errorf("%w: build costs %d points, card has %d", ErrInvalidInput, cost, card.ProgressionPoints)
	}

	builds, err := s.buildRepo.List(ctx)
	if err != nil {
		return CardAnalysis{}, storageError("list ideal builds", err)
	}

	now := s.now().UTC()
	if card.Positions == nil {
		card.Positions = make(map[player.Position]player.PositionRecord)
	}
	record := card.Positions[pos]
	record.Build = build
	if tactic := strings.TrimSpace(input.Tactic); tactic != "" {
		record.Tactic = tactic
	}
	record.UpdatedAt = now
	card.Positions[pos] = record

	analysis := evaluateCard(item, *card, pos, builds, record.Tactic, now, s.liveFormTTL)
	stampAffinity(&record, analysis.Affinity.Score, now)
	card.Positions[pos] = record
	item.UpdatedAt = now
	if err := s.save(ctx, item); err != nil {
		return CardAnalysis{}, err
	}

	score := analysis.Affinity.Score
	analysis.CachedAffinity = &score
	analysis.AffinityComputedAt = now
	analysis.Stale = false
	return analysis, nil
}

func (s *PlayerService) SetLiveForm(ctx context.Context, input SetLiveFormInput) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.SetLiveForm")
	defer span.End()

	form, err := player.ParseLiveForm(input.LiveForm)
	if err != nil {
		return player.Player{}, invalidInput(err)
	}
	item, err := s.loadPlayer(ctx, input.PlayerID)
	if err != nil {
		return player.Player{}, err
	}

	now := s.now().UTC()
	item.LiveForm = form
	item.LiveFormNonExpiring = input.NonExpiring && form != player.LiveFormNone
	item.LiveFormSetAt = now
	if form == player.LiveFormNone {
		item.LiveFormSetAt = time.Time{}
	}
	item.UpdatedAt = now
	if err := s.save(ctx, item); err != nil {
		return player.Player{}, err
	}
	return item, nil
}

func (s *PlayerService) AnalyzeCard(ctx context.Context, input CardPositionInput) (CardAnalysis, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.AnalyzeCard")
	defer span.End()

	pos, err := parseRatedPosition(input.Position)
	if err != nil {
		return CardAnalysis{}, err
	}
	item, card, err := s.loadCard(ctx, input.PlayerID, input.CardID)
	if err != nil {
		return CardAnalysis{}, err
	}
	builds, err := s.buildRepo.List(ctx)
	if err != nil {
		return CardAnalysis{}, storageError("list ideal builds", err)
	}
	return evaluateCard(item, *card, pos, builds, strings.TrimSpace(input.Tactic), s.now().UTC(), s.liveFormTTL), nil
}

// SuggestBuild proposes a progression build for the card at a position and
// evaluates it without saving.
func (s *PlayerService) SuggestBuild(ctx context.Context, input SuggestBuildInput) (BuildSuggestion, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.SuggestBuild")
	defer span.End()

	pos, err := parseRatedPosition(input.Position)
	if err != nil {
		return BuildSuggestion{}, err
	}
	item, card, err := s.loadCard(ctx, input.PlayerID, input.CardID)
	if err != nil {
		return BuildSuggestion{}, err
	}
	if card.IsSpecial() {
		return BuildSuggestion{}, fmt.Errorf("%w: special card %s has fixed stats", ErrInvalidInput, card.Name)
	}
	budget := card.ProgressionPoints
	if input.Budget != nil {
		if *input.Budget < 0 {
			return BuildSuggestion{}, fmt.Errorf("%w: budget cannot be negative", ErrInvalidInput)
		}
		budget = *input.Budget
	}

	builds, err := s.buildRepo.List(ctx)
	if err != nil {
		return BuildSuggestion{}, storageError("list ideal builds", err)
	}

	tactic := strings.TrimSpace(input.Tactic)
	if tactic == "" {
		tactic = card.Positions[pos].Tactic
	}
	resolution := idealbuild.Resolve(card.Style, pos, builds, tactic, card.Physical.Height)
	suggested := scoring.SuggestProgression(card.BaseStats, resolution.Build, pos.IsGoalkeeper(), budget)

	trial := card.Clone()
	if trial.Positions == nil {
		trial.Positions = make(map[player.Position]player.PositionRecord)
	}
	record := trial.Positions[pos]
	record.Build = suggested
	trial.Positions[pos] = record

	return BuildSuggestion{
		Build:    suggested,
		Cost:     scoring.BuildCost(suggested),
		Budget:   budget,
		Analysis: evaluateCard(item, trial, pos, builds, tactic, s.now().UTC(), s.liveFormTTL),
	}, nil
}

// RefreshAffinities recomputes the cached affinity of every card position.
// Players are processed on a bounded worker pool; only changed players are
// written back.
func (s *PlayerService) RefreshAffinities(ctx context.Context) (RefreshAffinitiesResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.RefreshAffinities")
	defer span.End()

	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return RefreshAffinitiesResult{}, storageError("list players", err)
	}
	builds, err := s.buildRepo.List(ctx)
	if err != nil {
		return RefreshAffinitiesResult{}, storageError("list ideal builds", err)
	}
	result := RefreshAffinitiesResult{Players: len(players)}
	if len(players) == 0 {
		return result, nil
	}

	workerCount := min(s.workers, len(players))
	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return RefreshAffinitiesResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var positionCount atomic.Int32
	var updatedCount atomic.Int32
	var failedCount atomic.Int32
	errs := make(chan error, len(players))
	now := s.now().UTC()

	var workers sync.WaitGroup
	for _, item := range players {
		item := item
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			positions, changed := s.refreshPlayer(&item, builds, now)
			positionCount.Add(int32(positions))
			if changed == 0 {
				return
			}
			item.UpdatedAt = now
			if err := s.playerRepo.Upsert(ctx, item); err != nil {
				failedCount.Add(1)
				errs <- fmt.Errorf("player id=%s: %w", item.ID, err)
				return
			}
			updatedCount.Add(int32(changed))
		}); err != nil {
			workers.Done()
			workers.Wait()
			return RefreshAffinitiesResult{}, fmt.Errorf("submit task to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(errs)

	var failures []error
	for err := range errs {
		failures = append(failures, err)
	}
	sort.Slice(failures, func(i, j int) bool { return failures[i].Error() < failures[j].Error() })

	result.Positions = int(positionCount.Load())
	result.Updated = int(updatedCount.Load())
	result.Failed = int(failedCount.Load())
	s.logger.InfoContext(ctx, "affinities refreshed",
		"players", result.Players,
		"positions", result.Positions,
		"updated", result.Updated,
		"failed", result.Failed,
	)
	if len(failures) > 0 {
		return result, storageError("refresh affinities", errors.Join(failures...))
	}
	return result, nil
}

func (s *PlayerService) refreshPlayer(item *player.Player, builds []idealbuild.IdealBuild, now time.Time) (positions, changed int) {
	for i := range item.Cards {
		card := &item.Cards[i]
		for _, pos := range card.RatedPositions() {
			positions++
			analysis := evaluateCard(*item, *card, pos, builds, "", now, s.liveFormTTL)
			record := card.Positions[pos]
			if stampAffinity(&record, analysis.Affinity.Score, now) {
				changed++
			}
			card.Positions[pos] = record
		}
	}
	return positions, changed
}

func (s *PlayerService) loadPlayer(ctx context.Context, playerID string) (player.Player, error) {
	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return player.Player{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}
	item, exists, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return player.Player{}, storageError("get player", err)
	}
	if !exists {
		return player.Player{}, fmt.Errorf("%w: player id=%s", ErrNotFound, playerID)
	}
	return item, nil
}

// loadCard returns the player and a pointer into its cards for editing.
func (s *PlayerService) loadCard(ctx context.Context, playerID, cardID string) (player.Player, *player.Card, error) {
	item, err := s.loadPlayer(ctx, playerID)
	if err != nil {
		return player.Player{}, nil, err
	}
	card, ok := item.Card(strings.TrimSpace(cardID))
	if !ok {
		return player.Player{}, nil, fmt.Errorf("%w: card id=%s", ErrNotFound, cardID)
	}
	return item, card, nil
}

func (s *PlayerService) save(ctx context.Context, item player.Player) error {
	if err := item.Validate(); err != nil {
		return invalidInput(err)
	}
	if err := s.playerRepo.Upsert(ctx, item); err != nil {
		return storageError("save player", err)
	}
	return nil
}

// parseRatedPosition accepts only real positions; archetypes exist for ideal
// build lookup.
func parseRatedPosition(raw string) (player.Position, error) {
	pos, err := player.ParsePosition(raw)
	if err != nil {
		return "", invalidInput(err)
	}
	if pos.IsArchetype() {
		return "", fmt.Errorf("%w: %s is an archetype, not a playable position", ErrInvalidInput, pos)
	}
	return pos, nil
}

func playsInLeague(item player.Player, league string) bool {
	for _, card := range item.Cards {
		if strings.EqualFold(card.League, league) {
			return true
		}
	}
	return false
}

func removeCard(cards []player.Card, cardID string) []player.Card {
	out := cards[:0]
	for _, card := range cards {
		if card.ID != cardID {
			out = append(out, card)
		}
	}
	return out
}

func containsCategory(items []player.Category, category player.Category) bool {
	for _, item := range items {
		if item == category {
			return true
		}
	}
	return false
}
