package cache

import (
	"context"
	"time"

	"github.com/riskibarqy/squad-builder/internal/domain/formation"
	"github.com/riskibarqy/squad-builder/internal/domain/idealbuild"
	"github.com/riskibarqy/squad-builder/internal/domain/player"
	basecache "github.com/riskibarqy/squad-builder/internal/platform/cache"
)

const (
	keyList   = "list"
	keyByID   = "id:"
	keyPrefix = ""
)

// cachedByID remembers misses too so unknown ids don't hit storage each time.
type cachedByID[T any] struct {
	value  T
	exists bool
}

type PlayerRepository struct {
	next  player.Repository
	list  *basecache.Store[[]player.Player]
	items *basecache.Store[cachedByID[player.Player]]
}

func NewPlayerRepository(next player.Repository, ttl time.Duration) *PlayerRepository {
	return &PlayerRepository{
		next:  next,
		list:  basecache.NewStore[[]player.Player](ttl),
		items: basecache.NewStore[cachedByID[player.Player]](ttl),
	}
}

func (r *PlayerRepository) List(ctx context.Context) ([]player.Player, error) {
	items, err := r.list.GetOrLoad(ctx, keyList, r.next.List)
	if err != nil {
		return nil, err
	}
	return clonePlayers(items), nil
}

func (r *PlayerRepository) GetByID(ctx context.Context, playerID string) (player.Player, bool, error) {
	cached, err := r.items.GetOrLoad(ctx, keyByID+playerID, func(ctx context.Context) (cachedByID[player.Player], error) {
		item, exists, err := r.next.GetByID(ctx, playerID)
		return cachedByID[player.Player]{value: item, exists: exists}, err
	})
	if err != nil {
		return player.Player{}, false, err
	}
	return cached.value.Clone(), cached.exists, nil
}

func (r *PlayerRepository) Upsert(ctx context.Context, item player.Player) error {
	defer r.invalidate(ctx)
	return r.next.Upsert(ctx, item)
}

func (r *PlayerRepository) Delete(ctx context.Context, playerID string) error {
	defer r.invalidate(ctx)
	return r.next.Delete(ctx, playerID)
}

func (r *PlayerRepository) invalidate(ctx context.Context) {
	r.list.Invalidate(ctx, keyPrefix)
	r.items.Invalidate(ctx, keyPrefix)
}

type FormationRepository struct {
	next  formation.Repository
	list  *basecache.Store[[]formation.Formation]
	items *basecache.Store[cachedByID[formation.Formation]]
}

func NewFormationRepository(next formation.Repository, ttl time.Duration) *FormationRepository {
	return &FormationRepository{
		next:  next,
		list:  basecache.NewStore[[]formation.Formation](ttl),
		items: basecache.NewStore[cachedByID[formation.Formation]](ttl),
	}
}

func (r *FormationRepository) List(ctx context.Context) ([]formation.Formation, error) {
	items, err := r.list.GetOrLoad(ctx, keyList, r.next.List)
	if err != nil {
		return nil, err
	}
	out := make([]formation.Formation, 0, len(items))
	for _, item := range items {
		out = append(out, item.Clone())
	}
	return out, nil
}

func (r *FormationRepository) GetByID(ctx context.Context, formationID string) (formation.Formation, bool, error) {
	cached, err := r.items.GetOrLoad(ctx, keyByID+formationID, func(ctx context.Context) (cachedByID[formation.Formation], error) {
		item, exists, err := r.next.GetByID(ctx, formationID)
		return cachedByID[formation.Formation]{value: item, exists: exists}, err
	})
	if err != nil {
		return formation.Formation{}, false, err
	}
	return cached.value.Clone(), cached.exists, nil
}

func (r *FormationRepository) Upsert(ctx context.Context, item formation.Formation) error {
	defer r.invalidate(ctx)
	return r.next.Upsert(ctx, item)
}

func (r *FormationRepository) Delete(ctx context.Context, formationID string) error {
	defer r.invalidate(ctx)
	return r.next.Delete(ctx, formationID)
}

func (r *FormationRepository) invalidate(ctx context.Context) {
	r.list.Invalidate(ctx, keyPrefix)
	r.items.Invalidate(ctx, keyPrefix)
}

type IdealBuildRepository struct {
	next idealbuild.Repository
	list *basecache.Store[[]idealbuild.IdealBuild]
}

func NewIdealBuildRepository(next idealbuild.Repository, ttl time.Duration) *IdealBuildRepository {
	return &IdealBuildRepository{
		next: next,
		list: basecache.NewStore[[]idealbuild.IdealBuild](ttl),
	}
}

func (r *IdealBuildRepository) List(ctx context.Context) ([]idealbuild.IdealBuild, error) {
	items, err := r.list.GetOrLoad(ctx, keyList, r.next.List)
	if err != nil {
		return nil, err
	}
	out := make([]idealbuild.IdealBuild, 0, len(items))
	for _, item := range items {
		out = append(out, item.Clone())
	}
	return out, nil
}

func (r *IdealBuildRepository) Upsert(ctx context.Context, item idealbuild.IdealBuild) error {
	defer r.list.Invalidate(ctx, keyPrefix)
	return r.next.Upsert(ctx, item)
}

func (r *IdealBuildRepository) Delete(ctx context.Context, buildID string) error {
	defer r.list.Invalidate(ctx, keyPrefix)
	return r.next.Delete(ctx, buildID)
}

func clonePlayers(items []player.Player) []player.Player {
	out := make([]player.Player, 0, len(items))
	for _, item := range items {
		out = append(out, item.Clone())
	}
	return out
}
