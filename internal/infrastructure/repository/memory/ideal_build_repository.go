package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/squad-builder/internal/domain/idealbuild"
)

type IdealBuildRepository struct {
	mu    sync.RWMutex
	items map[string]idealbuild.IdealBuild
}

func NewIdealBuildRepository(builds []idealbuild.IdealBuild) *IdealBuildRepository {
	items := make(map[string]idealbuild.IdealBuild, len(builds))
	for _, b := range builds {
		items[b.ID] = b.Clone()
	}

	return &IdealBuildRepository{items: items}
}

func (r *IdealBuildRepository) List(_ context.Context) ([]idealbuild.IdealBuild, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]idealbuild.IdealBuild, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, item.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, nil
}

func (r *IdealBuildRepository) Upsert(_ context.Context, item idealbuild.IdealBuild) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.ID] = item.Clone()
	return nil
}

func (r *IdealBuildRepository) Delete(_ context.Context, buildID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, buildID)
	return nil
}
