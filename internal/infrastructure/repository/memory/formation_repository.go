package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/squad-builder/internal/domain/formation"
)

// FormationRepository keeps formations in insertion order.
type FormationRepository struct {
	mu     sync.RWMutex
	items  map[string]formation.Formation
	orders []string
}

func NewFormationRepository(formations []formation.Formation) *FormationRepository {
	repo := &FormationRepository{items: make(map[string]formation.Formation, len(formations))}
	for _, f := range formations {
		repo.put(f)
	}

	return repo
}

func (r *FormationRepository) List(_ context.Context) ([]formation.Formation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]formation.Formation, 0, len(r.orders))
	for _, id := range r.orders {
		out = append(out, r.items[id].Clone())
	}

	return out, nil
}

func (r *FormationRepository) GetByID(_ context.Context, formationID string) (formation.Formation, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[formationID]
	if !ok {
		return formation.Formation{}, false, nil
	}

	return item.Clone(), true, nil
}

func (r *FormationRepository) Upsert(_ context.Context, item formation.Formation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.put(item)
	return nil
}

func (r *FormationRepository) Delete(_ context.Context, formationID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[formationID]; !ok {
		return nil
	}
	delete(r.items, formationID)
	for i, id := range r.orders {
		if id == formationID {
			r.orders = append(r.orders[:i], r.orders[i+1:]...)
			break
		}
	}
	return nil
}

func (r *FormationRepository) put(item formation.Formation) {
	if _, ok := r.items[item.ID]; !ok {
		r.orders = append(r.orders, item.ID)
	}
	r.items[item.ID] = item.Clone()
}
