package formation

import "context"

// Repository describes formation persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]Formation, error)
	GetByID(ctx context.Context, formationID string) (Formation, bool, error)
	Upsert(ctx context.Context, item Formation) error
	Delete(ctx context.Context, formationID string) error
}
