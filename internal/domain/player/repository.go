package player

import "context"

// Repository describes player persistence needs from use cases. Cards are
// stored as part of their owning player.
type Repository interface {
	List(ctx context.Context) ([]Player, error)
	GetByID(ctx context.Context, playerID string) (Player, bool, error)
	Upsert(ctx context.Context, item Player) error
	Delete(ctx context.Context, playerID string) error
}
