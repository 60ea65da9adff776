package idealbuild

import "context"

// Repository describes ideal build persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]IdealBuild, error)
	Upsert(ctx context.Context, item IdealBuild) error
	Delete(ctx context.Context, buildID string) error
}
