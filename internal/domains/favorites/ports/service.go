package ports

import (
	"context"

	types "github.com/pawhaven/adoption-api/internal/domains/favorites/application/types"
)

// Service is the favorites application port consumed by the HTTP layer.
type Service interface {
	Add(ctx context.Context, input types.FavoriteInput) (*types.FavoriteProjection, error)
	Remove(ctx context.Context, input types.FavoriteInput) error
	ListByAdopter(ctx context.Context, adopterID int64) ([]*types.FavoriteProjection, error)
}
