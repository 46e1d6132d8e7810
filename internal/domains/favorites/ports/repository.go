package ports

import (
	"context"
	"errors"

	types "github.com/pawhaven/adoption-api/internal/domains/favorites/application/types"
	"github.com/pawhaven/adoption-api/internal/domains/favorites/domain"
)

var (
	ErrNotFound = errors.New("favorite not found")
	// ErrDuplicate reports a violation of the unique (adopter, pet) pair.
	ErrDuplicate       = errors.New("pet already favorited")
	ErrPetNotFound     = errors.New("favorite pet not found")
	ErrAdopterNotFound = errors.New("favorite adopter not found")
	ErrStorage         = errors.New("favorite storage failure")
)

type Repository interface {
	// Create inserts the pair; ErrDuplicate when it already exists.
	Create(ctx context.Context, favorite *domain.Favorite) (*types.FavoriteProjection, error)
	// Delete removes the pair; ErrNotFound when it was never favorited.
	Delete(ctx context.Context, adopterID, petID int64) error
	// ListByAdopter returns the adopter's favorites, newest first.
	ListByAdopter(ctx context.Context, adopterID int64) ([]*types.FavoriteProjection, error)
}
