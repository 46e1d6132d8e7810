package ports

import (
	"context"
	"errors"

	types "github.com/pawhaven/adoption-api/internal/domains/catalog/application/types"
	"github.com/pawhaven/adoption-api/internal/domains/catalog/domain"
)

var (
	ErrNotFound = errors.New("pet not found")
	// ErrStorage wraps unexpected persistence failures so callers can
	// distinguish them from the expected not-found/conflict outcomes.
	ErrStorage = errors.New("pet storage failure")
)

type Repository interface {
	// Search returns one page of pets matching every clause, ordered by
	// creation recency descending with id descending as tiebreak, plus the
	// filter-wide total and page count.
	Search(ctx context.Context, query Query) (*types.PetPage, error)
	GetByID(ctx context.Context, id int64) (*types.PetProjection, error)
	Save(ctx context.Context, pet *domain.Pet) (*types.PetProjection, error)
	// Delete removes the pet and cascades to its adoption and favorite rows.
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*types.PetProjection, error)
}
