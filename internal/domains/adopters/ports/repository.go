package ports

import (
	"context"
	"errors"

	types "github.com/pawhaven/adoption-api/internal/domains/adopters/application/types"
	"github.com/pawhaven/adoption-api/internal/domains/adopters/domain"
)

var (
	ErrNotFound = errors.New("adopter not found")
	// ErrEmailTaken reports a violation of the unique email constraint.
	ErrEmailTaken = errors.New("email already registered")
	ErrStorage    = errors.New("adopter storage failure")
)

type Repository interface {
	// Create inserts a new adopter; ErrEmailTaken when the address exists.
	Create(ctx context.Context, adopter *domain.Adopter) (*types.AdopterProjection, error)
	// Update rewrites an existing adopter keyed by ID.
	Update(ctx context.Context, adopter *domain.Adopter) (*types.AdopterProjection, error)
	GetByID(ctx context.Context, id int64) (*types.AdopterProjection, error)
	GetByEmail(ctx context.Context, email string) (*types.AdopterProjection, error)
	// Delete removes the adopter, releases their claimed pets back to
	// available, and cascades to their adoption and favorite rows.
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*types.AdopterProjection, error)
}
