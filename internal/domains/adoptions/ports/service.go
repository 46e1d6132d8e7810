package ports

import (
	"context"

	types "github.com/pawhaven/adoption-api/internal/domains/adoptions/application/types"
)

// Service is the adoptions application port consumed by the HTTP layer.
type Service interface {
	Create(ctx context.Context, input types.CreateAdoptionInput) (*types.AdoptionProjection, error)
	GetByID(ctx context.Context, input types.AdoptionIdentifier) (*types.AdoptionProjection, error)
	List(ctx context.Context, filter types.ListFilter) ([]*types.AdoptionProjection, error)
	UpdateNotes(ctx context.Context, input types.UpdateNotesInput) (*types.AdoptionProjection, error)
	Revert(ctx context.Context, input types.AdoptionIdentifier) error
}
