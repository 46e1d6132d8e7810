package ports

import (
	"context"

	types "github.com/pawhaven/adoption-api/internal/domains/catalog/application/types"
)

// Service is the catalog application port consumed by transports and decorators.
type Service interface {
	Search(ctx context.Context, input types.SearchInput) (*types.PetPage, error)
	GetByID(ctx context.Context, input types.PetIdentifier) (*types.PetProjection, error)
	Add(ctx context.Context, input types.AddPetInput) (*types.PetProjection, error)
	Update(ctx context.Context, input types.UpdatePetInput) (*types.PetProjection, error)
	Delete(ctx context.Context, input types.PetIdentifier) error
	List(ctx context.Context) ([]*types.PetProjection, error)
}
