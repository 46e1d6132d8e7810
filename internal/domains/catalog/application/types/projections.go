package types

import (
	"time"

	"github.com/pawhaven/adoption-api/internal/domains/catalog/domain"
)

// PetMetadata captures infrastructure timestamps associated with a persisted pet.
type PetMetadata struct {
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PetProjection transports a domain aggregate together with its persistence metadata.
type PetProjection struct {
	Pet      *domain.Pet
	Metadata PetMetadata
}

// NewPetProjection wraps an aggregate with persistence metadata.
func NewPetProjection(pet *domain.Pet, createdAt, updatedAt time.Time) *PetProjection {
	if pet == nil {
		return nil
	}
	return &PetProjection{
		Pet: pet,
		Metadata: PetMetadata{
			CreatedAt: createdAt,
			UpdatedAt: updatedAt,
		},
	}
}

// PetPage is one page of search results with count-consistent metadata:
// Total reflects the full filtered set and Pages is ceil(Total/pageSize),
// regardless of which page was requested.
type PetPage struct {
	Items []*PetProjection
	Total int64
	Pages int
}
