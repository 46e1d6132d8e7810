package types

import (
	"time"

	"github.com/pawhaven/adoption-api/internal/domains/adoptions/domain"
)

// PetSummary is the slice of pet state embedded in adoption listings so the
// caller does not have to re-query the catalog per row.
type PetSummary struct {
	ID      int64
	Name    string
	Species string
	Status  string
}

// AdopterSummary is the slice of adopter state embedded in adoption listings.
type AdopterSummary struct {
	ID    int64
	Name  string
	Email string
}

// AdoptionMetadata captures persistence timestamps for an adoption.
type AdoptionMetadata struct {
	CreatedAt time.Time
	UpdatedAt time.Time
}

// AdoptionProjection transports an adoption with its related summaries.
type AdoptionProjection struct {
	Adoption *domain.Adoption
	Pet      PetSummary
	Adopter  AdopterSummary
	Metadata AdoptionMetadata
}

// CreateAdoptionInput captures a claim request.
type CreateAdoptionInput struct {
	PetID     int64
	AdopterID int64
	Notes     string
}

// UpdateNotesInput replaces the notes on an existing adoption.
type UpdateNotesInput struct {
	ID    int64
	Notes string
}

// AdoptionIdentifier references an adoption by its aggregate ID.
type AdoptionIdentifier struct {
	ID int64
}

// ListFilter narrows an adoption listing. Nil pointers leave the dimension
// unconstrained.
type ListFilter struct {
	AdopterID *int64
	PetID     *int64
}
