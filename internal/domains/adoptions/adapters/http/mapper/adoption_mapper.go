package mapper

import (
	"time"

	types "github.com/pawhaven/adoption-api/internal/domains/adoptions/application/types"
)

// CreateAdoptionRequest captures a claim payload.
type CreateAdoptionRequest struct {
	PetID     int64  `json:"petId" binding:"required"`
	AdopterID int64  `json:"adopterId" binding:"required"`
	Notes     string `json:"notes,omitempty"`
}

// UpdateNotesRequest replaces the notes on an adoption.
type UpdateNotesRequest struct {
	Notes string `json:"notes"`
}

// PetSummary is the embedded pet slice of an adoption response.
type PetSummary struct {
	ID      int64  `json:"id"`
	Name    string `json:"name,omitempty"`
	Species string `json:"species,omitempty"`
	Status  string `json:"status,omitempty"`
}

// AdopterSummary is the embedded adopter slice of an adoption response.
type AdopterSummary struct {
	ID    int64  `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// Adoption is the HTTP representation of an adoption record.
type Adoption struct {
	ID        int64          `json:"id"`
	Pet       PetSummary     `json:"pet"`
	Adopter   AdopterSummary `json:"adopter"`
	Notes     string         `json:"notes,omitempty"`
	AdoptedAt time.Time      `json:"adoptedAt"`
	CreatedAt time.Time      `json:"createdAt,omitempty"`
	UpdatedAt time.Time      `json:"updatedAt,omitempty"`
}

// ToCreateInput maps the transport payload into the application input.
func ToCreateInput(payload CreateAdoptionRequest) types.CreateAdoptionInput {
	return types.CreateAdoptionInput{
		PetID:     payload.PetID,
		AdopterID: payload.AdopterID,
		Notes:     payload.Notes,
	}
}

// FromProjection maps a projection into a transport Adoption.
func FromProjection(p *types.AdoptionProjection) Adoption {
	if p == nil || p.Adoption == nil {
		return Adoption{}
	}
	return Adoption{
		ID: p.Adoption.ID,
		Pet: PetSummary{
			ID:      p.Pet.ID,
			Name:    p.Pet.Name,
			Species: p.Pet.Species,
			Status:  p.Pet.Status,
		},
		Adopter: AdopterSummary{
			ID:    p.Adopter.ID,
			Name:  p.Adopter.Name,
			Email: p.Adopter.Email,
		},
		Notes:     p.Adoption.Notes,
		AdoptedAt: p.Adoption.AdoptedAt,
		CreatedAt: p.Metadata.CreatedAt,
		UpdatedAt: p.Metadata.UpdatedAt,
	}
}

// FromProjectionList maps a projection slice into transport Adoptions.
func FromProjectionList(list []*types.AdoptionProjection) []Adoption {
	result := make([]Adoption, 0, len(list))
	for _, p := range list {
		result = append(result, FromProjection(p))
	}
	return result
}
