package ports

import (
	"context"
	"errors"

	types "github.com/pawhaven/adoption-api/internal/domains/adoptions/application/types"
	"github.com/pawhaven/adoption-api/internal/domains/adoptions/domain"
)

var (
	ErrNotFound = errors.New("adoption not found")
	// ErrPetNotFound distinguishes a missing pet from a pet that exists but
	// is already claimed.
	ErrPetNotFound = errors.New("adoption pet not found")
	// ErrPetClaimed reports that the pet lost the claim race: some adoption
	// already holds it.
	ErrPetClaimed      = errors.New("pet is already claimed")
	ErrAdopterNotFound = errors.New("adoption adopter not found")
	ErrStorage         = errors.New("adoption storage failure")
)

type Repository interface {
	// Create records the adoption and claims the pet in one atomic step.
	// Exactly one of N concurrent calls for the same available pet wins;
	// the rest observe ErrPetClaimed.
	Create(ctx context.Context, adoption *domain.Adoption) (*types.AdoptionProjection, error)
	GetByID(ctx context.Context, id int64) (*types.AdoptionProjection, error)
	List(ctx context.Context, filter types.ListFilter) ([]*types.AdoptionProjection, error)
	// UpdateNotes rewrites the notes field only.
	UpdateNotes(ctx context.Context, id int64, notes string) (*types.AdoptionProjection, error)
	// Delete reverts the adoption and releases the pet back to available in
	// one atomic step.
	Delete(ctx context.Context, id int64) error
}
