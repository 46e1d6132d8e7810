package application

import (
	"context"

	types "github.com/pawhaven/adoption-api/internal/domains/adoptions/application/types"
	"github.com/pawhaven/adoption-api/internal/domains/adoptions/domain"
	"github.com/pawhaven/adoption-api/internal/domains/adoptions/ports"
)

// Service orchestrates the adoption lifecycle. The repository owns the
// atomicity of claim and revert; this layer validates inputs and maps errors.
type Service struct {
	repo ports.Repository
}

// NewService wires the adoptions service with its dependencies.
func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

// Create claims the pet for the adopter. The repository performs the
// existence checks and the status transition atomically, so concurrent
// claims on the same pet produce exactly one adoption.
func (s *Service) Create(ctx context.Context, input types.CreateAdoptionInput) (*types.AdoptionProjection, error) {
	adoption, err := domain.NewAdoption(input.PetID, input.AdopterID, input.Notes)
	if err != nil {
		return nil, mapError(err)
	}
	created, err := s.repo.Create(ctx, adoption)
	if err != nil {
		return nil, mapError(err)
	}
	return created, nil
}

// GetByID loads a single adoption with its pet and adopter summaries.
func (s *Service) GetByID(ctx context.Context, input types.AdoptionIdentifier) (*types.AdoptionProjection, error) {
	result, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, mapError(err)
	}
	return result, nil
}

// List returns adoptions matching the filter, newest first.
func (s *Service) List(ctx context.Context, filter types.ListFilter) ([]*types.AdoptionProjection, error) {
	result, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, mapError(err)
	}
	return result, nil
}

// UpdateNotes rewrites the shelter notes on an existing adoption.
func (s *Service) UpdateNotes(ctx context.Context, input types.UpdateNotesInput) (*types.AdoptionProjection, error) {
	result, err := s.repo.UpdateNotes(ctx, input.ID, input.Notes)
	if err != nil {
		return nil, mapError(err)
	}
	return result, nil
}

// Revert removes the adoption and releases the pet back to available. The
// pet's current status is not re-validated: the adoption row is the source
// of truth for the claim.
func (s *Service) Revert(ctx context.Context, input types.AdoptionIdentifier) error {
	if err := s.repo.Delete(ctx, input.ID); err != nil {
		return mapError(err)
	}
	return nil
}

var _ ports.Service = (*Service)(nil)
