package application

import (
	"context"
	"errors"
	"fmt"

	types "github.com/pawhaven/adoption-api/internal/domains/favorites/application/types"
	"github.com/pawhaven/adoption-api/internal/domains/favorites/domain"
	"github.com/pawhaven/adoption-api/internal/domains/favorites/ports"
)

// ErrInvalidInput signals the request violated a favorite invariant.
var ErrInvalidInput = errors.New("invalid favorite input")

// Service orchestrates the favorites use cases.
type Service struct {
	repo ports.Repository
}

// NewService wires the favorites service with its dependencies.
func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

// Add favorites a pet for an adopter. Favoriting is independent of adoption
// state: claimed pets can be favorited too.
func (s *Service) Add(ctx context.Context, input types.FavoriteInput) (*types.FavoriteProjection, error) {
	favorite, err := domain.NewFavorite(input.AdopterID, input.PetID)
	if err != nil {
		return nil, mapError(err)
	}
	created, err := s.repo.Create(ctx, favorite)
	if err != nil {
		return nil, mapError(err)
	}
	return created, nil
}

// Remove unfavorites a pet for an adopter.
func (s *Service) Remove(ctx context.Context, input types.FavoriteInput) error {
	if input.AdopterID <= 0 || input.PetID <= 0 {
		return fmt.Errorf("%w: adopter=%d pet=%d", ErrInvalidInput, input.AdopterID, input.PetID)
	}
	if err := s.repo.Delete(ctx, input.AdopterID, input.PetID); err != nil {
		return mapError(err)
	}
	return nil
}

// ListByAdopter returns the adopter's favorites, newest first.
func (s *Service) ListByAdopter(ctx context.Context, adopterID int64) ([]*types.FavoriteProjection, error) {
	result, err := s.repo.ListByAdopter(ctx, adopterID)
	if err != nil {
		return nil, mapError(err)
	}
	return result, nil
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrInvalidPetRef) ||
		errors.Is(err, domain.ErrInvalidAdopterRef) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}

var _ ports.Service = (*Service)(nil)
