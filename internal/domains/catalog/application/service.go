package application

import (
	"context"
	"fmt"
	"time"

	types "github.com/pawhaven/adoption-api/internal/domains/catalog/application/types"
	"github.com/pawhaven/adoption-api/internal/domains/catalog/domain"
	"github.com/pawhaven/adoption-api/internal/domains/catalog/ports"
)

// Service orchestrates the catalog bounded context use cases.
type Service struct {
	repo ports.Repository
	now  func() time.Time
}

// Option customizes the service construction.
type Option func(*Service)

// WithClock overrides the time source used for age-filter cutoffs.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService wires the catalog service with its dependencies.
func NewService(repo ports.Repository, opts ...Option) *Service {
	s := &Service{repo: repo, now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Search applies the catalog filters and pagination and returns one page of
// pets plus the filter-wide total and page count.
func (s *Service) Search(ctx context.Context, input types.SearchInput) (*types.PetPage, error) {
	query, err := s.buildQuery(input)
	if err != nil {
		return nil, err
	}
	page, err := s.repo.Search(ctx, query)
	if err != nil {
		return nil, mapError(err)
	}
	return page, nil
}

// buildQuery validates pagination and compiles the filter inputs into the
// closed clause set. Age bounds become inclusive birth-date cutoffs computed
// against today at day granularity.
func (s *Service) buildQuery(input types.SearchInput) (ports.Query, error) {
	page := types.DefaultPage
	if input.Page != nil {
		page = *input.Page
	}
	pageSize := types.DefaultPageSize
	if input.PageSize != nil {
		pageSize = *input.PageSize
	}
	if page < 1 || pageSize < 1 {
		return ports.Query{}, fmt.Errorf("%w: page=%d pageSize=%d", ErrInvalidPagination, page, pageSize)
	}

	var clauses []ports.Clause
	if input.Species != nil && *input.Species != "" {
		clauses = append(clauses, ports.Clause{Kind: ports.ClauseSpeciesEquals, Text: *input.Species})
	}
	if input.Size != nil && *input.Size != "" {
		clauses = append(clauses, ports.Clause{Kind: ports.ClauseSizeEquals, Text: *input.Size})
	}
	if len(input.PersonalityTags) > 0 {
		clauses = append(clauses, ports.Clause{Kind: ports.ClauseTagIn, Texts: input.PersonalityTags})
	}
	// The default view hides claimed pets. An explicit empty status disables
	// the status filter entirely.
	status := types.DefaultStatus
	if input.Status != nil {
		status = *input.Status
	}
	if status != "" {
		clauses = append(clauses, ports.Clause{Kind: ports.ClauseStatusEquals, Text: status})
	}

	if input.AgeMinYears != nil || input.AgeMaxYears != nil {
		today := domain.TruncateToDay(s.now())
		if input.AgeMinYears != nil {
			if *input.AgeMinYears < 0 {
				return ports.Query{}, fmt.Errorf("%w: ageMin=%d", ErrInvalidInput, *input.AgeMinYears)
			}
			clauses = append(clauses, ports.Clause{Kind: ports.ClauseBornBefore, Day: today.AddDate(-*input.AgeMinYears, 0, 0)})
		}
		if input.AgeMaxYears != nil {
			if *input.AgeMaxYears < 0 {
				return ports.Query{}, fmt.Errorf("%w: ageMax=%d", ErrInvalidInput, *input.AgeMaxYears)
			}
			clauses = append(clauses, ports.Clause{Kind: ports.ClauseBornAfter, Day: today.AddDate(-*input.AgeMaxYears, 0, 0)})
		}
	}

	return ports.Query{Clauses: clauses, Page: page, PageSize: pageSize}, nil
}

// GetByID loads a single pet aggregate.
func (s *Service) GetByID(ctx context.Context, input types.PetIdentifier) (*types.PetProjection, error) {
	result, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, mapError(err)
	}
	return result, nil
}

// Add persists a new pet aggregate.
func (s *Service) Add(ctx context.Context, input types.AddPetInput) (*types.PetProjection, error) {
	pet, err := buildPetFromMutation(input.PetMutationInput)
	if err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, pet)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// Update applies a partial edit: fields absent from the input keep their
// stored values.
func (s *Service) Update(ctx context.Context, input types.UpdatePetInput) (*types.PetProjection, error) {
	existing, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, mapError(err)
	}
	if err := applyPartialMutation(existing.Pet, input.PetMutationInput); err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, existing.Pet)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// Delete removes a pet; the storage layer cascades to adoption and favorite rows.
func (s *Service) Delete(ctx context.Context, input types.PetIdentifier) error {
	if err := s.repo.Delete(ctx, input.ID); err != nil {
		return mapError(err)
	}
	return nil
}

// List exposes all pets for admin use cases.
func (s *Service) List(ctx context.Context) ([]*types.PetProjection, error) {
	result, err := s.repo.List(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	return result, nil
}

func buildPetFromMutation(input types.PetMutationInput) (*domain.Pet, error) {
	if input.Name == nil {
		return nil, domain.ErrEmptyName
	}
	if input.Species == nil {
		return nil, domain.ErrEmptySpecies
	}
	pet, err := domain.NewPet(input.ID, *input.Name, *input.Species)
	if err != nil {
		return nil, err
	}
	if input.Status != nil {
		if err := pet.UpdateStatus(domain.Status(*input.Status)); err != nil {
			return nil, err
		}
	}
	partial := input
	partial.Name = nil
	partial.Species = nil
	partial.Status = nil
	if err := applyPartialMutation(pet, partial); err != nil {
		return nil, err
	}
	return pet, nil
}

func applyPartialMutation(target *domain.Pet, input types.PetMutationInput) error {
	if input.Name != nil {
		if err := target.Rename(*input.Name); err != nil {
			return err
		}
	}
	if input.Species != nil {
		if err := target.SetSpecies(*input.Species); err != nil {
			return err
		}
	}
	if input.Description != nil {
		target.Description = *input.Description
	}
	if input.Breed != nil {
		target.Breed = *input.Breed
	}
	if input.Size != nil {
		target.Size = *input.Size
	}
	if input.Personality != nil {
		target.Personality = *input.Personality
	}
	if input.BirthDate != nil {
		target.SetBirthDate(input.BirthDate)
	}
	if input.Status != nil {
		if err := target.UpdateStatus(domain.Status(*input.Status)); err != nil {
			return err
		}
	}
	if input.PhotoURLs != nil {
		target.ReplacePhotos(*input.PhotoURLs)
	}
	return nil
}

var _ ports.Service = (*Service)(nil)
