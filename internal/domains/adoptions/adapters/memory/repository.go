package memory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	adoptermemory "github.com/pawhaven/adoption-api/internal/domains/adopters/adapters/memory"
	adopterports "github.com/pawhaven/adoption-api/internal/domains/adopters/ports"
	types "github.com/pawhaven/adoption-api/internal/domains/adoptions/application/types"
	"github.com/pawhaven/adoption-api/internal/domains/adoptions/domain"
	"github.com/pawhaven/adoption-api/internal/domains/adoptions/ports"
	catalogmemory "github.com/pawhaven/adoption-api/internal/domains/catalog/adapters/memory"
	catalogdomain "github.com/pawhaven/adoption-api/internal/domains/catalog/domain"
	catalogports "github.com/pawhaven/adoption-api/internal/domains/catalog/ports"
)

var _ ports.Repository = (*Repository)(nil)

type record struct {
	adoption  domain.Adoption
	createdAt time.Time
	updatedAt time.Time
}

// Repository is the in-memory consistency manager for adoptions. It claims
// and releases pets through the catalog repository's compare-and-swap
// operations and registers cascade hooks on both parent repositories so
// parent deletions behave like the postgres foreign keys.
type Repository struct {
	mu       sync.Mutex
	records  map[int64]record
	nextID   int64
	now      func() time.Time
	pets     *catalogmemory.Repository
	adopters *adoptermemory.Repository
}

// NewRepository wires the adoption store against its parent repositories.
func NewRepository(pets *catalogmemory.Repository, adopters *adoptermemory.Repository) *Repository {
	r := &Repository{
		records:  map[int64]record{},
		nextID:   1,
		now:      time.Now,
		pets:     pets,
		adopters: adopters,
	}
	pets.RegisterCascade(r.onPetDeleted)
	adopters.RegisterCascade(r.onAdopterDeleted)
	return r
}

// WithClock overrides the time source for deterministic testing.
func (r *Repository) WithClock(now func() time.Time) {
	if now != nil {
		r.now = now
	}
}

// Create claims the pet via the catalog's compare-and-swap, verifies the
// adopter, and records the adoption. The pet is resolved first: a missing or
// already-claimed pet reports before a missing adopter. The claim itself
// decides concurrent races: only the winner reaches the insert.
func (r *Repository) Create(ctx context.Context, adoption *domain.Adoption) (*types.AdoptionProjection, error) {
	if adoption == nil {
		return nil, ports.ErrNotFound
	}
	if err := adoption.Validate(); err != nil {
		return nil, err
	}
	if err := r.pets.Claim(ctx, adoption.PetID); err != nil {
		switch {
		case errors.Is(err, catalogports.ErrNotFound):
			return nil, ports.ErrPetNotFound
		case errors.Is(err, catalogdomain.ErrAlreadyClaimed):
			return nil, ports.ErrPetClaimed
		default:
			return nil, storageErr(err)
		}
	}
	if _, err := r.adopters.GetByID(ctx, adoption.AdopterID); err != nil {
		r.pets.Release(ctx, adoption.PetID)
		if errors.Is(err, adopterports.ErrNotFound) {
			return nil, ports.ErrAdopterNotFound
		}
		return nil, storageErr(err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	adoption.ID = r.nextID
	r.nextID++
	if adoption.AdoptedAt.IsZero() {
		adoption.AdoptedAt = now
	}
	rec := record{adoption: *adoption, createdAt: now, updatedAt: now}
	r.records[adoption.ID] = rec
	return r.projectionOf(ctx, rec), nil
}

// GetByID fetches an adoption with its pet and adopter summaries.
func (r *Repository) GetByID(ctx context.Context, id int64) (*types.AdoptionProjection, error) {
	r.mu.Lock()
	rec, ok := r.records[id]
	r.mu.Unlock()
	if !ok {
		return nil, ports.ErrNotFound
	}
	return r.projectionOf(ctx, rec), nil
}

// List returns adoptions matching the filter ordered by creation recency.
func (r *Repository) List(ctx context.Context, filter types.ListFilter) ([]*types.AdoptionProjection, error) {
	r.mu.Lock()
	matches := make([]record, 0, len(r.records))
	for _, rec := range r.records {
		if filter.AdopterID != nil && rec.adoption.AdopterID != *filter.AdopterID {
			continue
		}
		if filter.PetID != nil && rec.adoption.PetID != *filter.PetID {
			continue
		}
		matches = append(matches, rec)
	}
	r.mu.Unlock()

	sort.Slice(matches, func(i, j int) bool {
		if !matches[i].createdAt.Equal(matches[j].createdAt) {
			return matches[i].createdAt.After(matches[j].createdAt)
		}
		return matches[i].adoption.ID > matches[j].adoption.ID
	})
	result := make([]*types.AdoptionProjection, 0, len(matches))
	for _, rec := range matches {
		result = append(result, r.projectionOf(ctx, rec))
	}
	return result, nil
}

// UpdateNotes rewrites the notes field only.
func (r *Repository) UpdateNotes(ctx context.Context, id int64, notes string) (*types.AdoptionProjection, error) {
	r.mu.Lock()
	rec, ok := r.records[id]
	if !ok {
		r.mu.Unlock()
		return nil, ports.ErrNotFound
	}
	rec.adoption.SetNotes(notes)
	rec.updatedAt = r.now()
	r.records[id] = rec
	r.mu.Unlock()
	return r.projectionOf(ctx, rec), nil
}

// Delete reverts the adoption and releases its pet back to available.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	rec, ok := r.records[id]
	if ok {
		delete(r.records, id)
	}
	r.mu.Unlock()
	if !ok {
		return ports.ErrNotFound
	}
	r.pets.Release(ctx, rec.adoption.PetID)
	return nil
}

// onPetDeleted drops adoptions referencing a removed pet. The pet is gone,
// so there is nothing to release.
func (r *Repository) onPetDeleted(petID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, rec := range r.records {
		if rec.adoption.PetID == petID {
			delete(r.records, id)
		}
	}
}

// onAdopterDeleted reverts every adoption held by a removed adopter,
// releasing the claimed pets first.
func (r *Repository) onAdopterDeleted(adopterID int64) {
	r.mu.Lock()
	var petIDs []int64
	for id, rec := range r.records {
		if rec.adoption.AdopterID == adopterID {
			petIDs = append(petIDs, rec.adoption.PetID)
			delete(r.records, id)
		}
	}
	r.mu.Unlock()
	for _, petID := range petIDs {
		r.pets.Release(context.Background(), petID)
	}
}

func (r *Repository) projectionOf(ctx context.Context, rec record) *types.AdoptionProjection {
	adoption := rec.adoption
	projection := &types.AdoptionProjection{
		Adoption: &adoption,
		Metadata: types.AdoptionMetadata{CreatedAt: rec.createdAt, UpdatedAt: rec.updatedAt},
	}
	if pet, err := r.pets.GetByID(ctx, adoption.PetID); err == nil {
		projection.Pet = types.PetSummary{
			ID:      pet.Pet.ID,
			Name:    pet.Pet.Name,
			Species: pet.Pet.Species,
			Status:  string(pet.Pet.Status),
		}
	}
	if adopter, err := r.adopters.GetByID(ctx, adoption.AdopterID); err == nil {
		projection.Adopter = types.AdopterSummary{
			ID:    adopter.Adopter.ID,
			Name:  adopter.Adopter.Name,
			Email: adopter.Adopter.Email,
		}
	}
	return projection
}

func storageErr(err error) error {
	return fmt.Errorf("%w: %w", ports.ErrStorage, err)
}
