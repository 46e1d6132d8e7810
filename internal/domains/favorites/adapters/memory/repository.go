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
	catalogmemory "github.com/pawhaven/adoption-api/internal/domains/catalog/adapters/memory"
	catalogports "github.com/pawhaven/adoption-api/internal/domains/catalog/ports"
	types "github.com/pawhaven/adoption-api/internal/domains/favorites/application/types"
	"github.com/pawhaven/adoption-api/internal/domains/favorites/domain"
	"github.com/pawhaven/adoption-api/internal/domains/favorites/ports"
)

var _ ports.Repository = (*Repository)(nil)

type record struct {
	favorite  domain.Favorite
	createdAt time.Time
}

type pairKey struct {
	adopterID int64
	petID     int64
}

// Repository provides an in-memory favorite store. It registers cascade
// hooks on both parent repositories so parent deletions behave like the
// postgres foreign keys.
type Repository struct {
	mu       sync.Mutex
	records  map[int64]record
	byPair   map[pairKey]int64
	nextID   int64
	now      func() time.Time
	pets     *catalogmemory.Repository
	adopters *adoptermemory.Repository
}

// NewRepository wires the favorite store against its parent repositories.
func NewRepository(pets *catalogmemory.Repository, adopters *adoptermemory.Repository) *Repository {
	r := &Repository{
		records:  map[int64]record{},
		byPair:   map[pairKey]int64{},
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

// Create inserts the pair after checking both parents exist.
func (r *Repository) Create(ctx context.Context, favorite *domain.Favorite) (*types.FavoriteProjection, error) {
	if favorite == nil {
		return nil, ports.ErrNotFound
	}
	if err := favorite.Validate(); err != nil {
		return nil, err
	}
	if _, err := r.adopters.GetByID(ctx, favorite.AdopterID); err != nil {
		if errors.Is(err, adopterports.ErrNotFound) {
			return nil, ports.ErrAdopterNotFound
		}
		return nil, storageErr(err)
	}
	if _, err := r.pets.GetByID(ctx, favorite.PetID); err != nil {
		if errors.Is(err, catalogports.ErrNotFound) {
			return nil, ports.ErrPetNotFound
		}
		return nil, storageErr(err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	key := pairKey{adopterID: favorite.AdopterID, petID: favorite.PetID}
	if _, exists := r.byPair[key]; exists {
		return nil, ports.ErrDuplicate
	}
	favorite.ID = r.nextID
	r.nextID++
	rec := record{favorite: *favorite, createdAt: r.now()}
	r.records[favorite.ID] = rec
	r.byPair[key] = favorite.ID
	return r.projectionOf(ctx, rec), nil
}

// Delete removes the pair.
func (r *Repository) Delete(_ context.Context, adopterID, petID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := pairKey{adopterID: adopterID, petID: petID}
	id, ok := r.byPair[key]
	if !ok {
		return ports.ErrNotFound
	}
	delete(r.byPair, key)
	delete(r.records, id)
	return nil
}

// ListByAdopter returns the adopter's favorites, newest first.
func (r *Repository) ListByAdopter(ctx context.Context, adopterID int64) ([]*types.FavoriteProjection, error) {
	r.mu.Lock()
	matches := make([]record, 0)
	for _, rec := range r.records {
		if rec.favorite.AdopterID == adopterID {
			matches = append(matches, rec)
		}
	}
	r.mu.Unlock()

	sort.Slice(matches, func(i, j int) bool {
		if !matches[i].createdAt.Equal(matches[j].createdAt) {
			return matches[i].createdAt.After(matches[j].createdAt)
		}
		return matches[i].favorite.ID > matches[j].favorite.ID
	})
	result := make([]*types.FavoriteProjection, 0, len(matches))
	for _, rec := range matches {
		result = append(result, r.projectionOf(ctx, rec))
	}
	return result, nil
}

func (r *Repository) onPetDeleted(petID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, rec := range r.records {
		if rec.favorite.PetID == petID {
			delete(r.byPair, pairKey{adopterID: rec.favorite.AdopterID, petID: petID})
			delete(r.records, id)
		}
	}
}

func (r *Repository) onAdopterDeleted(adopterID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, rec := range r.records {
		if rec.favorite.AdopterID == adopterID {
			delete(r.byPair, pairKey{adopterID: adopterID, petID: rec.favorite.PetID})
			delete(r.records, id)
		}
	}
}

func (r *Repository) projectionOf(ctx context.Context, rec record) *types.FavoriteProjection {
	favorite := rec.favorite
	projection := &types.FavoriteProjection{Favorite: &favorite, CreatedAt: rec.createdAt}
	if pet, err := r.pets.GetByID(ctx, favorite.PetID); err == nil {
		projection.Pet = types.PetSummary{
			ID:      pet.Pet.ID,
			Name:    pet.Pet.Name,
			Species: pet.Pet.Species,
			Status:  string(pet.Pet.Status),
		}
	}
	return projection
}

func storageErr(err error) error {
	return fmt.Errorf("%w: %w", ports.ErrStorage, err)
}
