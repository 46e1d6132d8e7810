package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	types "github.com/pawhaven/adoption-api/internal/domains/catalog/application/types"
	"github.com/pawhaven/adoption-api/internal/domains/catalog/domain"
	"github.com/pawhaven/adoption-api/internal/domains/catalog/ports"
)

var _ ports.Repository = (*Repository)(nil)

type record struct {
	pet       domain.Pet
	createdAt time.Time
	updatedAt time.Time
}

// Repository provides an in-memory catalog for development and tests.
// Deleting a pet fans out to registered cascade hooks, mirroring the
// foreign-key cascades of the postgres schema.
type Repository struct {
	mu       sync.RWMutex
	records  map[int64]record
	nextID   int64
	now      func() time.Time
	cascades []func(petID int64)
}

// NewRepository constructs an empty in-memory catalog.
func NewRepository() *Repository {
	return &Repository{
		records: map[int64]record{},
		nextID:  1,
		now:     time.Now,
	}
}

// WithClock overrides the time source for deterministic testing.
func (r *Repository) WithClock(now func() time.Time) {
	if now != nil {
		r.now = now
	}
}

// RegisterCascade adds a hook invoked after a pet row is removed. The
// adoption and favorite memory repositories register here at wiring time.
func (r *Repository) RegisterCascade(hook func(petID int64)) {
	if hook != nil {
		r.cascades = append(r.cascades, hook)
	}
}

// Save inserts or updates a pet. A zero ID is assigned the next identifier.
func (r *Repository) Save(_ context.Context, pet *domain.Pet) (*types.PetProjection, error) {
	if pet == nil {
		return nil, ports.ErrNotFound
	}
	if err := pet.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	if pet.ID == 0 {
		pet.ID = r.nextID
	}
	if pet.ID >= r.nextID {
		r.nextID = pet.ID + 1
	}
	rec, exists := r.records[pet.ID]
	if !exists {
		rec = record{createdAt: now}
	}
	rec.pet = clonePet(pet)
	rec.updatedAt = now
	r.records[pet.ID] = rec
	return projectionOf(rec), nil
}

// GetByID fetches a pet by identifier.
func (r *Repository) GetByID(_ context.Context, id int64) (*types.PetProjection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.records[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return projectionOf(rec), nil
}

// Search evaluates every clause against the stored pets, orders by creation
// recency (id descending breaks ties), and slices out the requested page.
func (r *Repository) Search(_ context.Context, query ports.Query) (*types.PetPage, error) {
	r.mu.RLock()
	matches := make([]record, 0, len(r.records))
	for _, rec := range r.records {
		if matchesAll(&rec.pet, query.Clauses) {
			matches = append(matches, rec)
		}
	}
	r.mu.RUnlock()

	sort.Slice(matches, func(i, j int) bool {
		if !matches[i].createdAt.Equal(matches[j].createdAt) {
			return matches[i].createdAt.After(matches[j].createdAt)
		}
		return matches[i].pet.ID > matches[j].pet.ID
	})

	total := int64(len(matches))
	page := &types.PetPage{
		Total: total,
		Pages: ports.PageCount(total, query.PageSize),
	}
	start := query.Offset()
	if start >= len(matches) {
		return page, nil
	}
	end := start + query.PageSize
	if end > len(matches) {
		end = len(matches)
	}
	for _, rec := range matches[start:end] {
		page.Items = append(page.Items, projectionOf(rec))
	}
	return page, nil
}

// Delete removes a pet and fans out to the cascade hooks.
func (r *Repository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	_, ok := r.records[id]
	if ok {
		delete(r.records, id)
	}
	r.mu.Unlock()
	if !ok {
		return ports.ErrNotFound
	}
	for _, hook := range r.cascades {
		hook(id)
	}
	return nil
}

// List returns all pets ordered by creation recency.
func (r *Repository) List(_ context.Context) ([]*types.PetProjection, error) {
	r.mu.RLock()
	records := make([]record, 0, len(r.records))
	for _, rec := range r.records {
		records = append(records, rec)
	}
	r.mu.RUnlock()
	sort.Slice(records, func(i, j int) bool {
		if !records[i].createdAt.Equal(records[j].createdAt) {
			return records[i].createdAt.After(records[j].createdAt)
		}
		return records[i].pet.ID > records[j].pet.ID
	})
	result := make([]*types.PetProjection, 0, len(records))
	for _, rec := range records {
		result = append(result, projectionOf(rec))
	}
	return result, nil
}

// Claim performs the compare-and-swap transition available -> claimed under
// the repository lock, so at most one concurrent caller wins.
func (r *Repository) Claim(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[id]
	if !ok {
		return ports.ErrNotFound
	}
	if err := rec.pet.Claim(); err != nil {
		return err
	}
	rec.updatedAt = r.now()
	r.records[id] = rec
	return nil
}

// Release transitions a pet back to available. Unknown ids are ignored, which
// matches the revert flow where the adoption row is the source of truth.
func (r *Repository) Release(_ context.Context, id int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[id]
	if !ok {
		return
	}
	rec.pet.Release()
	rec.updatedAt = r.now()
	r.records[id] = rec
}

func matchesAll(pet *domain.Pet, clauses []ports.Clause) bool {
	for _, clause := range clauses {
		if !clause.Matches(pet) {
			return false
		}
	}
	return true
}

func projectionOf(rec record) *types.PetProjection {
	pet := clonePet(&rec.pet)
	return types.NewPetProjection(&pet, rec.createdAt, rec.updatedAt)
}

func clonePet(pet *domain.Pet) domain.Pet {
	clone := *pet
	clone.PhotoURLs = append([]string{}, pet.PhotoURLs...)
	if pet.BirthDate != nil {
		birth := *pet.BirthDate
		clone.BirthDate = &birth
	}
	return clone
}
