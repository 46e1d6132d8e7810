package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	types "github.com/pawhaven/adoption-api/internal/domains/adopters/application/types"
	"github.com/pawhaven/adoption-api/internal/domains/adopters/domain"
	"github.com/pawhaven/adoption-api/internal/domains/adopters/ports"
)

var _ ports.Repository = (*Repository)(nil)

type record struct {
	adopter   domain.Adopter
	createdAt time.Time
	updatedAt time.Time
}

// Repository provides an in-memory adopter store for development and tests.
// Deleting an adopter fans out to registered cascade hooks, mirroring the
// pet-release and foreign-key cascades of the postgres schema.
type Repository struct {
	mu       sync.RWMutex
	records  map[int64]record
	byEmail  map[string]int64
	nextID   int64
	now      func() time.Time
	cascades []func(adopterID int64)
}

// NewRepository constructs an empty in-memory adopter store.
func NewRepository() *Repository {
	return &Repository{
		records: map[int64]record{},
		byEmail: map[string]int64{},
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

// RegisterCascade adds a hook invoked after an adopter row is removed. The
// adoption and favorite memory repositories register here at wiring time.
func (r *Repository) RegisterCascade(hook func(adopterID int64)) {
	if hook != nil {
		r.cascades = append(r.cascades, hook)
	}
}

// Create inserts a new adopter, enforcing the unique email constraint.
func (r *Repository) Create(_ context.Context, adopter *domain.Adopter) (*types.AdopterProjection, error) {
	if adopter == nil {
		return nil, ports.ErrNotFound
	}
	if err := adopter.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byEmail[adopter.Email]; taken {
		return nil, ports.ErrEmailTaken
	}
	now := r.now()
	if adopter.ID == 0 {
		adopter.ID = r.nextID
	}
	if adopter.ID >= r.nextID {
		r.nextID = adopter.ID + 1
	}
	rec := record{adopter: *adopter, createdAt: now, updatedAt: now}
	r.records[adopter.ID] = rec
	r.byEmail[adopter.Email] = adopter.ID
	return projectionOf(rec), nil
}

// Update rewrites an existing adopter, keeping the email index consistent.
func (r *Repository) Update(_ context.Context, adopter *domain.Adopter) (*types.AdopterProjection, error) {
	if adopter == nil {
		return nil, ports.ErrNotFound
	}
	if err := adopter.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[adopter.ID]
	if !ok {
		return nil, ports.ErrNotFound
	}
	if owner, taken := r.byEmail[adopter.Email]; taken && owner != adopter.ID {
		return nil, ports.ErrEmailTaken
	}
	if rec.adopter.Email != adopter.Email {
		delete(r.byEmail, rec.adopter.Email)
		r.byEmail[adopter.Email] = adopter.ID
	}
	rec.adopter = *adopter
	rec.updatedAt = r.now()
	r.records[adopter.ID] = rec
	return projectionOf(rec), nil
}

// GetByID fetches an adopter by identifier.
func (r *Repository) GetByID(_ context.Context, id int64) (*types.AdopterProjection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.records[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return projectionOf(rec), nil
}

// GetByEmail fetches an adopter by its exact email address.
func (r *Repository) GetByEmail(_ context.Context, email string) (*types.AdopterProjection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byEmail[email]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return projectionOf(r.records[id]), nil
}

// Delete removes an adopter and fans out to the cascade hooks.
func (r *Repository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	rec, ok := r.records[id]
	if ok {
		delete(r.records, id)
		delete(r.byEmail, rec.adopter.Email)
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

// List returns all adopters ordered by creation recency.
func (r *Repository) List(_ context.Context) ([]*types.AdopterProjection, error) {
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
		return records[i].adopter.ID > records[j].adopter.ID
	})
	result := make([]*types.AdopterProjection, 0, len(records))
	for _, rec := range records {
		result = append(result, projectionOf(rec))
	}
	return result, nil
}

func projectionOf(rec record) *types.AdopterProjection {
	adopter := rec.adopter
	return types.NewAdopterProjection(&adopter, rec.createdAt, rec.updatedAt)
}
