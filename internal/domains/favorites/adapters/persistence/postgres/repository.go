package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	types "github.com/pawhaven/adoption-api/internal/domains/favorites/application/types"
	"github.com/pawhaven/adoption-api/internal/domains/favorites/domain"
	"github.com/pawhaven/adoption-api/internal/domains/favorites/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists favorites in PostgreSQL. Uniqueness of the
// (adopter, pet) pair is enforced by a composite unique index.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&favoriteRecord{})
	}
	return repo
}

type favoriteRecord struct {
	ID        int64     `gorm:"primaryKey;column:id"`
	AdopterID int64     `gorm:"column:adopter_id;uniqueIndex:idx_favorites_pair"`
	PetID     int64     `gorm:"column:pet_id;uniqueIndex:idx_favorites_pair"`
	CreatedAt time.Time `gorm:"column:created_at;index"`

	// Populated by the joined select only; never written or migrated.
	PetName    string `gorm:"->;-:migration"`
	PetSpecies string `gorm:"->;-:migration"`
	PetStatus  string `gorm:"->;-:migration"`
}

func (favoriteRecord) TableName() string { return "favorites" }

// Create inserts the pair. The composite unique index surfaces as
// ErrDuplicate via GORM's translated duplicate-key error; the foreign keys
// surface missing parents before the insert.
func (r *Repository) Create(ctx context.Context, favorite *domain.Favorite) (*types.FavoriteProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if favorite == nil {
		return nil, errors.New("cannot create nil favorite")
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var adopterCount int64
		if err := tx.Table("adopters").Where("id = ?", favorite.AdopterID).Count(&adopterCount).Error; err != nil {
			return storageErr(err)
		}
		if adopterCount == 0 {
			return ports.ErrAdopterNotFound
		}
		var petCount int64
		if err := tx.Table("pets").Where("id = ?", favorite.PetID).Count(&petCount).Error; err != nil {
			return storageErr(err)
		}
		if petCount == 0 {
			return ports.ErrPetNotFound
		}
		record := favoriteRecord{AdopterID: favorite.AdopterID, PetID: favorite.PetID}
		if err := tx.Create(&record).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ports.ErrDuplicate
			}
			return storageErr(err)
		}
		favorite.ID = record.ID
		return nil
	})
	if err != nil {
		return nil, err
	}
	projections, err := r.fetch(ctx, "favorites.id = ?", favorite.ID)
	if err != nil {
		return nil, err
	}
	if len(projections) == 0 {
		return nil, ports.ErrNotFound
	}
	return projections[0], nil
}

// Delete removes the pair.
func (r *Repository) Delete(ctx context.Context, adopterID, petID int64) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).
		Where("adopter_id = ? AND pet_id = ?", adopterID, petID).
		Delete(&favoriteRecord{})
	if result.Error != nil {
		return storageErr(result.Error)
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

// ListByAdopter returns the adopter's favorites, newest first, each row
// joined with its pet summary.
func (r *Repository) ListByAdopter(ctx context.Context, adopterID int64) ([]*types.FavoriteProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	return r.fetch(ctx, "favorites.adopter_id = ?", adopterID)
}

func (r *Repository) fetch(ctx context.Context, condition string, args ...any) ([]*types.FavoriteProjection, error) {
	var records []favoriteRecord
	err := r.db.WithContext(ctx).Table("favorites").
		Select(`favorites.*, pets.name AS pet_name, pets.species AS pet_species, pets.status AS pet_status`).
		Joins("LEFT JOIN pets ON pets.id = favorites.pet_id").
		Where(condition, args...).
		Order("favorites.created_at DESC, favorites.id DESC").
		Find(&records).Error
	if err != nil {
		return nil, storageErr(err)
	}
	result := make([]*types.FavoriteProjection, 0, len(records))
	for i := range records {
		result = append(result, records[i].toProjection())
	}
	return result, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres favorite repository not configured")
	}
	return nil
}

func storageErr(err error) error {
	return fmt.Errorf("%w: %w", ports.ErrStorage, err)
}

func (rec favoriteRecord) toProjection() *types.FavoriteProjection {
	return &types.FavoriteProjection{
		Favorite: &domain.Favorite{
			ID:        rec.ID,
			AdopterID: rec.AdopterID,
			PetID:     rec.PetID,
		},
		Pet: types.PetSummary{
			ID:      rec.PetID,
			Name:    rec.PetName,
			Species: rec.PetSpecies,
			Status:  rec.PetStatus,
		},
		CreatedAt: rec.CreatedAt,
	}
}
