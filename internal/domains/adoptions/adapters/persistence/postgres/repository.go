package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	types "github.com/pawhaven/adoption-api/internal/domains/adoptions/application/types"
	"github.com/pawhaven/adoption-api/internal/domains/adoptions/domain"
	"github.com/pawhaven/adoption-api/internal/domains/adoptions/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is the PostgreSQL consistency manager for adoptions. Claim and
// revert each run inside a single transaction so the adoption row and the
// pet's status never drift apart.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&adoptionRecord{})
	}
	return repo
}

type adoptionRecord struct {
	ID        int64     `gorm:"primaryKey;column:id"`
	PetID     int64     `gorm:"column:pet_id;index"`
	AdopterID int64     `gorm:"column:adopter_id;index"`
	Notes     string    `gorm:"column:notes"`
	AdoptedAt time.Time `gorm:"column:adopted_at"`
	CreatedAt time.Time `gorm:"column:created_at;index"`
	UpdatedAt time.Time `gorm:"column:updated_at"`

	// Populated by the joined select only; never written or migrated.
	PetName      string `gorm:"->;-:migration"`
	PetSpecies   string `gorm:"->;-:migration"`
	PetStatus    string `gorm:"->;-:migration"`
	AdopterName  string `gorm:"->;-:migration"`
	AdopterEmail string `gorm:"->;-:migration"`
}

func (adoptionRecord) TableName() string { return "adoptions" }

// Create claims the pet and inserts the adoption in one transaction. The
// claim is a compare-and-swap UPDATE on the pet's status, so concurrent
// requests for the same pet leave exactly one winner.
func (r *Repository) Create(ctx context.Context, adoption *domain.Adoption) (*types.AdoptionProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if adoption == nil {
		return nil, errors.New("cannot create nil adoption")
	}
	record := adoptionRecord{
		PetID:     adoption.PetID,
		AdopterID: adoption.AdopterID,
		Notes:     adoption.Notes,
		AdoptedAt: adoption.AdoptedAt,
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// The pet is resolved first: a missing or already-claimed pet
		// reports before a missing adopter.
		claim := tx.Exec(
			`UPDATE pets SET status = ?, updated_at = NOW() WHERE id = ? AND status = ?`,
			"claimed", record.PetID, "available",
		)
		if claim.Error != nil {
			return storageErr(claim.Error)
		}
		if claim.RowsAffected == 0 {
			var petCount int64
			if err := tx.Table("pets").Where("id = ?", record.PetID).Count(&petCount).Error; err != nil {
				return storageErr(err)
			}
			if petCount == 0 {
				return ports.ErrPetNotFound
			}
			return ports.ErrPetClaimed
		}

		var adopterCount int64
		if err := tx.Table("adopters").Where("id = ?", record.AdopterID).Count(&adopterCount).Error; err != nil {
			return storageErr(err)
		}
		if adopterCount == 0 {
			// Rolling back releases the claim.
			return ports.ErrAdopterNotFound
		}

		if record.AdoptedAt.IsZero() {
			record.AdoptedAt = time.Now().UTC()
		}
		if err := tx.Create(&record).Error; err != nil {
			return storageErr(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	adoption.ID = record.ID
	adoption.AdoptedAt = record.AdoptedAt
	return r.GetByID(ctx, record.ID)
}

// GetByID fetches an adoption joined with its pet and adopter summaries.
func (r *Repository) GetByID(ctx context.Context, id int64) (*types.AdoptionProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record adoptionRecord
	if err := r.joined(ctx).Where("adoptions.id = ?", id).Take(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, storageErr(err)
	}
	return record.toProjection(), nil
}

// List returns adoptions matching the filter ordered by creation recency,
// each row joined with its pet and adopter summaries.
func (r *Repository) List(ctx context.Context, filter types.ListFilter) ([]*types.AdoptionProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	tx := r.joined(ctx)
	if filter.AdopterID != nil {
		tx = tx.Where("adoptions.adopter_id = ?", *filter.AdopterID)
	}
	if filter.PetID != nil {
		tx = tx.Where("adoptions.pet_id = ?", *filter.PetID)
	}
	var records []adoptionRecord
	if err := tx.Order("adoptions.created_at DESC, adoptions.id DESC").Find(&records).Error; err != nil {
		return nil, storageErr(err)
	}
	result := make([]*types.AdoptionProjection, 0, len(records))
	for i := range records {
		result = append(result, records[i].toProjection())
	}
	return result, nil
}

// UpdateNotes rewrites the notes field only.
func (r *Repository) UpdateNotes(ctx context.Context, id int64, notes string) (*types.AdoptionProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	result := r.db.WithContext(ctx).Model(&adoptionRecord{}).Where("id = ?", id).Updates(map[string]any{
		"notes":      notes,
		"updated_at": gorm.Expr("NOW()"),
	})
	if result.Error != nil {
		return nil, storageErr(result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ports.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

// Delete reverts the adoption and releases its pet in one transaction.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var record adoptionRecord
		if err := tx.Take(&record, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ports.ErrNotFound
			}
			return storageErr(err)
		}
		if err := tx.Delete(&adoptionRecord{}, id).Error; err != nil {
			return storageErr(err)
		}
		release := tx.Exec(
			`UPDATE pets SET status = ?, updated_at = NOW() WHERE id = ?`,
			"available", record.PetID,
		)
		if release.Error != nil {
			return storageErr(release.Error)
		}
		return nil
	})
}

func (r *Repository) joined(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Table("adoptions").
		Select(`adoptions.*,
			pets.name AS pet_name, pets.species AS pet_species, pets.status AS pet_status,
			adopters.name AS adopter_name, adopters.email AS adopter_email`).
		Joins("LEFT JOIN pets ON pets.id = adoptions.pet_id").
		Joins("LEFT JOIN adopters ON adopters.id = adoptions.adopter_id")
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres adoption repository not configured")
	}
	return nil
}

func storageErr(err error) error {
	return fmt.Errorf("%w: %w", ports.ErrStorage, err)
}

func (rec adoptionRecord) toProjection() *types.AdoptionProjection {
	return &types.AdoptionProjection{
		Adoption: &domain.Adoption{
			ID:        rec.ID,
			PetID:     rec.PetID,
			AdopterID: rec.AdopterID,
			Notes:     rec.Notes,
			AdoptedAt: rec.AdoptedAt,
		},
		Pet: types.PetSummary{
			ID:      rec.PetID,
			Name:    rec.PetName,
			Species: rec.PetSpecies,
			Status:  rec.PetStatus,
		},
		Adopter: types.AdopterSummary{
			ID:    rec.AdopterID,
			Name:  rec.AdopterName,
			Email: rec.AdopterEmail,
		},
		Metadata: types.AdoptionMetadata{CreatedAt: rec.CreatedAt, UpdatedAt: rec.UpdatedAt},
	}
}
