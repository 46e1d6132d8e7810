package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	types "github.com/pawhaven/adoption-api/internal/domains/adopters/application/types"
	"github.com/pawhaven/adoption-api/internal/domains/adopters/domain"
	"github.com/pawhaven/adoption-api/internal/domains/adopters/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists adopters in PostgreSQL using GORM-mapped columns.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&adopterRecord{})
	}
	return repo
}

type adopterRecord struct {
	ID             int64     `gorm:"primaryKey;column:id"`
	Name           string    `gorm:"column:name"`
	Email          string    `gorm:"column:email;type:varchar(255);uniqueIndex"`
	CredentialHash string    `gorm:"column:credential_hash"`
	Phone          string    `gorm:"column:phone;type:varchar(64)"`
	Address        string    `gorm:"column:address"`
	CreatedAt      time.Time `gorm:"column:created_at;index"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`
}

func (adopterRecord) TableName() string { return "adopters" }

// Create inserts a new adopter. The unique index on email surfaces as
// ErrEmailTaken via GORM's translated duplicate-key error.
func (r *Repository) Create(ctx context.Context, adopter *domain.Adopter) (*types.AdopterProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if adopter == nil {
		return nil, errors.New("cannot create nil adopter")
	}
	record := toRecord(adopter)
	record.ID = 0
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ports.ErrEmailTaken
		}
		return nil, storageErr(err)
	}
	adopter.ID = record.ID
	return record.toProjection(), nil
}

// Update rewrites an existing adopter keyed by ID.
func (r *Repository) Update(ctx context.Context, adopter *domain.Adopter) (*types.AdopterProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if adopter == nil {
		return nil, errors.New("cannot update nil adopter")
	}
	record := toRecord(adopter)
	result := r.db.WithContext(ctx).Model(&adopterRecord{}).Where("id = ?", record.ID).Updates(map[string]any{
		"name":            record.Name,
		"email":           record.Email,
		"credential_hash": record.CredentialHash,
		"phone":           record.Phone,
		"address":         record.Address,
		"updated_at":      gorm.Expr("NOW()"),
	})
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return nil, ports.ErrEmailTaken
		}
		return nil, storageErr(result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ports.ErrNotFound
	}
	return r.GetByID(ctx, record.ID)
}

// GetByID fetches an adopter by identifier.
func (r *Repository) GetByID(ctx context.Context, id int64) (*types.AdopterProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record adopterRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, storageErr(err)
	}
	return record.toProjection(), nil
}

// GetByEmail fetches an adopter by its exact email address.
func (r *Repository) GetByEmail(ctx context.Context, email string) (*types.AdopterProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record adopterRecord
	if err := r.db.WithContext(ctx).First(&record, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, storageErr(err)
	}
	return record.toProjection(), nil
}

// Delete removes the adopter inside one transaction: their claimed pets are
// released back to available first, then the row is removed and the schema's
// ON DELETE CASCADE constraints clean up adoption and favorite rows.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		release := tx.Exec(
			`UPDATE pets SET status = ?, updated_at = NOW()
			 WHERE id IN (SELECT pet_id FROM adoptions WHERE adopter_id = ?) AND status = ?`,
			"available", id, "claimed",
		)
		if release.Error != nil {
			return storageErr(release.Error)
		}
		result := tx.Delete(&adopterRecord{}, id)
		if result.Error != nil {
			return storageErr(result.Error)
		}
		if result.RowsAffected == 0 {
			return ports.ErrNotFound
		}
		return nil
	})
}

// List returns all adopters ordered by creation recency.
func (r *Repository) List(ctx context.Context) ([]*types.AdopterProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []adopterRecord
	if err := r.db.WithContext(ctx).Order("created_at DESC, id DESC").Find(&records).Error; err != nil {
		return nil, storageErr(err)
	}
	result := make([]*types.AdopterProjection, 0, len(records))
	for i := range records {
		result = append(result, records[i].toProjection())
	}
	return result, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres adopter repository not configured")
	}
	return nil
}

func storageErr(err error) error {
	return fmt.Errorf("%w: %w", ports.ErrStorage, err)
}

func toRecord(adopter *domain.Adopter) adopterRecord {
	return adopterRecord{
		ID:             adopter.ID,
		Name:           adopter.Name,
		Email:          adopter.Email,
		CredentialHash: adopter.CredentialHash,
		Phone:          adopter.Phone,
		Address:        adopter.Address,
	}
}

func (rec adopterRecord) toProjection() *types.AdopterProjection {
	adopter := &domain.Adopter{
		ID:             rec.ID,
		Name:           rec.Name,
		Email:          rec.Email,
		CredentialHash: rec.CredentialHash,
		Phone:          rec.Phone,
		Address:        rec.Address,
	}
	return types.NewAdopterProjection(adopter, rec.CreatedAt, rec.UpdatedAt)
}
