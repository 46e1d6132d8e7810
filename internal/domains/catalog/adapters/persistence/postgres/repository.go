package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/pawhaven/adoption-api/internal/domains/catalog/application/types"
	"github.com/pawhaven/adoption-api/internal/domains/catalog/domain"
	"github.com/pawhaven/adoption-api/internal/domains/catalog/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists pets in PostgreSQL using GORM-mapped columns.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&petRecord{})
	}
	return repo
}

type petRecord struct {
	ID          int64          `gorm:"primaryKey;column:id"`
	Name        string         `gorm:"column:name"`
	Description string         `gorm:"column:description"`
	Species     string         `gorm:"column:species;type:varchar(64);index"`
	Breed       string         `gorm:"column:breed"`
	Size        string         `gorm:"column:size;type:varchar(32)"`
	Personality string         `gorm:"column:personality;type:varchar(64)"`
	BirthDate   *time.Time     `gorm:"column:birth_date;type:date"`
	Status      string         `gorm:"column:status;type:varchar(32);index"`
	PhotoURLs   pq.StringArray `gorm:"column:photo_urls;type:text[]"`
	CreatedAt   time.Time      `gorm:"column:created_at;index"`
	UpdatedAt   time.Time      `gorm:"column:updated_at"`
}

func (petRecord) TableName() string { return "pets" }

// Save inserts or updates a pet aggregate. A zero ID is assigned by the
// database sequence.
func (r *Repository) Save(ctx context.Context, pet *domain.Pet) (*types.PetProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if pet == nil {
		return nil, errors.New("cannot save nil pet")
	}
	record := toRecord(pet)
	tx := r.db.WithContext(ctx)
	if record.ID != 0 {
		tx = tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"name":        record.Name,
				"description": record.Description,
				"species":     record.Species,
				"breed":       record.Breed,
				"size":        record.Size,
				"personality": record.Personality,
				"birth_date":  record.BirthDate,
				"status":      record.Status,
				"photo_urls":  record.PhotoURLs,
				"updated_at":  gorm.Expr("NOW()"),
			}),
		})
	}
	if err := tx.Create(&record).Error; err != nil {
		return nil, storageErr(err)
	}
	pet.ID = record.ID
	return r.GetByID(ctx, record.ID)
}

// GetByID fetches a pet by identifier.
func (r *Repository) GetByID(ctx context.Context, id int64) (*types.PetProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record petRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, storageErr(err)
	}
	return record.toProjection(), nil
}

// Search compiles the clause list into a WHERE chain, counts the full
// filtered set, and fetches the requested page ordered by creation recency.
func (r *Repository) Search(ctx context.Context, query ports.Query) (*types.PetPage, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	// A fresh session lets the same filtered chain serve the count and the
	// page fetch.
	filtered := applyClauses(r.db.WithContext(ctx).Model(&petRecord{}), query.Clauses).
		Session(&gorm.Session{})

	var total int64
	if err := filtered.Count(&total).Error; err != nil {
		return nil, storageErr(err)
	}

	var records []petRecord
	if err := filtered.
		Order("created_at DESC, id DESC").
		Limit(query.PageSize).
		Offset(query.Offset()).
		Find(&records).Error; err != nil {
		return nil, storageErr(err)
	}

	page := &types.PetPage{
		Total: total,
		Pages: ports.PageCount(total, query.PageSize),
	}
	for i := range records {
		page.Items = append(page.Items, records[i].toProjection())
	}
	return page, nil
}

// Delete removes a pet; the adoption and favorite rows referencing it are
// removed by the schema's ON DELETE CASCADE constraints.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&petRecord{}, id)
	if result.Error != nil {
		return storageErr(result.Error)
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

// List returns all pets ordered by creation recency.
func (r *Repository) List(ctx context.Context) ([]*types.PetProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []petRecord
	if err := r.db.WithContext(ctx).Order("created_at DESC, id DESC").Find(&records).Error; err != nil {
		return nil, storageErr(err)
	}
	result := make([]*types.PetProjection, 0, len(records))
	for i := range records {
		result = append(result, records[i].toProjection())
	}
	return result, nil
}

func applyClauses(tx *gorm.DB, clauses []ports.Clause) *gorm.DB {
	for _, c := range clauses {
		switch c.Kind {
		case ports.ClauseSpeciesEquals:
			tx = tx.Where("species = ?", c.Text)
		case ports.ClauseSizeEquals:
			tx = tx.Where("size = ?", c.Text)
		case ports.ClauseTagIn:
			tx = tx.Where("personality IN ?", c.Texts)
		case ports.ClauseStatusEquals:
			tx = tx.Where("status = ?", c.Text)
		case ports.ClauseBornBefore:
			tx = tx.Where("birth_date <= ?", c.Day)
		case ports.ClauseBornAfter:
			tx = tx.Where("birth_date >= ?", c.Day)
		}
	}
	return tx
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres pet repository not configured")
	}
	return nil
}

func storageErr(err error) error {
	return fmt.Errorf("%w: %w", ports.ErrStorage, err)
}

func toRecord(pet *domain.Pet) petRecord {
	return petRecord{
		ID:          pet.ID,
		Name:        pet.Name,
		Description: pet.Description,
		Species:     pet.Species,
		Breed:       pet.Breed,
		Size:        pet.Size,
		Personality: pet.Personality,
		BirthDate:   pet.BirthDate,
		Status:      string(pet.Status),
		PhotoURLs:   append(pq.StringArray{}, pet.PhotoURLs...),
	}
}

func (rec petRecord) toProjection() *types.PetProjection {
	pet := &domain.Pet{
		ID:          rec.ID,
		Name:        rec.Name,
		Description: rec.Description,
		Species:     rec.Species,
		Breed:       rec.Breed,
		Size:        rec.Size,
		Personality: rec.Personality,
		BirthDate:   rec.BirthDate,
		Status:      domain.Status(rec.Status),
		PhotoURLs:   append([]string{}, rec.PhotoURLs...),
	}
	return types.NewPetProjection(pet, rec.CreatedAt, rec.UpdatedAt)
}
