//go:build integration
// +build integration

package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	catalogpostgres "github.com/pawhaven/adoption-api/internal/domains/catalog/adapters/persistence/postgres"
	"github.com/pawhaven/adoption-api/internal/domains/catalog/domain"
	"github.com/pawhaven/adoption-api/internal/domains/catalog/ports"
)

func setupPostgresContainer(t *testing.T) (*gorm.DB, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcpostgres.WithDatabase("adoption_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		pgContainer.Terminate(ctx)
	}
	return db, cleanup
}

func TestPostgresRepository_SaveAndGetByID(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := catalogpostgres.NewRepository(db)
	ctx := context.Background()

	pet, err := domain.NewPet(0, "Buddy", "dog")
	require.NoError(t, err)
	pet.Size = "large"
	pet.Personality = "friendly"
	born := time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC)
	pet.SetBirthDate(&born)
	pet.ReplacePhotos([]string{"http://example.com/buddy.jpg"})

	projection, err := repo.Save(ctx, pet)
	require.NoError(t, err)
	assert.NotZero(t, projection.Pet.ID)
	assert.False(t, projection.Metadata.CreatedAt.IsZero())

	retrieved, err := repo.GetByID(ctx, projection.Pet.ID)
	require.NoError(t, err)
	assert.Equal(t, "Buddy", retrieved.Pet.Name)
	assert.Equal(t, domain.StatusAvailable, retrieved.Pet.Status)
	assert.Equal(t, []string{"http://example.com/buddy.jpg"}, retrieved.Pet.PhotoURLs)
	require.NotNil(t, retrieved.Pet.BirthDate)
	assert.Equal(t, born.Format("2006-01-02"), retrieved.Pet.BirthDate.Format("2006-01-02"))
}

func TestPostgresRepository_SearchClauses(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := catalogpostgres.NewRepository(db)
	ctx := context.Background()

	save := func(name, species, size, personality string, born time.Time, claimed bool) {
		pet, err := domain.NewPet(0, name, species)
		require.NoError(t, err)
		pet.Size = size
		pet.Personality = personality
		pet.SetBirthDate(&born)
		if claimed {
			require.NoError(t, pet.Claim())
		}
		_, err = repo.Save(ctx, pet)
		require.NoError(t, err)
	}

	save("Buddy", "dog", "large", "calm", time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), false)
	save("Mia", "cat", "small", "calm", time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), false)
	save("Rex", "dog", "large", "energetic", time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC), true)

	query := ports.Query{
		Clauses: []ports.Clause{
			{Kind: ports.ClauseSpeciesEquals, Text: "dog"},
			{Kind: ports.ClauseStatusEquals, Text: "available"},
		},
		Page:     1,
		PageSize: 10,
	}
	page, err := repo.Search(ctx, query)
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)
	assert.Equal(t, "Buddy", page.Items[0].Pet.Name)

	query = ports.Query{
		Clauses: []ports.Clause{
			{Kind: ports.ClauseTagIn, Texts: []string{"calm", "gentle"}},
		},
		Page:     1,
		PageSize: 10,
	}
	page, err = repo.Search(ctx, query)
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)

	cutoff := time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC)
	query = ports.Query{
		Clauses:  []ports.Clause{{Kind: ports.ClauseBornBefore, Day: cutoff}},
		Page:     1,
		PageSize: 10,
	}
	page, err = repo.Search(ctx, query)
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)
}

func TestPostgresRepository_DeleteMissing(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := catalogpostgres.NewRepository(db)
	err := repo.Delete(context.Background(), 12345)
	require.ErrorIs(t, err, ports.ErrNotFound)
}
