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

	adopterpostgres "github.com/pawhaven/adoption-api/internal/domains/adopters/adapters/persistence/postgres"
	adopterdomain "github.com/pawhaven/adoption-api/internal/domains/adopters/domain"
	catalogpostgres "github.com/pawhaven/adoption-api/internal/domains/catalog/adapters/persistence/postgres"
	catalogdomain "github.com/pawhaven/adoption-api/internal/domains/catalog/domain"
	favoritepostgres "github.com/pawhaven/adoption-api/internal/domains/favorites/adapters/persistence/postgres"
	"github.com/pawhaven/adoption-api/internal/domains/favorites/domain"
	"github.com/pawhaven/adoption-api/internal/domains/favorites/ports"
	"github.com/pawhaven/adoption-api/internal/platform/migrations"
)

type repos struct {
	pets      *catalogpostgres.Repository
	adopters  *adopterpostgres.Repository
	favorites *favoritepostgres.Repository
}

func setupRepos(t *testing.T) (repos, func()) {
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

	r := repos{
		pets:      catalogpostgres.NewRepository(db),
		adopters:  adopterpostgres.NewRepository(db),
		favorites: favoritepostgres.NewRepository(db),
	}
	require.NoError(t, migrations.Apply(db))

	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		pgContainer.Terminate(ctx)
	}
	return r, cleanup
}

func seedPair(t *testing.T, r repos) (petID, adopterID int64) {
	t.Helper()
	ctx := context.Background()
	pet, err := catalogdomain.NewPet(0, "Mia", "cat")
	require.NoError(t, err)
	petProj, err := r.pets.Save(ctx, pet)
	require.NoError(t, err)

	adopter, err := adopterdomain.NewAdopter(0, "Alex Doe", "alex@example.com", "hash")
	require.NoError(t, err)
	adopterProj, err := r.adopters.Create(ctx, adopter)
	require.NoError(t, err)
	return petProj.Pet.ID, adopterProj.Adopter.ID
}

func TestFavoriteDuplicatePair(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	r, cleanup := setupRepos(t)
	defer cleanup()
	ctx := context.Background()

	petID, adopterID := seedPair(t, r)
	fav, err := domain.NewFavorite(adopterID, petID)
	require.NoError(t, err)
	proj, err := r.favorites.Create(ctx, fav)
	require.NoError(t, err)
	assert.Equal(t, "Mia", proj.Pet.Name)

	dup, err := domain.NewFavorite(adopterID, petID)
	require.NoError(t, err)
	_, err = r.favorites.Create(ctx, dup)
	require.ErrorIs(t, err, ports.ErrDuplicate)
}

func TestFavoritePetDeleteCascades(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	r, cleanup := setupRepos(t)
	defer cleanup()
	ctx := context.Background()

	petID, adopterID := seedPair(t, r)
	fav, err := domain.NewFavorite(adopterID, petID)
	require.NoError(t, err)
	_, err = r.favorites.Create(ctx, fav)
	require.NoError(t, err)

	require.NoError(t, r.pets.Delete(ctx, petID))

	list, err := r.favorites.ListByAdopter(ctx, adopterID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestFavoriteDeleteMissingPair(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	r, cleanup := setupRepos(t)
	defer cleanup()

	petID, adopterID := seedPair(t, r)
	err := r.favorites.Delete(context.Background(), adopterID, petID)
	require.ErrorIs(t, err, ports.ErrNotFound)
}
