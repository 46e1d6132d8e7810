package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	adoptermemory "github.com/pawhaven/adoption-api/internal/domains/adopters/adapters/memory"
	adopterdomain "github.com/pawhaven/adoption-api/internal/domains/adopters/domain"
	catalogmemory "github.com/pawhaven/adoption-api/internal/domains/catalog/adapters/memory"
	catalogdomain "github.com/pawhaven/adoption-api/internal/domains/catalog/domain"
	"github.com/pawhaven/adoption-api/internal/domains/favorites/domain"
)

func setup(t *testing.T) (*catalogmemory.Repository, *adoptermemory.Repository, *Repository) {
	t.Helper()
	pets := catalogmemory.NewRepository()
	adopters := adoptermemory.NewRepository()
	return pets, adopters, NewRepository(pets, adopters)
}

func savePet(t *testing.T, pets *catalogmemory.Repository, name string) int64 {
	t.Helper()
	pet, err := catalogdomain.NewPet(0, name, "cat")
	require.NoError(t, err)
	proj, err := pets.Save(context.Background(), pet)
	require.NoError(t, err)
	return proj.Pet.ID
}

func saveAdopter(t *testing.T, adopters *adoptermemory.Repository, email string) int64 {
	t.Helper()
	adopter, err := adopterdomain.NewAdopter(0, "Alex Doe", email, "hash")
	require.NoError(t, err)
	proj, err := adopters.Create(context.Background(), adopter)
	require.NoError(t, err)
	return proj.Adopter.ID
}

func favorite(t *testing.T, repo *Repository, adopterID, petID int64) {
	t.Helper()
	fav, err := domain.NewFavorite(adopterID, petID)
	require.NoError(t, err)
	_, err = repo.Create(context.Background(), fav)
	require.NoError(t, err)
}

func TestPetDeleteCascadesToFavorites(t *testing.T) {
	pets, adopters, repo := setup(t)
	petID := savePet(t, pets, "Mia")
	adopterID := saveAdopter(t, adopters, "alex@example.com")
	favorite(t, repo, adopterID, petID)

	require.NoError(t, pets.Delete(context.Background(), petID))

	list, err := repo.ListByAdopter(context.Background(), adopterID)
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestAdopterDeleteCascadesToFavorites(t *testing.T) {
	pets, adopters, repo := setup(t)
	petID := savePet(t, pets, "Mia")
	alex := saveAdopter(t, adopters, "alex@example.com")
	sam := saveAdopter(t, adopters, "sam@example.com")
	favorite(t, repo, alex, petID)
	favorite(t, repo, sam, petID)

	require.NoError(t, adopters.Delete(context.Background(), alex))

	alexList, err := repo.ListByAdopter(context.Background(), alex)
	require.NoError(t, err)
	require.Empty(t, alexList)

	samList, err := repo.ListByAdopter(context.Background(), sam)
	require.NoError(t, err)
	require.Len(t, samList, 1)
}

func TestDeletePairReleasesSlotForRefavoriting(t *testing.T) {
	pets, adopters, repo := setup(t)
	petID := savePet(t, pets, "Mia")
	adopterID := saveAdopter(t, adopters, "alex@example.com")
	favorite(t, repo, adopterID, petID)

	require.NoError(t, repo.Delete(context.Background(), adopterID, petID))
	favorite(t, repo, adopterID, petID)

	list, err := repo.ListByAdopter(context.Background(), adopterID)
	require.NoError(t, err)
	require.Len(t, list, 1)
}
