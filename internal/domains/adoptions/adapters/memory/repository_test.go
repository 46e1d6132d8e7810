package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	adoptermemory "github.com/pawhaven/adoption-api/internal/domains/adopters/adapters/memory"
	adopterdomain "github.com/pawhaven/adoption-api/internal/domains/adopters/domain"
	"github.com/pawhaven/adoption-api/internal/domains/adoptions/domain"
	"github.com/pawhaven/adoption-api/internal/domains/adoptions/ports"
	catalogmemory "github.com/pawhaven/adoption-api/internal/domains/catalog/adapters/memory"
	catalogdomain "github.com/pawhaven/adoption-api/internal/domains/catalog/domain"
)

func setup(t *testing.T) (*catalogmemory.Repository, *adoptermemory.Repository, *Repository) {
	t.Helper()
	pets := catalogmemory.NewRepository()
	adopters := adoptermemory.NewRepository()
	return pets, adopters, NewRepository(pets, adopters)
}

func savePet(t *testing.T, pets *catalogmemory.Repository, name string) int64 {
	t.Helper()
	pet, err := catalogdomain.NewPet(0, name, "dog")
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

func adopt(t *testing.T, repo *Repository, petID, adopterID int64) int64 {
	t.Helper()
	adoption, err := domain.NewAdoption(petID, adopterID, "")
	require.NoError(t, err)
	proj, err := repo.Create(context.Background(), adoption)
	require.NoError(t, err)
	return proj.Adoption.ID
}

func TestPetDeleteCascadesToAdoptions(t *testing.T) {
	pets, adopters, repo := setup(t)
	petID := savePet(t, pets, "Rex")
	adopterID := saveAdopter(t, adopters, "alex@example.com")
	adoptionID := adopt(t, repo, petID, adopterID)

	require.NoError(t, pets.Delete(context.Background(), petID))

	_, err := repo.GetByID(context.Background(), adoptionID)
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestAdopterDeleteReleasesPetsAndRemovesAdoptions(t *testing.T) {
	pets, adopters, repo := setup(t)
	petID := savePet(t, pets, "Rex")
	adopterID := saveAdopter(t, adopters, "alex@example.com")
	adoptionID := adopt(t, repo, petID, adopterID)

	require.NoError(t, adopters.Delete(context.Background(), adopterID))

	_, err := repo.GetByID(context.Background(), adoptionID)
	require.ErrorIs(t, err, ports.ErrNotFound)

	proj, err := pets.GetByID(context.Background(), petID)
	require.NoError(t, err)
	require.Equal(t, catalogdomain.StatusAvailable, proj.Pet.Status)
}

func TestAdopterDeleteLeavesOtherAdoptionsAlone(t *testing.T) {
	pets, adopters, repo := setup(t)
	petA := savePet(t, pets, "Rex")
	petB := savePet(t, pets, "Mia")
	alex := saveAdopter(t, adopters, "alex@example.com")
	sam := saveAdopter(t, adopters, "sam@example.com")
	adopt(t, repo, petA, alex)
	samAdoption := adopt(t, repo, petB, sam)

	require.NoError(t, adopters.Delete(context.Background(), alex))

	proj, err := repo.GetByID(context.Background(), samAdoption)
	require.NoError(t, err)
	require.Equal(t, petB, proj.Adoption.PetID)

	petProj, err := pets.GetByID(context.Background(), petB)
	require.NoError(t, err)
	require.Equal(t, catalogdomain.StatusClaimed, petProj.Pet.Status)
}
