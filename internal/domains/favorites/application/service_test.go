package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	adoptermemory "github.com/pawhaven/adoption-api/internal/domains/adopters/adapters/memory"
	adopterdomain "github.com/pawhaven/adoption-api/internal/domains/adopters/domain"
	catalogmemory "github.com/pawhaven/adoption-api/internal/domains/catalog/adapters/memory"
	catalogdomain "github.com/pawhaven/adoption-api/internal/domains/catalog/domain"
	favoritememory "github.com/pawhaven/adoption-api/internal/domains/favorites/adapters/memory"
	favoritetypes "github.com/pawhaven/adoption-api/internal/domains/favorites/application/types"
	"github.com/pawhaven/adoption-api/internal/domains/favorites/ports"
)

type fixture struct {
	pets     *catalogmemory.Repository
	adopters *adoptermemory.Repository
	svc      *Service
}

func newFixture() *fixture {
	pets := catalogmemory.NewRepository()
	adopters := adoptermemory.NewRepository()
	repo := favoritememory.NewRepository(pets, adopters)
	return &fixture{pets: pets, adopters: adopters, svc: NewService(repo)}
}

func (f *fixture) addPet(t *testing.T, name string) int64 {
	t.Helper()
	pet, err := catalogdomain.NewPet(0, name, "cat")
	require.NoError(t, err)
	proj, err := f.pets.Save(context.Background(), pet)
	require.NoError(t, err)
	return proj.Pet.ID
}

func (f *fixture) addAdopter(t *testing.T, email string) int64 {
	t.Helper()
	adopter, err := adopterdomain.NewAdopter(0, "Alex Doe", email, "hash")
	require.NoError(t, err)
	proj, err := f.adopters.Create(context.Background(), adopter)
	require.NoError(t, err)
	return proj.Adopter.ID
}

func TestAdd_Success(t *testing.T) {
	f := newFixture()
	petID := f.addPet(t, "Mia")
	adopterID := f.addAdopter(t, "alex@example.com")

	proj, err := f.svc.Add(context.Background(), favoritetypes.FavoriteInput{AdopterID: adopterID, PetID: petID})
	require.NoError(t, err)
	require.Equal(t, petID, proj.Favorite.PetID)
	require.Equal(t, adopterID, proj.Favorite.AdopterID)
	require.Equal(t, "Mia", proj.Pet.Name)
}

func TestAdd_DuplicateConflicts(t *testing.T) {
	f := newFixture()
	petID := f.addPet(t, "Mia")
	adopterID := f.addAdopter(t, "alex@example.com")
	input := favoritetypes.FavoriteInput{AdopterID: adopterID, PetID: petID}

	_, err := f.svc.Add(context.Background(), input)
	require.NoError(t, err)

	_, err = f.svc.Add(context.Background(), input)
	require.ErrorIs(t, err, ports.ErrDuplicate)
}

func TestAdd_MissingParents(t *testing.T) {
	f := newFixture()
	petID := f.addPet(t, "Mia")
	adopterID := f.addAdopter(t, "alex@example.com")

	_, err := f.svc.Add(context.Background(), favoritetypes.FavoriteInput{AdopterID: adopterID, PetID: 99})
	require.ErrorIs(t, err, ports.ErrPetNotFound)

	_, err = f.svc.Add(context.Background(), favoritetypes.FavoriteInput{AdopterID: 99, PetID: petID})
	require.ErrorIs(t, err, ports.ErrAdopterNotFound)
}

func TestAdd_ClaimedPetCanBeFavorited(t *testing.T) {
	f := newFixture()
	petID := f.addPet(t, "Mia")
	adopterID := f.addAdopter(t, "alex@example.com")
	require.NoError(t, f.pets.Claim(context.Background(), petID))

	proj, err := f.svc.Add(context.Background(), favoritetypes.FavoriteInput{AdopterID: adopterID, PetID: petID})
	require.NoError(t, err)
	require.Equal(t, string(catalogdomain.StatusClaimed), proj.Pet.Status)
}

func TestRemove_UnknownPairNotFound(t *testing.T) {
	f := newFixture()
	petID := f.addPet(t, "Mia")
	adopterID := f.addAdopter(t, "alex@example.com")

	err := f.svc.Remove(context.Background(), favoritetypes.FavoriteInput{AdopterID: adopterID, PetID: petID})
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestRemove_ThenListEmpty(t *testing.T) {
	f := newFixture()
	petID := f.addPet(t, "Mia")
	adopterID := f.addAdopter(t, "alex@example.com")
	input := favoritetypes.FavoriteInput{AdopterID: adopterID, PetID: petID}

	_, err := f.svc.Add(context.Background(), input)
	require.NoError(t, err)
	require.NoError(t, f.svc.Remove(context.Background(), input))

	list, err := f.svc.ListByAdopter(context.Background(), adopterID)
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestListByAdopter_OnlyOwnFavorites(t *testing.T) {
	f := newFixture()
	petA := f.addPet(t, "Mia")
	petB := f.addPet(t, "Rex")
	alex := f.addAdopter(t, "alex@example.com")
	sam := f.addAdopter(t, "sam@example.com")

	_, err := f.svc.Add(context.Background(), favoritetypes.FavoriteInput{AdopterID: alex, PetID: petA})
	require.NoError(t, err)
	_, err = f.svc.Add(context.Background(), favoritetypes.FavoriteInput{AdopterID: alex, PetID: petB})
	require.NoError(t, err)
	_, err = f.svc.Add(context.Background(), favoritetypes.FavoriteInput{AdopterID: sam, PetID: petA})
	require.NoError(t, err)

	list, err := f.svc.ListByAdopter(context.Background(), alex)
	require.NoError(t, err)
	require.Len(t, list, 2)
	for _, fav := range list {
		require.Equal(t, alex, fav.Favorite.AdopterID)
	}
}

func TestRemove_InvalidInput(t *testing.T) {
	f := newFixture()

	err := f.svc.Remove(context.Background(), favoritetypes.FavoriteInput{AdopterID: 0, PetID: 1})
	require.ErrorIs(t, err, ErrInvalidInput)
}
