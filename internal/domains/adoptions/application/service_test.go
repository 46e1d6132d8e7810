package application

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	adoptermemory "github.com/pawhaven/adoption-api/internal/domains/adopters/adapters/memory"
	adopterdomain "github.com/pawhaven/adoption-api/internal/domains/adopters/domain"
	adoptionmemory "github.com/pawhaven/adoption-api/internal/domains/adoptions/adapters/memory"
	adoptiontypes "github.com/pawhaven/adoption-api/internal/domains/adoptions/application/types"
	"github.com/pawhaven/adoption-api/internal/domains/adoptions/ports"
	catalogmemory "github.com/pawhaven/adoption-api/internal/domains/catalog/adapters/memory"
	catalogdomain "github.com/pawhaven/adoption-api/internal/domains/catalog/domain"
)

type fixture struct {
	pets     *catalogmemory.Repository
	adopters *adoptermemory.Repository
	svc      *Service
}

func newFixture() *fixture {
	pets := catalogmemory.NewRepository()
	adopters := adoptermemory.NewRepository()
	repo := adoptionmemory.NewRepository(pets, adopters)
	return &fixture{pets: pets, adopters: adopters, svc: NewService(repo)}
}

func (f *fixture) addPet(t *testing.T, name string) int64 {
	t.Helper()
	pet, err := catalogdomain.NewPet(0, name, "dog")
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

func (f *fixture) petStatus(t *testing.T, id int64) catalogdomain.Status {
	t.Helper()
	proj, err := f.pets.GetByID(context.Background(), id)
	require.NoError(t, err)
	return proj.Pet.Status
}

func TestCreate_ClaimsPet(t *testing.T) {
	f := newFixture()
	petID := f.addPet(t, "Rex")
	adopterID := f.addAdopter(t, "alex@example.com")

	proj, err := f.svc.Create(context.Background(), adoptiontypes.CreateAdoptionInput{
		PetID:     petID,
		AdopterID: adopterID,
		Notes:     "great match",
	})
	require.NoError(t, err)
	require.Equal(t, petID, proj.Adoption.PetID)
	require.Equal(t, adopterID, proj.Adoption.AdopterID)
	require.Equal(t, "great match", proj.Adoption.Notes)
	require.False(t, proj.Adoption.AdoptedAt.IsZero())
	require.Equal(t, catalogdomain.StatusClaimed, f.petStatus(t, petID))
	require.Equal(t, string(catalogdomain.StatusClaimed), proj.Pet.Status)
}

func TestCreate_SecondClaimConflicts(t *testing.T) {
	f := newFixture()
	petID := f.addPet(t, "Rex")
	first := f.addAdopter(t, "alex@example.com")
	second := f.addAdopter(t, "sam@example.com")

	_, err := f.svc.Create(context.Background(), adoptiontypes.CreateAdoptionInput{PetID: petID, AdopterID: first})
	require.NoError(t, err)

	_, err = f.svc.Create(context.Background(), adoptiontypes.CreateAdoptionInput{PetID: petID, AdopterID: second})
	require.ErrorIs(t, err, ports.ErrPetClaimed)
}

func TestCreate_ConcurrentClaimsOneWinner(t *testing.T) {
	f := newFixture()
	petID := f.addPet(t, "Rex")

	const attempts = 16
	adopterIDs := make([]int64, attempts)
	for i := range adopterIDs {
		adopterIDs[i] = f.addAdopter(t, "adopter"+string(rune('a'+i))+"@example.com")
	}

	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.svc.Create(context.Background(), adoptiontypes.CreateAdoptionInput{
				PetID:     petID,
				AdopterID: adopterIDs[i],
			})
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
		} else {
			require.ErrorIs(t, err, ports.ErrPetClaimed)
		}
	}
	require.Equal(t, 1, winners)
	require.Equal(t, catalogdomain.StatusClaimed, f.petStatus(t, petID))
}

func TestCreate_MissingPet(t *testing.T) {
	f := newFixture()
	adopterID := f.addAdopter(t, "alex@example.com")

	_, err := f.svc.Create(context.Background(), adoptiontypes.CreateAdoptionInput{PetID: 99, AdopterID: adopterID})
	require.ErrorIs(t, err, ports.ErrPetNotFound)
}

func TestCreate_MissingAdopter(t *testing.T) {
	f := newFixture()
	petID := f.addPet(t, "Rex")

	_, err := f.svc.Create(context.Background(), adoptiontypes.CreateAdoptionInput{PetID: petID, AdopterID: 99})
	require.ErrorIs(t, err, ports.ErrAdopterNotFound)
	// The failed claim must not leave the pet locked.
	require.Equal(t, catalogdomain.StatusAvailable, f.petStatus(t, petID))
}

func TestCreate_ClaimedPetReportsConflictBeforeMissingAdopter(t *testing.T) {
	f := newFixture()
	petID := f.addPet(t, "Rex")
	adopterID := f.addAdopter(t, "alex@example.com")

	_, err := f.svc.Create(context.Background(), adoptiontypes.CreateAdoptionInput{PetID: petID, AdopterID: adopterID})
	require.NoError(t, err)

	// The pet resolves first, so the claimed pet wins over the unknown adopter.
	_, err = f.svc.Create(context.Background(), adoptiontypes.CreateAdoptionInput{PetID: petID, AdopterID: 999})
	require.ErrorIs(t, err, ports.ErrPetClaimed)
	require.Equal(t, catalogdomain.StatusClaimed, f.petStatus(t, petID))
}

func TestCreate_MissingPetReportsBeforeMissingAdopter(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Create(context.Background(), adoptiontypes.CreateAdoptionInput{PetID: 98, AdopterID: 99})
	require.ErrorIs(t, err, ports.ErrPetNotFound)
}

func TestCreate_InvalidReferences(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Create(context.Background(), adoptiontypes.CreateAdoptionInput{PetID: 0, AdopterID: 1})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.svc.Create(context.Background(), adoptiontypes.CreateAdoptionInput{PetID: 1, AdopterID: 0})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestRevert_ReleasesPetForReadoption(t *testing.T) {
	f := newFixture()
	petID := f.addPet(t, "Rex")
	first := f.addAdopter(t, "alex@example.com")
	second := f.addAdopter(t, "sam@example.com")

	proj, err := f.svc.Create(context.Background(), adoptiontypes.CreateAdoptionInput{PetID: petID, AdopterID: first})
	require.NoError(t, err)

	require.NoError(t, f.svc.Revert(context.Background(), adoptiontypes.AdoptionIdentifier{ID: proj.Adoption.ID}))
	require.Equal(t, catalogdomain.StatusAvailable, f.petStatus(t, petID))

	_, err = f.svc.GetByID(context.Background(), adoptiontypes.AdoptionIdentifier{ID: proj.Adoption.ID})
	require.ErrorIs(t, err, ports.ErrNotFound)

	// The released pet can be claimed again.
	_, err = f.svc.Create(context.Background(), adoptiontypes.CreateAdoptionInput{PetID: petID, AdopterID: second})
	require.NoError(t, err)
	require.Equal(t, catalogdomain.StatusClaimed, f.petStatus(t, petID))
}

func TestRevert_UnknownAdoption(t *testing.T) {
	f := newFixture()

	err := f.svc.Revert(context.Background(), adoptiontypes.AdoptionIdentifier{ID: 42})
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestUpdateNotes(t *testing.T) {
	f := newFixture()
	petID := f.addPet(t, "Rex")
	adopterID := f.addAdopter(t, "alex@example.com")

	proj, err := f.svc.Create(context.Background(), adoptiontypes.CreateAdoptionInput{PetID: petID, AdopterID: adopterID})
	require.NoError(t, err)

	updated, err := f.svc.UpdateNotes(context.Background(), adoptiontypes.UpdateNotesInput{
		ID:    proj.Adoption.ID,
		Notes: "follow-up scheduled",
	})
	require.NoError(t, err)
	require.Equal(t, "follow-up scheduled", updated.Adoption.Notes)

	_, err = f.svc.UpdateNotes(context.Background(), adoptiontypes.UpdateNotesInput{ID: 42, Notes: "x"})
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestList_FiltersByAdopterAndPet(t *testing.T) {
	f := newFixture()
	petA := f.addPet(t, "Rex")
	petB := f.addPet(t, "Mia")
	alex := f.addAdopter(t, "alex@example.com")
	sam := f.addAdopter(t, "sam@example.com")

	_, err := f.svc.Create(context.Background(), adoptiontypes.CreateAdoptionInput{PetID: petA, AdopterID: alex})
	require.NoError(t, err)
	_, err = f.svc.Create(context.Background(), adoptiontypes.CreateAdoptionInput{PetID: petB, AdopterID: sam})
	require.NoError(t, err)

	all, err := f.svc.List(context.Background(), adoptiontypes.ListFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)

	byAdopter, err := f.svc.List(context.Background(), adoptiontypes.ListFilter{AdopterID: &alex})
	require.NoError(t, err)
	require.Len(t, byAdopter, 1)
	require.Equal(t, petA, byAdopter[0].Adoption.PetID)
	require.Equal(t, "alex@example.com", byAdopter[0].Adopter.Email)

	byPet, err := f.svc.List(context.Background(), adoptiontypes.ListFilter{PetID: &petB})
	require.NoError(t, err)
	require.Len(t, byPet, 1)
	require.Equal(t, sam, byPet[0].Adoption.AdopterID)
}
