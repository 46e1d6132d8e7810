package types

import "time"

// PetMutationInput represents the fields supplied to create or edit a pet.
// Nil pointers mean "leave the stored value alone" on update.
type PetMutationInput struct {
	ID          int64
	Name        *string
	Description *string
	Species     *string
	Breed       *string
	Size        *string
	Personality *string
	BirthDate   *time.Time
	Status      *string
	PhotoURLs   *[]string
}

// AddPetInput captures the request to add a new pet into the catalog.
type AddPetInput struct {
	PetMutationInput
}

// UpdatePetInput applies a partial edit to an existing pet.
type UpdatePetInput struct {
	PetMutationInput
}
