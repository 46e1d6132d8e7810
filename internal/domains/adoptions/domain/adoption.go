package domain

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidPetRef     = errors.New("adoption requires a pet reference")
	ErrInvalidAdopterRef = errors.New("adoption requires an adopter reference")
)

// Adoption links an adopter to the pet they claimed. Its lifetime is the
// source of truth for the pet's claimed status: creating an adoption claims
// the pet, reverting it releases the pet.
type Adoption struct {
	ID        int64
	PetID     int64
	AdopterID int64
	Notes     string
	AdoptedAt time.Time
}

// NewAdoption builds an adoption ensuring both references are set.
func NewAdoption(petID, adopterID int64, notes string) (*Adoption, error) {
	a := &Adoption{PetID: petID, AdopterID: adopterID}
	a.SetNotes(notes)
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return a, nil
}

// SetNotes replaces the free-form shelter notes.
func (a *Adoption) SetNotes(notes string) {
	a.Notes = strings.TrimSpace(notes)
}

// Validate re-applies the reference invariants for persistence.
func (a *Adoption) Validate() error {
	if a.PetID <= 0 {
		return ErrInvalidPetRef
	}
	if a.AdopterID <= 0 {
		return ErrInvalidAdopterRef
	}
	return nil
}
