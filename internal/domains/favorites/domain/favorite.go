package domain

import "errors"

var (
	ErrInvalidPetRef     = errors.New("favorite requires a pet reference")
	ErrInvalidAdopterRef = errors.New("favorite requires an adopter reference")
)

// Favorite marks a pet an adopter is watching. Favorites are independent of
// adoption state: claimed pets can stay favorited.
type Favorite struct {
	ID        int64
	AdopterID int64
	PetID     int64
}

// NewFavorite builds a favorite ensuring both references are set.
func NewFavorite(adopterID, petID int64) (*Favorite, error) {
	f := &Favorite{AdopterID: adopterID, PetID: petID}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// Validate re-applies the reference invariants for persistence.
func (f *Favorite) Validate() error {
	if f.PetID <= 0 {
		return ErrInvalidPetRef
	}
	if f.AdopterID <= 0 {
		return ErrInvalidAdopterRef
	}
	return nil
}
