package types

import (
	"time"

	"github.com/pawhaven/adoption-api/internal/domains/favorites/domain"
)

// PetSummary is the slice of pet state embedded in favorite listings.
type PetSummary struct {
	ID      int64
	Name    string
	Species string
	Status  string
}

// FavoriteProjection transports a favorite with its pet summary and creation time.
type FavoriteProjection struct {
	Favorite  *domain.Favorite
	Pet       PetSummary
	CreatedAt time.Time
}

// FavoriteInput identifies the (adopter, pet) pair to add or remove.
type FavoriteInput struct {
	AdopterID int64
	PetID     int64
}
