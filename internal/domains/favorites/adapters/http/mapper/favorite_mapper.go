package mapper

import (
	"time"

	types "github.com/pawhaven/adoption-api/internal/domains/favorites/application/types"
)

// PetSummary is the embedded pet slice of a favorite response.
type PetSummary struct {
	ID      int64  `json:"id"`
	Name    string `json:"name,omitempty"`
	Species string `json:"species,omitempty"`
	Status  string `json:"status,omitempty"`
}

// Favorite is the HTTP representation of a favorited pet.
type Favorite struct {
	ID        int64      `json:"id"`
	AdopterID int64      `json:"adopterId"`
	Pet       PetSummary `json:"pet"`
	CreatedAt time.Time  `json:"createdAt,omitempty"`
}

// FromProjection maps a projection into a transport Favorite.
func FromProjection(p *types.FavoriteProjection) Favorite {
	if p == nil || p.Favorite == nil {
		return Favorite{}
	}
	return Favorite{
		ID:        p.Favorite.ID,
		AdopterID: p.Favorite.AdopterID,
		Pet: PetSummary{
			ID:      p.Pet.ID,
			Name:    p.Pet.Name,
			Species: p.Pet.Species,
			Status:  p.Pet.Status,
		},
		CreatedAt: p.CreatedAt,
	}
}

// FromProjectionList maps a projection slice into transport Favorites.
func FromProjectionList(list []*types.FavoriteProjection) []Favorite {
	result := make([]Favorite, 0, len(list))
	for _, p := range list {
		result = append(result, FromProjection(p))
	}
	return result
}
