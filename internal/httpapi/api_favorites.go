package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	favoritehttpmapper "github.com/pawhaven/adoption-api/internal/domains/favorites/adapters/http/mapper"
	favoritetypes "github.com/pawhaven/adoption-api/internal/domains/favorites/application/types"
	favoriteports "github.com/pawhaven/adoption-api/internal/domains/favorites/ports"
)

// FavoriteAPI wires HTTP transport with the favorites bounded context service.
type FavoriteAPI struct {
	service favoriteports.Service
}

// NewFavoriteAPI creates a FavoriteAPI backed by the provided service.
func NewFavoriteAPI(service favoriteports.Service) FavoriteAPI {
	return FavoriteAPI{service: service}
}

// Put /v1/adopters/:adopterId/favorites/:petId
// Favorite a pet for an adopter
func (api *FavoriteAPI) AddFavorite(c *gin.Context) {
	adopterID, ok := parseIDParam(c, "adopterId")
	if !ok {
		return
	}
	petID, ok := parseIDParam(c, "petId")
	if !ok {
		return
	}
	input := favoritetypes.FavoriteInput{AdopterID: adopterID, PetID: petID}
	created, err := api.service.Add(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, favoritehttpmapper.FromProjection(created))
}

// Delete /v1/adopters/:adopterId/favorites/:petId
// Unfavorite a pet for an adopter
func (api *FavoriteAPI) RemoveFavorite(c *gin.Context) {
	adopterID, ok := parseIDParam(c, "adopterId")
	if !ok {
		return
	}
	petID, ok := parseIDParam(c, "petId")
	if !ok {
		return
	}
	input := favoritetypes.FavoriteInput{AdopterID: adopterID, PetID: petID}
	if err := api.service.Remove(c.Request.Context(), input); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Get /v1/adopters/:adopterId/favorites
// List an adopter's favorites, newest first
func (api *FavoriteAPI) ListFavorites(c *gin.Context) {
	adopterID, ok := parseIDParam(c, "adopterId")
	if !ok {
		return
	}
	result, err := api.service.ListByAdopter(c.Request.Context(), adopterID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, favoritehttpmapper.FromProjectionList(result))
}
