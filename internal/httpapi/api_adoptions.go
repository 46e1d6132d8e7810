package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	adoptionhttpmapper "github.com/pawhaven/adoption-api/internal/domains/adoptions/adapters/http/mapper"
	adoptiontypes "github.com/pawhaven/adoption-api/internal/domains/adoptions/application/types"
	adoptionports "github.com/pawhaven/adoption-api/internal/domains/adoptions/ports"
)

// AdoptionAPI wires HTTP transport with the adoptions bounded context service.
type AdoptionAPI struct {
	service adoptionports.Service
}

// NewAdoptionAPI creates an AdoptionAPI backed by the provided service.
func NewAdoptionAPI(service adoptionports.Service) AdoptionAPI {
	return AdoptionAPI{service: service}
}

// Post /v1/adoptions
// Record an adoption, claiming the pet atomically
func (api *AdoptionAPI) CreateAdoption(c *gin.Context) {
	var payload adoptionhttpmapper.CreateAdoptionRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	created, err := api.service.Create(c.Request.Context(), adoptionhttpmapper.ToCreateInput(payload))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, adoptionhttpmapper.FromProjection(created))
}

// Get /v1/adoptions/:adoptionId
// Fetch one adoption with its pet and adopter summaries
func (api *AdoptionAPI) GetAdoptionById(c *gin.Context) {
	id, ok := parseIDParam(c, "adoptionId")
	if !ok {
		return
	}
	found, err := api.service.GetByID(c.Request.Context(), adoptiontypes.AdoptionIdentifier{ID: id})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, adoptionhttpmapper.FromProjection(found))
}

// Get /v1/adoptions
// List adoptions, optionally narrowed by adopterId or petId
func (api *AdoptionAPI) ListAdoptions(c *gin.Context) {
	var filter adoptiontypes.ListFilter
	var err error
	if filter.AdopterID, err = parseInt64Query(c, "adopterId"); err != nil {
		respondBadRequest(c, err)
		return
	}
	if filter.PetID, err = parseInt64Query(c, "petId"); err != nil {
		respondBadRequest(c, err)
		return
	}
	result, err := api.service.List(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, adoptionhttpmapper.FromProjectionList(result))
}

// Put /v1/adoptions/:adoptionId/notes
// Replace the shelter notes on an adoption
func (api *AdoptionAPI) UpdateAdoptionNotes(c *gin.Context) {
	id, ok := parseIDParam(c, "adoptionId")
	if !ok {
		return
	}
	var payload adoptionhttpmapper.UpdateNotesRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	updated, err := api.service.UpdateNotes(c.Request.Context(), adoptiontypes.UpdateNotesInput{ID: id, Notes: payload.Notes})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, adoptionhttpmapper.FromProjection(updated))
}

// Delete /v1/adoptions/:adoptionId
// Revert an adoption, releasing the pet atomically
func (api *AdoptionAPI) RevertAdoption(c *gin.Context) {
	id, ok := parseIDParam(c, "adoptionId")
	if !ok {
		return
	}
	if err := api.service.Revert(c.Request.Context(), adoptiontypes.AdoptionIdentifier{ID: id}); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func parseInt64Query(c *gin.Context, name string) (*int64, error) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, err
	}
	return &value, nil
}
