package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	pethttpmapper "github.com/pawhaven/adoption-api/internal/domains/catalog/adapters/http/mapper"
	catalogtypes "github.com/pawhaven/adoption-api/internal/domains/catalog/application/types"
	catalogports "github.com/pawhaven/adoption-api/internal/domains/catalog/ports"
)

// CatalogAPI wires HTTP transport with the catalog bounded context service.
type CatalogAPI struct {
	service catalogports.Service
}

// NewCatalogAPI creates a CatalogAPI backed by the provided service.
func NewCatalogAPI(service catalogports.Service) CatalogAPI {
	return CatalogAPI{service: service}
}

// Get /v1/pets
// Search the catalog with filters and pagination
func (api *CatalogAPI) SearchPets(c *gin.Context) {
	input, err := parseSearchInput(c)
	if err != nil {
		respondBadRequest(c, err)
		return
	}
	result, err := api.service.Search(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	page := catalogtypes.DefaultPage
	if input.Page != nil {
		page = *input.Page
	}
	pageSize := catalogtypes.DefaultPageSize
	if input.PageSize != nil {
		pageSize = *input.PageSize
	}
	c.JSON(http.StatusOK, pethttpmapper.FromPage(result, page, pageSize))
}

// Get /v1/pets/:petId
// Find pet by ID
func (api *CatalogAPI) GetPetById(c *gin.Context) {
	id, ok := parseIDParam(c, "petId")
	if !ok {
		return
	}
	pet, err := api.service.GetByID(c.Request.Context(), catalogtypes.PetIdentifier{ID: id})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, pethttpmapper.FromProjection(pet))
}

// Post /v1/pets
// Add a new pet to the catalog
func (api *CatalogAPI) AddPet(c *gin.Context) {
	var payload pethttpmapper.MutationPet
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	mutation, err := pethttpmapper.ToMutationInput(payload)
	if err != nil {
		respondBadRequest(c, err)
		return
	}
	saved, err := api.service.Add(c.Request.Context(), catalogtypes.AddPetInput{PetMutationInput: mutation})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, pethttpmapper.FromProjection(saved))
}

// Put /v1/pets/:petId
// Update an existing pet; absent fields keep their stored values
func (api *CatalogAPI) UpdatePet(c *gin.Context) {
	id, ok := parseIDParam(c, "petId")
	if !ok {
		return
	}
	var payload pethttpmapper.MutationPet
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	mutation, err := pethttpmapper.ToMutationInput(payload)
	if err != nil {
		respondBadRequest(c, err)
		return
	}
	mutation.ID = id
	updated, err := api.service.Update(c.Request.Context(), catalogtypes.UpdatePetInput{PetMutationInput: mutation})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, pethttpmapper.FromProjection(updated))
}

// Delete /v1/pets/:petId
// Deletes a pet; adoption and favorite rows follow via cascade
func (api *CatalogAPI) DeletePet(c *gin.Context) {
	id, ok := parseIDParam(c, "petId")
	if !ok {
		return
	}
	if err := api.service.Delete(c.Request.Context(), catalogtypes.PetIdentifier{ID: id}); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Get /v1/admin/pets
// List every pet regardless of status
func (api *CatalogAPI) ListPets(c *gin.Context) {
	result, err := api.service.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, pethttpmapper.FromProjectionList(result))
}

// parseSearchInput reads the filter query parameters, preserving presence so
// the service can distinguish "absent" from "explicitly empty" status.
func parseSearchInput(c *gin.Context) (catalogtypes.SearchInput, error) {
	var input catalogtypes.SearchInput
	if species, ok := c.GetQuery("species"); ok {
		input.Species = &species
	}
	if size, ok := c.GetQuery("size"); ok {
		input.Size = &size
	}
	if tags := c.QueryArray("tag"); len(tags) > 0 {
		input.PersonalityTags = tags
	}
	if status, ok := c.GetQuery("status"); ok {
		input.Status = &status
	}
	var err error
	if input.AgeMinYears, err = parseIntQuery(c, "ageMin"); err != nil {
		return catalogtypes.SearchInput{}, err
	}
	if input.AgeMaxYears, err = parseIntQuery(c, "ageMax"); err != nil {
		return catalogtypes.SearchInput{}, err
	}
	if input.Page, err = parseIntQuery(c, "page"); err != nil {
		return catalogtypes.SearchInput{}, err
	}
	if input.PageSize, err = parseIntQuery(c, "pageSize"); err != nil {
		return catalogtypes.SearchInput{}, err
	}
	return input, nil
}

func parseIntQuery(c *gin.Context, name string) (*int, error) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return nil, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil, err
	}
	return &value, nil
}

func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		respondBadRequest(c, err)
		return 0, false
	}
	return id, true
}
