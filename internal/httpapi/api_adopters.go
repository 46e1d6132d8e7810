package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	adopterhttpmapper "github.com/pawhaven/adoption-api/internal/domains/adopters/adapters/http/mapper"
	adoptertypes "github.com/pawhaven/adoption-api/internal/domains/adopters/application/types"
	adopterports "github.com/pawhaven/adoption-api/internal/domains/adopters/ports"
)

// AdopterAPI wires HTTP transport with the adopters bounded context service.
type AdopterAPI struct {
	service adopterports.Service
}

// NewAdopterAPI creates an AdopterAPI backed by the provided service.
func NewAdopterAPI(service adopterports.Service) AdopterAPI {
	return AdopterAPI{service: service}
}

// Post /v1/adopters
// Register a new adopter account
func (api *AdopterAPI) Register(c *gin.Context) {
	var payload adopterhttpmapper.RegisterRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	created, token, err := api.service.Register(c.Request.Context(), adopterhttpmapper.ToRegisterInput(payload))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, adopterhttpmapper.FromAuth(created, token))
}

// Post /v1/login
// Exchange credentials for a session token
func (api *AdopterAPI) Login(c *gin.Context) {
	var payload adopterhttpmapper.LoginRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	creds := adoptertypes.Credentials{Email: payload.Email, Password: payload.Password}
	found, token, err := api.service.Login(c.Request.Context(), creds)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, adopterhttpmapper.FromAuth(found, token))
}

// Get /v1/adopters/:adopterId
// Fetch an adopter profile
func (api *AdopterAPI) GetAdopterById(c *gin.Context) {
	id, ok := parseIDParam(c, "adopterId")
	if !ok {
		return
	}
	found, err := api.service.GetByID(c.Request.Context(), adoptertypes.AdopterIdentifier{ID: id})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, adopterhttpmapper.FromProjection(found))
}

// Put /v1/adopters/:adopterId
// Update an adopter profile; absent fields keep their stored values
func (api *AdopterAPI) UpdateAdopter(c *gin.Context) {
	id, ok := parseIDParam(c, "adopterId")
	if !ok {
		return
	}
	var payload adopterhttpmapper.UpdateAdopterRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	updated, err := api.service.Update(c.Request.Context(), adopterhttpmapper.ToUpdateInput(id, payload))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, adopterhttpmapper.FromProjection(updated))
}

// Delete /v1/adopters/:adopterId
// Delete an account; claimed pets are released and related rows cascade
func (api *AdopterAPI) DeleteAdopter(c *gin.Context) {
	id, ok := parseIDParam(c, "adopterId")
	if !ok {
		return
	}
	if err := api.service.Delete(c.Request.Context(), adoptertypes.AdopterIdentifier{ID: id}); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Get /v1/admin/adopters
// List every registered adopter
func (api *AdopterAPI) ListAdopters(c *gin.Context) {
	result, err := api.service.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, adopterhttpmapper.FromProjectionList(result))
}
