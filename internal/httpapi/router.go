package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Route binds an HTTP method and path pattern to a handler.
type Route struct {
	Method      string
	Pattern     string
	HandlerFunc gin.HandlerFunc
	Protected   bool
}

// ApiHandleFunctions groups the per-context API handlers for router construction.
type ApiHandleFunctions struct {
	CatalogAPI  CatalogAPI
	AdopterAPI  AdopterAPI
	AdoptionAPI AdoptionAPI
	FavoriteAPI FavoriteAPI
}

// NewRouter builds the gin engine with every route registered. Protected
// routes require a valid bearer token signed with signingKey. Middleware is
// installed before route registration so it covers every handler.
func NewRouter(handlers ApiHandleFunctions, signingKey []byte, middleware ...gin.HandlerFunc) *gin.Engine {
	router := gin.Default()
	router.Use(middleware...)
	auth := RequireAuth(signingKey)
	for _, route := range routes(handlers) {
		chain := []gin.HandlerFunc{route.HandlerFunc}
		if route.Protected {
			chain = []gin.HandlerFunc{auth, route.HandlerFunc}
		}
		router.Handle(route.Method, route.Pattern, chain...)
	}
	return router
}

func routes(h ApiHandleFunctions) []Route {
	return []Route{
		// Catalog: browsing is open, mutations need a token.
		{http.MethodGet, "/v1/pets", h.CatalogAPI.SearchPets, false},
		{http.MethodGet, "/v1/pets/:petId", h.CatalogAPI.GetPetById, false},
		{http.MethodPost, "/v1/pets", h.CatalogAPI.AddPet, true},
		{http.MethodPut, "/v1/pets/:petId", h.CatalogAPI.UpdatePet, true},
		{http.MethodDelete, "/v1/pets/:petId", h.CatalogAPI.DeletePet, true},
		{http.MethodGet, "/v1/admin/pets", h.CatalogAPI.ListPets, true},

		// Adopters: register and login are open by necessity.
		{http.MethodPost, "/v1/adopters", h.AdopterAPI.Register, false},
		{http.MethodPost, "/v1/login", h.AdopterAPI.Login, false},
		{http.MethodGet, "/v1/adopters/:adopterId", h.AdopterAPI.GetAdopterById, false},
		{http.MethodPut, "/v1/adopters/:adopterId", h.AdopterAPI.UpdateAdopter, true},
		{http.MethodDelete, "/v1/adopters/:adopterId", h.AdopterAPI.DeleteAdopter, true},
		{http.MethodGet, "/v1/admin/adopters", h.AdopterAPI.ListAdopters, true},

		// Favorites live under the adopter resource.
		{http.MethodGet, "/v1/adopters/:adopterId/favorites", h.FavoriteAPI.ListFavorites, true},
		{http.MethodPut, "/v1/adopters/:adopterId/favorites/:petId", h.FavoriteAPI.AddFavorite, true},
		{http.MethodDelete, "/v1/adopters/:adopterId/favorites/:petId", h.FavoriteAPI.RemoveFavorite, true},

		// Adoptions expose adopter contact details, so reads need a token too.
		{http.MethodPost, "/v1/adoptions", h.AdoptionAPI.CreateAdoption, true},
		{http.MethodGet, "/v1/adoptions", h.AdoptionAPI.ListAdoptions, true},
		{http.MethodGet, "/v1/adoptions/:adoptionId", h.AdoptionAPI.GetAdoptionById, true},
		{http.MethodPut, "/v1/adoptions/:adoptionId/notes", h.AdoptionAPI.UpdateAdoptionNotes, true},
		{http.MethodDelete, "/v1/adoptions/:adoptionId", h.AdoptionAPI.RevertAdoption, true},
	}
}
