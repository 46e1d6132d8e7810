package httpapi

import (
	"errors"

	"github.com/gin-gonic/gin"

	adopterapp "github.com/pawhaven/adoption-api/internal/domains/adopters/application"
	adopterports "github.com/pawhaven/adoption-api/internal/domains/adopters/ports"
	adoptionapp "github.com/pawhaven/adoption-api/internal/domains/adoptions/application"
	adoptionports "github.com/pawhaven/adoption-api/internal/domains/adoptions/ports"
	catalogapp "github.com/pawhaven/adoption-api/internal/domains/catalog/application"
	catalogports "github.com/pawhaven/adoption-api/internal/domains/catalog/ports"
	favoriteapp "github.com/pawhaven/adoption-api/internal/domains/favorites/application"
	favoriteports "github.com/pawhaven/adoption-api/internal/domains/favorites/ports"
	apierrors "github.com/pawhaven/adoption-api/internal/shared/errors"
)

// responder maps the domain sentinel errors onto RFC 7807 problems. Order
// matters: the not-found mappers run before the conflict mappers so a claim
// on a missing pet reports 404, not 409.
var responder = apierrors.NewChainedResponder("",
	mapNotFound,
	mapConflict,
	mapUnauthorized,
	mapInvalidInput,
	mapStorage,
)

func mapNotFound(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, catalogports.ErrNotFound):
		return apierrors.ErrNotFound.WithDetail("pet not found"), true
	case errors.Is(err, adopterports.ErrNotFound):
		return apierrors.ErrNotFound.WithDetail("adopter not found"), true
	case errors.Is(err, adoptionports.ErrNotFound):
		return apierrors.ErrNotFound.WithDetail("adoption not found"), true
	case errors.Is(err, adoptionports.ErrPetNotFound), errors.Is(err, favoriteports.ErrPetNotFound):
		return apierrors.ErrNotFound.WithDetail("pet not found"), true
	case errors.Is(err, adoptionports.ErrAdopterNotFound), errors.Is(err, favoriteports.ErrAdopterNotFound):
		return apierrors.ErrNotFound.WithDetail("adopter not found"), true
	case errors.Is(err, favoriteports.ErrNotFound):
		return apierrors.ErrNotFound.WithDetail("favorite not found"), true
	}
	return apierrors.ProblemDetail{}, false
}

func mapConflict(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, adoptionports.ErrPetClaimed):
		return apierrors.NewConflictProblem("pet is already claimed"), true
	case errors.Is(err, adopterports.ErrEmailTaken):
		return apierrors.NewConflictProblem("email already registered"), true
	case errors.Is(err, favoriteports.ErrDuplicate):
		return apierrors.NewConflictProblem("pet already favorited"), true
	}
	return apierrors.ProblemDetail{}, false
}

func mapUnauthorized(err error) (apierrors.ProblemDetail, bool) {
	if errors.Is(err, adopterports.ErrInvalidCredentials) {
		return apierrors.ErrUnauthorized.WithDetail("invalid email or password"), true
	}
	return apierrors.ProblemDetail{}, false
}

func mapInvalidInput(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, catalogapp.ErrInvalidInput),
		errors.Is(err, catalogapp.ErrInvalidPagination),
		errors.Is(err, adopterapp.ErrInvalidInput),
		errors.Is(err, adoptionapp.ErrInvalidInput),
		errors.Is(err, favoriteapp.ErrInvalidInput):
		return apierrors.ErrBadRequest.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}

func mapStorage(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, catalogports.ErrStorage),
		errors.Is(err, adopterports.ErrStorage),
		errors.Is(err, adoptionports.ErrStorage),
		errors.Is(err, favoriteports.ErrStorage):
		return apierrors.ErrInternal.WithDetail("storage failure"), true
	}
	return apierrors.ProblemDetail{}, false
}

func respondServiceError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	responder.RespondError(c, err)
}

func respondBadRequest(c *gin.Context, err error) {
	responder.Respond(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
}
