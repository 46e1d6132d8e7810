package ports

import (
	"context"
	"errors"

	types "github.com/pawhaven/adoption-api/internal/domains/adopters/application/types"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

// Service is the adopters application port consumed by the HTTP layer.
type Service interface {
	Register(ctx context.Context, input types.RegisterInput) (*types.AdopterProjection, *types.AuthToken, error)
	Login(ctx context.Context, creds types.Credentials) (*types.AdopterProjection, *types.AuthToken, error)
	GetByID(ctx context.Context, input types.AdopterIdentifier) (*types.AdopterProjection, error)
	Update(ctx context.Context, input types.UpdateAdopterInput) (*types.AdopterProjection, error)
	Delete(ctx context.Context, input types.AdopterIdentifier) error
	List(ctx context.Context) ([]*types.AdopterProjection, error)
}
