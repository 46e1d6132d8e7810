package mapper

import (
	"time"

	types "github.com/pawhaven/adoption-api/internal/domains/adopters/application/types"
)

// RegisterRequest captures an account registration payload.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Phone    string `json:"phone,omitempty"`
	Address  string `json:"address,omitempty"`
}

// LoginRequest captures a login payload.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdateAdopterRequest captures a partial profile edit, preserving field presence.
type UpdateAdopterRequest struct {
	Name     *string `json:"name,omitempty"`
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Address  *string `json:"address,omitempty"`
}

// Adopter is the HTTP representation of an account. The credential hash never
// leaves the service.
type Adopter struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
	UpdatedAt time.Time `json:"updatedAt,omitempty"`
}

// AuthResponse bundles the account with its freshly issued session token.
type AuthResponse struct {
	Adopter   Adopter   `json:"adopter"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// ToRegisterInput maps the transport payload into the application input.
func ToRegisterInput(payload RegisterRequest) types.RegisterInput {
	return types.RegisterInput{
		Name:     payload.Name,
		Email:    payload.Email,
		Password: payload.Password,
		Phone:    payload.Phone,
		Address:  payload.Address,
	}
}

// ToUpdateInput maps the transport payload into the application input.
func ToUpdateInput(id int64, payload UpdateAdopterRequest) types.UpdateAdopterInput {
	return types.UpdateAdopterInput{
		ID:       id,
		Name:     payload.Name,
		Email:    payload.Email,
		Password: payload.Password,
		Phone:    payload.Phone,
		Address:  payload.Address,
	}
}

// FromProjection maps a projection into a transport Adopter.
func FromProjection(p *types.AdopterProjection) Adopter {
	if p == nil || p.Adopter == nil {
		return Adopter{}
	}
	return Adopter{
		ID:        p.Adopter.ID,
		Name:      p.Adopter.Name,
		Email:     p.Adopter.Email,
		Phone:     p.Adopter.Phone,
		Address:   p.Adopter.Address,
		CreatedAt: p.Metadata.CreatedAt,
		UpdatedAt: p.Metadata.UpdatedAt,
	}
}

// FromProjectionList maps a projection slice into transport Adopters.
func FromProjectionList(list []*types.AdopterProjection) []Adopter {
	result := make([]Adopter, 0, len(list))
	for _, p := range list {
		result = append(result, FromProjection(p))
	}
	return result
}

// FromAuth maps an account and its token into an auth response.
func FromAuth(p *types.AdopterProjection, token *types.AuthToken) AuthResponse {
	response := AuthResponse{Adopter: FromProjection(p)}
	if token != nil {
		response.Token = token.Token
		response.ExpiresAt = token.ExpiresAt
	}
	return response
}
