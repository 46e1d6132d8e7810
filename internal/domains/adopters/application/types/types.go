package types

import (
	"time"

	"github.com/pawhaven/adoption-api/internal/domains/adopters/domain"
)

// AdopterMetadata captures persistence timestamps for an adopter.
type AdopterMetadata struct {
	CreatedAt time.Time
	UpdatedAt time.Time
}

// AdopterProjection transports an adopter with its persistence metadata.
type AdopterProjection struct {
	Adopter  *domain.Adopter
	Metadata AdopterMetadata
}

// NewAdopterProjection wraps an adopter with persistence metadata.
func NewAdopterProjection(adopter *domain.Adopter, createdAt, updatedAt time.Time) *AdopterProjection {
	if adopter == nil {
		return nil
	}
	return &AdopterProjection{
		Adopter: adopter,
		Metadata: AdopterMetadata{
			CreatedAt: createdAt,
			UpdatedAt: updatedAt,
		},
	}
}

// RegisterInput captures a new account registration.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
	Address  string
}

// UpdateAdopterInput applies a partial profile edit. Nil pointers keep the
// stored values; a non-nil Password re-hashes the credential.
type UpdateAdopterInput struct {
	ID       int64
	Name     *string
	Email    *string
	Password *string
	Phone    *string
	Address  *string
}

// Credentials carries a login attempt.
type Credentials struct {
	Email    string
	Password string
}

// AuthToken is a signed session token handed back to the HTTP layer.
type AuthToken struct {
	Token     string
	ExpiresAt time.Time
}

// AdopterIdentifier references an adopter by its aggregate ID.
type AdopterIdentifier struct {
	ID int64
}
