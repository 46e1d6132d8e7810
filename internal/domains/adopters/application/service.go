package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	types "github.com/pawhaven/adoption-api/internal/domains/adopters/application/types"
	"github.com/pawhaven/adoption-api/internal/domains/adopters/domain"
	"github.com/pawhaven/adoption-api/internal/domains/adopters/ports"
)

const defaultTokenTTL = 7 * 24 * time.Hour

// Service orchestrates adopter registration, authentication and profile
// management.
type Service struct {
	repo       ports.Repository
	signingKey []byte
	tokenTTL   time.Duration
	now        func() time.Time
}

// Option customizes the service construction.
type Option func(*Service)

// WithSigningKey sets the HMAC secret used to sign session tokens.
func WithSigningKey(key []byte) Option {
	return func(s *Service) {
		if len(key) > 0 {
			s.signingKey = key
		}
	}
}

// WithTokenTTL overrides the session token lifetime.
func WithTokenTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.tokenTTL = ttl
		}
	}
}

// WithClock overrides the time source used for token expiry.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService wires the adopters service with its dependencies.
func NewService(repo ports.Repository, opts ...Option) *Service {
	s := &Service{
		repo:     repo,
		tokenTTL: defaultTokenTTL,
		now:      time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Register creates a new account and returns a freshly signed session token.
func (s *Service) Register(ctx context.Context, input types.RegisterInput) (*types.AdopterProjection, *types.AuthToken, error) {
	hash, err := hashPassword(input.Password)
	if err != nil {
		return nil, nil, err
	}
	adopter, err := domain.NewAdopter(0, input.Name, input.Email, hash)
	if err != nil {
		return nil, nil, mapError(err)
	}
	adopter.UpdateContact(input.Phone, input.Address)

	created, err := s.repo.Create(ctx, adopter)
	if err != nil {
		return nil, nil, mapError(err)
	}
	token, err := s.issueToken(created.Adopter)
	if err != nil {
		return nil, nil, err
	}
	return created, token, nil
}

// Login verifies the credentials and returns a signed session token. A wrong
// password and an unknown email both yield ErrInvalidCredentials so the
// response does not reveal which accounts exist.
func (s *Service) Login(ctx context.Context, creds types.Credentials) (*types.AdopterProjection, *types.AuthToken, error) {
	found, err := s.repo.GetByEmail(ctx, creds.Email)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return nil, nil, ports.ErrInvalidCredentials
		}
		return nil, nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(found.Adopter.CredentialHash), []byte(creds.Password)); err != nil {
		return nil, nil, ports.ErrInvalidCredentials
	}
	token, err := s.issueToken(found.Adopter)
	if err != nil {
		return nil, nil, err
	}
	return found, token, nil
}

// GetByID loads a single adopter.
func (s *Service) GetByID(ctx context.Context, input types.AdopterIdentifier) (*types.AdopterProjection, error) {
	result, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, mapError(err)
	}
	return result, nil
}

// Update applies a partial profile edit; a non-nil Password re-hashes the
// stored credential.
func (s *Service) Update(ctx context.Context, input types.UpdateAdopterInput) (*types.AdopterProjection, error) {
	existing, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, mapError(err)
	}
	adopter := existing.Adopter
	if input.Name != nil {
		if err := adopter.SetName(*input.Name); err != nil {
			return nil, mapError(err)
		}
	}
	if input.Email != nil {
		if err := adopter.SetEmail(*input.Email); err != nil {
			return nil, mapError(err)
		}
	}
	if input.Password != nil {
		hash, err := hashPassword(*input.Password)
		if err != nil {
			return nil, err
		}
		if err := adopter.SetCredentialHash(hash); err != nil {
			return nil, mapError(err)
		}
	}
	if input.Phone != nil {
		adopter.Phone = *input.Phone
	}
	if input.Address != nil {
		adopter.Address = *input.Address
	}
	saved, err := s.repo.Update(ctx, adopter)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// Delete removes the account. The storage layer releases the adopter's
// claimed pets and cascades to their adoption and favorite rows.
func (s *Service) Delete(ctx context.Context, input types.AdopterIdentifier) error {
	if err := s.repo.Delete(ctx, input.ID); err != nil {
		return mapError(err)
	}
	return nil
}

// List exposes all adopters for admin use cases.
func (s *Service) List(ctx context.Context) ([]*types.AdopterProjection, error) {
	result, err := s.repo.List(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	return result, nil
}

func (s *Service) issueToken(adopter *domain.Adopter) (*types.AuthToken, error) {
	expiresAt := s.now().Add(s.tokenTTL)
	claims := jwt.RegisteredClaims{
		Subject:   fmt.Sprintf("%d", adopter.ID),
		IssuedAt:  jwt.NewNumericDate(s.now()),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.signingKey)
	if err != nil {
		return nil, fmt.Errorf("signing session token: %w", err)
	}
	return &types.AuthToken{Token: signed, ExpiresAt: expiresAt}, nil
}

func hashPassword(password string) (string, error) {
	if password == "" {
		return "", fmt.Errorf("%w: password is required", ErrInvalidInput)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(hash), nil
}

var _ ports.Service = (*Service)(nil)
