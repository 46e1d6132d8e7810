package application

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	adoptermemory "github.com/pawhaven/adoption-api/internal/domains/adopters/adapters/memory"
	adoptertypes "github.com/pawhaven/adoption-api/internal/domains/adopters/application/types"
	"github.com/pawhaven/adoption-api/internal/domains/adopters/ports"
)

var testSigningKey = []byte("test-signing-key")

func newTestService() *Service {
	return NewService(adoptermemory.NewRepository(), WithSigningKey(testSigningKey))
}

func registerInput() adoptertypes.RegisterInput {
	return adoptertypes.RegisterInput{
		Name:     "Alex Doe",
		Email:    "alex@example.com",
		Password: "hunter22",
		Phone:    "555-0101",
	}
}

func TestRegister_Success(t *testing.T) {
	svc := newTestService()

	proj, token, err := svc.Register(context.Background(), registerInput())
	require.NoError(t, err)
	require.NotNil(t, proj)
	require.Equal(t, "Alex Doe", proj.Adopter.Name)
	require.Equal(t, "alex@example.com", proj.Adopter.Email)
	require.NotEqual(t, "hunter22", proj.Adopter.CredentialHash)
	require.NotNil(t, token)
	require.NotEmpty(t, token.Token)
	require.True(t, token.ExpiresAt.After(time.Now()))
}

func TestRegister_TokenCarriesAdopterSubject(t *testing.T) {
	svc := newTestService()

	proj, token, err := svc.Register(context.Background(), registerInput())
	require.NoError(t, err)

	claims := jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token.Token, &claims, func(*jwt.Token) (any, error) {
		return testSigningKey, nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)
	require.Equal(t, "1", claims.Subject)
	require.Equal(t, proj.Adopter.ID, int64(1))
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc := newTestService()

	_, _, err := svc.Register(context.Background(), registerInput())
	require.NoError(t, err)

	_, _, err = svc.Register(context.Background(), registerInput())
	require.ErrorIs(t, err, ports.ErrEmailTaken)
}

func TestRegister_InvalidInput(t *testing.T) {
	svc := newTestService()

	input := registerInput()
	input.Email = "not-an-email"
	_, _, err := svc.Register(context.Background(), input)
	require.ErrorIs(t, err, ErrInvalidInput)

	input = registerInput()
	input.Password = ""
	_, _, err = svc.Register(context.Background(), input)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestLogin_Success(t *testing.T) {
	svc := newTestService()
	_, _, err := svc.Register(context.Background(), registerInput())
	require.NoError(t, err)

	proj, token, err := svc.Login(context.Background(), adoptertypes.Credentials{
		Email:    "alex@example.com",
		Password: "hunter22",
	})
	require.NoError(t, err)
	require.Equal(t, "Alex Doe", proj.Adopter.Name)
	require.NotEmpty(t, token.Token)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc := newTestService()
	_, _, err := svc.Register(context.Background(), registerInput())
	require.NoError(t, err)

	_, _, err = svc.Login(context.Background(), adoptertypes.Credentials{
		Email:    "alex@example.com",
		Password: "wrong",
	})
	require.ErrorIs(t, err, ports.ErrInvalidCredentials)
}

func TestLogin_UnknownEmailSameError(t *testing.T) {
	svc := newTestService()

	_, _, err := svc.Login(context.Background(), adoptertypes.Credentials{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	require.ErrorIs(t, err, ports.ErrInvalidCredentials)
}

func TestUpdate_PartialEdit(t *testing.T) {
	svc := newTestService()
	proj, _, err := svc.Register(context.Background(), registerInput())
	require.NoError(t, err)

	phone := "555-0202"
	updated, err := svc.Update(context.Background(), adoptertypes.UpdateAdopterInput{
		ID:    proj.Adopter.ID,
		Phone: &phone,
	})
	require.NoError(t, err)
	require.Equal(t, phone, updated.Adopter.Phone)
	require.Equal(t, proj.Adopter.Name, updated.Adopter.Name)
	require.Equal(t, proj.Adopter.Email, updated.Adopter.Email)
}

func TestUpdate_PasswordRehashes(t *testing.T) {
	svc := newTestService()
	proj, _, err := svc.Register(context.Background(), registerInput())
	require.NoError(t, err)

	password := "new-password"
	updated, err := svc.Update(context.Background(), adoptertypes.UpdateAdopterInput{
		ID:       proj.Adopter.ID,
		Password: &password,
	})
	require.NoError(t, err)
	require.NotEqual(t, proj.Adopter.CredentialHash, updated.Adopter.CredentialHash)

	_, _, err = svc.Login(context.Background(), adoptertypes.Credentials{
		Email:    "alex@example.com",
		Password: "new-password",
	})
	require.NoError(t, err)

	_, _, err = svc.Login(context.Background(), adoptertypes.Credentials{
		Email:    "alex@example.com",
		Password: "hunter22",
	})
	require.ErrorIs(t, err, ports.ErrInvalidCredentials)
}

func TestUpdate_EmailConflict(t *testing.T) {
	svc := newTestService()
	_, _, err := svc.Register(context.Background(), registerInput())
	require.NoError(t, err)

	second := registerInput()
	second.Email = "sam@example.com"
	proj, _, err := svc.Register(context.Background(), second)
	require.NoError(t, err)

	taken := "alex@example.com"
	_, err = svc.Update(context.Background(), adoptertypes.UpdateAdopterInput{
		ID:    proj.Adopter.ID,
		Email: &taken,
	})
	require.ErrorIs(t, err, ports.ErrEmailTaken)
}

func TestDelete_RemovesAccount(t *testing.T) {
	svc := newTestService()
	proj, _, err := svc.Register(context.Background(), registerInput())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), adoptertypes.AdopterIdentifier{ID: proj.Adopter.ID}))
	_, err = svc.GetByID(context.Background(), adoptertypes.AdopterIdentifier{ID: proj.Adopter.ID})
	require.ErrorIs(t, err, ports.ErrNotFound)
}
