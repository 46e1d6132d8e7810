package domain

import (
	"errors"
	"strings"
)

var (
	ErrEmptyName    = errors.New("adopter name is required")
	ErrInvalidEmail = errors.New("adopter email must contain '@'")
	ErrEmptyHash    = errors.New("credential hash is required")
)

// Adopter represents a registered account holder. The credential hash is
// opaque here; hashing happens in the application layer.
type Adopter struct {
	ID             int64
	Name           string
	Email          string
	CredentialHash string
	Phone          string
	Address        string
}

// NewAdopter builds an adopter ensuring required invariants.
func NewAdopter(id int64, name, email, credentialHash string) (*Adopter, error) {
	a := &Adopter{ID: id}
	if err := a.SetName(name); err != nil {
		return nil, err
	}
	if err := a.SetEmail(email); err != nil {
		return nil, err
	}
	if err := a.SetCredentialHash(credentialHash); err != nil {
		return nil, err
	}
	return a, nil
}

// SetName trims and validates the display name.
func (a *Adopter) SetName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	a.Name = name
	return nil
}

// SetEmail validates the address shape. Emails are stored as given and
// compared case-sensitively; uniqueness is enforced by the repository.
func (a *Adopter) SetEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" || !strings.Contains(email, "@") {
		return ErrInvalidEmail
	}
	a.Email = email
	return nil
}

// SetCredentialHash stores the opaque password hash.
func (a *Adopter) SetCredentialHash(hash string) error {
	if hash == "" {
		return ErrEmptyHash
	}
	a.CredentialHash = hash
	return nil
}

// UpdateContact applies the optional contact fields.
func (a *Adopter) UpdateContact(phone, address string) {
	a.Phone = strings.TrimSpace(phone)
	a.Address = strings.TrimSpace(address)
}

// Validate re-applies core invariants for persistence.
func (a *Adopter) Validate() error {
	if err := a.SetName(a.Name); err != nil {
		return err
	}
	if err := a.SetEmail(a.Email); err != nil {
		return err
	}
	return a.SetCredentialHash(a.CredentialHash)
}
