package application

import (
	"errors"
	"fmt"

	"github.com/pawhaven/adoption-api/internal/domains/adopters/domain"
)

// ErrInvalidInput signals the request violated an adopter invariant.
var ErrInvalidInput = errors.New("invalid adopter input")

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyName) ||
		errors.Is(err, domain.ErrInvalidEmail) ||
		errors.Is(err, domain.ErrEmptyHash) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
