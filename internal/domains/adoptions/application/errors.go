package application

import (
	"errors"
	"fmt"

	"github.com/pawhaven/adoption-api/internal/domains/adoptions/domain"
)

// ErrInvalidInput signals the request violated an adoption invariant.
var ErrInvalidInput = errors.New("invalid adoption input")

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrInvalidPetRef) ||
		errors.Is(err, domain.ErrInvalidAdopterRef) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
