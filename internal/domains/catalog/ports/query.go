package ports

import (
	"time"

	"github.com/pawhaven/adoption-api/internal/domains/catalog/domain"
)

// ClauseKind enumerates the closed set of catalog filter predicates.
// Repositories compile each kind into their native predicate form; there is
// no dynamic field lookup.
type ClauseKind int

const (
	ClauseSpeciesEquals ClauseKind = iota
	ClauseSizeEquals
	ClauseTagIn
	ClauseStatusEquals
	ClauseBornBefore
	ClauseBornAfter
)

// Clause is one filter predicate. Which value field is read depends on Kind:
// Text for the equality kinds, Texts for TagIn, Day for the birth-date kinds.
type Clause struct {
	Kind  ClauseKind
	Text  string
	Texts []string
	Day   time.Time
}

// Matches evaluates the clause against a pet. Unknown stored values simply
// fail the equality check; a pet without a birth date never matches an age
// clause.
func (c Clause) Matches(pet *domain.Pet) bool {
	if pet == nil {
		return false
	}
	switch c.Kind {
	case ClauseSpeciesEquals:
		return pet.Species == c.Text
	case ClauseSizeEquals:
		return pet.Size == c.Text
	case ClauseTagIn:
		for _, tag := range c.Texts {
			if pet.Personality == tag {
				return true
			}
		}
		return false
	case ClauseStatusEquals:
		return string(pet.Status) == c.Text
	case ClauseBornBefore:
		return pet.BirthDate != nil && !pet.BirthDate.After(c.Day)
	case ClauseBornAfter:
		return pet.BirthDate != nil && !pet.BirthDate.Before(c.Day)
	default:
		return false
	}
}

// Query combines the ANDed clause list with pagination parameters.
// Page is 1-indexed and PageSize must be >= 1; the application layer
// validates both before the query reaches a repository.
type Query struct {
	Clauses  []Clause
	Page     int
	PageSize int
}

// Offset returns the row offset for the requested page.
func (q Query) Offset() int {
	return (q.Page - 1) * q.PageSize
}

// PageCount computes ceil(total / pageSize).
func PageCount(total int64, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	return int((total + int64(pageSize) - 1) / int64(pageSize))
}
