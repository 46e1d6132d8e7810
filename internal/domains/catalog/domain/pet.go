package domain

import (
	"errors"
	"strings"
	"time"
)

// Status represents the availability state of a pet inside the catalog.
type Status string

const (
	StatusAvailable Status = "available"
	StatusClaimed   Status = "claimed"
)

var (
	ErrEmptyName      = errors.New("pet name is required")
	ErrEmptySpecies   = errors.New("pet species is required")
	ErrInvalidStatus  = errors.New("pet status is invalid")
	ErrAlreadyClaimed = errors.New("pet is already claimed")
)

// Pet represents the aggregate managed by the catalog bounded context.
type Pet struct {
	ID          int64
	Name        string
	Description string
	Species     string
	Breed       string
	Size        string
	Personality string
	BirthDate   *time.Time
	Status      Status
	PhotoURLs   []string
}

// NewPet validates the invariants and builds a new Pet aggregate.
func NewPet(id int64, name, species string) (*Pet, error) {
	p := &Pet{ID: id, Status: StatusAvailable}
	if err := p.Rename(name); err != nil {
		return nil, err
	}
	if err := p.SetSpecies(species); err != nil {
		return nil, err
	}
	return p, nil
}

// Rename mutates the pet name ensuring the invariant.
func (p *Pet) Rename(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	p.Name = name
	return nil
}

// SetSpecies mutates the species ensuring it is present.
func (p *Pet) SetSpecies(species string) error {
	if strings.TrimSpace(species) == "" {
		return ErrEmptySpecies
	}
	p.Species = species
	return nil
}

// SetBirthDate stores the birth date truncated to day granularity (UTC).
// A nil value clears the birth date.
func (p *Pet) SetBirthDate(birthDate *time.Time) {
	if birthDate == nil {
		p.BirthDate = nil
		return
	}
	day := TruncateToDay(*birthDate)
	p.BirthDate = &day
}

// ReplacePhotos swaps the photo URL list. The first entry is the primary photo.
func (p *Pet) ReplacePhotos(urls []string) {
	p.PhotoURLs = append([]string{}, urls...)
}

// UpdateStatus accepts only known availability states; empty defaults to available.
func (p *Pet) UpdateStatus(status Status) error {
	if status == "" {
		status = StatusAvailable
	}
	switch status {
	case StatusAvailable, StatusClaimed:
		p.Status = status
		return nil
	default:
		return ErrInvalidStatus
	}
}

// Claim transitions available -> claimed. The only other transition is Release.
func (p *Pet) Claim() error {
	if p.Status == StatusClaimed {
		return ErrAlreadyClaimed
	}
	p.Status = StatusClaimed
	return nil
}

// Release transitions the pet back to available regardless of current state.
func (p *Pet) Release() {
	p.Status = StatusAvailable
}

// Validate re-applies core invariants for persistence.
func (p *Pet) Validate() error {
	if err := p.Rename(p.Name); err != nil {
		return err
	}
	if err := p.SetSpecies(p.Species); err != nil {
		return err
	}
	return p.UpdateStatus(p.Status)
}

// TruncateToDay normalizes a timestamp to UTC midnight. Catalog age filters
// operate at day granularity.
func TruncateToDay(t time.Time) time.Time {
	year, month, day := t.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
