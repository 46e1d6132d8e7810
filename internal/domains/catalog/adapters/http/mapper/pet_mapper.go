package mapper

import (
	"fmt"
	"time"

	types "github.com/pawhaven/adoption-api/internal/domains/catalog/application/types"
	"github.com/pawhaven/adoption-api/internal/domains/catalog/domain"
)

// dateLayout is the wire format for birth dates.
const dateLayout = "2006-01-02"

// MutationPet captures inbound payloads for create/update flows while preserving field presence.
type MutationPet struct {
	ID          int64     `json:"id,omitempty"`
	Name        *string   `json:"name,omitempty"`
	Description *string   `json:"description,omitempty"`
	Species     *string   `json:"species,omitempty"`
	Breed       *string   `json:"breed,omitempty"`
	Size        *string   `json:"size,omitempty"`
	Personality *string   `json:"personality,omitempty"`
	BirthDate   *string   `json:"birthDate,omitempty"`
	Status      *string   `json:"status,omitempty"`
	PhotoURLs   *[]string `json:"photoUrls,omitempty"`
}

// Pet is the HTTP representation used for mapping between transport and domain responses.
type Pet struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Species     string    `json:"species"`
	Breed       string    `json:"breed,omitempty"`
	Size        string    `json:"size,omitempty"`
	Personality string    `json:"personality,omitempty"`
	BirthDate   string    `json:"birthDate,omitempty"`
	Status      string    `json:"status"`
	PhotoURLs   []string  `json:"photoUrls"`
	CreatedAt   time.Time `json:"createdAt,omitempty"`
	UpdatedAt   time.Time `json:"updatedAt,omitempty"`
}

// PetPage is the paginated search response.
type PetPage struct {
	Items    []Pet `json:"items"`
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	PageSize int   `json:"pageSize"`
	Pages    int   `json:"pages"`
}

// ToMutationInput maps a transport payload into the application mutation input.
func ToMutationInput(payload MutationPet) (types.PetMutationInput, error) {
	input := types.PetMutationInput{
		ID:          payload.ID,
		Name:        payload.Name,
		Description: payload.Description,
		Species:     payload.Species,
		Breed:       payload.Breed,
		Size:        payload.Size,
		Personality: payload.Personality,
		Status:      payload.Status,
		PhotoURLs:   payload.PhotoURLs,
	}
	if payload.BirthDate != nil {
		parsed, err := time.Parse(dateLayout, *payload.BirthDate)
		if err != nil {
			return types.PetMutationInput{}, fmt.Errorf("birthDate must be formatted as %s: %w", dateLayout, err)
		}
		input.BirthDate = &parsed
	}
	return input, nil
}

// FromProjection maps a projection into a transport Pet.
func FromProjection(p *types.PetProjection) Pet {
	if p == nil || p.Pet == nil {
		return Pet{}
	}
	return fromDomainPet(p.Pet, p.Metadata.CreatedAt, p.Metadata.UpdatedAt)
}

// FromProjectionList maps a projection slice into transport Pets.
func FromProjectionList(list []*types.PetProjection) []Pet {
	result := make([]Pet, 0, len(list))
	for _, p := range list {
		result = append(result, FromProjection(p))
	}
	return result
}

// FromPage maps a search result page, echoing the requested pagination.
func FromPage(page *types.PetPage, requestedPage, pageSize int) PetPage {
	response := PetPage{
		Items:    []Pet{},
		Page:     requestedPage,
		PageSize: pageSize,
	}
	if page == nil {
		return response
	}
	response.Items = FromProjectionList(page.Items)
	response.Total = page.Total
	response.Pages = page.Pages
	return response
}

func fromDomainPet(pet *domain.Pet, createdAt, updatedAt time.Time) Pet {
	result := Pet{
		ID:          pet.ID,
		Name:        pet.Name,
		Description: pet.Description,
		Species:     pet.Species,
		Breed:       pet.Breed,
		Size:        pet.Size,
		Personality: pet.Personality,
		Status:      string(pet.Status),
		PhotoURLs:   append([]string{}, pet.PhotoURLs...),
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}
	if pet.BirthDate != nil {
		result.BirthDate = pet.BirthDate.Format(dateLayout)
	}
	return result
}
