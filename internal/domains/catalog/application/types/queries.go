package types

// Catalog search defaults mirror the public catalog view: hide claimed pets
// unless the caller asks otherwise, eight pets per page.
const (
	DefaultStatus   = "available"
	DefaultPage     = 1
	DefaultPageSize = 8
)

// SearchInput carries the optional catalog filters plus pagination.
// Nil pointers mean "not supplied"; the service applies defaults and
// translates the input into the repository's clause set.
type SearchInput struct {
	Species         *string
	Size            *string
	PersonalityTags []string
	Status          *string
	AgeMinYears     *int
	AgeMaxYears     *int
	Page            *int
	PageSize        *int
}

// PetIdentifier references a pet by its aggregate ID.
type PetIdentifier struct {
	ID int64
}
