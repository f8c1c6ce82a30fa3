// Package series implements the Pokémon TCG serie domain for Seriedex.
// It provides types, validation, data access, and business logic for
// creating, querying, updating, and deleting card series and the
// expansions they own.
package series

import (
	"time"

	"github.com/google/uuid"
)

// Serie represents a Pokémon TCG release series. ID is nil until the serie
// has been persisted. UpdatedAt is nil until the serie is first updated.
type Serie struct {
	ID          *uuid.UUID  `json:"id"`
	Code        string      `json:"code"`
	Name        string      `json:"name"`
	ReleaseYear int         `json:"release_year"`
	ImageURL    *string     `json:"image_url"`
	Expansions  []Expansion `json:"expansions"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   *time.Time  `json:"updated_at"`
}

// Expansion is a named sub-release owned by a single Serie. It has no
// independent lifecycle: expansions are stored and removed with their parent.
type Expansion struct {
	ID   uuid.UUID `json:"id"`
	Code string    `json:"code"`
	Name string    `json:"name"`
}

// CreateCommand carries the data needed to register a new serie.
type CreateCommand struct {
	Code        string      `json:"code"`
	Name        string      `json:"name"`
	ReleaseYear int         `json:"release_year"`
	ImageURL    *string     `json:"image_url,omitempty"`
	Expansions  []Expansion `json:"expansions,omitempty"`
}

// UpdateCommand carries the replacement data for an existing serie.
// The target id travels separately as a path parameter.
type UpdateCommand struct {
	Code        string      `json:"code"`
	Name        string      `json:"name"`
	ReleaseYear int         `json:"release_year"`
	ImageURL    *string     `json:"image_url,omitempty"`
	Expansions  []Expansion `json:"expansions,omitempty"`
}

// UploadImageCommand carries raw artwork bytes for a serie.
type UploadImageCommand struct {
	Data        []byte
	ContentType string
}

// serie builds the unpersisted candidate for the create pipeline.
// The id stays nil until the store assigns one.
func (cmd CreateCommand) serie(now time.Time) Serie {
	return Serie{
		Code:        cmd.Code,
		Name:        cmd.Name,
		ReleaseYear: cmd.ReleaseYear,
		ImageURL:    cmd.ImageURL,
		Expansions:  materializeExpansions(cmd.Expansions),
		CreatedAt:   now,
	}
}

// serie builds the candidate for the update pipeline, carrying the target id.
// CreatedAt and UpdatedAt are stamped by the use case after validation.
func (cmd UpdateCommand) serie(id uuid.UUID) Serie {
	return Serie{
		ID:          &id,
		Code:        cmd.Code,
		Name:        cmd.Name,
		ReleaseYear: cmd.ReleaseYear,
		ImageURL:    cmd.ImageURL,
		Expansions:  materializeExpansions(cmd.Expansions),
	}
}

// materializeExpansions assigns ids to expansions submitted without one.
func materializeExpansions(expansions []Expansion) []Expansion {
	out := make([]Expansion, len(expansions))
	for i, e := range expansions {
		if e.ID == uuid.Nil {
			e.ID = uuid.New()
		}
		out[i] = e
	}
	return out
}
