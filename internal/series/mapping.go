package series

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pkmncore/seriedex/pkg/query"
	"github.com/pkmncore/seriedex/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "series", "s").
	Project("id", "ID").
	Project("code", "Code").
	Project("name", "Name").
	Project("release_year", "ReleaseYear").
	Project("image_url", "ImageURL").
	Project("expansions", "Expansions").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{
	Field:      "ReleaseYear",
	Descending: true,
}

// Record mirrors the series table row. Expansions are flattened to a single
// delimited string; the encoding never leaves this file.
type Record struct {
	ID          uuid.UUID
	Code        string
	Name        string
	ReleaseYear int
	ImageURL    *string
	Expansions  string
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

// Filters contains optional filtering criteria for serie queries.
// Nil fields are ignored. All fields use exact matching.
type Filters struct {
	Code        *string `json:"code,omitempty"`
	Name        *string `json:"name,omitempty"`
	ReleaseYear *int    `json:"release_year,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("Code", f.Code).
		WhereEquals("Name", f.Name).
		WhereEquals("ReleaseYear", f.ReleaseYear)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if c := values.Get("code"); c != "" {
		f.Code = &c
	}

	if n := values.Get("name"); n != "" {
		f.Name = &n
	}

	if y := values.Get("release_year"); y != "" {
		if v, err := strconv.Atoi(y); err == nil {
			f.ReleaseYear = &v
		}
	}

	return f
}

func scanRecord(s repository.Scanner) (Record, error) {
	var r Record
	err := s.Scan(
		&r.ID,
		&r.Code,
		&r.Name,
		&r.ReleaseYear,
		&r.ImageURL,
		&r.Expansions,
		&r.CreatedAt,
		&r.UpdatedAt,
	)
	return r, err
}

// toRecord flattens a domain serie to its persistence shape.
func toRecord(s Serie) Record {
	var id uuid.UUID
	if s.ID != nil {
		id = *s.ID
	}

	return Record{
		ID:          id,
		Code:        s.Code,
		Name:        s.Name,
		ReleaseYear: s.ReleaseYear,
		ImageURL:    s.ImageURL,
		Expansions:  encodeExpansions(s.Expansions),
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

// toDomain maps a persistence record back to the domain shape.
func toDomain(rec Record) (Serie, error) {
	expansions, err := decodeExpansions(rec.Expansions)
	if err != nil {
		return Serie{}, fmt.Errorf("serie %s: %w", rec.ID, err)
	}

	id := rec.ID
	return Serie{
		ID:          &id,
		Code:        rec.Code,
		Name:        rec.Name,
		ReleaseYear: rec.ReleaseYear,
		ImageURL:    rec.ImageURL,
		Expansions:  expansions,
		CreatedAt:   rec.CreatedAt,
		UpdatedAt:   rec.UpdatedAt,
	}, nil
}

// Expansion encoding: expansions are joined with ';', fields within one
// expansion with '|'. Field validation rejects both characters, keeping the
// split/join deterministic.
const (
	expansionDelimiter      = ";"
	expansionFieldDelimiter = "|"
	expansionSeparators     = expansionDelimiter + expansionFieldDelimiter
)

func encodeExpansions(expansions []Expansion) string {
	if len(expansions) == 0 {
		return ""
	}

	segments := make([]string, len(expansions))
	for i, e := range expansions {
		segments[i] = strings.Join(
			[]string{e.ID.String(), e.Code, e.Name},
			expansionFieldDelimiter,
		)
	}
	return strings.Join(segments, expansionDelimiter)
}

func decodeExpansions(encoded string) ([]Expansion, error) {
	if encoded == "" {
		return []Expansion{}, nil
	}

	segments := strings.Split(encoded, expansionDelimiter)
	expansions := make([]Expansion, 0, len(segments))

	for _, segment := range segments {
		fields := strings.Split(segment, expansionFieldDelimiter)
		if len(fields) != 3 {
			return nil, fmt.Errorf("malformed expansion segment %q", segment)
		}

		id, err := uuid.Parse(fields[0])
		if err != nil {
			return nil, fmt.Errorf("malformed expansion id %q: %w", fields[0], err)
		}

		expansions = append(expansions, Expansion{
			ID:   id,
			Code: fields[1],
			Name: fields[2],
		})
	}

	return expansions, nil
}
