package series

import (
	"context"

	"github.com/google/uuid"

	"github.com/pkmncore/seriedex/pkg/pagination"
)

// Store is the persistence port the serie use cases depend on. It trades in
// Records, the flattened persistence shape; translation to the domain shape
// happens in the use-case layer. Every call is a single logical unit of
// work with no implicit transaction spanning calls.
type Store interface {
	// List returns a page of records matching the filters. The request is
	// assumed to be normalized by the caller.
	List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Record], error)
	// FindByID returns the record with the given id, or ErrNotFound.
	FindByID(ctx context.Context, id uuid.UUID) (*Record, error)
	// FindByCode returns the record with the given code (exact, case-sensitive
	// match), or ErrNotFound.
	FindByCode(ctx context.Context, code string) (*Record, error)
	// Create persists a new record, assigning an id when the record carries
	// none. Fails with ErrDuplicate on a uniqueness conflict.
	Create(ctx context.Context, rec Record) (*Record, error)
	// Update replaces the stored record with the same id.
	// Fails with ErrDuplicate on a uniqueness conflict.
	Update(ctx context.Context, rec Record) (*Record, error)
	// Delete removes the record with the given id, or returns ErrNotFound.
	Delete(ctx context.Context, id uuid.UUID) error

	// ExistsByID reports whether a record with the given id exists.
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
	// ExistsByCode reports whether any record carries the given code.
	ExistsByCode(ctx context.Context, code string) (bool, error)
	// ExistsByName reports whether any record carries the given name.
	ExistsByName(ctx context.Context, name string) (bool, error)
	// ExistsCodeForOther reports whether a record other than id carries the code.
	ExistsCodeForOther(ctx context.Context, code string, id uuid.UUID) (bool, error)
	// ExistsNameForOther reports whether a record other than id carries the name.
	ExistsNameForOther(ctx context.Context, name string, id uuid.UUID) (bool, error)
}
