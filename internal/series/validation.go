package series

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Field limits mirroring the column constraints of the series table.
const (
	maxCodeLength     = 10
	maxNameLength     = 100
	maxImageURLLength = 255
	minReleaseYear    = 1999
)

// Validator checks one business rule against a candidate value.
// Implementations read through the Store but never mutate state.
type Validator[T any] interface {
	Validate(ctx context.Context, candidate T) error
}

// ValidatorFunc adapts a function to the Validator interface.
type ValidatorFunc[T any] func(ctx context.Context, candidate T) error

func (f ValidatorFunc[T]) Validate(ctx context.Context, candidate T) error {
	return f(ctx, candidate)
}

// Pipeline is the ordered validator sequence for one operation. Run invokes
// each validator in list order and returns the first failure unchanged;
// validators after a failure are never invoked. An empty pipeline always
// passes. Later validators may rely on the invariants earlier ones confirmed,
// so the order is part of the contract.
type Pipeline[T any] []Validator[T]

// Run executes the pipeline against the candidate.
func (p Pipeline[T]) Run(ctx context.Context, candidate T) error {
	for _, v := range p {
		if err := v.Validate(ctx, candidate); err != nil {
			return err
		}
	}
	return nil
}

// createPipeline guards serie creation: structural constraints first, then
// code uniqueness strictly before name uniqueness. When the code conflicts,
// the name is never queried.
func createPipeline(store Store) Pipeline[Serie] {
	return Pipeline[Serie]{
		serieFields(),
		codeAvailable(store),
		nameAvailable(store),
	}
}

// updatePipeline guards serie updates in strict order: structural
// constraints, id presence, target existence, then code and name uniqueness
// against all other series. The target's own row is excluded from the
// uniqueness checks, so resubmitting unchanged values passes.
func updatePipeline(store Store) Pipeline[Serie] {
	return Pipeline[Serie]{
		serieFields(),
		idPresent(),
		serieExists(store),
		codeAvailableForUpdate(store),
		nameAvailableForUpdate(store),
	}
}

// deletePipeline guards serie deletion against a bare identifier.
func deletePipeline(store Store) Pipeline[uuid.UUID] {
	return Pipeline[uuid.UUID]{
		idExists(store),
	}
}

func serieFields() Validator[Serie] {
	return ValidatorFunc[Serie](func(_ context.Context, s Serie) error {
		switch {
		case strings.TrimSpace(s.Code) == "":
			return fmt.Errorf("code is required: %w", ErrInvalidData)
		case len(s.Code) > maxCodeLength:
			return fmt.Errorf("code exceeds %d characters: %w", maxCodeLength, ErrInvalidData)
		case strings.TrimSpace(s.Name) == "":
			return fmt.Errorf("name is required: %w", ErrInvalidData)
		case len(s.Name) > maxNameLength:
			return fmt.Errorf("name exceeds %d characters: %w", maxNameLength, ErrInvalidData)
		case s.ReleaseYear < minReleaseYear:
			return fmt.Errorf("release year must be %d or later: %w", minReleaseYear, ErrInvalidData)
		}

		if s.ImageURL != nil && len(*s.ImageURL) > maxImageURLLength {
			return fmt.Errorf("image url exceeds %d characters: %w", maxImageURLLength, ErrInvalidData)
		}

		for _, e := range s.Expansions {
			if strings.TrimSpace(e.Code) == "" {
				return fmt.Errorf("expansion code is required: %w", ErrInvalidData)
			}
			// the separators are reserved by the persistence encoding
			if strings.ContainsAny(e.Code, expansionSeparators) ||
				strings.ContainsAny(e.Name, expansionSeparators) {
				return fmt.Errorf("expansion fields may not contain %q: %w", expansionSeparators, ErrInvalidData)
			}
		}

		return nil
	})
}

func codeAvailable(store Store) Validator[Serie] {
	return ValidatorFunc[Serie](func(ctx context.Context, s Serie) error {
		taken, err := store.ExistsByCode(ctx, s.Code)
		if err != nil {
			return fmt.Errorf("check serie code: %w", err)
		}
		if taken {
			return fmt.Errorf("serie code %q: %w", s.Code, ErrDuplicate)
		}
		return nil
	})
}

func nameAvailable(store Store) Validator[Serie] {
	return ValidatorFunc[Serie](func(ctx context.Context, s Serie) error {
		taken, err := store.ExistsByName(ctx, s.Name)
		if err != nil {
			return fmt.Errorf("check serie name: %w", err)
		}
		if taken {
			return fmt.Errorf("serie name %q: %w", s.Name, ErrDuplicate)
		}
		return nil
	})
}

func idPresent() Validator[Serie] {
	return ValidatorFunc[Serie](func(_ context.Context, s Serie) error {
		if s.ID == nil {
			return fmt.Errorf("serie id is required: %w", ErrInvalidData)
		}
		return nil
	})
}

func serieExists(store Store) Validator[Serie] {
	return ValidatorFunc[Serie](func(ctx context.Context, s Serie) error {
		exists, err := store.ExistsByID(ctx, *s.ID)
		if err != nil {
			return fmt.Errorf("check serie existence: %w", err)
		}
		if !exists {
			return fmt.Errorf("serie %s: %w", s.ID, ErrNotFound)
		}
		return nil
	})
}

func codeAvailableForUpdate(store Store) Validator[Serie] {
	return ValidatorFunc[Serie](func(ctx context.Context, s Serie) error {
		taken, err := store.ExistsCodeForOther(ctx, s.Code, *s.ID)
		if err != nil {
			return fmt.Errorf("check serie code: %w", err)
		}
		if taken {
			return fmt.Errorf("serie code %q: %w", s.Code, ErrDuplicate)
		}
		return nil
	})
}

func nameAvailableForUpdate(store Store) Validator[Serie] {
	return ValidatorFunc[Serie](func(ctx context.Context, s Serie) error {
		taken, err := store.ExistsNameForOther(ctx, s.Name, *s.ID)
		if err != nil {
			return fmt.Errorf("check serie name: %w", err)
		}
		if taken {
			return fmt.Errorf("serie name %q: %w", s.Name, ErrDuplicate)
		}
		return nil
	})
}

func idExists(store Store) Validator[uuid.UUID] {
	return ValidatorFunc[uuid.UUID](func(ctx context.Context, id uuid.UUID) error {
		exists, err := store.ExistsByID(ctx, id)
		if err != nil {
			return fmt.Errorf("check serie existence: %w", err)
		}
		if !exists {
			return fmt.Errorf("serie %s: %w", id, ErrNotFound)
		}
		return nil
	})
}
