package series

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/pkmncore/seriedex/pkg/pagination"
	"github.com/pkmncore/seriedex/pkg/query"
	"github.com/pkmncore/seriedex/pkg/repository"
)

type store struct {
	db *sql.DB
}

// NewStore creates the PostgreSQL-backed serie store. Uniqueness of code and
// name is ultimately guarded by the table's unique constraints; the
// validation pipelines only provide the fast-fail path.
func NewStore(db *sql.DB) Store {
	return &store{db: db}
}

func (s *store) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Record], error) {
	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Code", "Name")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := s.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count series: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	records, err := repository.QueryMany(ctx, s.db, pageSQL, pageArgs, scanRecord)
	if err != nil {
		return nil, fmt.Errorf("query series: %w", err)
	}

	result := pagination.NewPageResult(records, total, page.Page, page.PageSize)
	return &result, nil
}

func (s *store) FindByID(ctx context.Context, id uuid.UUID) (*Record, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	rec, err := repository.QueryOne(ctx, s.db, q, args, scanRecord)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &rec, nil
}

func (s *store) FindByCode(ctx context.Context, code string) (*Record, error) {
	q, args := query.NewBuilder(projection).BuildSingle("Code", code)

	rec, err := repository.QueryOne(ctx, s.db, q, args, scanRecord)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &rec, nil
}

func (s *store) Create(ctx context.Context, rec Record) (*Record, error) {
	id := rec.ID
	if id == uuid.Nil {
		id = uuid.New()
	}

	q := `
		INSERT INTO series(id, code, name, release_year, image_url, expansions, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, code, name, release_year, image_url, expansions, created_at, updated_at`

	insertArgs := []any{
		id,
		rec.Code,
		rec.Name,
		rec.ReleaseYear,
		rec.ImageURL,
		rec.Expansions,
		rec.CreatedAt,
	}

	created, err := repository.WithTx(ctx, s.db, func(tx *sql.Tx) (Record, error) {
		return repository.QueryOne(ctx, tx, q, insertArgs, scanRecord)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &created, nil
}

func (s *store) Update(ctx context.Context, rec Record) (*Record, error) {
	q := `
		UPDATE series
		SET code = $1, name = $2, release_year = $3, image_url = $4,
			expansions = $5, updated_at = $6
		WHERE id = $7
		RETURNING id, code, name, release_year, image_url, expansions, created_at, updated_at`

	updateArgs := []any{
		rec.Code,
		rec.Name,
		rec.ReleaseYear,
		rec.ImageURL,
		rec.Expansions,
		rec.UpdatedAt,
		rec.ID,
	}

	updated, err := repository.WithTx(ctx, s.db, func(tx *sql.Tx) (Record, error) {
		return repository.QueryOne(ctx, tx, q, updateArgs, scanRecord)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &updated, nil
}

func (s *store) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := repository.WithTx(ctx, s.db, func(tx *sql.Tx) (struct{}, error) {
		if err := repository.ExecExpectOne(
			ctx, tx,
			"DELETE FROM series WHERE id = $1",
			id,
		); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, nil
	})

	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return nil
}

func (s *store) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	q, args := query.
		NewBuilder(projection).
		WhereEquals("ID", id).
		BuildExists()
	return repository.QueryExists(ctx, s.db, q, args...)
}

func (s *store) ExistsByCode(ctx context.Context, code string) (bool, error) {
	q, args := query.
		NewBuilder(projection).
		WhereEquals("Code", code).
		BuildExists()
	return repository.QueryExists(ctx, s.db, q, args...)
}

func (s *store) ExistsByName(ctx context.Context, name string) (bool, error) {
	q, args := query.
		NewBuilder(projection).
		WhereEquals("Name", name).
		BuildExists()
	return repository.QueryExists(ctx, s.db, q, args...)
}

func (s *store) ExistsCodeForOther(ctx context.Context, code string, id uuid.UUID) (bool, error) {
	q, args := query.
		NewBuilder(projection).
		WhereEquals("Code", code).
		WhereNotEquals("ID", id).
		BuildExists()
	return repository.QueryExists(ctx, s.db, q, args...)
}

func (s *store) ExistsNameForOther(ctx context.Context, name string, id uuid.UUID) (bool, error) {
	q, args := query.
		NewBuilder(projection).
		WhereEquals("Name", name).
		WhereNotEquals("ID", id).
		BuildExists()
	return repository.QueryExists(ctx, s.db, q, args...)
}
