package series

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/pkmncore/seriedex/pkg/lifecycle"
	"github.com/pkmncore/seriedex/pkg/pagination"
	"github.com/pkmncore/seriedex/pkg/storage"
)

// fakeStore records which Store methods were invoked, in order, and serves
// canned responses from an in-memory record map.
type fakeStore struct {
	calls   []string
	records map[uuid.UUID]Record

	codeTaken      bool
	nameTaken      bool
	codeTakenOther bool
	nameTakenOther bool

	createErr error
	updateErr error
}

func newFakeStore(records ...Record) *fakeStore {
	s := &fakeStore{records: make(map[uuid.UUID]Record)}
	for _, rec := range records {
		s.records[rec.ID] = rec
	}
	return s
}

func (s *fakeStore) record(call string) {
	s.calls = append(s.calls, call)
}

func (s *fakeStore) List(
	_ context.Context,
	page pagination.PageRequest,
	_ Filters,
) (*pagination.PageResult[Record], error) {
	s.record("List")

	content := make([]Record, 0, len(s.records))
	for _, rec := range s.records {
		content = append(content, rec)
	}

	result := pagination.NewPageResult(content, len(content), page.Page, page.PageSize)
	return &result, nil
}

func (s *fakeStore) FindByID(_ context.Context, id uuid.UUID) (*Record, error) {
	s.record("FindByID")
	rec, ok := s.records[id]
	if !ok {
		return nil, fmt.Errorf("serie %s: %w", id, ErrNotFound)
	}
	return &rec, nil
}

func (s *fakeStore) FindByCode(_ context.Context, code string) (*Record, error) {
	s.record("FindByCode")
	for _, rec := range s.records {
		if rec.Code == code {
			return &rec, nil
		}
	}
	return nil, fmt.Errorf("serie code %q: %w", code, ErrNotFound)
}

func (s *fakeStore) Create(_ context.Context, rec Record) (*Record, error) {
	s.record("Create")
	if s.createErr != nil {
		return nil, s.createErr
	}
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	s.records[rec.ID] = rec
	return &rec, nil
}

func (s *fakeStore) Update(_ context.Context, rec Record) (*Record, error) {
	s.record("Update")
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	if _, ok := s.records[rec.ID]; !ok {
		return nil, fmt.Errorf("serie %s: %w", rec.ID, ErrNotFound)
	}
	s.records[rec.ID] = rec
	return &rec, nil
}

func (s *fakeStore) Delete(_ context.Context, id uuid.UUID) error {
	s.record("Delete")
	if _, ok := s.records[id]; !ok {
		return fmt.Errorf("serie %s: %w", id, ErrNotFound)
	}
	delete(s.records, id)
	return nil
}

func (s *fakeStore) ExistsByID(_ context.Context, id uuid.UUID) (bool, error) {
	s.record("ExistsByID")
	_, ok := s.records[id]
	return ok, nil
}

func (s *fakeStore) ExistsByCode(_ context.Context, _ string) (bool, error) {
	s.record("ExistsByCode")
	return s.codeTaken, nil
}

func (s *fakeStore) ExistsByName(_ context.Context, _ string) (bool, error) {
	s.record("ExistsByName")
	return s.nameTaken, nil
}

func (s *fakeStore) ExistsCodeForOther(_ context.Context, _ string, _ uuid.UUID) (bool, error) {
	s.record("ExistsCodeForOther")
	return s.codeTakenOther, nil
}

func (s *fakeStore) ExistsNameForOther(_ context.Context, _ string, _ uuid.UUID) (bool, error) {
	s.record("ExistsNameForOther")
	return s.nameTakenOther, nil
}

// fakeStorage serves a single in-memory blob for every key.
type fakeStorage struct {
	data        []byte
	contentType string
	uploads     int
	hasBlob     bool
}

func (f *fakeStorage) Start(_ *lifecycle.Coordinator) error { return nil }

func (f *fakeStorage) Upload(_ context.Context, _ string, reader io.Reader, contentType string) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	f.data = data
	f.contentType = contentType
	f.uploads++
	f.hasBlob = true
	return nil
}

func (f *fakeStorage) Download(_ context.Context, _ string) (io.ReadCloser, string, error) {
	if !f.hasBlob {
		return nil, "", storage.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(f.data)), f.contentType, nil
}

func (f *fakeStorage) Delete(_ context.Context, _ string) error {
	if !f.hasBlob {
		return storage.ErrNotFound
	}
	f.hasBlob = false
	return nil
}

func (f *fakeStorage) Exists(_ context.Context, _ string) (bool, error) {
	return f.hasBlob, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig() pagination.Config {
	return pagination.Config{DefaultPageSize: 20, MaxPageSize: 100}
}

func testRecord(code, name string) Record {
	return Record{
		ID:          uuid.New(),
		Code:        code,
		Name:        name,
		ReleaseYear: 2020,
		CreatedAt:   time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}
