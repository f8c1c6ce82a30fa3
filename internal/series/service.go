package series

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/pkmncore/seriedex/pkg/pagination"
	"github.com/pkmncore/seriedex/pkg/storage"
)

type service struct {
	store      Store
	images     storage.System
	logger     *slog.Logger
	pagination pagination.Config

	createValidation Pipeline[Serie]
	updateValidation Pipeline[Serie]
	deleteValidation Pipeline[uuid.UUID]
}

// New creates the serie system backed by PostgreSQL and blob storage.
func New(
	db *sql.DB,
	images storage.System,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return newService(NewStore(db), images, logger, pagination)
}

// newService wires the use cases against an arbitrary Store. The validation
// pipelines are assembled once here; their order is load-bearing.
func newService(
	store Store,
	images storage.System,
	logger *slog.Logger,
	pagination pagination.Config,
) *service {
	return &service{
		store:            store,
		images:           images,
		logger:           logger.With("system", "series"),
		pagination:       pagination,
		createValidation: createPipeline(store),
		updateValidation: updatePipeline(store),
		deleteValidation: deletePipeline(store),
	}
}

func (s *service) Handler(maxImageSize int64) *Handler {
	return NewHandler(s, s.logger, s.pagination, maxImageSize)
}

func (s *service) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Serie], error) {
	page.Normalize(s.pagination)

	records, err := s.store.List(ctx, page, filters)
	if err != nil {
		return nil, err
	}

	content := make([]Serie, len(records.Content))
	for i, rec := range records.Content {
		serie, err := toDomain(rec)
		if err != nil {
			return nil, err
		}
		content[i] = serie
	}

	// page metadata passes through untouched from the store's computation
	return &pagination.PageResult[Serie]{
		Content:       content,
		Page:          records.Page,
		PageSize:      records.PageSize,
		TotalElements: records.TotalElements,
		TotalPages:    records.TotalPages,
		Last:          records.Last,
	}, nil
}

func (s *service) Find(ctx context.Context, id uuid.UUID) (*Serie, error) {
	rec, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	serie, err := toDomain(*rec)
	if err != nil {
		return nil, err
	}
	return &serie, nil
}

func (s *service) FindByCode(ctx context.Context, code string) (*Serie, error) {
	rec, err := s.store.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	serie, err := toDomain(*rec)
	if err != nil {
		return nil, err
	}
	return &serie, nil
}

func (s *service) Create(ctx context.Context, cmd CreateCommand) (*Serie, error) {
	candidate := cmd.serie(time.Now().UTC())

	if err := s.createValidation.Run(ctx, candidate); err != nil {
		return nil, err
	}

	rec, err := s.store.Create(ctx, toRecord(candidate))
	if err != nil {
		return nil, err
	}

	created, err := toDomain(*rec)
	if err != nil {
		return nil, err
	}

	s.logger.Info("serie created",
		"id", created.ID,
		"code", created.Code,
		"name", created.Name,
	)
	return &created, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Serie, error) {
	candidate := cmd.serie(id)

	if err := s.updateValidation.Run(ctx, candidate); err != nil {
		return nil, err
	}

	existing, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	candidate.CreatedAt = existing.CreatedAt
	candidate.UpdatedAt = &now

	rec, err := s.store.Update(ctx, toRecord(candidate))
	if err != nil {
		return nil, err
	}

	updated, err := toDomain(*rec)
	if err != nil {
		return nil, err
	}

	s.logger.Info("serie updated", "id", updated.ID, "code", updated.Code)
	return &updated, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.deleteValidation.Run(ctx, id); err != nil {
		return err
	}

	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("serie deleted", "id", id)
	return nil
}

func (s *service) UploadImage(ctx context.Context, id uuid.UUID, cmd UploadImageCommand) (*Serie, error) {
	rec, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	key := imageKey(id)
	if err := s.images.Upload(ctx, key, bytes.NewReader(cmd.Data), cmd.ContentType); err != nil {
		return nil, fmt.Errorf("upload serie image: %w", err)
	}

	imageURL := imagePath(id)
	now := time.Now().UTC()
	rec.ImageURL = &imageURL
	rec.UpdatedAt = &now

	updated, err := s.store.Update(ctx, *rec)
	if err != nil {
		return nil, err
	}

	serie, err := toDomain(*updated)
	if err != nil {
		return nil, err
	}

	s.logger.Info("serie image stored",
		"id", id,
		"key", key,
		"size_bytes", len(cmd.Data),
	)
	return &serie, nil
}

func (s *service) DownloadImage(ctx context.Context, id uuid.UUID) (io.ReadCloser, string, error) {
	if _, err := s.store.FindByID(ctx, id); err != nil {
		return nil, "", err
	}

	reader, contentType, err := s.images.Download(ctx, imageKey(id))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, "", fmt.Errorf("serie %s: %w", id, ErrNoImage)
		}
		return nil, "", fmt.Errorf("download serie image: %w", err)
	}

	return reader, contentType, nil
}

func imageKey(id uuid.UUID) string {
	return fmt.Sprintf("series/%s/image", id)
}

// imagePath is the API-relative location stamped into image_url after an
// upload. External image URLs set through create/update are left untouched.
func imagePath(id uuid.UUID) string {
	return fmt.Sprintf("/series/%s/image", id)
}
