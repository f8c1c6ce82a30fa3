package series

import (
	"context"
	"io"

	"github.com/google/uuid"

	"github.com/pkmncore/seriedex/pkg/pagination"
)

// System defines the public contract for serie domain operations.
type System interface {
	Handler(maxImageSize int64) *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Serie], error)

	Find(ctx context.Context, id uuid.UUID) (*Serie, error)
	FindByCode(ctx context.Context, code string) (*Serie, error)
	Create(ctx context.Context, cmd CreateCommand) (*Serie, error)
	Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Serie, error)
	Delete(ctx context.Context, id uuid.UUID) error

	UploadImage(ctx context.Context, id uuid.UUID, cmd UploadImageCommand) (*Serie, error)
	DownloadImage(ctx context.Context, id uuid.UUID) (io.ReadCloser, string, error)
}
