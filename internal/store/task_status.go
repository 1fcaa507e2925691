package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/task-manager-api/internal/domain"
)

// TaskStatusStore defines the interface for task status persistence.
type TaskStatusStore interface {
	List(ctx context.Context) ([]domain.TaskStatus, error)

	// GetByID returns ErrTaskStatusNotFound if the status does not exist.
	GetByID(ctx context.Context, id int64) (*domain.TaskStatus, error)

	// GetBySlug returns ErrTaskStatusNotFound if no status has the slug.
	GetBySlug(ctx context.Context, slug string) (*domain.TaskStatus, error)

	// Create inserts the status and sets its ID.
	// Returns ErrSlugExists or ErrStatusNameExists on a uniqueness clash.
	Create(ctx context.Context, status *domain.TaskStatus) error

	// Update writes name and slug.
	// Returns ErrTaskStatusNotFound, ErrSlugExists or ErrStatusNameExists.
	Update(ctx context.Context, status *domain.TaskStatus) error

	// Delete returns ErrTaskStatusNotFound, or ErrTaskStatusInUse while tasks reference the status.
	Delete(ctx context.Context, id int64) error

	WithTx(tx *sql.Tx) TaskStatusStore
}
