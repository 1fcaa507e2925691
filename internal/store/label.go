package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/task-manager-api/internal/domain"
)

// LabelStore defines the interface for label persistence.
type LabelStore interface {
	List(ctx context.Context) ([]domain.Label, error)

	// GetByID returns ErrLabelNotFound if the label does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Label, error)

	// GetByIDs returns the labels with the given IDs, in ID order. Missing IDs
	// are simply absent from the result.
	GetByIDs(ctx context.Context, ids []int64) ([]domain.Label, error)

	// Create inserts the label and sets its ID. Returns ErrLabelNameExists on a name clash.
	Create(ctx context.Context, label *domain.Label) error

	// Update returns ErrLabelNotFound or ErrLabelNameExists.
	Update(ctx context.Context, label *domain.Label) error

	// Delete removes the label and its task associations.
	// Returns ErrLabelNotFound if the label does not exist.
	Delete(ctx context.Context, id int64) error

	WithTx(tx *sql.Tx) LabelStore
}
