package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/task-manager-api/internal/domain"
)

// TaskFilter narrows a task listing. Zero-valued fields do not filter.
type TaskFilter struct {
	// TitleCont matches tasks whose title contains the text, case-insensitively.
	TitleCont  string
	AssigneeID int64
	// StatusSlug matches tasks in the status with this slug.
	StatusSlug string
	LabelID    int64
}

// TaskStore defines the interface for task persistence. Returned tasks carry
// their status slug and label IDs.
type TaskStore interface {
	// Find returns the tasks matching filter ordered by ID.
	Find(ctx context.Context, filter TaskFilter) ([]domain.Task, error)

	// GetByID returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Task, error)

	// Create inserts the task and its label associations and sets its ID.
	// StatusID must reference an existing status.
	Create(ctx context.Context, task *domain.Task) error

	// Update writes every mutable field and replaces the label associations.
	// Returns ErrTaskNotFound if the task does not exist.
	Update(ctx context.Context, task *domain.Task) error

	// Delete removes the task and its label associations.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id int64) error

	WithTx(tx *sql.Tx) TaskStore
}
