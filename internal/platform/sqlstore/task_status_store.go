package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/task-manager-api/internal/domain"
	"github.com/phrazzld/task-manager-api/internal/platform/logger"
	"github.com/phrazzld/task-manager-api/internal/store"
)

// Slug first: the slug constraint names contain "slug" but not "name".
var taskStatusUniqueErrors = []columnError{
	{"slug", store.ErrSlugExists},
	{"name", store.ErrStatusNameExists},
}

// TaskStatusStore implements store.TaskStatusStore.
type TaskStatusStore struct {
	q      querier
	logger *slog.Logger
}

// NewTaskStatusStore creates a TaskStatusStore.
func NewTaskStatusStore(db store.DBTX, dialect Dialect, logger *slog.Logger) *TaskStatusStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskStatusStore{
		q:      querier{db: db, dialect: dialect},
		logger: logger.With(slog.String("component", "task_status_store")),
	}
}

var _ store.TaskStatusStore = (*TaskStatusStore)(nil)

// WithTx implements store.TaskStatusStore.WithTx
func (s *TaskStatusStore) WithTx(tx *sql.Tx) store.TaskStatusStore {
	return &TaskStatusStore{q: s.q.withTx(tx), logger: s.logger}
}

func scanTaskStatus(row rowScanner) (*domain.TaskStatus, error) {
	var ts domain.TaskStatus
	if err := row.Scan(&ts.ID, &ts.Name, &ts.Slug, &ts.CreatedAt); err != nil {
		return nil, err
	}
	ts.CreatedAt = ts.CreatedAt.UTC()
	return &ts, nil
}

// List implements store.TaskStatusStore.List
func (s *TaskStatusStore) List(ctx context.Context) ([]domain.TaskStatus, error) {
	rows, err := s.q.query(ctx, `SELECT id, name, slug, created_at FROM task_statuses ORDER BY id`)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list task statuses",
			slog.String("error", err.Error()))
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	statuses := []domain.TaskStatus{}
	for rows.Next() {
		ts, err := scanTaskStatus(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task status: %w", err)
		}
		statuses = append(statuses, *ts)
	}
	return statuses, rows.Err()
}

// GetByID implements store.TaskStatusStore.GetByID
func (s *TaskStatusStore) GetByID(ctx context.Context, id int64) (*domain.TaskStatus, error) {
	return s.getOne(ctx, `SELECT id, name, slug, created_at FROM task_statuses WHERE id = ?`, id)
}

// GetBySlug implements store.TaskStatusStore.GetBySlug
func (s *TaskStatusStore) GetBySlug(ctx context.Context, slug string) (*domain.TaskStatus, error) {
	return s.getOne(ctx, `SELECT id, name, slug, created_at FROM task_statuses WHERE slug = ?`, slug)
}

func (s *TaskStatusStore) getOne(ctx context.Context, query string, arg any) (*domain.TaskStatus, error) {
	ts, err := scanTaskStatus(s.q.queryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrTaskStatusNotFound
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to get task status",
			slog.String("error", err.Error()))
		return nil, err
	}
	return ts, nil
}

// Create implements store.TaskStatusStore.Create
func (s *TaskStatusStore) Create(ctx context.Context, status *domain.TaskStatus) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := status.Validate(); err != nil {
		return err
	}
	status.CreatedAt = dbTime(status.CreatedAt)

	err := s.q.queryRow(ctx,
		`INSERT INTO task_statuses (name, slug, created_at) VALUES (?, ?, ?) RETURNING id`,
		status.Name, status.Slug, status.CreatedAt,
	).Scan(&status.ID)
	if err != nil {
		if dup := s.q.uniqueError(err, taskStatusUniqueErrors); dup != nil {
			log.Debug("duplicate task status", slog.String("slug", status.Slug))
			return dup
		}
		log.Error("failed to create task status", slog.String("error", err.Error()))
		return err
	}

	log.Info("task status created",
		slog.Int64("task_status_id", status.ID),
		slog.String("slug", status.Slug))
	return nil
}

// Update implements store.TaskStatusStore.Update
func (s *TaskStatusStore) Update(ctx context.Context, status *domain.TaskStatus) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := status.Validate(); err != nil {
		return err
	}

	result, err := s.q.exec(ctx,
		`UPDATE task_statuses SET name = ?, slug = ? WHERE id = ?`,
		status.Name, status.Slug, status.ID,
	)
	if err != nil {
		if dup := s.q.uniqueError(err, taskStatusUniqueErrors); dup != nil {
			return dup
		}
		log.Error("failed to update task status",
			slog.String("error", err.Error()),
			slog.Int64("task_status_id", status.ID))
		return err
	}
	if err := checkRowsAffected(result, store.ErrTaskStatusNotFound); err != nil {
		return err
	}

	log.Info("task status updated", slog.Int64("task_status_id", status.ID))
	return nil
}

// Delete implements store.TaskStatusStore.Delete
func (s *TaskStatusStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.q.exec(ctx, `DELETE FROM task_statuses WHERE id = ?`, id)
	if err != nil {
		if s.q.isForeignKeyViolation(err) {
			return store.ErrTaskStatusInUse
		}
		log.Error("failed to delete task status",
			slog.String("error", err.Error()),
			slog.Int64("task_status_id", id))
		return err
	}
	if err := checkRowsAffected(result, store.ErrTaskStatusNotFound); err != nil {
		return err
	}

	log.Info("task status deleted", slog.Int64("task_status_id", id))
	return nil
}
