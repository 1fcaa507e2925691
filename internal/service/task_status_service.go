package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/task-manager-api/internal/domain"
	"github.com/phrazzld/task-manager-api/internal/platform/logger"
	"github.com/phrazzld/task-manager-api/internal/store"
)

// TaskStatusCreateInput is the payload for creating a task status.
type TaskStatusCreateInput struct {
	Name string `json:"name" validate:"notblank,max=255"`
	Slug string `json:"slug" validate:"notblank,max=255"`
}

// TaskStatusUpdateInput is the partial-update payload for a task status.
type TaskStatusUpdateInput struct {
	Name domain.Optional[string] `json:"name"`
	Slug domain.Optional[string] `json:"slug"`
}

// TaskStatusService manages the workflow states tasks can be in.
type TaskStatusService struct {
	statusStore store.TaskStatusStore
	db          *sql.DB
	logger      *slog.Logger
}

var _ Resource[domain.TaskStatus, TaskStatusCreateInput, TaskStatusUpdateInput] = (*TaskStatusService)(nil)

// NewTaskStatusService creates a new TaskStatusService.
func NewTaskStatusService(
	statusStore store.TaskStatusStore,
	db *sql.DB,
	logger *slog.Logger,
) (*TaskStatusService, error) {
	if statusStore == nil {
		return nil, fmt.Errorf("statusStore cannot be nil")
	}
	if db == nil {
		return nil, fmt.Errorf("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &TaskStatusService{
		statusStore: statusStore,
		db:          db,
		logger:      logger.With(slog.String("component", "task_status_service")),
	}, nil
}

// List returns all task statuses.
func (s *TaskStatusService) List(ctx context.Context) ([]domain.TaskStatus, error) {
	statuses, err := s.statusStore.List(ctx)
	if err != nil {
		logFailure(logger.FromContextOrDefault(ctx, s.logger), "failed to list task statuses", err)
		return nil, NewServiceError("task status", "list", "failed to list task statuses", err)
	}
	return statuses, nil
}

// Get returns the task status with the given ID.
func (s *TaskStatusService) Get(ctx context.Context, id int64) (*domain.TaskStatus, error) {
	status, err := s.statusStore.GetByID(ctx, id)
	if err != nil {
		logFailure(logger.FromContextOrDefault(ctx, s.logger), "failed to get task status", err,
			slog.Int64("status_id", id))
		return nil, fmt.Errorf("failed to get task status: %w", err)
	}
	return status, nil
}

// Create stores a new task status. Name and slug must both be unique.
func (s *TaskStatusService) Create(ctx context.Context, input TaskStatusCreateInput) (*domain.TaskStatus, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := domain.ValidateStruct(input); err != nil {
		log.Debug("invalid task status input", slog.String("error", err.Error()))
		return nil, err
	}

	status, err := domain.NewTaskStatus(input.Name, input.Slug)
	if err != nil {
		return nil, err
	}

	if err := s.statusStore.Create(ctx, status); err != nil {
		logFailure(log, "failed to create task status", err)
		return nil, fmt.Errorf("failed to create task status: %w", err)
	}
	return status, nil
}

// Update merges the present fields of input into the stored task status.
func (s *TaskStatusService) Update(
	ctx context.Context,
	id int64,
	input TaskStatusUpdateInput,
) (*domain.TaskStatus, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var updated *domain.TaskStatus
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.statusStore.WithTx(tx)

		status, err := txStore.GetByID(ctx, id)
		if err != nil {
			return err
		}

		ve := &domain.ValidationError{}
		applyRequired("name", input.Name, &status.Name, ve)
		applyRequired("slug", input.Slug, &status.Slug, ve)
		if err := validateAll(ve, status.Validate()); err != nil {
			return err
		}

		if err := txStore.Update(ctx, status); err != nil {
			return err
		}
		updated = status
		return nil
	})
	if err != nil {
		logFailure(log, "failed to update task status", err, slog.Int64("status_id", id))
		return nil, fmt.Errorf("failed to update task status: %w", err)
	}
	return updated, nil
}

// Delete removes a task status. Statuses referenced by tasks cannot be deleted.
func (s *TaskStatusService) Delete(ctx context.Context, id int64) error {
	if err := s.statusStore.Delete(ctx, id); err != nil {
		logFailure(logger.FromContextOrDefault(ctx, s.logger), "failed to delete task status", err,
			slog.Int64("status_id", id))
		return fmt.Errorf("failed to delete task status: %w", err)
	}
	return nil
}
