package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"time"

	"github.com/phrazzld/task-manager-api/internal/domain"
	"github.com/phrazzld/task-manager-api/internal/platform/logger"
	"github.com/phrazzld/task-manager-api/internal/store"
)

// TaskCreateInput is the payload for creating a task. Status is a task status slug.
type TaskCreateInput struct {
	Index      *int64  `json:"index"`
	Title      string  `json:"title" validate:"notblank,max=255"`
	Content    *string `json:"content"`
	Status     string  `json:"status" validate:"notblank"`
	AssigneeID *int64  `json:"assignee_id"`
	LabelIDs   []int64 `json:"taskLabelIds"`
}

// TaskUpdateInput is the partial-update payload for a task. A present
// taskLabelIds replaces the whole label set; null clears it.
type TaskUpdateInput struct {
	Index      domain.Optional[int64]   `json:"index"`
	Title      domain.Optional[string]  `json:"title"`
	Content    domain.Optional[string]  `json:"content"`
	Status     domain.Optional[string]  `json:"status"`
	AssigneeID domain.Optional[int64]   `json:"assignee_id"`
	LabelIDs   domain.Optional[[]int64] `json:"taskLabelIds"`
}

// TaskService manages tasks and their references to statuses, users and labels.
type TaskService struct {
	taskStore   store.TaskStore
	statusStore store.TaskStatusStore
	userStore   store.UserStore
	labelStore  store.LabelStore
	db          *sql.DB
	logger      *slog.Logger
}

var _ Resource[domain.Task, TaskCreateInput, TaskUpdateInput] = (*TaskService)(nil)

// NewTaskService creates a new TaskService.
// It returns an error if any of the required dependencies are nil.
func NewTaskService(
	taskStore store.TaskStore,
	statusStore store.TaskStatusStore,
	userStore store.UserStore,
	labelStore store.LabelStore,
	db *sql.DB,
	logger *slog.Logger,
) (*TaskService, error) {
	switch {
	case taskStore == nil:
		return nil, fmt.Errorf("taskStore cannot be nil")
	case statusStore == nil:
		return nil, fmt.Errorf("statusStore cannot be nil")
	case userStore == nil:
		return nil, fmt.Errorf("userStore cannot be nil")
	case labelStore == nil:
		return nil, fmt.Errorf("labelStore cannot be nil")
	case db == nil:
		return nil, fmt.Errorf("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &TaskService{
		taskStore:   taskStore,
		statusStore: statusStore,
		userStore:   userStore,
		labelStore:  labelStore,
		db:          db,
		logger:      logger.With(slog.String("component", "task_service")),
	}, nil
}

// List returns all tasks.
func (s *TaskService) List(ctx context.Context) ([]domain.Task, error) {
	return s.Find(ctx, store.TaskFilter{})
}

// Find returns the tasks matching every set criterion of filter.
func (s *TaskService) Find(ctx context.Context, filter store.TaskFilter) ([]domain.Task, error) {
	tasks, err := s.taskStore.Find(ctx, filter)
	if err != nil {
		logFailure(logger.FromContextOrDefault(ctx, s.logger), "failed to list tasks", err)
		return nil, NewServiceError("task", "list", "failed to list tasks", err)
	}
	return tasks, nil
}

// Get returns the task with the given ID.
func (s *TaskService) Get(ctx context.Context, id int64) (*domain.Task, error) {
	task, err := s.taskStore.GetByID(ctx, id)
	if err != nil {
		logFailure(logger.FromContextOrDefault(ctx, s.logger), "failed to get task", err,
			slog.Int64("task_id", id))
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return task, nil
}

// Create validates the input, resolves its references and stores the task
// together with its labels.
func (s *TaskService) Create(ctx context.Context, input TaskCreateInput) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := domain.ValidateStruct(input); err != nil {
		log.Debug("invalid task input", slog.String("error", err.Error()))
		return nil, err
	}

	now := time.Now().UTC()
	task := &domain.Task{
		Index:      input.Index,
		Title:      input.Title,
		Content:    input.Content,
		StatusSlug: input.Status,
		AssigneeID: input.AssigneeID,
		LabelIDs:   input.LabelIDs,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		if err := s.resolveReferences(ctx, tx, task); err != nil {
			return err
		}
		return s.taskStore.WithTx(tx).Create(ctx, task)
	})
	if err != nil {
		logFailure(log, "failed to create task", err)
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	log.Info("task created", slog.Int64("task_id", task.ID))
	return task, nil
}

// Update merges the present fields of input into the stored task.
func (s *TaskService) Update(ctx context.Context, id int64, input TaskUpdateInput) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var updated *domain.Task
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.taskStore.WithTx(tx)

		task, err := txStore.GetByID(ctx, id)
		if err != nil {
			return err
		}

		ve := &domain.ValidationError{}
		applyRequired("title", input.Title, &task.Title, ve)
		applyRequired("status", input.Status, &task.StatusSlug, ve)
		input.Index.ApplyNullable(&task.Index)
		input.Content.ApplyNullable(&task.Content)
		input.AssigneeID.ApplyNullable(&task.AssigneeID)
		if input.LabelIDs.IsSet() {
			task.LabelIDs, _ = input.LabelIDs.Value()
		}
		if err := validateAll(ve, task.Validate()); err != nil {
			return err
		}

		if err := s.resolveReferences(ctx, tx, task); err != nil {
			return err
		}

		task.UpdatedAt = time.Now().UTC()
		if err := txStore.Update(ctx, task); err != nil {
			return err
		}
		updated = task
		return nil
	})
	if err != nil {
		logFailure(log, "failed to update task", err, slog.Int64("task_id", id))
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	log.Info("task updated", slog.Int64("task_id", id))
	return updated, nil
}

// Delete removes a task and its label links.
func (s *TaskService) Delete(ctx context.Context, id int64) error {
	if err := s.taskStore.Delete(ctx, id); err != nil {
		logFailure(logger.FromContextOrDefault(ctx, s.logger), "failed to delete task", err,
			slog.Int64("task_id", id))
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

// resolveReferences maps the status slug to its ID and checks that the
// assignee and every label exist. Missing references are reported as
// validation errors on the field that named them.
func (s *TaskService) resolveReferences(ctx context.Context, tx *sql.Tx, task *domain.Task) error {
	ve := &domain.ValidationError{}

	status, err := s.statusStore.WithTx(tx).GetBySlug(ctx, task.StatusSlug)
	switch {
	case err == nil:
		task.StatusID = status.ID
	case store.IsNotFoundError(err):
		ve.Add("status", fmt.Sprintf("task status %q does not exist", task.StatusSlug))
	default:
		return err
	}

	if task.AssigneeID != nil {
		_, err := s.userStore.WithTx(tx).GetByID(ctx, *task.AssigneeID)
		switch {
		case err == nil:
		case store.IsNotFoundError(err):
			ve.Add("assignee_id", "user "+strconv.FormatInt(*task.AssigneeID, 10)+" does not exist")
		default:
			return err
		}
	}

	if len(task.LabelIDs) > 0 {
		labels, err := s.labelStore.WithTx(tx).GetByIDs(ctx, task.LabelIDs)
		if err != nil {
			return err
		}
		for _, id := range task.LabelIDs {
			found := slices.ContainsFunc(labels, func(l domain.Label) bool { return l.ID == id })
			if !found {
				ve.Add("taskLabelIds", "label "+strconv.FormatInt(id, 10)+" does not exist")
			}
		}
	}

	return ve.Err()
}
