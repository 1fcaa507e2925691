package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/phrazzld/task-manager-api/internal/domain"
	"github.com/phrazzld/task-manager-api/internal/platform/logger"
	"github.com/phrazzld/task-manager-api/internal/store"
)

const taskSelect = `
	SELECT t.id, t.task_index, t.title, t.content, t.status_id, s.slug, t.assignee_id, t.created_at, t.updated_at
	FROM tasks t
	JOIN task_statuses s ON s.id = t.status_id`

// TaskStore implements store.TaskStore.
type TaskStore struct {
	q      querier
	logger *slog.Logger
}

// NewTaskStore creates a TaskStore.
func NewTaskStore(db store.DBTX, dialect Dialect, logger *slog.Logger) *TaskStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskStore{
		q:      querier{db: db, dialect: dialect},
		logger: logger.With(slog.String("component", "task_store")),
	}
}

var _ store.TaskStore = (*TaskStore)(nil)

// WithTx implements store.TaskStore.WithTx
func (s *TaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return &TaskStore{q: s.q.withTx(tx), logger: s.logger}
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var (
		t          domain.Task
		index      sql.NullInt64
		content    sql.NullString
		assigneeID sql.NullInt64
	)
	err := row.Scan(&t.ID, &index, &t.Title, &content, &t.StatusID, &t.StatusSlug, &assigneeID,
		&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	t.Index = int64Ptr(index)
	t.Content = stringPtr(content)
	t.AssigneeID = int64Ptr(assigneeID)
	t.CreatedAt = t.CreatedAt.UTC()
	t.UpdatedAt = t.UpdatedAt.UTC()
	t.LabelIDs = []int64{}
	return &t, nil
}

// escapeLike escapes LIKE wildcards so the text matches literally.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// Find implements store.TaskStore.Find
func (s *TaskStore) Find(ctx context.Context, filter store.TaskFilter) ([]domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var (
		conds []string
		args  []any
	)
	if filter.TitleCont != "" {
		conds = append(conds, `LOWER(t.title) LIKE ? ESCAPE '\'`)
		args = append(args, "%"+escapeLike(strings.ToLower(filter.TitleCont))+"%")
	}
	if filter.AssigneeID != 0 {
		conds = append(conds, `t.assignee_id = ?`)
		args = append(args, filter.AssigneeID)
	}
	if filter.StatusSlug != "" {
		conds = append(conds, `s.slug = ?`)
		args = append(args, filter.StatusSlug)
	}
	if filter.LabelID != 0 {
		conds = append(conds, `EXISTS (SELECT 1 FROM task_labels tl WHERE tl.task_id = t.id AND tl.label_id = ?)`)
		args = append(args, filter.LabelID)
	}

	query := taskSelect
	if len(conds) > 0 {
		query += "\n\tWHERE " + strings.Join(conds, " AND ")
	}
	query += "\n\tORDER BY t.id"

	tasks, err := s.queryTasks(ctx, query, args...)
	if err != nil {
		log.Error("failed to find tasks", slog.String("error", err.Error()))
		return nil, err
	}
	if err := s.attachLabels(ctx, tasks); err != nil {
		log.Error("failed to load task labels", slog.String("error", err.Error()))
		return nil, err
	}

	log.Debug("tasks found", slog.Int("count", len(tasks)))
	return tasks, nil
}

// queryTasks reads every row before returning so the connection is free for
// follow-up queries.
func (s *TaskStore) queryTasks(ctx context.Context, query string, args ...any) ([]domain.Task, error) {
	rows, err := s.q.query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	tasks := []domain.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}

func (s *TaskStore) attachLabels(ctx context.Context, tasks []domain.Task) error {
	if len(tasks) == 0 {
		return nil
	}

	byID := make(map[int64]int, len(tasks))
	args := make([]any, len(tasks))
	for i, t := range tasks {
		byID[t.ID] = i
		args[i] = t.ID
	}

	rows, err := s.q.query(ctx,
		`SELECT task_id, label_id FROM task_labels WHERE task_id IN (`+placeholders(len(tasks))+`) ORDER BY task_id, label_id`,
		args...)
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var taskID, labelID int64
		if err := rows.Scan(&taskID, &labelID); err != nil {
			return fmt.Errorf("failed to scan task label: %w", err)
		}
		if i, ok := byID[taskID]; ok {
			tasks[i].LabelIDs = append(tasks[i].LabelIDs, labelID)
		}
	}
	return rows.Err()
}

// GetByID implements store.TaskStore.GetByID
func (s *TaskStore) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	t, err := scanTask(s.q.queryRow(ctx, taskSelect+"\n\tWHERE t.id = ?", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to get task",
			slog.String("error", err.Error()),
			slog.Int64("task_id", id))
		return nil, err
	}

	tasks := []domain.Task{*t}
	if err := s.attachLabels(ctx, tasks); err != nil {
		return nil, err
	}
	return &tasks[0], nil
}

// Create implements store.TaskStore.Create. Run it in a transaction so the
// task and its label rows are written together.
func (s *TaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		return err
	}
	task.CreatedAt = dbTime(task.CreatedAt)
	task.UpdatedAt = task.CreatedAt

	err := s.q.queryRow(ctx, `
		INSERT INTO tasks (task_index, title, content, status_id, assignee_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING id`,
		nullInt64(task.Index),
		task.Title,
		nullString(task.Content),
		task.StatusID,
		nullInt64(task.AssigneeID),
		task.CreatedAt,
		task.UpdatedAt,
	).Scan(&task.ID)
	if err != nil {
		if s.q.isForeignKeyViolation(err) {
			return MapError(s.q.dialect, err)
		}
		log.Error("failed to create task", slog.String("error", err.Error()))
		return err
	}

	if err := s.insertLabels(ctx, task); err != nil {
		return err
	}

	log.Info("task created", slog.Int64("task_id", task.ID))
	return nil
}

// Update implements store.TaskStore.Update
func (s *TaskStore) Update(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		return err
	}
	task.UpdatedAt = dbTime(task.UpdatedAt)

	result, err := s.q.exec(ctx, `
		UPDATE tasks
		SET task_index = ?, title = ?, content = ?, status_id = ?, assignee_id = ?, updated_at = ?
		WHERE id = ?`,
		nullInt64(task.Index),
		task.Title,
		nullString(task.Content),
		task.StatusID,
		nullInt64(task.AssigneeID),
		task.UpdatedAt,
		task.ID,
	)
	if err != nil {
		if s.q.isForeignKeyViolation(err) {
			return MapError(s.q.dialect, err)
		}
		log.Error("failed to update task",
			slog.String("error", err.Error()),
			slog.Int64("task_id", task.ID))
		return err
	}
	if err := checkRowsAffected(result, store.ErrTaskNotFound); err != nil {
		return err
	}

	if _, err := s.q.exec(ctx, `DELETE FROM task_labels WHERE task_id = ?`, task.ID); err != nil {
		return fmt.Errorf("failed to clear task labels: %w", err)
	}
	if err := s.insertLabels(ctx, task); err != nil {
		return err
	}

	log.Info("task updated", slog.Int64("task_id", task.ID))
	return nil
}

func (s *TaskStore) insertLabels(ctx context.Context, task *domain.Task) error {
	ids := slices.Clone(task.LabelIDs)
	slices.Sort(ids)
	ids = slices.Compact(ids)

	for _, labelID := range ids {
		_, err := s.q.exec(ctx,
			`INSERT INTO task_labels (task_id, label_id) VALUES (?, ?)`,
			task.ID, labelID)
		if err != nil {
			if s.q.isForeignKeyViolation(err) {
				return fmt.Errorf("%w: label %d", store.ErrLabelNotFound, labelID)
			}
			return fmt.Errorf("failed to attach label %d: %w", labelID, err)
		}
	}

	if ids == nil {
		ids = []int64{}
	}
	task.LabelIDs = ids
	return nil
}

// Delete implements store.TaskStore.Delete
func (s *TaskStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.q.exec(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		log.Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.Int64("task_id", id))
		return err
	}
	if err := checkRowsAffected(result, store.ErrTaskNotFound); err != nil {
		return err
	}

	log.Info("task deleted", slog.Int64("task_id", id))
	return nil
}
