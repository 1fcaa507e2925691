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

var labelUniqueErrors = []columnError{{"name", store.ErrLabelNameExists}}

// LabelStore implements store.LabelStore.
type LabelStore struct {
	q      querier
	logger *slog.Logger
}

// NewLabelStore creates a LabelStore.
func NewLabelStore(db store.DBTX, dialect Dialect, logger *slog.Logger) *LabelStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &LabelStore{
		q:      querier{db: db, dialect: dialect},
		logger: logger.With(slog.String("component", "label_store")),
	}
}

var _ store.LabelStore = (*LabelStore)(nil)

// WithTx implements store.LabelStore.WithTx
func (s *LabelStore) WithTx(tx *sql.Tx) store.LabelStore {
	return &LabelStore{q: s.q.withTx(tx), logger: s.logger}
}

func scanLabel(row rowScanner) (*domain.Label, error) {
	var l domain.Label
	if err := row.Scan(&l.ID, &l.Name, &l.CreatedAt); err != nil {
		return nil, err
	}
	l.CreatedAt = l.CreatedAt.UTC()
	return &l, nil
}

func (s *LabelStore) list(ctx context.Context, query string, args ...any) ([]domain.Label, error) {
	rows, err := s.q.query(ctx, query, args...)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list labels",
			slog.String("error", err.Error()))
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	labels := []domain.Label{}
	for rows.Next() {
		l, err := scanLabel(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan label: %w", err)
		}
		labels = append(labels, *l)
	}
	return labels, rows.Err()
}

// List implements store.LabelStore.List
func (s *LabelStore) List(ctx context.Context) ([]domain.Label, error) {
	return s.list(ctx, `SELECT id, name, created_at FROM labels ORDER BY id`)
}

// GetByIDs implements store.LabelStore.GetByIDs
func (s *LabelStore) GetByIDs(ctx context.Context, ids []int64) ([]domain.Label, error) {
	if len(ids) == 0 {
		return []domain.Label{}, nil
	}
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return s.list(ctx,
		`SELECT id, name, created_at FROM labels WHERE id IN (`+placeholders(len(ids))+`) ORDER BY id`,
		args...)
}

// GetByID implements store.LabelStore.GetByID
func (s *LabelStore) GetByID(ctx context.Context, id int64) (*domain.Label, error) {
	l, err := scanLabel(s.q.queryRow(ctx, `SELECT id, name, created_at FROM labels WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrLabelNotFound
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to get label",
			slog.String("error", err.Error()),
			slog.Int64("label_id", id))
		return nil, err
	}
	return l, nil
}

// Create implements store.LabelStore.Create
func (s *LabelStore) Create(ctx context.Context, label *domain.Label) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := label.Validate(); err != nil {
		return err
	}
	label.CreatedAt = dbTime(label.CreatedAt)

	err := s.q.queryRow(ctx,
		`INSERT INTO labels (name, created_at) VALUES (?, ?) RETURNING id`,
		label.Name, label.CreatedAt,
	).Scan(&label.ID)
	if err != nil {
		if dup := s.q.uniqueError(err, labelUniqueErrors); dup != nil {
			return dup
		}
		log.Error("failed to create label", slog.String("error", err.Error()))
		return err
	}

	log.Info("label created", slog.Int64("label_id", label.ID))
	return nil
}

// Update implements store.LabelStore.Update
func (s *LabelStore) Update(ctx context.Context, label *domain.Label) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := label.Validate(); err != nil {
		return err
	}

	result, err := s.q.exec(ctx, `UPDATE labels SET name = ? WHERE id = ?`, label.Name, label.ID)
	if err != nil {
		if dup := s.q.uniqueError(err, labelUniqueErrors); dup != nil {
			return dup
		}
		log.Error("failed to update label",
			slog.String("error", err.Error()),
			slog.Int64("label_id", label.ID))
		return err
	}
	if err := checkRowsAffected(result, store.ErrLabelNotFound); err != nil {
		return err
	}

	log.Info("label updated", slog.Int64("label_id", label.ID))
	return nil
}

// Delete implements store.LabelStore.Delete. Task associations go with it
// through ON DELETE CASCADE.
func (s *LabelStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.q.exec(ctx, `DELETE FROM labels WHERE id = ?`, id)
	if err != nil {
		log.Error("failed to delete label",
			slog.String("error", err.Error()),
			slog.Int64("label_id", id))
		return err
	}
	if err := checkRowsAffected(result, store.ErrLabelNotFound); err != nil {
		return err
	}

	log.Info("label deleted", slog.Int64("label_id", id))
	return nil
}
