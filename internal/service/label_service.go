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

// LabelCreateInput is the payload for creating a label.
type LabelCreateInput struct {
	Name string `json:"name" validate:"notblank,min=3,max=1000"`
}

// LabelUpdateInput is the partial-update payload for a label.
type LabelUpdateInput struct {
	Name domain.Optional[string] `json:"name"`
}

// LabelService manages labels.
type LabelService struct {
	labelStore store.LabelStore
	db         *sql.DB
	logger     *slog.Logger
}

var _ Resource[domain.Label, LabelCreateInput, LabelUpdateInput] = (*LabelService)(nil)

// NewLabelService creates a new LabelService.
func NewLabelService(labelStore store.LabelStore, db *sql.DB, logger *slog.Logger) (*LabelService, error) {
	if labelStore == nil {
		return nil, fmt.Errorf("labelStore cannot be nil")
	}
	if db == nil {
		return nil, fmt.Errorf("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &LabelService{
		labelStore: labelStore,
		db:         db,
		logger:     logger.With(slog.String("component", "label_service")),
	}, nil
}

// List returns all labels.
func (s *LabelService) List(ctx context.Context) ([]domain.Label, error) {
	labels, err := s.labelStore.List(ctx)
	if err != nil {
		logFailure(logger.FromContextOrDefault(ctx, s.logger), "failed to list labels", err)
		return nil, NewServiceError("label", "list", "failed to list labels", err)
	}
	return labels, nil
}

// Get returns the label with the given ID.
func (s *LabelService) Get(ctx context.Context, id int64) (*domain.Label, error) {
	label, err := s.labelStore.GetByID(ctx, id)
	if err != nil {
		logFailure(logger.FromContextOrDefault(ctx, s.logger), "failed to get label", err,
			slog.Int64("label_id", id))
		return nil, fmt.Errorf("failed to get label: %w", err)
	}
	return label, nil
}

// Create stores a new label.
func (s *LabelService) Create(ctx context.Context, input LabelCreateInput) (*domain.Label, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := domain.ValidateStruct(input); err != nil {
		log.Debug("invalid label input", slog.String("error", err.Error()))
		return nil, err
	}

	label, err := domain.NewLabel(input.Name)
	if err != nil {
		return nil, err
	}

	if err := s.labelStore.Create(ctx, label); err != nil {
		logFailure(log, "failed to create label", err)
		return nil, fmt.Errorf("failed to create label: %w", err)
	}
	return label, nil
}

// Update merges the present fields of input into the stored label.
func (s *LabelService) Update(ctx context.Context, id int64, input LabelUpdateInput) (*domain.Label, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var updated *domain.Label
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.labelStore.WithTx(tx)

		label, err := txStore.GetByID(ctx, id)
		if err != nil {
			return err
		}

		ve := &domain.ValidationError{}
		applyRequired("name", input.Name, &label.Name, ve)
		if err := validateAll(ve, label.Validate()); err != nil {
			return err
		}

		if err := txStore.Update(ctx, label); err != nil {
			return err
		}
		updated = label
		return nil
	})
	if err != nil {
		logFailure(log, "failed to update label", err, slog.Int64("label_id", id))
		return nil, fmt.Errorf("failed to update label: %w", err)
	}
	return updated, nil
}

// Delete removes a label and detaches it from every task.
func (s *LabelService) Delete(ctx context.Context, id int64) error {
	if err := s.labelStore.Delete(ctx, id); err != nil {
		logFailure(logger.FromContextOrDefault(ctx, s.logger), "failed to delete label", err,
			slog.Int64("label_id", id))
		return fmt.Errorf("failed to delete label: %w", err)
	}
	return nil
}
