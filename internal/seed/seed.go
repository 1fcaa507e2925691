// Package seed creates the data a fresh installation needs: the admin user
// and the default task statuses and labels.
package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/task-manager-api/internal/config"
	"github.com/phrazzld/task-manager-api/internal/domain"
	"github.com/phrazzld/task-manager-api/internal/platform/logger"
	"github.com/phrazzld/task-manager-api/internal/store"
)

// Seeder creates missing seed records. Existing records are left as they are,
// so running it on every start is safe.
type Seeder struct {
	users    store.UserStore
	statuses store.TaskStatusStore
	labels   store.LabelStore
	logger   *slog.Logger
}

// NewSeeder creates a Seeder.
func NewSeeder(
	users store.UserStore,
	statuses store.TaskStatusStore,
	labels store.LabelStore,
	logger *slog.Logger,
) *Seeder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Seeder{
		users:    users,
		statuses: statuses,
		labels:   labels,
		logger:   logger.With(slog.String("component", "seeder")),
	}
}

// Run ensures the admin user and fixtures exist. It does nothing when
// seeding is disabled.
func (s *Seeder) Run(ctx context.Context, cfg config.SeedConfig) error {
	if !cfg.Enabled {
		return nil
	}

	fixtures, err := LoadFixtures(cfg.FixturesFile)
	if err != nil {
		return err
	}

	if err := s.ensureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		return err
	}
	if err := s.ensureStatuses(ctx, fixtures.Statuses); err != nil {
		return err
	}
	return s.ensureLabels(ctx, fixtures.Labels)
}

func (s *Seeder) ensureAdmin(ctx context.Context, email, password string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	_, err := s.users.GetByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, store.ErrUserNotFound) {
		return fmt.Errorf("failed to look up admin user: %w", err)
	}

	user, err := domain.NewUser(email, password, nil, nil)
	if err != nil {
		return fmt.Errorf("invalid admin user: %w", err)
	}
	if err := s.users.Create(ctx, user); err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	log.Info("admin user created", slog.Int64("user_id", user.ID))
	return nil
}

func (s *Seeder) ensureStatuses(ctx context.Context, fixtures []StatusFixture) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	for _, f := range fixtures {
		_, err := s.statuses.GetBySlug(ctx, f.Slug)
		if err == nil {
			continue
		}
		if !errors.Is(err, store.ErrTaskStatusNotFound) {
			return fmt.Errorf("failed to look up task status %q: %w", f.Slug, err)
		}

		status, err := domain.NewTaskStatus(f.Name, f.Slug)
		if err != nil {
			return fmt.Errorf("invalid task status fixture %q: %w", f.Slug, err)
		}
		if err := s.statuses.Create(ctx, status); err != nil {
			return fmt.Errorf("failed to create task status %q: %w", f.Slug, err)
		}
		log.Info("task status created", slog.String("slug", f.Slug))
	}
	return nil
}

func (s *Seeder) ensureLabels(ctx context.Context, names []string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	existing, err := s.labels.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list labels: %w", err)
	}
	have := make(map[string]bool, len(existing))
	for _, l := range existing {
		have[l.Name] = true
	}

	for _, name := range names {
		if have[name] {
			continue
		}
		label, err := domain.NewLabel(name)
		if err != nil {
			return fmt.Errorf("invalid label fixture %q: %w", name, err)
		}
		if err := s.labels.Create(ctx, label); err != nil {
			return fmt.Errorf("failed to create label %q: %w", name, err)
		}
		have[name] = true
		log.Info("label created", slog.String("name", name))
	}
	return nil
}
