package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/task-manager-api/internal/domain"
	"github.com/phrazzld/task-manager-api/internal/platform/logger"
	"github.com/phrazzld/task-manager-api/internal/store"
)

// UserCreateInput is the payload for creating a user.
type UserCreateInput struct {
	Email     string  `json:"email" validate:"required,email,max=255"`
	FirstName *string `json:"firstName" validate:"omitempty,max=255"`
	LastName  *string `json:"lastName" validate:"omitempty,max=255"`
	Password  string  `json:"password" validate:"required,min=3,max=72"`
}

// UserUpdateInput is the partial-update payload for a user.
type UserUpdateInput struct {
	Email     domain.Optional[string] `json:"email"`
	FirstName domain.Optional[string] `json:"firstName"`
	LastName  domain.Optional[string] `json:"lastName"`
	Password  domain.Optional[string] `json:"password"`
}

// UserService manages user accounts.
type UserService struct {
	userStore store.UserStore
	db        *sql.DB
	logger    *slog.Logger
}

var _ Resource[domain.User, UserCreateInput, UserUpdateInput] = (*UserService)(nil)

// NewUserService creates a new UserService.
// It returns an error if any of the required dependencies are nil.
func NewUserService(userStore store.UserStore, db *sql.DB, logger *slog.Logger) (*UserService, error) {
	if userStore == nil {
		return nil, fmt.Errorf("userStore cannot be nil")
	}
	if db == nil {
		return nil, fmt.Errorf("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &UserService{
		userStore: userStore,
		db:        db,
		logger:    logger.With(slog.String("component", "user_service")),
	}, nil
}

// List returns all users.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.userStore.List(ctx)
	if err != nil {
		logFailure(logger.FromContextOrDefault(ctx, s.logger), "failed to list users", err)
		return nil, NewServiceError("user", "list", "failed to list users", err)
	}
	return users, nil
}

// Get returns the user with the given ID.
func (s *UserService) Get(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.userStore.GetByID(ctx, id)
	if err != nil {
		logFailure(logger.FromContextOrDefault(ctx, s.logger), "failed to get user", err,
			slog.Int64("user_id", id))
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// Create validates the input and stores a new user with a hashed password.
func (s *UserService) Create(ctx context.Context, input UserCreateInput) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := domain.ValidateStruct(input); err != nil {
		log.Debug("invalid user input", slog.String("error", err.Error()))
		return nil, err
	}

	user, err := domain.NewUser(input.Email, input.Password, input.FirstName, input.LastName)
	if err != nil {
		log.Debug("invalid user", slog.String("error", err.Error()))
		return nil, err
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.userStore.WithTx(tx).Create(ctx, user)
	})
	if err != nil {
		logFailure(log, "failed to create user", err)
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	log.Info("user created", slog.Int64("user_id", user.ID))
	return user, nil
}

// Update merges the present fields of input into the stored user.
func (s *UserService) Update(ctx context.Context, id int64, input UserUpdateInput) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var updated *domain.User
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.userStore.WithTx(tx)

		user, err := txStore.GetByID(ctx, id)
		if err != nil {
			return err
		}

		ve := &domain.ValidationError{}
		applyRequired("email", input.Email, &user.Email, ve)
		if pw, ok := input.Password.Value(); ok && pw == "" {
			ve.Add("password", "must not be blank")
		} else {
			applyRequired("password", input.Password, &user.Password, ve)
		}
		input.FirstName.ApplyNullable(&user.FirstName)
		input.LastName.ApplyNullable(&user.LastName)
		if err := validateAll(ve, user.Validate()); err != nil {
			return err
		}

		user.UpdatedAt = time.Now().UTC()
		if err := txStore.Update(ctx, user); err != nil {
			return err
		}
		updated = user
		return nil
	})
	if err != nil {
		logFailure(log, "failed to update user", err, slog.Int64("user_id", id))
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	log.Info("user updated", slog.Int64("user_id", id))
	return updated, nil
}

// Delete removes a user. Users assigned to tasks cannot be deleted.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	if err := s.userStore.Delete(ctx, id); err != nil {
		logFailure(logger.FromContextOrDefault(ctx, s.logger), "failed to delete user", err,
			slog.Int64("user_id", id))
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}
