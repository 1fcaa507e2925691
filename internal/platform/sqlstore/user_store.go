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
	"golang.org/x/crypto/bcrypt"
)

const userColumns = `id, email, first_name, last_name, password_hash, created_at, updated_at`

// UserStore implements store.UserStore.
type UserStore struct {
	q          querier
	bcryptCost int
	logger     *slog.Logger
}

// NewUserStore creates a UserStore. Plaintext passwords are hashed with bcryptCost.
// If logger is nil, a default logger will be used.
func NewUserStore(db store.DBTX, dialect Dialect, bcryptCost int, logger *slog.Logger) *UserStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}

	return &UserStore{
		q:          querier{db: db, dialect: dialect},
		bcryptCost: bcryptCost,
		logger:     logger.With(slog.String("component", "user_store")),
	}
}

// Ensure UserStore implements store.UserStore interface
var _ store.UserStore = (*UserStore)(nil)

// WithTx implements store.UserStore.WithTx
func (s *UserStore) WithTx(tx *sql.Tx) store.UserStore {
	return &UserStore{q: s.q.withTx(tx), bcryptCost: s.bcryptCost, logger: s.logger}
}

func scanUser(row rowScanner) (*domain.User, error) {
	var (
		u                   domain.User
		firstName, lastName sql.NullString
	)
	if err := row.Scan(&u.ID, &u.Email, &firstName, &lastName, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	u.FirstName = stringPtr(firstName)
	u.LastName = stringPtr(lastName)
	u.CreatedAt = u.CreatedAt.UTC()
	u.UpdatedAt = u.UpdatedAt.UTC()
	return &u, nil
}

// List implements store.UserStore.List
func (s *UserStore) List(ctx context.Context) ([]domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.q.query(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		log.Error("failed to list users", slog.String("error", err.Error()))
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	users := []domain.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}

	log.Debug("users listed", slog.Int("count", len(users)))
	return users, nil
}

// GetByID implements store.UserStore.GetByID
func (s *UserStore) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
}

// GetByEmail implements store.UserStore.GetByEmail
func (s *UserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email)
}

func (s *UserStore) getOne(ctx context.Context, query string, arg any) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	u, err := scanUser(s.q.queryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("user not found")
			return nil, store.ErrUserNotFound
		}
		log.Error("failed to get user", slog.String("error", err.Error()))
		return nil, err
	}
	return u, nil
}

// hashPassword replaces a plaintext password with its bcrypt hash.
func (s *UserStore) hashPassword(user *domain.User) error {
	if user.Password == "" {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(user.Password), s.bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.PasswordHash = string(hash)
	user.Password = ""
	return nil
}

// Create implements store.UserStore.Create
func (s *UserStore) Create(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := user.Validate(); err != nil {
		log.Debug("user validation failed during create", slog.String("error", err.Error()))
		return err
	}
	if err := s.hashPassword(user); err != nil {
		return err
	}

	user.CreatedAt = dbTime(user.CreatedAt)
	user.UpdatedAt = user.CreatedAt

	err := s.q.queryRow(ctx, `
		INSERT INTO users (email, first_name, last_name, password_hash, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id`,
		user.Email,
		nullString(user.FirstName),
		nullString(user.LastName),
		user.PasswordHash,
		user.CreatedAt,
		user.UpdatedAt,
	).Scan(&user.ID)
	if err != nil {
		if dup := s.q.uniqueError(err, []columnError{{"email", store.ErrEmailExists}}); dup != nil {
			log.Debug("duplicate email on user create")
			return dup
		}
		log.Error("failed to create user", slog.String("error", err.Error()))
		return err
	}

	log.Info("user created", slog.Int64("user_id", user.ID))
	return nil
}

// Update implements store.UserStore.Update
func (s *UserStore) Update(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := user.Validate(); err != nil {
		log.Debug("user validation failed during update", slog.String("error", err.Error()))
		return err
	}
	if err := s.hashPassword(user); err != nil {
		return err
	}

	user.UpdatedAt = dbTime(user.UpdatedAt)

	result, err := s.q.exec(ctx, `
		UPDATE users
		SET email = ?, first_name = ?, last_name = ?, password_hash = ?, updated_at = ?
		WHERE id = ?`,
		user.Email,
		nullString(user.FirstName),
		nullString(user.LastName),
		user.PasswordHash,
		user.UpdatedAt,
		user.ID,
	)
	if err != nil {
		if dup := s.q.uniqueError(err, []columnError{{"email", store.ErrEmailExists}}); dup != nil {
			return dup
		}
		log.Error("failed to update user",
			slog.String("error", err.Error()),
			slog.Int64("user_id", user.ID))
		return err
	}
	if err := checkRowsAffected(result, store.ErrUserNotFound); err != nil {
		return err
	}

	log.Info("user updated", slog.Int64("user_id", user.ID))
	return nil
}

// Delete implements store.UserStore.Delete
func (s *UserStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.q.exec(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		if s.q.isForeignKeyViolation(err) {
			log.Debug("user still assigned to tasks", slog.Int64("user_id", id))
			return store.ErrUserInUse
		}
		log.Error("failed to delete user",
			slog.String("error", err.Error()),
			slog.Int64("user_id", id))
		return err
	}
	if err := checkRowsAffected(result, store.ErrUserNotFound); err != nil {
		return err
	}

	log.Info("user deleted", slog.Int64("user_id", id))
	return nil
}
