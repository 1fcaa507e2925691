package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/task-manager-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// List returns every user ordered by ID.
	List(ctx context.Context) ([]domain.User, error)

	// GetByID retrieves a user by ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id int64) (*domain.User, error)

	// GetByEmail retrieves a user by email address, including the password hash.
	// Returns ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// Create inserts the user and sets its ID. A plaintext Password is hashed
	// before storage and then cleared.
	// Returns ErrEmailExists if the email is already taken.
	Create(ctx context.Context, user *domain.User) error

	// Update writes every mutable field. A non-empty Password replaces the stored hash.
	// Returns ErrUserNotFound if the user does not exist and ErrEmailExists on an email clash.
	Update(ctx context.Context, user *domain.User) error

	// Delete removes a user.
	// Returns ErrUserNotFound if the user does not exist and ErrUserInUse if tasks are assigned to it.
	Delete(ctx context.Context, id int64) error

	// WithTx returns a UserStore bound to the given transaction.
	WithTx(tx *sql.Tx) UserStore
}
