package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the store.
	// Entity-specific variants (ErrUserNotFound, ErrTaskNotFound, ...) wrap it.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would violate a uniqueness
	// constraint, such as a second user with the same email.
	ErrDuplicate = errors.New("entity already exists")

	// ErrInUse is returned when deleting an entity that other entities still reference.
	ErrInUse = errors.New("entity is in use")

	// ErrInvalidEntity is returned when a write references rows that do not exist
	// or otherwise fails a database constraint that is not a uniqueness check.
	ErrInvalidEntity = errors.New("invalid entity")

	// Entity-specific "not found" errors

	ErrUserNotFound       = fmt.Errorf("%w: user", ErrNotFound)
	ErrTaskStatusNotFound = fmt.Errorf("%w: task status", ErrNotFound)
	ErrLabelNotFound      = fmt.Errorf("%w: label", ErrNotFound)
	ErrTaskNotFound       = fmt.Errorf("%w: task", ErrNotFound)

	// Entity-specific "duplicate" errors

	// ErrEmailExists indicates that a user with the given email already exists.
	ErrEmailExists = fmt.Errorf("%w: email", ErrDuplicate)
	// ErrSlugExists indicates that a task status with the given slug already exists.
	ErrSlugExists = fmt.Errorf("%w: slug", ErrDuplicate)
	// ErrStatusNameExists indicates that a task status with the given name already exists.
	ErrStatusNameExists = fmt.Errorf("%w: task status name", ErrDuplicate)
	// ErrLabelNameExists indicates that a label with the given name already exists.
	ErrLabelNameExists = fmt.Errorf("%w: label name", ErrDuplicate)

	// Entity-specific "in use" errors

	ErrUserInUse       = fmt.Errorf("%w: user is assigned to tasks", ErrInUse)
	ErrTaskStatusInUse = fmt.Errorf("%w: task status is used by tasks", ErrInUse)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError checks if the error is any kind of "duplicate" error.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}

// IsInUseError checks if the error reports a delete blocked by references.
func IsInUseError(err error) bool {
	return errors.Is(err, ErrInUse)
}
