package service

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/task-manager-api/internal/domain"
	"github.com/phrazzld/task-manager-api/internal/store"
)

// ServiceError wraps an unexpected failure with the resource and operation it
// happened in. Sentinel errors underneath stay reachable through errors.Is.
type ServiceError struct {
	Resource  string
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s service %s failed: %s: %v", e.Resource, e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s service %s failed: %s", e.Resource, e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a new ServiceError.
func NewServiceError(resource, operation, message string, err error) *ServiceError {
	return &ServiceError{
		Resource:  resource,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// isClientError reports whether err is caused by the request rather than the system.
func isClientError(err error) bool {
	return errors.Is(err, domain.ErrValidation) ||
		store.IsNotFoundError(err) ||
		store.IsDuplicateError(err) ||
		store.IsInUseError(err)
}

// logFailure logs client errors at debug level and everything else at error level.
func logFailure(log *slog.Logger, msg string, err error, attrs ...any) {
	args := append([]any{slog.String("error", err.Error())}, attrs...)
	if isClientError(err) {
		log.Debug(msg, args...)
		return
	}
	log.Error(msg, args...)
}
