package service

import (
	"context"

	"github.com/phrazzld/task-manager-api/internal/domain"
)

// Resource is the CRUD surface every resource service exposes.
// T is the entity, C the create payload and U the partial-update payload.
type Resource[T any, C any, U any] interface {
	// List returns every entity, unpaginated.
	List(ctx context.Context) ([]T, error)

	// Get returns the entity or a store not-found error.
	Get(ctx context.Context, id int64) (*T, error)

	// Create validates and persists a new entity.
	Create(ctx context.Context, input C) (*T, error)

	// Update applies only the fields present in input. Fields sent as null are
	// cleared when nullable and rejected otherwise.
	Update(ctx context.Context, id int64, input U) (*T, error)

	// Delete removes the entity, or returns a store not-found error.
	Delete(ctx context.Context, id int64) error
}

// applyRequired copies a present value into dst and records a field error for
// an explicit null. Absent fields leave dst untouched.
func applyRequired[T any](field string, o domain.Optional[T], dst *T, ve *domain.ValidationError) {
	if o.IsNull() {
		ve.Add(field, "must not be null")
		return
	}
	if v, ok := o.Value(); ok {
		*dst = v
	}
}

// validateAll runs the input's struct-tag validation and the entity's own
// validation, collecting failures from both.
func validateAll(ve *domain.ValidationError, errs ...error) error {
	for _, err := range errs {
		if err == nil {
			continue
		}
		fe, ok := domain.AsValidationError(err)
		if !ok {
			return err
		}
		ve.Merge(fe)
	}
	return ve.Err()
}
