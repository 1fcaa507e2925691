package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/phrazzld/task-manager-api/internal/domain"
	"github.com/phrazzld/task-manager-api/internal/platform/logger"
	"github.com/phrazzld/task-manager-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceError(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewServiceError("task", "list", "failed to list tasks", cause)

	assert.Equal(t, "task service list failed: failed to list tasks: connection reset", err.Error())
	assert.ErrorIs(t, err, cause)

	bare := NewServiceError("label", "get", "no rows", nil)
	assert.Equal(t, "label service get failed: no rows", bare.Error())
}

func TestLogFailure(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		level string
	}{
		{name: "validation", err: domain.NewValidationError("title", "is required"), level: "DEBUG"},
		{name: "not found", err: fmt.Errorf("get: %w", store.ErrTaskNotFound), level: "DEBUG"},
		{name: "duplicate", err: store.ErrSlugExists, level: "DEBUG"},
		{name: "in use", err: store.ErrUserInUse, level: "DEBUG"},
		{name: "unexpected", err: errors.New("disk full"), level: "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf, log := logger.SetupTestLogger(t)
			logFailure(log, "operation failed", tt.err)

			entries, err := buf.GetLogEntries()
			require.NoError(t, err)
			require.Len(t, entries, 1)
			assert.Equal(t, tt.level, entries[0]["level"])
			assert.Equal(t, tt.err.Error(), entries[0]["error"])
		})
	}
}

func TestApplyRequired(t *testing.T) {
	ve := &domain.ValidationError{}
	title := "old"

	applyRequired("title", domain.Optional[string]{}, &title, ve)
	assert.Equal(t, "old", title)

	applyRequired("title", domain.Some("new"), &title, ve)
	assert.Equal(t, "new", title)
	assert.NoError(t, ve.Err())

	applyRequired("title", domain.Null[string](), &title, ve)
	assert.Equal(t, "new", title)
	require.Error(t, ve.Err())
	assert.Equal(t, "title", ve.Fields[0].Field)
}
