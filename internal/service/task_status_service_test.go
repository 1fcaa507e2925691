package service_test

import (
	"context"
	"testing"

	"github.com/phrazzld/task-manager-api/internal/domain"
	"github.com/phrazzld/task-manager-api/internal/service"
	"github.com/phrazzld/task-manager-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskStatusService(t *testing.T) {
	ctx := context.Background()

	t.Run("create validates input", func(t *testing.T) {
		s := newServices(t)
		_, err := s.statuses.Create(ctx, service.TaskStatusCreateInput{Name: "  ", Slug: ""})
		require.ErrorIs(t, err, domain.ErrValidation)
		assert.ElementsMatch(t, []string{"name", "slug"}, fieldNames(t, err))
	})

	t.Run("duplicate slug and name", func(t *testing.T) {
		s := newServices(t)
		mustCreateStatus(t, s, "Draft", "draft")

		_, err := s.statuses.Create(ctx, service.TaskStatusCreateInput{Name: "Other", Slug: "draft"})
		assert.ErrorIs(t, err, store.ErrSlugExists)

		_, err = s.statuses.Create(ctx, service.TaskStatusCreateInput{Name: "Draft", Slug: "other"})
		assert.ErrorIs(t, err, store.ErrStatusNameExists)
	})

	t.Run("partial update", func(t *testing.T) {
		s := newServices(t)
		id := mustCreateStatus(t, s, "Draft", "draft")

		updated, err := s.statuses.Update(ctx, id, service.TaskStatusUpdateInput{Name: domain.Some("Rough draft")})
		require.NoError(t, err)
		assert.Equal(t, "Rough draft", updated.Name)
		assert.Equal(t, "draft", updated.Slug)

		_, err = s.statuses.Update(ctx, id, service.TaskStatusUpdateInput{Slug: domain.Null[string]()})
		assert.Equal(t, []string{"slug"}, fieldNames(t, err))

		_, err = s.statuses.Update(ctx, id, service.TaskStatusUpdateInput{Slug: domain.Some(" ")})
		assert.Equal(t, []string{"slug"}, fieldNames(t, err))
	})

	t.Run("delete", func(t *testing.T) {
		s := newServices(t)
		used := mustCreateStatus(t, s, "Draft", "draft")
		unused := mustCreateStatus(t, s, "Published", "published")
		_, err := s.tasks.Create(ctx, service.TaskCreateInput{Title: "T", Status: "draft"})
		require.NoError(t, err)

		assert.ErrorIs(t, s.statuses.Delete(ctx, used), store.ErrTaskStatusInUse)
		require.NoError(t, s.statuses.Delete(ctx, unused))
		assert.ErrorIs(t, s.statuses.Delete(ctx, unused), store.ErrTaskStatusNotFound)

		statuses, err := s.statuses.List(ctx)
		require.NoError(t, err)
		require.Len(t, statuses, 1)
		assert.Equal(t, "draft", statuses[0].Slug)
	})
}
