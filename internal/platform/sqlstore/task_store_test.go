package sqlstore_test

import (
	"context"
	"testing"

	"github.com/phrazzld/task-manager-api/internal/domain"
	"github.com/phrazzld/task-manager-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskStore(t *testing.T) {
	runTaskStoreTests(t, sqliteFactory)
}

func taskIDs(tasks []domain.Task) []int64 {
	ids := make([]int64, 0, len(tasks))
	for _, t := range tasks {
		ids = append(ids, t.ID)
	}
	return ids
}

func runTaskStoreTests(t *testing.T, factory dbFactory) {
	ctx := context.Background()

	t.Run("create and get", func(t *testing.T) {
		s := newStores(t, factory)
		user := mustCreateUser(t, s.users, "worker@example.com")
		ts := mustCreateStatus(t, s.statuses, "Draft", "draft")
		bug := mustCreateLabel(t, s.labels, "bug")
		feature := mustCreateLabel(t, s.labels, "feature")

		task := mustCreateTask(t, s.tasks, &domain.Task{
			Index:      int64Ptr(7),
			Title:      "Fix login",
			Content:    strPtr("Users cannot log in"),
			StatusID:   ts.ID,
			StatusSlug: ts.Slug,
			AssigneeID: &user.ID,
			LabelIDs:   []int64{feature.ID, bug.ID, bug.ID},
		})
		assert.NotZero(t, task.ID)
		assert.Equal(t, []int64{bug.ID, feature.ID}, task.LabelIDs)

		got, err := s.tasks.GetByID(ctx, task.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(7), *got.Index)
		assert.Equal(t, "Fix login", got.Title)
		assert.Equal(t, "Users cannot log in", *got.Content)
		assert.Equal(t, "draft", got.StatusSlug)
		assert.Equal(t, ts.ID, got.StatusID)
		assert.Equal(t, user.ID, *got.AssigneeID)
		assert.Equal(t, []int64{bug.ID, feature.ID}, got.LabelIDs)
		assert.True(t, task.CreatedAt.Equal(got.CreatedAt))
	})

	t.Run("task without optional fields", func(t *testing.T) {
		s := newStores(t, factory)
		ts := mustCreateStatus(t, s.statuses, "Draft", "draft")
		task := mustCreateTask(t, s.tasks, &domain.Task{Title: "Bare", StatusID: ts.ID, StatusSlug: ts.Slug})

		got, err := s.tasks.GetByID(ctx, task.ID)
		require.NoError(t, err)
		assert.Nil(t, got.Index)
		assert.Nil(t, got.Content)
		assert.Nil(t, got.AssigneeID)
		assert.NotNil(t, got.LabelIDs)
		assert.Empty(t, got.LabelIDs)
	})

	t.Run("unknown references", func(t *testing.T) {
		s := newStores(t, factory)
		ts := mustCreateStatus(t, s.statuses, "Draft", "draft")

		err := s.tasks.Create(ctx, &domain.Task{Title: "Orphan", StatusID: 999, StatusSlug: "ghost"})
		assert.ErrorIs(t, err, store.ErrInvalidEntity)

		err = s.tasks.Create(ctx, &domain.Task{
			Title: "Bad label", StatusID: ts.ID, StatusSlug: ts.Slug, LabelIDs: []int64{999},
		})
		assert.ErrorIs(t, err, store.ErrLabelNotFound)
	})

	t.Run("update replaces fields and labels", func(t *testing.T) {
		s := newStores(t, factory)
		draft := mustCreateStatus(t, s.statuses, "Draft", "draft")
		done := mustCreateStatus(t, s.statuses, "Done", "done")
		a := mustCreateLabel(t, s.labels, "alpha")
		b := mustCreateLabel(t, s.labels, "beta")
		task := mustCreateTask(t, s.tasks, &domain.Task{
			Title: "Before", Content: strPtr("text"), StatusID: draft.ID, StatusSlug: draft.Slug,
			LabelIDs: []int64{a.ID},
		})

		task.Title = "After"
		task.Content = nil
		task.StatusID = done.ID
		task.StatusSlug = done.Slug
		task.LabelIDs = []int64{b.ID}
		require.NoError(t, s.tasks.Update(ctx, task))

		got, err := s.tasks.GetByID(ctx, task.ID)
		require.NoError(t, err)
		assert.Equal(t, "After", got.Title)
		assert.Nil(t, got.Content)
		assert.Equal(t, "done", got.StatusSlug)
		assert.Equal(t, []int64{b.ID}, got.LabelIDs)

		missing := *task
		missing.ID = 999
		assert.ErrorIs(t, s.tasks.Update(ctx, &missing), store.ErrTaskNotFound)
	})

	t.Run("find with filters", func(t *testing.T) {
		s := newStores(t, factory)
		alice := mustCreateUser(t, s.users, "alice@example.com")
		draft := mustCreateStatus(t, s.statuses, "Draft", "draft")
		done := mustCreateStatus(t, s.statuses, "Done", "done")
		bug := mustCreateLabel(t, s.labels, "bug")

		t1 := mustCreateTask(t, s.tasks, &domain.Task{
			Title: "Write Report", StatusID: draft.ID, StatusSlug: draft.Slug, AssigneeID: &alice.ID,
		})
		t2 := mustCreateTask(t, s.tasks, &domain.Task{
			Title: "report_bug 100%", StatusID: done.ID, StatusSlug: done.Slug, LabelIDs: []int64{bug.ID},
		})
		t3 := mustCreateTask(t, s.tasks, &domain.Task{
			Title: "Deploy", StatusID: done.ID, StatusSlug: done.Slug, AssigneeID: &alice.ID,
		})

		tests := []struct {
			name   string
			filter store.TaskFilter
			want   []int64
		}{
			{name: "no filter", filter: store.TaskFilter{}, want: []int64{t1.ID, t2.ID, t3.ID}},
			{name: "title case-insensitive", filter: store.TaskFilter{TitleCont: "REPORT"}, want: []int64{t1.ID, t2.ID}},
			{name: "title wildcard is literal", filter: store.TaskFilter{TitleCont: "_bug 100%"}, want: []int64{t2.ID}},
			{name: "assignee", filter: store.TaskFilter{AssigneeID: alice.ID}, want: []int64{t1.ID, t3.ID}},
			{name: "status", filter: store.TaskFilter{StatusSlug: "done"}, want: []int64{t2.ID, t3.ID}},
			{name: "label", filter: store.TaskFilter{LabelID: bug.ID}, want: []int64{t2.ID}},
			{
				name:   "combined",
				filter: store.TaskFilter{AssigneeID: alice.ID, StatusSlug: "done"},
				want:   []int64{t3.ID},
			},
			{name: "no match", filter: store.TaskFilter{TitleCont: "nothing"}, want: []int64{}},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				tasks, err := s.tasks.Find(ctx, tt.filter)
				require.NoError(t, err)
				assert.Equal(t, tt.want, taskIDs(tasks))
			})
		}
	})

	t.Run("delete", func(t *testing.T) {
		s := newStores(t, factory)
		ts := mustCreateStatus(t, s.statuses, "Draft", "draft")
		l := mustCreateLabel(t, s.labels, "tag")
		task := mustCreateTask(t, s.tasks, &domain.Task{
			Title: "Gone", StatusID: ts.ID, StatusSlug: ts.Slug, LabelIDs: []int64{l.ID},
		})

		require.NoError(t, s.tasks.Delete(ctx, task.ID))
		_, err := s.tasks.GetByID(ctx, task.ID)
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
		assert.ErrorIs(t, s.tasks.Delete(ctx, task.ID), store.ErrTaskNotFound)

		// the label survives its task
		_, err = s.labels.GetByID(ctx, l.ID)
		assert.NoError(t, err)
	})
}
