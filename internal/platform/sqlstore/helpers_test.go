package sqlstore_test

import (
	"context"
	"testing"

	"github.com/phrazzld/task-manager-api/internal/domain"
	"github.com/phrazzld/task-manager-api/internal/platform/sqlstore"
	"github.com/phrazzld/task-manager-api/internal/store"
	"github.com/phrazzld/task-manager-api/internal/testdb"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// dbFactory yields a fresh, migrated database handle for one test.
type dbFactory func(t *testing.T) (store.DBTX, sqlstore.Dialect)

func sqliteFactory(t *testing.T) (store.DBTX, sqlstore.Dialect) {
	db, dialect := testdb.OpenSQLite(t)
	return db, dialect
}

type stores struct {
	users    store.UserStore
	statuses store.TaskStatusStore
	labels   store.LabelStore
	tasks    store.TaskStore
}

func newStores(t *testing.T, factory dbFactory) stores {
	t.Helper()
	db, dialect := factory(t)
	return stores{
		users:    sqlstore.NewUserStore(db, dialect, bcrypt.MinCost, nil),
		statuses: sqlstore.NewTaskStatusStore(db, dialect, nil),
		labels:   sqlstore.NewLabelStore(db, dialect, nil),
		tasks:    sqlstore.NewTaskStore(db, dialect, nil),
	}
}

func strPtr(s string) *string { return &s }
func int64Ptr(n int64) *int64 { return &n }

func mustCreateUser(t *testing.T, s store.UserStore, email string) *domain.User {
	t.Helper()
	u, err := domain.NewUser(email, "password", strPtr("First"), strPtr("Last"))
	require.NoError(t, err)
	require.NoError(t, s.Create(context.Background(), u))
	return u
}

func mustCreateStatus(t *testing.T, s store.TaskStatusStore, name, slug string) *domain.TaskStatus {
	t.Helper()
	ts, err := domain.NewTaskStatus(name, slug)
	require.NoError(t, err)
	require.NoError(t, s.Create(context.Background(), ts))
	return ts
}

func mustCreateLabel(t *testing.T, s store.LabelStore, name string) *domain.Label {
	t.Helper()
	l, err := domain.NewLabel(name)
	require.NoError(t, err)
	require.NoError(t, s.Create(context.Background(), l))
	return l
}

func mustCreateTask(t *testing.T, s store.TaskStore, task *domain.Task) *domain.Task {
	t.Helper()
	require.NoError(t, s.Create(context.Background(), task))
	return task
}
