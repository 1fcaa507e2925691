package service_test

import (
	"context"
	"strconv"
	"testing"

	"github.com/phrazzld/task-manager-api/internal/domain"
	"github.com/phrazzld/task-manager-api/internal/platform/sqlstore"
	"github.com/phrazzld/task-manager-api/internal/service"
	"github.com/phrazzld/task-manager-api/internal/testdb"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type services struct {
	users    *service.UserService
	statuses *service.TaskStatusService
	labels   *service.LabelService
	tasks    *service.TaskService
}

// newServices wires every service against a fresh SQLite database.
func newServices(t *testing.T) services {
	t.Helper()

	db, dialect := testdb.OpenSQLite(t)
	userStore := sqlstore.NewUserStore(db, dialect, bcrypt.MinCost, nil)
	statusStore := sqlstore.NewTaskStatusStore(db, dialect, nil)
	labelStore := sqlstore.NewLabelStore(db, dialect, nil)
	taskStore := sqlstore.NewTaskStore(db, dialect, nil)

	users, err := service.NewUserService(userStore, db, nil)
	require.NoError(t, err)
	statuses, err := service.NewTaskStatusService(statusStore, db, nil)
	require.NoError(t, err)
	labels, err := service.NewLabelService(labelStore, db, nil)
	require.NoError(t, err)
	tasks, err := service.NewTaskService(taskStore, statusStore, userStore, labelStore, db, nil)
	require.NoError(t, err)

	return services{users: users, statuses: statuses, labels: labels, tasks: tasks}
}

func strPtr(s string) *string { return &s }
func int64Ptr(n int64) *int64 { return &n }

func fieldNames(t *testing.T, err error) []string {
	t.Helper()
	ve, ok := domain.AsValidationError(err)
	require.True(t, ok, "expected a validation error, got %v", err)
	names := make([]string, 0, len(ve.Fields))
	for _, f := range ve.Fields {
		names = append(names, f.Field)
	}
	return names
}

func mustCreateStatus(t *testing.T, s services, name, slug string) int64 {
	t.Helper()
	ts, err := s.statuses.Create(context.Background(), service.TaskStatusCreateInput{Name: name, Slug: slug})
	require.NoError(t, err)
	return ts.ID
}

func mustCreateUser(t *testing.T, s services, email string) int64 {
	t.Helper()
	u, err := s.users.Create(context.Background(), service.UserCreateInput{Email: email, Password: "secret"})
	require.NoError(t, err)
	return u.ID
}

func mustCreateLabel(t *testing.T, s services, name string) int64 {
	t.Helper()
	l, err := s.labels.Create(context.Background(), service.LabelCreateInput{Name: name})
	require.NoError(t, err)
	return l.ID
}

func jsonInt(n int64) string { return strconv.FormatInt(n, 10) }
