package mocks

import (
	"context"

	"github.com/phrazzld/task-manager-api/internal/domain"
	"github.com/phrazzld/task-manager-api/internal/service"
	"github.com/phrazzld/task-manager-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// MockResource is a testify mock of service.Resource for any entity type.
type MockResource[T any, C any, U any] struct {
	mock.Mock
}

// List implements service.Resource.
func (m *MockResource[T, C, U]) List(ctx context.Context) ([]T, error) {
	args := m.MethodCalled("List", ctx)
	items, _ := args.Get(0).([]T)
	return items, args.Error(1)
}

// Get implements service.Resource.
func (m *MockResource[T, C, U]) Get(ctx context.Context, id int64) (*T, error) {
	args := m.MethodCalled("Get", ctx, id)
	item, _ := args.Get(0).(*T)
	return item, args.Error(1)
}

// Create implements service.Resource.
func (m *MockResource[T, C, U]) Create(ctx context.Context, input C) (*T, error) {
	args := m.MethodCalled("Create", ctx, input)
	item, _ := args.Get(0).(*T)
	return item, args.Error(1)
}

// Update implements service.Resource.
func (m *MockResource[T, C, U]) Update(ctx context.Context, id int64, input U) (*T, error) {
	args := m.MethodCalled("Update", ctx, id, input)
	item, _ := args.Get(0).(*T)
	return item, args.Error(1)
}

// Delete implements service.Resource.
func (m *MockResource[T, C, U]) Delete(ctx context.Context, id int64) error {
	args := m.MethodCalled("Delete", ctx, id)
	return args.Error(0)
}

// MockTaskService adds filtered listing to the generic task resource mock.
type MockTaskService struct {
	MockResource[domain.Task, service.TaskCreateInput, service.TaskUpdateInput]
}

// Find mocks TaskService.Find.
func (m *MockTaskService) Find(ctx context.Context, filter store.TaskFilter) ([]domain.Task, error) {
	args := m.MethodCalled("Find", ctx, filter)
	tasks, _ := args.Get(0).([]domain.Task)
	return tasks, args.Error(1)
}
