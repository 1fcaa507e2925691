package api

import (
	"log/slog"

	"github.com/phrazzld/task-manager-api/internal/domain"
	"github.com/phrazzld/task-manager-api/internal/service"
)

// UserHandler serves /users.
type UserHandler = ResourceHandler[domain.User, service.UserCreateInput, service.UserUpdateInput]

// TaskStatusHandler serves /task_statuses.
type TaskStatusHandler = ResourceHandler[domain.TaskStatus, service.TaskStatusCreateInput, service.TaskStatusUpdateInput]

// LabelHandler serves /labels.
type LabelHandler = ResourceHandler[domain.Label, service.LabelCreateInput, service.LabelUpdateInput]

// NewUserHandler creates the user endpoints.
func NewUserHandler(
	users service.Resource[domain.User, service.UserCreateInput, service.UserUpdateInput],
	logger *slog.Logger,
) *UserHandler {
	return NewResourceHandler("user", users, logger)
}

// NewTaskStatusHandler creates the task status endpoints.
func NewTaskStatusHandler(
	statuses service.Resource[domain.TaskStatus, service.TaskStatusCreateInput, service.TaskStatusUpdateInput],
	logger *slog.Logger,
) *TaskStatusHandler {
	return NewResourceHandler("task status", statuses, logger)
}

// NewLabelHandler creates the label endpoints.
func NewLabelHandler(
	labels service.Resource[domain.Label, service.LabelCreateInput, service.LabelUpdateInput],
	logger *slog.Logger,
) *LabelHandler {
	return NewResourceHandler("label", labels, logger)
}
