package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/task-manager-api/internal/api/shared"
	"github.com/phrazzld/task-manager-api/internal/domain"
	"github.com/phrazzld/task-manager-api/internal/service"
	"github.com/phrazzld/task-manager-api/internal/store"
)

// TaskService is the task resource plus filtered listing.
type TaskService interface {
	service.Resource[domain.Task, service.TaskCreateInput, service.TaskUpdateInput]
	Find(ctx context.Context, filter store.TaskFilter) ([]domain.Task, error)
}

// TaskHandler serves the task endpoints. Listing accepts filter query parameters.
type TaskHandler struct {
	*ResourceHandler[domain.Task, service.TaskCreateInput, service.TaskUpdateInput]
	tasks TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(tasks TaskService, logger *slog.Logger) *TaskHandler {
	base := NewResourceHandler[domain.Task, service.TaskCreateInput, service.TaskUpdateInput]("task", tasks, logger)
	return &TaskHandler{ResourceHandler: base, tasks: tasks}
}

// Routes registers the task endpoints on r.
func (h *TaskHandler) Routes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
}

// List handles GET /tasks with the optional titleCont, assigneeId, status
// and labelId filters.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := parseTaskFilter(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	tasks, err := h.tasks.Find(r.Context(), filter)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list tasks")
		return
	}
	shared.RespondWithList(w, r, tasks)
}
