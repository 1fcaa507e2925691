package api

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/task-manager-api/internal/api/shared"
	"github.com/phrazzld/task-manager-api/internal/platform/logger"
	"github.com/phrazzld/task-manager-api/internal/service"
)

// ResourceHandler serves the five CRUD endpoints for one resource type.
type ResourceHandler[T any, C any, U any] struct {
	name    string
	plural  string
	service service.Resource[T, C, U]
	logger  *slog.Logger
}

// NewResourceHandler creates a handler for the named resource. The name
// appears in fallback error messages.
func NewResourceHandler[T any, C any, U any](
	name string,
	svc service.Resource[T, C, U],
	logger *slog.Logger,
) *ResourceHandler[T, C, U] {
	if logger == nil {
		logger = slog.Default()
	}
	plural := name + "s"
	if strings.HasSuffix(name, "s") {
		plural = name + "es"
	}
	return &ResourceHandler[T, C, U]{
		name:    name,
		plural:  plural,
		service: svc,
		logger:  logger.With(slog.String("component", strings.ReplaceAll(name, " ", "_")+"_handler")),
	}
}

// Routes registers the handler on r:
//
//	GET    /      list
//	POST   /      create
//	GET    /{id}  get
//	PUT    /{id}  partial update
//	DELETE /{id}  delete
func (h *ResourceHandler[T, C, U]) Routes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
}

// List handles GET requests for the collection.
func (h *ResourceHandler[T, C, U]) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.List(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list "+h.plural)
		return
	}
	shared.RespondWithList(w, r, items)
}

// Get handles GET requests for a single entity.
func (h *ResourceHandler[T, C, U]) Get(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	item, err := h.service.Get(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get "+h.name)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, item)
}

// Create handles POST requests. It answers 201 with the stored entity.
func (h *ResourceHandler[T, C, U]) Create(w http.ResponseWriter, r *http.Request) {
	var input C
	if err := shared.DecodeJSON(r, &input); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	item, err := h.service.Create(r.Context(), input)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create "+h.name)
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).Debug(h.name + " created")
	shared.RespondWithJSON(w, r, http.StatusCreated, item)
}

// Update handles PUT requests. Fields absent from the body are left unchanged.
func (h *ResourceHandler[T, C, U]) Update(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var input U
	if err := shared.DecodeJSON(r, &input); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	item, err := h.service.Update(r.Context(), id, input)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update "+h.name)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, item)
}

// Delete handles DELETE requests. It answers 204 on success.
func (h *ResourceHandler[T, C, U]) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "Failed to delete "+h.name)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
