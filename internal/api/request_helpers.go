package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/task-manager-api/internal/domain"
	"github.com/phrazzld/task-manager-api/internal/store"
)

// getPathID extracts a positive integer ID from the URL path parameters.
func getPathID(r *http.Request, paramName string) (int64, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return 0, domain.NewValidationError(paramName, "is required")
	}

	id, err := strconv.ParseInt(pathParam, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NewValidationError(paramName, "must be a positive integer")
	}
	return id, nil
}

// parseTaskFilter reads the task list query parameters
// titleCont, assigneeId, status and labelId.
func parseTaskFilter(r *http.Request) (store.TaskFilter, error) {
	q := r.URL.Query()
	filter := store.TaskFilter{
		TitleCont:  q.Get("titleCont"),
		StatusSlug: q.Get("status"),
	}

	ve := &domain.ValidationError{}
	parseID := func(name string, dst *int64) {
		raw := q.Get(name)
		if raw == "" {
			return
		}
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			ve.Add(name, "must be a positive integer")
			return
		}
		*dst = id
	}
	parseID("assigneeId", &filter.AssigneeID)
	parseID("labelId", &filter.LabelID)

	return filter, ve.Err()
}
