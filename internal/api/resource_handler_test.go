package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/task-manager-api/internal/domain"
	"github.com/phrazzld/task-manager-api/internal/mocks"
	"github.com/phrazzld/task-manager-api/internal/service"
	"github.com/phrazzld/task-manager-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockLabelService = mocks.MockResource[domain.Label, service.LabelCreateInput, service.LabelUpdateInput]

func newLabelRouter(svc *mockLabelService) http.Handler {
	r := chi.NewRouter()
	r.Route("/labels", NewLabelHandler(svc, nil).Routes)
	return r
}

func serve(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestResourceHandler_List(t *testing.T) {
	svc := &mockLabelService{}
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	svc.On("List", mock.Anything).Return([]domain.Label{
		{ID: 1, Name: "feature", CreatedAt: created},
		{ID: 2, Name: "bug", CreatedAt: created},
	}, nil)

	rr := serve(newLabelRouter(svc), http.MethodGet, "/labels", "")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "2", rr.Header().Get("X-Total-Count"))
	assert.JSONEq(t, `[
		{"id":1,"name":"feature","createdAt":"2024-01-02T03:04:05Z"},
		{"id":2,"name":"bug","createdAt":"2024-01-02T03:04:05Z"}
	]`, rr.Body.String())
	svc.AssertExpectations(t)
}

func TestResourceHandler_Get(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		setup  func(svc *mockLabelService)
		status int
	}{
		{
			name: "found",
			path: "/labels/5",
			setup: func(svc *mockLabelService) {
				svc.On("Get", mock.Anything, int64(5)).Return(&domain.Label{ID: 5, Name: "bug"}, nil)
			},
			status: http.StatusOK,
		},
		{
			name: "not found",
			path: "/labels/6",
			setup: func(svc *mockLabelService) {
				svc.On("Get", mock.Anything, int64(6)).Return(nil, store.ErrLabelNotFound)
			},
			status: http.StatusNotFound,
		},
		{name: "non-numeric id", path: "/labels/abc", setup: func(*mockLabelService) {}, status: http.StatusBadRequest},
		{name: "zero id", path: "/labels/0", setup: func(*mockLabelService) {}, status: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockLabelService{}
			tt.setup(svc)

			rr := serve(newLabelRouter(svc), http.MethodGet, tt.path, "")
			assert.Equal(t, tt.status, rr.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestResourceHandler_Create(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		svc := &mockLabelService{}
		svc.On("Create", mock.Anything, service.LabelCreateInput{Name: "feature"}).
			Return(&domain.Label{ID: 3, Name: "feature"}, nil)

		rr := serve(newLabelRouter(svc), http.MethodPost, "/labels", `{"name":"feature"}`)

		assert.Equal(t, http.StatusCreated, rr.Code)
		var got domain.Label
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.Equal(t, int64(3), got.ID)
		svc.AssertExpectations(t)
	})

	t.Run("malformed body", func(t *testing.T) {
		svc := &mockLabelService{}
		rr := serve(newLabelRouter(svc), http.MethodPost, "/labels", `{"name":`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("duplicate", func(t *testing.T) {
		svc := &mockLabelService{}
		svc.On("Create", mock.Anything, mock.Anything).Return(nil, store.ErrLabelNameExists)

		rr := serve(newLabelRouter(svc), http.MethodPost, "/labels", `{"name":"bug"}`)
		assert.Equal(t, http.StatusConflict, rr.Code)
	})

	t.Run("validation failure lists fields", func(t *testing.T) {
		svc := &mockLabelService{}
		svc.On("Create", mock.Anything, mock.Anything).
			Return(nil, domain.NewValidationError("name", "must be at least 3 characters"))

		rr := serve(newLabelRouter(svc), http.MethodPost, "/labels", `{"name":"ab"}`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.JSONEq(t,
			`{"error":"Validation failed","fields":[{"field":"name","message":"must be at least 3 characters"}]}`,
			rr.Body.String())
	})
}

func TestResourceHandler_Update(t *testing.T) {
	t.Run("passes presence information to the service", func(t *testing.T) {
		svc := &mockLabelService{}
		svc.On("Update", mock.Anything, int64(4), mock.MatchedBy(func(in service.LabelUpdateInput) bool {
			v, ok := in.Name.Value()
			return ok && v == "defect"
		})).Return(&domain.Label{ID: 4, Name: "defect"}, nil)

		rr := serve(newLabelRouter(svc), http.MethodPut, "/labels/4", `{"name":"defect"}`)
		assert.Equal(t, http.StatusOK, rr.Code)
		svc.AssertExpectations(t)
	})

	t.Run("absent field stays unset", func(t *testing.T) {
		svc := &mockLabelService{}
		svc.On("Update", mock.Anything, int64(4), mock.MatchedBy(func(in service.LabelUpdateInput) bool {
			return !in.Name.IsSet()
		})).Return(&domain.Label{ID: 4, Name: "bug"}, nil)

		rr := serve(newLabelRouter(svc), http.MethodPut, "/labels/4", `{}`)
		assert.Equal(t, http.StatusOK, rr.Code)
		svc.AssertExpectations(t)
	})

	t.Run("missing entity", func(t *testing.T) {
		svc := &mockLabelService{}
		svc.On("Update", mock.Anything, int64(9), mock.Anything).Return(nil, store.ErrLabelNotFound)

		rr := serve(newLabelRouter(svc), http.MethodPut, "/labels/9", `{"name":"x"}`)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestResourceHandler_Delete(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "deleted", err: nil, status: http.StatusNoContent},
		{name: "missing", err: store.ErrLabelNotFound, status: http.StatusNotFound},
		{name: "failure", err: errors.New("db down"), status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockLabelService{}
			svc.On("Delete", mock.Anything, int64(2)).Return(tt.err)

			rr := serve(newLabelRouter(svc), http.MethodDelete, "/labels/2", "")
			assert.Equal(t, tt.status, rr.Code)
			if tt.status == http.StatusNoContent {
				assert.Empty(t, rr.Body.String())
			}
		})
	}
}
