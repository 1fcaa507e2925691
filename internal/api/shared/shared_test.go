package shared_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/phrazzld/task-manager-api/internal/api/shared"
	"github.com/phrazzld/task-manager-api/internal/domain"
	"github.com/phrazzld/task-manager-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserContext(t *testing.T) {
	ctx := context.Background()

	_, ok := shared.GetUserID(ctx)
	assert.False(t, ok)

	ctx = shared.WithUser(ctx, 42, "a@example.com")
	id, ok := shared.GetUserID(ctx)
	assert.True(t, ok)
	assert.Equal(t, int64(42), id)

	email, ok := shared.GetUserEmail(ctx)
	assert.True(t, ok)
	assert.Equal(t, "a@example.com", email)
}

func TestTraceID(t *testing.T) {
	assert.Empty(t, shared.GetTraceID(context.Background()))

	first := shared.GetTraceID(shared.SetTraceID(context.Background()))
	second := shared.GetTraceID(shared.SetTraceID(context.Background()))
	assert.Len(t, first, 32)
	assert.NotEqual(t, first, second)
}

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	tests := []struct {
		name    string
		body    string
		want    string
		wantErr bool
	}{
		{name: "valid", body: `{"name":"bug"}`, want: "bug"},
		{name: "empty", body: ``, wantErr: true},
		{name: "malformed", body: `{"name":`, wantErr: true},
		{name: "trailing value", body: `{"name":"a"}{"name":"b"}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var p payload
			err := shared.DecodeJSON(req, &p)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.Name)
		})
	}
}

func TestRespondWithList(t *testing.T) {
	rr := httptest.NewRecorder()
	shared.RespondWithList[int](rr, httptest.NewRequest(http.MethodGet, "/", nil), nil)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "0", rr.Header().Get(shared.TotalCountHeader))
	assert.JSONEq(t, `[]`, rr.Body.String())

	rr = httptest.NewRecorder()
	shared.RespondWithList(rr, httptest.NewRequest(http.MethodGet, "/", nil), []string{"a", "b"})
	assert.Equal(t, "2", rr.Header().Get(shared.TotalCountHeader))
}

func TestRespondWithErrorAndLog(t *testing.T) {
	buf, _ := logger.SetupTestLogger(t)

	req := httptest.NewRequest(http.MethodPost, "/api/users", nil)
	req = req.WithContext(shared.SetTraceID(req.Context()))
	rr := httptest.NewRecorder()

	fields := []domain.FieldError{{Field: "email", Message: "is required"}}
	shared.RespondWithErrorAndLog(rr, req, http.StatusBadRequest, "Validation failed",
		errors.New("dial postgres://admin:pw@db:5432/app"), shared.WithFields(fields))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var body shared.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "Validation failed", body.Error)
	assert.Equal(t, fields, body.Fields)
	assert.Equal(t, shared.GetTraceID(req.Context()), body.TraceID)
	assert.NotContains(t, rr.Body.String(), "postgres")

	entries, err := buf.GetLogEntries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "DEBUG", entries[0]["level"])
	assert.NotContains(t, entries[0]["error"], "admin:pw")
}

func TestRespondWithErrorAndLog_ServerErrorLevel(t *testing.T) {
	buf, _ := logger.SetupTestLogger(t)

	rr := httptest.NewRecorder()
	shared.RespondWithErrorAndLog(rr, httptest.NewRequest(http.MethodGet, "/", nil),
		http.StatusInternalServerError, "An unexpected error occurred", errors.New("boom"))

	entries, err := buf.GetLogEntries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "ERROR", entries[0]["level"])

	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.NotContains(t, body, "fields")
}

func TestRespondWithText(t *testing.T) {
	rr := httptest.NewRecorder()
	shared.RespondWithText(rr, httptest.NewRequest(http.MethodGet, "/", nil), http.StatusOK, "token")
	assert.Equal(t, "token", rr.Body.String())
	assert.Contains(t, rr.Header().Get("Content-Type"), "text/plain")
}
