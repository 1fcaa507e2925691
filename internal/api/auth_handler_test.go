package api

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/task-manager-api/internal/service/auth"
	"github.com/stretchr/testify/assert"
)

type authenticatorFunc func(ctx context.Context, username, password string) (string, error)

func (f authenticatorFunc) Login(ctx context.Context, username, password string) (string, error) {
	return f(ctx, username, password)
}

func TestAuthHandler_Login(t *testing.T) {
	login := authenticatorFunc(func(ctx context.Context, username, password string) (string, error) {
		switch {
		case username == "broken@example.com":
			return "", errors.New("database unavailable")
		case username == "hexlet@example.com" && password == "qwerty":
			return "signed.jwt.token", nil
		default:
			return "", auth.ErrInvalidCredentials
		}
	})

	tests := []struct {
		name        string
		body        string
		status      int
		wantBody    string
		contentType string
	}{
		{
			name:        "valid credentials",
			body:        `{"username":"hexlet@example.com","password":"qwerty"}`,
			status:      http.StatusOK,
			wantBody:    "signed.jwt.token",
			contentType: "text/plain; charset=utf-8",
		},
		{
			name:        "wrong password",
			body:        `{"username":"hexlet@example.com","password":"nope"}`,
			status:      http.StatusUnauthorized,
			contentType: "application/json",
		},
		{
			name:        "empty password",
			body:        `{"username":"hexlet@example.com","password":""}`,
			status:      http.StatusUnauthorized,
			contentType: "application/json",
		},
		{
			name:        "missing fields",
			body:        `{"username":""}`,
			status:      http.StatusUnauthorized,
			contentType: "application/json",
		},
		{
			name:        "malformed body",
			body:        `not json`,
			status:      http.StatusBadRequest,
			contentType: "application/json",
		},
		{
			name:        "backend failure",
			body:        `{"username":"broken@example.com","password":"x"}`,
			status:      http.StatusInternalServerError,
			contentType: "application/json",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := chi.NewRouter()
			r.Post("/login", NewAuthHandler(login, nil).Login)

			rr := serve(r, http.MethodPost, "/login", tt.body)

			assert.Equal(t, tt.status, rr.Code)
			assert.Equal(t, tt.contentType, rr.Header().Get("Content-Type"))
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, rr.Body.String())
			} else {
				assert.NotContains(t, rr.Body.String(), "signed.jwt.token")
			}
		})
	}
}
