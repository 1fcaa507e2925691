package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/phrazzld/task-manager-api/internal/api/shared"
	"github.com/phrazzld/task-manager-api/internal/platform/logger"
	"github.com/phrazzld/task-manager-api/internal/redact"
)

// Authenticator exchanges credentials for a signed token.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (string, error)
}

// AuthHandler handles authentication-related API requests.
type AuthHandler struct {
	authenticator Authenticator
	logger        *slog.Logger
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(authenticator Authenticator, logger *slog.Logger) *AuthHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthHandler{
		authenticator: authenticator,
		logger:        logger.With(slog.String("component", "auth_handler")),
	}
}

// Login handles POST /api/login. On success the body is the raw token as
// text/plain; bad credentials yield 401.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req LoginRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	token, err := h.authenticator.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		status := MapErrorToStatusCode(err)
		if status == http.StatusUnauthorized {
			shared.RespondWithErrorAndLog(w, r, status, GetSafeErrorMessage(err), err,
				shared.WithElevatedLogLevel())
			return
		}
		log.Error("login failed", slog.String("error", redact.Error(err)))
		HandleAPIError(w, r, err, "Failed to authenticate user")
		return
	}

	shared.RespondWithText(w, r, http.StatusOK, token)
}
