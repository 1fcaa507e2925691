package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/task-manager-api/internal/platform/logger"
	"github.com/phrazzld/task-manager-api/internal/store"
)

// LoginService verifies credentials and issues tokens.
type LoginService struct {
	users    store.UserStore
	verifier PasswordVerifier
	tokens   JWTService
	logger   *slog.Logger
}

// NewLoginService creates a LoginService.
func NewLoginService(
	users store.UserStore,
	verifier PasswordVerifier,
	tokens JWTService,
	logger *slog.Logger,
) (*LoginService, error) {
	if users == nil {
		return nil, errors.New("users cannot be nil")
	}
	if verifier == nil {
		return nil, errors.New("verifier cannot be nil")
	}
	if tokens == nil {
		return nil, errors.New("tokens cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &LoginService{
		users:    users,
		verifier: verifier,
		tokens:   tokens,
		logger:   logger.With(slog.String("component", "login_service")),
	}, nil
}

// Login checks username (the user's email) and password against the stored
// hash and returns a signed token. Unknown users and wrong passwords both
// yield ErrInvalidCredentials.
func (s *LoginService) Login(ctx context.Context, username, password string) (string, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if username == "" || password == "" {
		return "", ErrInvalidCredentials
	}

	user, err := s.users.GetByEmail(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			log.Debug("login attempt for unknown user")
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("failed to look up user: %w", err)
	}

	if err := s.verifier.Compare(user.PasswordHash, password); err != nil {
		log.Debug("login attempt with wrong password", slog.Int64("user_id", user.ID))
		return "", ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateToken(ctx, user.ID, user.Email)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	log.Info("user logged in", slog.Int64("user_id", user.ID))
	return token, nil
}
