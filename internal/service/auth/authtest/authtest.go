// Package authtest provides JWT helpers shared by tests that need
// authenticated requests.
package authtest

import (
	"context"
	"fmt"
	"testing"

	"github.com/phrazzld/task-manager-api/internal/config"
	"github.com/phrazzld/task-manager-api/internal/service/auth"
	"github.com/stretchr/testify/require"
)

// DefaultJWTConfig returns a standard configuration for JWT authentication suitable for testing.
func DefaultJWTConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:            "test-jwt-secret-that-is-32-chars-long",
		TokenLifetimeMinutes: 60,
		BCryptCost:           4,
	}
}

// RequireJWTService creates a JWT service from DefaultJWTConfig, failing the test on error.
func RequireJWTService(t *testing.T) auth.JWTService {
	t.Helper()
	svc, err := auth.NewJWTService(DefaultJWTConfig())
	require.NoError(t, err, "Failed to create test JWT service")
	return svc
}

// AuthHeader returns an Authorization header value carrying a token signed
// by svc for the given user.
func AuthHeader(t *testing.T, svc auth.JWTService, userID int64, email string) string {
	t.Helper()
	token, err := svc.GenerateToken(context.Background(), userID, email)
	require.NoError(t, err, "Failed to generate test token")
	return fmt.Sprintf("Bearer %s", token)
}
