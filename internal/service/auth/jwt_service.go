package auth

import (
	"context"
	"time"
)

// JWTService defines operations for managing JWT authentication tokens.
type JWTService interface {
	// GenerateToken creates a signed token whose subject is the user's email.
	// The validity window is fixed when the token is issued.
	GenerateToken(ctx context.Context, userID int64, email string) (string, error)

	// ValidateToken verifies signature and expiry and returns the claims.
	// Returns ErrExpiredToken for expired tokens and ErrInvalidToken for any
	// other failure.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims is the validated content of a token.
type Claims struct {
	// UserID is the numeric ID of the user the token was issued for.
	UserID int64

	// Subject is the user's email, the login name.
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
	ID        string
}
