package domain_test

import (
	"testing"

	"github.com/phrazzld/task-manager-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestNewUser(t *testing.T) {
	u, err := domain.NewUser("jane@example.com", "secret", strPtr("Jane"), nil)
	require.NoError(t, err)

	assert.Equal(t, "jane@example.com", u.Email)
	assert.Equal(t, "secret", u.Password)
	assert.Equal(t, "Jane", *u.FirstName)
	assert.Nil(t, u.LastName)
	assert.False(t, u.CreatedAt.IsZero())
	assert.Equal(t, u.CreatedAt, u.UpdatedAt)
}

func TestUserValidate(t *testing.T) {
	tests := []struct {
		name       string
		user       domain.User
		wantFields []string
	}{
		{
			name: "valid with plaintext password",
			user: domain.User{Email: "a@example.com", Password: "abc"},
		},
		{
			name: "valid with stored hash",
			user: domain.User{Email: "a@example.com", PasswordHash: "$2a$10$hash"},
		},
		{
			name:       "missing email",
			user:       domain.User{Password: "abc"},
			wantFields: []string{"email"},
		},
		{
			name:       "malformed email",
			user:       domain.User{Email: "not-an-email", Password: "abc"},
			wantFields: []string{"email"},
		},
		{
			name:       "short password",
			user:       domain.User{Email: "a@example.com", Password: "ab"},
			wantFields: []string{"password"},
		},
		{
			name:       "no credentials",
			user:       domain.User{Email: "a@example.com"},
			wantFields: []string{"password"},
		},
		{
			name:       "several failures",
			user:       domain.User{Email: "bad", Password: "x"},
			wantFields: []string{"email", "password"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.user.Validate()
			if len(tt.wantFields) == 0 {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrValidation)
			ve, ok := domain.AsValidationError(err)
			require.True(t, ok)

			var got []string
			for _, f := range ve.Fields {
				got = append(got, f.Field)
			}
			assert.ElementsMatch(t, tt.wantFields, got)
		})
	}
}
