package mocks

import (
	"errors"
	"sync"
)

// ErrPasswordMismatch is returned by MockPasswordVerifier when it rejects a password.
var ErrPasswordMismatch = errors.New("password mismatch")

// PasswordCheck records one Compare call.
type PasswordCheck struct {
	Hash     string
	Password string
}

// MockPasswordVerifier implements auth.PasswordVerifier. The zero value
// rejects every password; set Accept or CompareFn to change that.
type MockPasswordVerifier struct {
	Accept    bool
	CompareFn func(hashedPassword, password string) error

	mu    sync.Mutex
	Calls []PasswordCheck
}

// Compare records the call and applies CompareFn or Accept.
func (m *MockPasswordVerifier) Compare(hashedPassword, password string) error {
	m.mu.Lock()
	m.Calls = append(m.Calls, PasswordCheck{Hash: hashedPassword, Password: password})
	m.mu.Unlock()

	if m.CompareFn != nil {
		return m.CompareFn(hashedPassword, password)
	}
	if m.Accept {
		return nil
	}
	return ErrPasswordMismatch
}
