package mocks

import (
	"github.com/taskdeck/taskdeck-api/internal/service/auth"
)

// MockPasswordVerifier implements auth.PasswordVerifier for testing.
// It matches the MockUserStore's fake hashing scheme by default.
type MockPasswordVerifier struct {
	// ShouldSucceed forces every comparison to pass when true.
	ShouldSucceed bool

	CompareFn func(hashedPassword, password string) error
}

// Ensure MockPasswordVerifier implements auth.PasswordVerifier interface
var _ auth.PasswordVerifier = (*MockPasswordVerifier)(nil)

// Compare implements the PasswordVerifier interface.
func (m *MockPasswordVerifier) Compare(hashedPassword, password string) error {
	if m.CompareFn != nil {
		return m.CompareFn(hashedPassword, password)
	}
	if m.ShouldSucceed {
		return nil
	}
	if hashedPassword == "hashed:"+password {
		return nil
	}
	return auth.ErrInvalidCredentials
}
