package mocks

import (
	"github.com/taskhive/taskhive-api/internal/service/auth"
)

// MockPasswordVerifier implements auth.PasswordVerifier for testing
type MockPasswordVerifier struct {
	// CompareFn allows test cases to mock the Compare behavior
	CompareFn func(hashedPassword, password string) error

	// Err is returned by the default implementation
	Err error
}

// Compare implements the auth.PasswordVerifier interface
func (m *MockPasswordVerifier) Compare(hashedPassword, password string) error {
	if m.CompareFn != nil {
		return m.CompareFn(hashedPassword, password)
	}

	return m.Err
}

// Compile-time check that MockPasswordVerifier satisfies the interface
var _ auth.PasswordVerifier = (*MockPasswordVerifier)(nil)
