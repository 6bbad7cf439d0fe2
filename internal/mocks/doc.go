// Package mocks provides centralized mock implementations for testing.
//
// This package contains mock implementations of interfaces used throughout
// the application, facilitating consistent and DRY testing across the
// codebase. Instead of defining inline mocks in individual test files, these
// standardized mock implementations can be reused.
//
// Each mock exposes function fields for every interface method. When a
// function field is nil, the mock falls back to a simple in-memory default
// so straightforward tests need no setup beyond the constructor:
//
//	userStore := mocks.NewMockUserStore()
//	userStore.GetByIDFn = func(ctx context.Context, id uuid.UUID) (*domain.User, error) {
//	    return nil, store.ErrUserNotFound
//	}
package mocks
