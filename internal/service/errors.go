package service

import "errors"

// Common service errors - sentinel errors used across service implementations.
// Service methods return sentinel errors for expected conditions; callers use
// errors.Is to check for them, and the API layer maps them to HTTP status
// codes.
var (
	// ErrInactiveAssignee indicates an attempt to assign a task to a
	// deactivated user account.
	ErrInactiveAssignee = errors.New("cannot assign task to inactive user")
)
