package auth

import "errors"

// Common authentication service errors
var (
	// ErrInvalidToken indicates the token is malformed or its signature
	// doesn't match
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken indicates the token has expired
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrTokenNotYetValid indicates the token is not yet valid (nbf claim in the future)
	ErrTokenNotYetValid = errors.New("authentication token not yet valid")

	// ErrInvalidCredentials indicates a login attempt with an unknown
	// identifier or a wrong password. Deliberately one error for both cases.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInactiveAccount indicates a login attempt against a deactivated account.
	ErrInactiveAccount = errors.New("user account is inactive")
)
