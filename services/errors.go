package services

import "errors"

var (
	// ErrUserExists is returned by SignUp when the username is already taken.
	ErrUserExists = errors.New("user already exists")

	// ErrInvalidCredentials covers both an unknown username and a wrong
	// password so callers cannot tell which one failed.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken is returned for malformed, wrongly signed or expired tokens.
	ErrInvalidToken = errors.New("invalid or expired token")

	// ErrStore wraps any persistence failure.
	ErrStore = errors.New("store failure")
)
