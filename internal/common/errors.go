package common

import "errors"

var (
	// Input errors.
	ErrEmptyID   = errors.New("identifier is required")
	ErrEmptyForm = errors.New("form must contain at least one field")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
	ErrNoSession    = errors.New("no session user")
)
