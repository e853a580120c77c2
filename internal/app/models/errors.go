package models

import "errors"

// Domain specific errors for authentication, authorization and upstream access.
var (
	ErrNoSession           = errors.New("no session present")
	ErrCorruptSession      = errors.New("session cookie could not be decoded")
	ErrUnauthenticated     = errors.New("authentication required or invalid credentials")
	ErrForbidden           = errors.New("action forbidden")
	ErrValidation          = errors.New("validation failed")
	ErrUpstreamUnavailable = errors.New("upstream api unavailable")
	ErrInvalidResponse     = errors.New("upstream api returned an unreadable response")
)
