package models

import "errors"

// Domain specific errors for authentication and session handling.
var (
	ErrUnauthenticated = errors.New("authentication required or invalid credentials")
	ErrSessionExpired  = errors.New("session expired")
	ErrBadRequest      = errors.New("bad request")
	ErrConflict        = errors.New("item already exists or conflict")
)
