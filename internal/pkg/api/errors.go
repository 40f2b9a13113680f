package api

import (
	"fmt"
	"net/http"

	"github.com/nouhaa3/invisithreat/internal/app/models"
)

// Error is a non-2xx backend response. It unwraps to one of the models
// sentinels so call sites can branch with errors.Is, and keeps the backend's
// detail message for display when one was sent as a plain string.
type Error struct {
	Status   int
	Path     string
	Detail   string
	sentinel error
}

func newError(status int, path, detail string) *Error {
	e := &Error{Status: status, Path: path, Detail: detail}
	switch {
	case status == http.StatusUnauthorized && !isAuthEndpoint(path):
		// An expired or revoked credential on any other endpoint tears the
		// session down; the sentinel tells callers to run the logout
		// transition.
		e.sentinel = models.ErrSessionExpired
	case status == http.StatusUnauthorized:
		e.sentinel = models.ErrUnauthenticated
	case status == http.StatusConflict:
		e.sentinel = models.ErrConflict
	case status >= 400 && status < 500:
		e.sentinel = models.ErrBadRequest
	default:
		e.sentinel = fmt.Errorf("backend error %d", status)
	}
	return e
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("api %s: %d: %s", e.Path, e.Status, e.Detail)
	}
	return fmt.Sprintf("api %s: %d", e.Path, e.Status)
}

func (e *Error) Unwrap() error { return e.sentinel }

// Message returns the backend detail when it was a plain string, otherwise
// the supplied fallback. Validation-error arrays never reach the user.
func (e *Error) Message(fallback string) string {
	if e.Detail != "" {
		return e.Detail
	}
	return fallback
}
