// Package errs defines the error kinds the core services surface to
// callers. Handlers branch on these with errors.Is, so lifecycle and
// authorization failures are never collapsed into a generic error.
package errs

import (
	"errors"
	"net/http"
)

var (
	// ErrNotFound means the referenced pool, prompt, or target does not exist.
	ErrNotFound = errors.New("not found")
	// ErrForbidden means the caller lacks the required role or membership.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidState means the operation conflicts with the current
	// lifecycle state, such as adding a prompt to a completed pool.
	ErrInvalidState = errors.New("invalid state")
	// ErrClosed means the target stopped accepting writes: a completed pool,
	// a resolved prompt, or a prompt past its deadline.
	ErrClosed = errors.New("closed")
	// ErrAlreadyResolved guards resolution idempotency.
	ErrAlreadyResolved = errors.New("already resolved")
	// ErrConflict means a unique key collided, e.g. invite-code generation
	// ran out of attempts.
	ErrConflict = errors.New("conflict")
	// ErrValidation means a required field is missing or malformed.
	ErrValidation = errors.New("validation failed")
)

// HTTPStatus maps an error kind to the status code handlers respond with.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrInvalidState), errors.Is(err, ErrClosed), errors.Is(err, ErrAlreadyResolved):
		return http.StatusConflict
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrConflict):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
