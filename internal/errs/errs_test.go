package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatusMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{ErrNotFound, http.StatusNotFound},
		{ErrForbidden, http.StatusForbidden},
		{ErrInvalidState, http.StatusConflict},
		{ErrClosed, http.StatusConflict},
		{ErrAlreadyResolved, http.StatusConflict},
		{ErrValidation, http.StatusBadRequest},
		{ErrConflict, http.StatusInternalServerError},
		{errors.New("anything else"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := HTTPStatus(tc.err); got != tc.status {
			t.Fatalf("HTTPStatus(%v) = %d, want %d", tc.err, got, tc.status)
		}
	}
}

func TestWrappedErrorsKeepTheirKind(t *testing.T) {
	wrapped := fmt.Errorf("%w: prompt 7", ErrAlreadyResolved)
	if !errors.Is(wrapped, ErrAlreadyResolved) {
		t.Fatalf("wrapping must preserve the sentinel")
	}
	if HTTPStatus(wrapped) != http.StatusConflict {
		t.Fatalf("wrapped sentinel lost its status mapping")
	}
}
