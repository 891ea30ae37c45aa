package apperr

import (
	"net/http"
	"testing"

	"github.com/pkg/errors"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{Validation("bad input"), http.StatusBadRequest},
		{Unauthorized("no token"), http.StatusUnauthorized},
		{Forbidden("not yours"), http.StatusForbidden},
		{NotFound("gone"), http.StatusNotFound},
		{errors.New("pg: connection refused"), http.StatusInternalServerError},
		{errors.Wrap(NotFound("gone"), "fetching song"), http.StatusNotFound},
	}
	for _, tc := range tests {
		if got := Status(tc.err); got != tc.want {
			t.Errorf("Status(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}

func TestMessage_MasksInternalErrors(t *testing.T) {
	if got := Message(errors.New("dial tcp: lookup db failed")); got != "internal server error" {
		t.Errorf("internal error leaked: %q", got)
	}
	if got := Message(NotFound("song not found")); got != "song not found" {
		t.Errorf("got %q", got)
	}
}

func TestIsNotFound(t *testing.T) {
	if !IsNotFound(errors.Wrap(NotFound("x"), "ctx")) {
		t.Error("wrapped not-found should be recognized")
	}
	if IsNotFound(Forbidden("x")) {
		t.Error("forbidden is not a not-found")
	}
}
