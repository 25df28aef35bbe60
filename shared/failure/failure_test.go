package failure_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"folio/shared/failure"

	"github.com/stretchr/testify/assert"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
		msg  string
	}{
		{"bad request", failure.BadRequestFromString("rating must be between 1 and 5"), http.StatusBadRequest, "rating must be between 1 and 5"},
		{"unauthorized", failure.Unauthorized("invalid credentials"), http.StatusUnauthorized, "invalid credentials"},
		{"forbidden", failure.Forbidden("superadmin only"), http.StatusForbidden, "superadmin only"},
		{"not found", failure.NotFound("event"), http.StatusNotFound, "event"},
		{"conflict", failure.Conflict("invite already used"), http.StatusConflict, "invite already used"},
		{"gone", failure.Gone("invite expired"), http.StatusGone, "invite expired"},
		{"too large", failure.TooLarge("storage quota exceeded"), http.StatusRequestEntityTooLarge, "storage quota exceeded"},
		{"shared forbidden", failure.ErrForbidden, http.StatusForbidden, "you don't have the required permissions"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, failure.GetCode(tt.err))
			assert.EqualError(t, tt.err, tt.msg)
			assert.True(t, failure.Is(tt.err, tt.code))
		})
	}
}

func TestBadRequestKeepsCause(t *testing.T) {
	cause := errors.New("unexpected EOF")

	err := failure.BadRequest(cause)

	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	assert.ErrorIs(t, err, cause)
	assert.NoError(t, failure.BadRequest(nil))
}

func TestGetCode(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(errors.New("connection reset")))
	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(nil))

	wrapped := fmt.Errorf("loading event: %w", failure.NotFound("event"))
	assert.Equal(t, http.StatusNotFound, failure.GetCode(wrapped))

	assert.False(t, failure.Is(nil, http.StatusInternalServerError))
}
