package response_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"folio/shared/failure"
	"folio/transport/http/response"

	"github.com/stretchr/testify/assert"
)

func TestWithError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
		body string
	}{
		{
			name: "failure",
			err:  failure.NotFound("event"),
			code: http.StatusNotFound,
		},
		{
			name: "wrapped failure keeps its own message",
			err:  fmt.Errorf("uploading cover: %w", failure.TooLarge("object exceeds 5 MB")),
			code: http.StatusRequestEntityTooLarge,
			body: `{"error":"object exceeds 5 MB"}`,
		},
		{
			name: "driver error is hidden",
			err:  errors.New(`pq: relation "events" does not exist`),
			code: http.StatusInternalServerError,
			body: `{"error":"internal server error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			response.WithError(rec, tt.err)

			assert.Equal(t, tt.code, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			if tt.body != "" {
				assert.JSONEq(t, tt.body, rec.Body.String())
			}
		})
	}
}

func TestWithJSON(t *testing.T) {
	rec := httptest.NewRecorder()

	response.WithJSON(rec, http.StatusCreated, map[string]int{"image_count": 3})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"data":{"image_count":3}}`, rec.Body.String())
}
