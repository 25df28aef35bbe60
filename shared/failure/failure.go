// Package failure carries client-facing errors: an HTTP status plus a message safe to show.
// Anything that is not a *Failure is treated as an internal error by the transport layer.
package failure

import (
	"errors"
	"net/http"
)

type Failure struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	cause   error
}

// ErrForbidden is returned when a role may not use an endpoint.
var ErrForbidden = New(http.StatusForbidden, "you don't have the required permissions")

func New(code int, message string) *Failure {
	return &Failure{Code: code, Message: message}
}

func (e *Failure) Error() string {
	return e.Message
}

// Unwrap exposes the error the failure was built from, if any.
func (e *Failure) Unwrap() error {
	return e.cause
}

// BadRequest reports err's message as a 400. A nil err stays nil.
func BadRequest(err error) error {
	if err == nil {
		return nil
	}

	return &Failure{Code: http.StatusBadRequest, Message: err.Error(), cause: err}
}

func BadRequestFromString(msg string) error {
	return New(http.StatusBadRequest, msg)
}

func Unauthorized(msg string) error {
	return New(http.StatusUnauthorized, msg)
}

func Forbidden(msg string) error {
	return New(http.StatusForbidden, msg)
}

// NotFound takes the entity name as its message.
func NotFound(entityName string) error {
	return New(http.StatusNotFound, entityName)
}

func Conflict(msg string) error {
	return New(http.StatusConflict, msg)
}

// Gone marks something that existed but can no longer be used, like an expired invite.
func Gone(msg string) error {
	return New(http.StatusGone, msg)
}

// TooLarge covers both per-object limits and exhausted storage quota.
func TooLarge(msg string) error {
	return New(http.StatusRequestEntityTooLarge, msg)
}

// GetCode returns the status carried by err, 500 for anything that is not a Failure.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}

// Is reports whether err carries code.
func Is(err error, code int) bool {
	return err != nil && GetCode(err) == code
}
