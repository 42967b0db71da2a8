// Package apperrors provides typed errors that map onto HTTP status codes.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Type is the category of an error, used for the status code and metrics.
type Type string

const (
	TypeValidation   Type = "validation"
	TypeUnauthorized Type = "unauthorized"
	TypeForbidden    Type = "forbidden"
	TypeNotFound     Type = "not_found"
	TypeConflict     Type = "conflict"
	TypeInternal     Type = "internal"
)

// Error is a structured error with a client-safe message.
type Error struct {
	Type    Type
	Message string
	Cause   error
	Context map[string]any
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// HTTPStatus returns the status code for this error type.
func (e *Error) HTTPStatus() int {
	switch e.Type {
	case TypeValidation:
		return http.StatusBadRequest
	case TypeUnauthorized:
		return http.StatusUnauthorized
	case TypeForbidden:
		return http.StatusForbidden
	case TypeNotFound:
		return http.StatusNotFound
	case TypeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// WithField adds a context field (chainable).
func (e *Error) WithField(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

func newError(t Type, message string, cause error) *Error {
	return &Error{Type: t, Message: message, Cause: cause}
}

func Validation(message string) *Error   { return newError(TypeValidation, message, nil) }
func Unauthorized(message string) *Error { return newError(TypeUnauthorized, message, nil) }
func Forbidden(message string) *Error    { return newError(TypeForbidden, message, nil) }
func NotFound(message string) *Error     { return newError(TypeNotFound, message, nil) }
func Conflict(message string) *Error     { return newError(TypeConflict, message, nil) }

func Internal(message string, cause error) *Error {
	return newError(TypeInternal, message, cause)
}

// As converts any error into an *Error. Unknown errors become internal.
func As(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Internal("internal server error", err)
}

// IsType reports whether err is a structured error of type t.
func IsType(err error, t Type) bool {
	var e *Error
	return errors.As(err, &e) && e.Type == t
}
