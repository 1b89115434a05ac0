package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a domain error so handlers can map it to an HTTP status
// without inspecting message text.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindDuplicate
	KindForeignKeyNotFound
	KindDependencyExists
	KindAlreadySold
	KindUnauthorized
	KindForbidden
)

// Error is a tagged domain error. Field names the offending input when the
// error concerns a specific field (foreign keys, uniqueness).
type Error struct {
	Kind    Kind
	Message string
	Field   string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// E builds a tagged error.
func E(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Ef builds a tagged error with a formatted message.
func Ef(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Field attaches the offending field name.
func (e *Error) WithField(field string) *Error {
	e.Field = field
	return e
}

// Wrap tags an underlying error as an internal failure with context.
func Wrap(message string, err error) *Error {
	return &Error{Kind: KindInternal, Message: message, Err: err}
}

// KindOf extracts the kind from err, defaulting to KindInternal.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}

// ErrorResponse represents a standardized error body.
type ErrorResponse struct {
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// HTTPStatus maps an error kind to its status code.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation, KindForeignKeyNotFound:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindDuplicate, KindDependencyExists, KindAlreadySold:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// ToResponse shapes err into the JSON error body. Internal errors are
// replaced with a generic message so persistence details never leak.
func ToResponse(err error) ErrorResponse {
	var de *Error
	if errors.As(err, &de) && de.Kind != KindInternal {
		return ErrorResponse{Message: de.Message, Field: de.Field}
	}
	return ErrorResponse{Message: "internal server error"}
}
