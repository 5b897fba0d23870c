// Package apperr defines the typed errors domain services return. Each
// error carries a Kind that the HTTP layer maps onto a status code, so
// services never import net/http semantics directly.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error for transport mapping.
type Kind int

const (
	// KindUnknown is the zero value for untyped errors.
	KindUnknown Kind = iota
	// KindNotFound: the referenced entity does not exist.
	KindNotFound
	// KindValidation: the input is invalid.
	KindValidation
	// KindConflict: the request clashes with current state, e.g. no
	// assignable admin or a duplicate unique key.
	KindConflict
	// KindForbidden: the caller may not perform this action.
	KindForbidden
	// KindUnauthorized: authentication is missing or failed.
	KindUnauthorized
	// KindBadRequest: the request itself is malformed.
	KindBadRequest
	// KindInternal: an unexpected failure.
	KindInternal
)

// Error is a Kind-classified domain error.
type Error struct {
	Kind    Kind
	Message string
	Op      string      // failing operation, optional
	Err     error       // wrapped cause, optional
	Details interface{} // extra payload for the response, optional
}

func (e *Error) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// HTTPStatus maps the error's Kind to a status code.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindValidation, KindBadRequest:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	case KindForbidden:
		return http.StatusForbidden
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

// New builds an error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap builds an error of the given kind around a cause.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// WithOp records the failing operation on the error.
func (e *Error) WithOp(op string) *Error {
	e.Op = op
	return e
}

// WithDetails attaches a response payload to the error.
func (e *Error) WithDetails(details interface{}) *Error {
	e.Details = details
	return e
}

// Shorthand constructors for the common kinds.

func NotFound(message string) *Error     { return New(KindNotFound, message) }
func Validation(message string) *Error   { return New(KindValidation, message) }
func Conflict(message string) *Error     { return New(KindConflict, message) }
func Forbidden(message string) *Error    { return New(KindForbidden, message) }
func Unauthorized(message string) *Error { return New(KindUnauthorized, message) }
func BadRequest(message string) *Error   { return New(KindBadRequest, message) }
func Internal(message string) *Error     { return New(KindInternal, message) }

// GetKind reports the Kind of err, or KindUnknown for untyped errors.
func GetKind(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Is reports whether err is an *Error of the given kind.
func Is(err error, kind Kind) bool {
	return GetKind(err) == kind
}
