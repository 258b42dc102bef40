// Package errs defines the typed errors raised by the domain core.
// Each error carries an HTTP-style status hint; the transport layer maps
// the hint to a response, the core only constructs and returns them.
package errs

import (
	"errors"
	"net/http"
)

type Kind string

const (
	KindNullData     Kind = "null_data"
	KindBadRequest   Kind = "bad_request"
	KindNotFound     Kind = "not_found"
	KindUnauthorized Kind = "unauthorized"
	KindTokenInvalid Kind = "token_invalid"
	KindConflict     Kind = "conflict"
)

type Error struct {
	Kind    Kind
	Status  int
	Message string
}

func (e *Error) Error() string { return e.Message }

// NullData signals a required field that was not provided.
func NullData(msg string) *Error {
	return &Error{Kind: KindNullData, Status: http.StatusBadRequest, Message: msg}
}

// BadRequest signals a format, range, or business-rule violation.
func BadRequest(msg string) *Error {
	return &Error{Kind: KindBadRequest, Status: http.StatusBadRequest, Message: msg}
}

// NotFound signals a referenced entity that does not exist.
func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Status: http.StatusNotFound, Message: msg}
}

// Unauthorized signals a credential mismatch.
func Unauthorized(msg string) *Error {
	return &Error{Kind: KindUnauthorized, Status: http.StatusUnauthorized, Message: msg}
}

// TokenInvalid signals a malformed, mis-signed, or expired bearer token.
func TokenInvalid(msg string) *Error {
	return &Error{Kind: KindTokenInvalid, Status: http.StatusUnauthorized, Message: msg}
}

// Conflict signals a uniqueness violation surfaced by the store.
func Conflict(msg string) *Error {
	return &Error{Kind: KindConflict, Status: http.StatusConflict, Message: msg}
}

// IsKind reports whether err is a domain error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

// StatusOf returns the status hint for err, or 500 for unknown errors.
func StatusOf(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Status
	}
	return http.StatusInternalServerError
}
