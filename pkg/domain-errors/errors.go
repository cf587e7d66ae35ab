// Package domainerrors provides coded errors for the service layer. Stores
// return sentinel errors; services translate them into coded errors here so
// transports can map codes to status without inspecting error strings.
package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code classifies a domain error for transport mapping and tests.
type Code string

const (
	CodeBadRequest   Code = "bad_request"
	CodeInvalidInput Code = "invalid_input"
	CodeNotFound     Code = "not_found"
	CodeForbidden    Code = "forbidden"
	CodeUnauthorized Code = "unauthorized"
	CodeConflict     Code = "conflict"
	CodeInternal     Code = "internal"
)

// Error carries a code plus a human-readable message. The message is safe to
// return to callers; anything sensitive belongs in logs, not here.
type Error struct {
	Code    Code
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Code)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// New constructs a coded error.
func New(code Code, message string) error {
	return &Error{Code: code, Message: message}
}

// Wrap attaches a code and message to an underlying cause.
func Wrap(code Code, message string, cause error) error {
	return &Error{Code: code, Message: message, cause: cause}
}

// Is reports whether err (or anything it wraps) carries the given code.
func Is(err error, code Code) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// HasCode is an alias for Is kept for call-site readability in tests.
func HasCode(err error, code Code) bool { return Is(err, code) }

// CodeOf extracts the code from err, defaulting to CodeInternal.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// ToHTTPStatus maps a code to its HTTP status.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeBadRequest, CodeInvalidInput:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeForbidden:
		return http.StatusForbidden
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
