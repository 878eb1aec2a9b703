package apperr

import (
	stdErrors "errors"
	"fmt"
	"net/http"
)

// Code identifies a class of failure that can be surfaced to API clients.
type Code string

const (
	CodeUnavailable Code = "service_unavailable"
	CodeConflict    Code = "conflict"
	CodeNotFound    Code = "not_found"
	CodeValidation  Code = "validation_failed"
	CodeInternal    Code = "internal_error"
)

var statusByCode = map[Code]int{
	// an unconfigured store is reported as a plain 500
	CodeUnavailable: http.StatusInternalServerError,
	CodeConflict:    http.StatusBadRequest,
	CodeNotFound:    http.StatusNotFound,
	CodeValidation:  http.StatusBadRequest,
	CodeInternal:    http.StatusInternalServerError,
}

// HTTPStatus returns the response status for a code. Unknown codes map to 500.
func HTTPStatus(code Code) int {
	if s, ok := statusByCode[code]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// Error is a coded application error with an optional cause and details payload.
type Error struct {
	code    Code
	message string
	details map[string]any
	cause   error
}

func New(code Code, message string) *Error {
	return &Error{code: code, message: message}
}

func Wrap(code Code, err error, message string) *Error {
	if err == nil {
		return New(code, message)
	}
	return &Error{code: code, message: message, cause: err}
}

// Unavailable is returned by every data-bearing operation when no store is configured.
func Unavailable() *Error {
	return New(CodeUnavailable, "Database not configured")
}

func (e *Error) Code() Code {
	if e == nil {
		return CodeInternal
	}
	return e.code
}

func (e *Error) Message() string {
	if e == nil {
		return ""
	}
	return e.message
}

func (e *Error) Details() map[string]any {
	if e == nil {
		return nil
	}
	return e.details
}

func (e *Error) WithDetails(details map[string]any) *Error {
	if e == nil {
		return nil
	}
	e.details = details
	return e
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.code, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.code, e.message)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

// As extracts the first *Error in err's chain, or nil.
func As(err error) *Error {
	if err == nil {
		return nil
	}
	var typed *Error
	if stdErrors.As(err, &typed) {
		return typed
	}
	return nil
}

// Is reports whether err carries the given code.
func Is(err error, code Code) bool {
	typed := As(err)
	return typed != nil && typed.code == code
}
