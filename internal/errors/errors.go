// Package errors provides coded domain errors for the audiobook tool server.
//
// Usage:
//
//	// In the session - return typed errors
//	if s.book == nil {
//	    return errors.ErrNoBookLoaded
//	}
//
//	// In tool handlers - check with errors.Is
//	if errors.Is(err, errors.ErrNoBookLoaded) {
//	    return noBookLoadedReport, nil
//	}
//
//	// Or use the Code directly for switch statements
//	var domainErr *errors.Error
//	if errors.As(err, &domainErr) {
//	    switch domainErr.Code {
//	    case errors.CodeNotFound:
//	        ...
//	    }
//	}
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Re-export standard library functions for convenience.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	Join   = errors.Join
)

// Code represents a machine-readable error code.
type Code string

// Error codes used throughout the application.
const (
	CodeNotFound           Code = "NOT_FOUND"
	CodeValidation         Code = "VALIDATION"
	CodeInternal           Code = "INTERNAL"
	CodeUnknownTool        Code = "UNKNOWN_TOOL"
	CodeNoBookLoaded       Code = "NO_BOOK_LOADED"
	CodeChapterOutOfRange  Code = "CHAPTER_OUT_OF_RANGE"
	CodeSpeedOutOfRange    Code = "SPEED_OUT_OF_RANGE"
	CodeRateLimited        Code = "RATE_LIMITED"
	CodeCatalogUnavailable Code = "CATALOG_UNAVAILABLE"
)

// HTTPStatus returns the appropriate HTTP status code for an error code.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeNotFound, CodeUnknownTool:
		return http.StatusNotFound
	case CodeValidation, CodeChapterOutOfRange, CodeSpeedOutOfRange:
		return http.StatusBadRequest
	case CodeNoBookLoaded:
		return http.StatusConflict
	case CodeRateLimited:
		return http.StatusTooManyRequests
	case CodeCatalogUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Error is a domain error with a code, message, and optional details.
type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
	cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is reports whether target matches this error.
// Matches if target is an *Error with the same Code.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// HTTPStatus returns the HTTP status code for this error.
func (e *Error) HTTPStatus() int {
	return e.Code.HTTPStatus()
}

// WithDetails returns a new error with additional details.
func (e *Error) WithDetails(details any) *Error {
	return &Error{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
		cause:   e.cause,
	}
}

// WithCause wraps an underlying error.
func (e *Error) WithCause(err error) *Error {
	return &Error{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
		cause:   err,
	}
}

// Sentinel errors for use with errors.Is().
var (
	ErrNotFound           = &Error{Code: CodeNotFound, Message: "not found"}
	ErrValidation         = &Error{Code: CodeValidation, Message: "validation error"}
	ErrInternal           = &Error{Code: CodeInternal, Message: "internal error"}
	ErrUnknownTool        = &Error{Code: CodeUnknownTool, Message: "Unknown tool"}
	ErrNoBookLoaded       = &Error{Code: CodeNoBookLoaded, Message: "no audiobook currently loaded"}
	ErrChapterOutOfRange  = &Error{Code: CodeChapterOutOfRange, Message: "chapter out of range"}
	ErrSpeedOutOfRange    = &Error{Code: CodeSpeedOutOfRange, Message: "speed out of range"}
	ErrRateLimited        = &Error{Code: CodeRateLimited, Message: "rate limited"}
	ErrCatalogUnavailable = &Error{Code: CodeCatalogUnavailable, Message: "catalog unavailable"}
)

// Constructor functions for creating errors with custom messages.

// NotFound creates a not found error.
func NotFound(msg string) *Error {
	return &Error{Code: CodeNotFound, Message: msg}
}

// NotFoundf creates a not found error with formatted message.
func NotFoundf(format string, args ...any) *Error {
	return &Error{Code: CodeNotFound, Message: fmt.Sprintf(format, args...)}
}

// Validation creates a validation error.
func Validation(msg string) *Error {
	return &Error{Code: CodeValidation, Message: msg}
}

// Validationf creates a validation error with formatted message.
func Validationf(format string, args ...any) *Error {
	return &Error{Code: CodeValidation, Message: fmt.Sprintf(format, args...)}
}

// ValidationWithDetails creates a validation error with details.
func ValidationWithDetails(msg string, details any) *Error {
	return &Error{Code: CodeValidation, Message: msg, Details: details}
}

// Internal creates an internal error.
func Internal(msg string) *Error {
	return &Error{Code: CodeInternal, Message: msg}
}

// Internalf creates an internal error with formatted message.
func Internalf(format string, args ...any) *Error {
	return &Error{Code: CodeInternal, Message: fmt.Sprintf(format, args...)}
}

// UnknownTool creates an unknown tool error for the given tool name.
func UnknownTool(name string) *Error {
	return &Error{Code: CodeUnknownTool, Message: fmt.Sprintf("Unknown tool: %s", name), Details: name}
}

// ChapterOutOfRange creates a chapter range error carrying the requested
// chapter and the book's chapter count.
func ChapterOutOfRange(chapter, chapters int) *Error {
	return &Error{
		Code:    CodeChapterOutOfRange,
		Message: fmt.Sprintf("chapter %d not in range 1-%d", chapter, chapters),
		Details: ChapterRange{Requested: chapter, Chapters: chapters},
	}
}

// ChapterRange describes a rejected chapter request.
type ChapterRange struct {
	Requested int `json:"requested"`
	Chapters  int `json:"chapters"`
}

// SpeedOutOfRange creates a speed range error.
func SpeedOutOfRange(speed float64) *Error {
	return &Error{
		Code:    CodeSpeedOutOfRange,
		Message: fmt.Sprintf("speed %v must be between 0.5 and 3.0", speed),
		Details: speed,
	}
}

// Wrap wraps an error with a code and message.
func Wrap(err error, code Code, msg string) *Error {
	return &Error{Code: code, Message: msg, cause: err}
}

// Wrapf wraps an error with a code and formatted message.
func Wrapf(err error, code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), cause: err}
}
