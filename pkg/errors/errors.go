// Package errors attaches stable codes to wordcloud failures.
//
// A code survives wrapping, so the CLI can pick an exit message and the
// HTTP server a status without matching on error strings. Input problems
// (bad values, unknown formats, unreadable paths) abort the whole run and
// carry an INVALID_* code. A word that cannot be rasterized or does not fit
// is not an error for the layout; its outcome is recorded on the word with
// UNPLACEABLE or RASTERIZATION_FAILED.
//
//	err := errors.New(errors.ErrCodeInvalidInput, "word %d has non-finite value", i)
//	if errors.IsInvalid(err) {
//	    // reject the request
//	}
//
//	err = errors.Wrap(errors.ErrCodeRasterization, cause, "render %q", word)
package errors

import (
	"errors"
	"fmt"
)

// Code is the machine-readable class of an Error.
type Code string

const (
	// Rejected input.
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeInvalidPath   Code = "INVALID_PATH"

	// Per-word outcomes; a layout never aborts on these.
	ErrCodeUnplaceable   Code = "UNPLACEABLE"
	ErrCodeRasterization Code = "RASTERIZATION_FAILED"

	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Shared cache backends.
	ErrCodeNetwork Code = "NETWORK_ERROR"
	ErrCodeTimeout Code = "TIMEOUT"

	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error pairs a Code with a message and an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	msg := string(e.Code) + ": " + e.Message
	if e.Cause == nil {
		return msg
	}
	return msg + ": " + e.Cause.Error()
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap is New with a cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	e := New(code, format, args...)
	e.Cause = cause
	return e
}

// Is reports whether the outermost *Error in err's chain has code.
func Is(err error, code Code) bool {
	return err != nil && GetCode(err) == code
}

// GetCode returns the code of the outermost *Error in err's chain, or ""
// when there is none.
func GetCode(err error) Code {
	if e, ok := asError(err); ok {
		return e.Code
	}
	return ""
}

// UserMessage returns the message without its code prefix. Errors without
// a code are returned verbatim.
func UserMessage(err error) string {
	if e, ok := asError(err); ok {
		return e.Message
	}
	return err.Error()
}

// IsInvalid reports whether err was caused by the caller's input.
func IsInvalid(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidInput, ErrCodeInvalidFormat, ErrCodeInvalidConfig, ErrCodeInvalidPath:
		return true
	}
	return false
}

func asError(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}
