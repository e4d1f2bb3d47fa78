// Package errors provides structured error types for assetsync.
//
// Every failure the sync loop can hit carries a machine-readable [Code].
// The code decides how the runner treats the failure:
//   - Fatal codes (MISSING_TOKEN, INVALID_PATH, TRAVERSAL) abort the run
//   - Every other code is scoped to a single asset file, which is left
//     untouched while the run moves on
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidLink, "link has no repository: %s", link)
//	if errors.Is(err, errors.ErrCodeInvalidLink) {
//	    // skip this file
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeNetwork, origErr, "fetch %s/%s", owner, repo)
package errors

import (
	"context"
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input errors
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidAsset    Code = "INVALID_ASSET"
	ErrCodeInvalidLink     Code = "INVALID_LINK"
	ErrCodeInvalidManifest Code = "INVALID_MANIFEST"
	ErrCodeInvalidPath     Code = "INVALID_PATH"

	// Remote errors
	ErrCodeNotFound            Code = "NOT_FOUND"
	ErrCodeNetwork             Code = "NETWORK_ERROR"
	ErrCodeRateLimited         Code = "RATE_LIMITED"
	ErrCodeUnauthorized        Code = "UNAUTHORIZED"
	ErrCodeInvalidResponse     Code = "INVALID_RESPONSE"
	ErrCodeUnsupportedEncoding Code = "UNSUPPORTED_ENCODING"

	// Run-level errors
	ErrCodeMissingToken Code = "MISSING_TOKEN"
	ErrCodeTraversal    Code = "TRAVERSAL"
	ErrCodeWrite        Code = "WRITE_FAILED"
)

// fatalCodes abort the whole run. Anything else only affects one file.
var fatalCodes = map[Code]bool{
	ErrCodeMissingToken: true,
	ErrCodeInvalidPath:  true,
	ErrCodeTraversal:    true,
}

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Cause != nil {
			return e.Message + ": " + e.Cause.Error()
		}
		return e.Message
	}
	return err.Error()
}

// IsFatal reports whether err must abort the run rather than skip a file.
// Coded errors are fatal only for the codes listed in fatalCodes. Uncoded
// context cancellation is always fatal.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	if code := GetCode(err); code != "" {
		return fatalCodes[code]
	}
	return IsCanceled(err)
}

// IsCanceled reports whether err comes from a cancelled or expired context.
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// RateLimitedError provides additional information for rate-limited responses.
type RateLimitedError struct {
	RetryAfter int // Seconds to wait before retrying
	Message    string
}

// Error implements the error interface.
func (e *RateLimitedError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("rate limited: retry after %d seconds", e.RetryAfter)
	}
	return "rate limited"
}

// Code returns the error code for this error type.
func (e *RateLimitedError) Code() Code {
	return ErrCodeRateLimited
}
