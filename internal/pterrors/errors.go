// Package pterrors defines stable error codes for all ptest failure modes.
package pterrors

import (
	"errors"
	"fmt"
)

// ErrorCode represents stable error codes for all failure modes
type ErrorCode string

const (
	// CoverageUnavailable indicates the coverage mapping for the project
	// could not be found or opened. Callers are expected to fail open and
	// fall back to a full test run.
	CoverageUnavailable ErrorCode = "COVERAGE_UNAVAILABLE"
	// DiffMalformed indicates the diff input violated the expected format
	DiffMalformed ErrorCode = "DIFF_MALFORMED"
	// GitFailed indicates a git invocation failed
	GitFailed ErrorCode = "GIT_FAILED"
	// OutputWriteFailed indicates the selection artifact could not be written
	OutputWriteFailed ErrorCode = "OUTPUT_WRITE_FAILED"
	// InternalError indicates unexpected error
	InternalError ErrorCode = "INTERNAL_ERROR"
)

// PtError represents a ptest error with a stable code and an optional cause
type PtError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	cause   error     // Underlying error (not exported to JSON)
}

// New creates a new PtError
func New(code ErrorCode, message string, cause error) *PtError {
	return &PtError{
		Code:    code,
		Message: message,
		cause:   cause,
	}
}

// Newf creates a new PtError with a formatted message
func Newf(code ErrorCode, cause error, format string, args ...interface{}) *PtError {
	return &PtError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		cause:   cause,
	}
}

// Error implements the error interface
func (e *PtError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *PtError) Unwrap() error {
	return e.cause
}

// CodeOf extracts the error code from err, or InternalError if err carries none
func CodeOf(err error) ErrorCode {
	var pe *PtError
	if errors.As(err, &pe) {
		return pe.Code
	}
	return InternalError
}

// HasCode reports whether err carries the given code
func HasCode(err error, code ErrorCode) bool {
	return err != nil && CodeOf(err) == code
}
