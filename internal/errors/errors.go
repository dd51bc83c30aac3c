// Package errors defines stable error codes and the typed error carried
// through the analyzer. Every fatal exit maps to exactly one code.
package errors

import (
	"fmt"
)

// ErrorCode represents stable error codes for all failure modes
type ErrorCode string

const (
	// UsageError indicates invalid command-line usage (e.g. both filter lists set)
	UsageError ErrorCode = "USAGE_ERROR"
	// IoError indicates a dump file could not be opened or read
	IoError ErrorCode = "IO_ERROR"
	// FormatError indicates a dump file contained malformed or incompatible JSON
	FormatError ErrorCode = "FORMAT_ERROR"
	// MissingSource indicates a loaded snapshot has no machine-recipe source
	MissingSource ErrorCode = "MISSING_SOURCE"
	// HistoryError indicates the run-history database failed (non-fatal)
	HistoryError ErrorCode = "HISTORY_ERROR"
	// InternalError indicates unexpected error
	InternalError ErrorCode = "INTERNAL_ERROR"
)

// AnalyzerError represents an analyzer error with code and message
type AnalyzerError struct {
	Code    ErrorCode   `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
	cause   error       // Underlying error (not exported to JSON)
}

// New creates a new AnalyzerError
func New(code ErrorCode, message string, cause error) *AnalyzerError {
	return &AnalyzerError{
		Code:    code,
		Message: message,
		cause:   cause,
	}
}

// Newf creates a new AnalyzerError with a formatted message
func Newf(code ErrorCode, cause error, format string, args ...interface{}) *AnalyzerError {
	return &AnalyzerError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		cause:   cause,
	}
}

// Error implements the error interface
func (e *AnalyzerError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *AnalyzerError) Unwrap() error {
	return e.cause
}

// WithDetails adds details to the error
func (e *AnalyzerError) WithDetails(details interface{}) *AnalyzerError {
	e.Details = details
	return e
}

// CodeOf returns the error code of err, or InternalError for untyped errors.
func CodeOf(err error) ErrorCode {
	if ae, ok := err.(*AnalyzerError); ok {
		return ae.Code
	}
	return InternalError
}
