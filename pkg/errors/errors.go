// Package errors defines common error types for heapscope.
package errors

import (
	"errors"
	"fmt"
)

// Error codes for the application.
const (
	CodeUnknown          = "UNKNOWN_ERROR"
	CodeSnapshotNotFound = "SNAPSHOT_NOT_FOUND"
	CodeNodeNotFound     = "NODE_NOT_FOUND"
	CodeProviderError    = "PROVIDER_ERROR"
	CodeParseError       = "PARSE_ERROR"
	CodeInvalidInput     = "INVALID_INPUT"
	CodeConfigError      = "CONFIG_ERROR"
	CodeDatabaseError    = "DATABASE_ERROR"
	CodeDownloadError    = "DOWNLOAD_ERROR"
	CodeUploadError      = "UPLOAD_ERROR"
	CodeTimeout          = "TIMEOUT_ERROR"
)

// AppError represents an application error with a code and message.
type AppError struct {
	Code    string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches AppErrors by code.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// New creates a new AppError.
func New(code string, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Wrap wraps an existing error with an AppError.
func Wrap(code string, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// Common error instances.
var (
	ErrSnapshotNotFound = New(CodeSnapshotNotFound, "snapshot not found")
	ErrNodeNotFound     = New(CodeNodeNotFound, "node not found")
	ErrProviderError    = New(CodeProviderError, "object data provider error")
	ErrParseError       = New(CodeParseError, "snapshot parse error")
	ErrInvalidInput     = New(CodeInvalidInput, "invalid input")
	ErrConfigError      = New(CodeConfigError, "configuration error")
	ErrDatabaseError    = New(CodeDatabaseError, "database error")
	ErrDownloadError    = New(CodeDownloadError, "download error")
	ErrTimeout          = New(CodeTimeout, "operation timeout")
)

// IsSnapshotNotFound reports whether the error is a missing-snapshot error.
func IsSnapshotNotFound(err error) bool {
	return errors.Is(err, ErrSnapshotNotFound)
}

// IsProviderError reports whether the error originated in the object data provider.
func IsProviderError(err error) bool {
	return errors.Is(err, ErrProviderError)
}

// GetErrorCode extracts the error code from an error.
func GetErrorCode(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeUnknown
}
