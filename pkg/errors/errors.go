package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"

	// Platform errors
	ErrUnsupportedPlatform ErrorCode = "UNSUPPORTED_PLATFORM"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Stage errors
	ErrInstallFailed ErrorCode = "INSTALL_FAILED"
	ErrFetchFailed   ErrorCode = "FETCH_FAILED"
	ErrLinkFailed    ErrorCode = "LINK_FAILED"
	ErrProfileWrite  ErrorCode = "PROFILE_WRITE_FAILED"

	// FileSystem errors
	ErrFileNotFound  ErrorCode = "FILE_NOT_FOUND"
	ErrFileAccess    ErrorCode = "FILE_ACCESS"
	ErrFileWrite     ErrorCode = "FILE_WRITE"
	ErrSymlinkCreate ErrorCode = "SYMLINK_CREATE"
	ErrDirCreate     ErrorCode = "DIR_CREATE"
)

// EnvupError represents a structured error with code and details
type EnvupError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *EnvupError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *EnvupError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *EnvupError) Is(target error) bool {
	var targetErr *EnvupError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new EnvupError with the given code and message
func New(code ErrorCode, message string) *EnvupError {
	return &EnvupError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new EnvupError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *EnvupError {
	return &EnvupError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with an EnvupError
func Wrap(err error, code ErrorCode, message string) *EnvupError {
	if err == nil {
		return nil
	}
	return &EnvupError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *EnvupError {
	if err == nil {
		return nil
	}
	return &EnvupError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *EnvupError) WithDetail(key string, value interface{}) *EnvupError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var envupErr *EnvupError
	if errors.As(err, &envupErr) {
		return envupErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not an EnvupError
func GetErrorCode(err error) ErrorCode {
	var envupErr *EnvupError
	if errors.As(err, &envupErr) {
		return envupErr.Code
	}
	return ErrUnknown
}
