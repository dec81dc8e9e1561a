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

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"

	// Profile errors
	ErrProfileNotFound ErrorCode = "PROFILE_NOT_FOUND"
	ErrMissingAsset    ErrorCode = "MISSING_ASSET"

	// Icon pipeline errors
	ErrImageDecode ErrorCode = "IMAGE_DECODE"
	ErrImageWrite  ErrorCode = "IMAGE_WRITE"

	// FileSystem errors
	ErrFilesystem ErrorCode = "FILESYSTEM"
)

// BrandError represents a structured error with code and details
type BrandError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *BrandError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *BrandError) Unwrap() error {
	return e.Wrapped
}

// Is matches any BrandError carrying the same code
func (e *BrandError) Is(target error) bool {
	var targetErr *BrandError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new BrandError with the given code and message
func New(code ErrorCode, message string) *BrandError {
	return &BrandError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new BrandError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *BrandError {
	return &BrandError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a BrandError
func Wrap(err error, code ErrorCode, message string) *BrandError {
	if err == nil {
		return nil
	}
	return &BrandError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *BrandError {
	if err == nil {
		return nil
	}
	return &BrandError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *BrandError) WithDetail(key string, value interface{}) *BrandError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var brandErr *BrandError
	if errors.As(err, &brandErr) {
		return brandErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a BrandError
func GetErrorCode(err error) ErrorCode {
	var brandErr *BrandError
	if errors.As(err, &brandErr) {
		return brandErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a BrandError
func GetErrorDetails(err error) map[string]interface{} {
	var brandErr *BrandError
	if errors.As(err, &brandErr) {
		return brandErr.Details
	}
	return nil
}

// As is errors.As, re-exported so callers need a single errors import
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Is is errors.Is, re-exported so callers need a single errors import
func Is(err, target error) bool {
	return errors.Is(err, target)
}
