package errors

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/afero"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown       ErrorCode = "UNKNOWN"
	ErrInternal      ErrorCode = "INTERNAL"
	ErrInvalidInput  ErrorCode = "INVALID_INPUT"
	ErrNotFound      ErrorCode = "NOT_FOUND"
	ErrAlreadyExists ErrorCode = "ALREADY_EXISTS"
	ErrMalformed     ErrorCode = "MALFORMED"
	ErrInterrupted   ErrorCode = "INTERRUPTED"
	ErrUnsupported   ErrorCode = "UNSUPPORTED"
	ErrIO            ErrorCode = "IO"

	// Record lookups. These are all reported by IsNotFound.
	ErrProfileNotFound ErrorCode = "PROFILE_NOT_FOUND"
	ErrPresetNotFound  ErrorCode = "PRESET_NOT_FOUND"
	ErrModSpecNotFound ErrorCode = "MODSPEC_NOT_FOUND"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigSave  ErrorCode = "CONFIG_SAVE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Activation errors
	ErrSymlinkCreate ErrorCode = "SYMLINK_CREATE"
	ErrRollback      ErrorCode = "ROLLBACK"
)

// AgmError represents a structured error with code and details
type AgmError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *AgmError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *AgmError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *AgmError) Is(target error) bool {
	var targetErr *AgmError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new AgmError with the given code and message
func New(code ErrorCode, message string) *AgmError {
	return &AgmError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new AgmError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *AgmError {
	return &AgmError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with an AgmError
func Wrap(err error, code ErrorCode, message string) *AgmError {
	if err == nil {
		return nil
	}
	return &AgmError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *AgmError {
	if err == nil {
		return nil
	}
	return &AgmError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WrapFS wraps a filesystem error, picking the code from the underlying cause:
// missing paths become ErrNotFound, existing ones ErrAlreadyExists, missing
// symlink support ErrUnsupported and everything else ErrIO.
func WrapFS(err error, format string, args ...interface{}) *AgmError {
	if err == nil {
		return nil
	}
	return Wrapf(err, CodeForFS(err), format, args...)
}

// CodeForFS maps a raw filesystem error to an error code.
func CodeForFS(err error) ErrorCode {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return ErrNotFound
	case errors.Is(err, fs.ErrExist):
		return ErrAlreadyExists
	case errors.Is(err, errors.ErrUnsupported), errors.Is(err, afero.ErrNoSymlink), errors.Is(err, afero.ErrNoReadlink):
		return ErrUnsupported
	default:
		return ErrIO
	}
}

// WithDetail adds a detail to the error
func (e *AgmError) WithDetail(key string, value interface{}) *AgmError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *AgmError) WithDetails(details map[string]interface{}) *AgmError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var agmErr *AgmError
	if errors.As(err, &agmErr) {
		return agmErr.Code == code
	}
	return false
}

// IsNotFound reports whether err is any of the not-found family of codes.
func IsNotFound(err error) bool {
	switch GetErrorCode(err) {
	case ErrNotFound, ErrProfileNotFound, ErrPresetNotFound, ErrModSpecNotFound:
		return true
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not an AgmError
func GetErrorCode(err error) ErrorCode {
	var agmErr *AgmError
	if errors.As(err, &agmErr) {
		return agmErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not an AgmError
func GetErrorDetails(err error) map[string]interface{} {
	var agmErr *AgmError
	if errors.As(err, &agmErr) {
		return agmErr.Details
	}
	return nil
}
