// Package errors defines configma's coded error type.
//
// Every failure a user can hit carries a stable ErrorCode, so tests and
// callers branch on the code instead of the message. Details hold the
// filesystem paths involved; "path" names the one path an error is about
// and "paths" lists every path of a batch failure.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCode identifies a kind of failure
type ErrorCode string

const (
	ErrUnknown       ErrorCode = "UNKNOWN"
	ErrInternal      ErrorCode = "INTERNAL"
	ErrInvalidInput  ErrorCode = "INVALID_INPUT"
	ErrNotFound      ErrorCode = "NOT_FOUND"
	ErrAlreadyExists ErrorCode = "ALREADY_EXISTS"
	ErrLocked        ErrorCode = "LOCKED"

	// Missing or malformed config file, or no active profile
	ErrConfig ErrorCode = "CONFIG"

	ErrProfileNotFound ErrorCode = "PROFILE_NOT_FOUND"

	// Mapping between system and repository paths
	ErrPathResolution  ErrorCode = "PATH_RESOLUTION"
	ErrNotTracked      ErrorCode = "NOT_TRACKED"
	ErrUnexpectedState ErrorCode = "UNEXPECTED_STATE"
	ErrConflict        ErrorCode = "CONFLICT"

	// Filesystem mutations
	ErrMove          ErrorCode = "MOVE"
	ErrFileAccess    ErrorCode = "FILE_ACCESS"
	ErrFileWrite     ErrorCode = "FILE_WRITE"
	ErrSymlinkCreate ErrorCode = "SYMLINK_CREATE"
	ErrDirCreate     ErrorCode = "DIR_CREATE"
)

const (
	detailPath  = "path"
	detailPaths = "paths"
)

// ConfigmaError is an error with a code, details and an optional cause
type ConfigmaError struct {
	Code    ErrorCode
	Message string
	Details map[string]any
	Wrapped error
}

func build(code ErrorCode, message string, cause error) *ConfigmaError {
	return &ConfigmaError{
		Code:    code,
		Message: message,
		Details: map[string]any{},
		Wrapped: cause,
	}
}

// New creates an error with the given code
func New(code ErrorCode, message string) *ConfigmaError {
	return build(code, message, nil)
}

// Newf is New with a formatted message
func Newf(code ErrorCode, format string, args ...any) *ConfigmaError {
	return build(code, fmt.Sprintf(format, args...), nil)
}

// Wrap attaches a code and message to err. It returns nil for a nil err.
func Wrap(err error, code ErrorCode, message string) *ConfigmaError {
	if err == nil {
		return nil
	}
	return build(code, message, err)
}

// Wrapf is Wrap with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...any) *ConfigmaError {
	if err == nil {
		return nil
	}
	return build(code, fmt.Sprintf(format, args...), err)
}

func (e *ConfigmaError) Error() string {
	msg := fmt.Sprintf("[%s] %s", e.Code, e.Message)
	if e.Wrapped != nil {
		msg += ": " + e.Wrapped.Error()
	}
	return msg
}

func (e *ConfigmaError) Unwrap() error {
	return e.Wrapped
}

// Is matches any ConfigmaError with the same code
func (e *ConfigmaError) Is(target error) bool {
	var other *ConfigmaError
	return errors.As(target, &other) && other.Code == e.Code
}

// WithDetail records a detail and returns e for chaining
func (e *ConfigmaError) WithDetail(key string, value any) *ConfigmaError {
	if e.Details == nil {
		e.Details = map[string]any{}
	}
	e.Details[key] = value
	return e
}

// WithPath records the path the error is about
func (e *ConfigmaError) WithPath(path string) *ConfigmaError {
	return e.WithDetail(detailPath, path)
}

// WithPaths records every path involved in a batch failure
func (e *ConfigmaError) WithPaths(paths []string) *ConfigmaError {
	return e.WithDetail(detailPaths, paths)
}

func find(err error) (*ConfigmaError, bool) {
	var cErr *ConfigmaError
	ok := errors.As(err, &cErr)
	return cErr, ok
}

// IsErrorCode reports whether the outermost ConfigmaError in err's chain has
// the given code
func IsErrorCode(err error, code ErrorCode) bool {
	cErr, ok := find(err)
	return ok && cErr.Code == code
}

// GetErrorCode returns err's code, or ErrUnknown for foreign errors
func GetErrorCode(err error) ErrorCode {
	if cErr, ok := find(err); ok {
		return cErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns err's details, or nil for foreign errors
func GetErrorDetails(err error) map[string]any {
	if cErr, ok := find(err); ok {
		return cErr.Details
	}
	return nil
}

// PathOf returns the path recorded on err, if any
func PathOf(err error) string {
	p, _ := GetErrorDetails(err)[detailPath].(string)
	return p
}

// PathsOf returns the batch paths recorded on err, if any
func PathsOf(err error) []string {
	ps, _ := GetErrorDetails(err)[detailPaths].([]string)
	return ps
}
