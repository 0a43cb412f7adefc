package apperrors

import (
	"errors"
	"fmt"
)

// Error codes used across the service layer.
const (
	CodeValidation = "VALIDATION_ERROR"
	CodeConflict   = "CONFLICT_ERROR"
	CodeStorage    = "STORAGE_ERROR"
	CodeNotFound   = "NOT_FOUND_ERROR"
)

// Error is the application error type carried between layers.
type Error struct {
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an Error without an underlying cause.
func New(code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap creates an Error around an underlying cause.
func Wrap(code, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

func hasCode(err error, code string) bool {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// IsValidation reports whether err is a validation error.
func IsValidation(err error) bool { return hasCode(err, CodeValidation) }

// IsConflict reports whether err is a conflict error.
func IsConflict(err error) bool { return hasCode(err, CodeConflict) }

// IsStorage reports whether err is a storage error.
func IsStorage(err error) bool { return hasCode(err, CodeStorage) }

// IsNotFound reports whether err is a not-found error.
func IsNotFound(err error) bool { return hasCode(err, CodeNotFound) }
