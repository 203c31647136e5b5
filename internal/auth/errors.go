package auth

import (
	"fmt"

	errors "github.com/Laisky/errors/v2"
)

// ErrorCode identifies a machine-stable auth error code.
type ErrorCode string

const (
	ErrCodeInvalidCredentials  ErrorCode = "INVALID_CREDENTIALS"
	ErrCodeCredentialsRequired ErrorCode = "CREDENTIALS_REQUIRED"
	ErrCodePersistence         ErrorCode = "PERSISTENCE"
)

// Error captures a typed auth error.
type Error struct {
	Code    ErrorCode
	Message string
}

// Error returns the error message.
func (e *Error) Error() string {
	if e == nil {
		return "auth error: <nil>"
	}
	if e.Message == "" {
		return fmt.Sprintf("auth error: %s", e.Code)
	}
	return e.Message
}

// NewError constructs a typed auth error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// AsError extracts a typed auth error from the error chain.
func AsError(err error) (*Error, bool) {
	if err == nil {
		return nil, false
	}
	var typed *Error
	if errors.As(err, &typed) {
		return typed, true
	}
	return nil, false
}

// IsCode reports whether the error chain contains the given code.
func IsCode(err error, code ErrorCode) bool {
	if typed, ok := AsError(err); ok {
		return typed.Code == code
	}
	return false
}
