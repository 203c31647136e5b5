package deploy

import (
	"fmt"

	errors "github.com/Laisky/errors/v2"
)

// ErrorCode identifies a machine-stable deploy error code.
type ErrorCode string

const (
	ErrCodeMissingEntryPoint ErrorCode = "MISSING_ENTRY_POINT"
	ErrCodeEmptyDeployment   ErrorCode = "EMPTY_DEPLOYMENT"
	ErrCodeRenameFailed      ErrorCode = "RENAME_FAILED"
	ErrCodeUploadFailed      ErrorCode = "UPLOAD_FAILED"
	ErrCodeNetwork           ErrorCode = "NETWORK_ERROR"
	ErrCodeInvalidArgument   ErrorCode = "INVALID_ARGUMENT"
)

// Error captures a typed deploy error with retryability metadata.
type Error struct {
	Code      ErrorCode
	Message   string
	Retryable bool
	// HTTPStatus and Body are set for UPLOAD_FAILED.
	HTTPStatus int
	Body       string
}

// Error returns the error message.
func (e *Error) Error() string {
	if e == nil {
		return "deploy error: <nil>"
	}
	if e.Message == "" {
		return fmt.Sprintf("deploy error: %s", e.Code)
	}
	return e.Message
}

// NewError constructs a typed deploy error.
func NewError(code ErrorCode, message string, retryable bool) *Error {
	return &Error{Code: code, Message: message, Retryable: retryable}
}

// NewUploadFailedError reports a non-2xx answer from the deploy endpoint.
func NewUploadFailedError(status int, body string) *Error {
	return &Error{
		Code:       ErrCodeUploadFailed,
		Message:    fmt.Sprintf("upload failed with HTTP %d: %s", status, body),
		Retryable:  true,
		HTTPStatus: status,
		Body:       body,
	}
}

// AsError extracts a typed deploy error from the error chain.
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
