package registry

import (
	"fmt"

	mcp "github.com/mark3labs/mcp-go/mcp"
)

// ProtocolCode identifies a dispatcher-level failure.
type ProtocolCode string

const (
	CodeMethodNotFound ProtocolCode = "MethodNotFound"
	CodeInvalidParams  ProtocolCode = "InvalidParams"
	CodeInternalError  ProtocolCode = "InternalError"
)

// JSONRPCCode returns the JSON-RPC error number for c.
func (c ProtocolCode) JSONRPCCode() int {
	switch c {
	case CodeMethodNotFound:
		return mcp.METHOD_NOT_FOUND
	case CodeInvalidParams:
		return mcp.INVALID_PARAMS
	default:
		return mcp.INTERNAL_ERROR
	}
}

// ProtocolError is returned instead of a tool result when dispatch itself fails.
type ProtocolError struct {
	Code    ProtocolCode
	Message string
}

// Error returns the error message.
func (e *ProtocolError) Error() string {
	if e == nil {
		return "protocol error: <nil>"
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newProtocolError(code ProtocolCode, format string, args ...any) *ProtocolError {
	return &ProtocolError{Code: code, Message: fmt.Sprintf(format, args...)}
}
