package mcp

import (
	"context"
	"encoding/json"
	"strings"

	errors "github.com/Laisky/errors/v2"
	logSDK "github.com/Laisky/go-utils/v6/log"
	"github.com/Laisky/zap"
	mcp "github.com/mark3labs/mcp-go/mcp"
	srv "github.com/mark3labs/mcp-go/server"

	"github.com/Laisky/miridev-mcp/internal/mcp/registry"
)

// requestLogger logs every MCP request with sensitive arguments redacted.
//
// The same methods back the mcp-go hooks and the tools/call path answered by
// the registry, so tool arguments are never logged through a second route.
type requestLogger struct {
	logger logSDK.Logger
}

func newRequestLogger(logger logSDK.Logger) *requestLogger {
	return &requestLogger{logger: logger}
}

// hooks registers the logger on mcp-go's request lifecycle.
func (l *requestLogger) hooks() *srv.Hooks {
	hooks := &srv.Hooks{}
	hooks.AddBeforeAny(l.received)
	hooks.AddOnSuccess(l.succeeded)
	hooks.AddOnError(l.failed)
	hooks.AddOnRegisterSession(func(ctx context.Context, session srv.ClientSession) {
		l.logger.Info("mcp session registered", zap.String("session_id", session.SessionID()))
	})
	hooks.AddOnUnregisterSession(func(ctx context.Context, session srv.ClientSession) {
		l.logger.Info("mcp session unregistered", zap.String("session_id", session.SessionID()))
	})
	return hooks
}

func (l *requestLogger) received(ctx context.Context, id any, method mcp.MCPMethod, message any) {
	fields := l.fields(ctx, id, method)
	if message != nil {
		fields = append(fields, zap.String("request", redactHookPayload(message)))
	}
	l.logger.Debug("mcp request received", fields...)
}

func (l *requestLogger) succeeded(ctx context.Context, id any, method mcp.MCPMethod, message any, result any) {
	fields := l.fields(ctx, id, method)
	if result != nil {
		fields = append(fields, zap.String("response", redactHookPayload(result)))
	}
	l.logger.Debug("mcp request succeeded", fields...)
}

func (l *requestLogger) failed(ctx context.Context, id any, method mcp.MCPMethod, message any, err error) {
	fields := l.fields(ctx, id, method)
	if message != nil {
		fields = append(fields, zap.String("request", redactHookPayload(message)))
	}
	fields = append(fields, zap.Error(err))

	switch {
	case isUnsupportedCapability(method, err):
		l.logger.Debug("mcp request failed (non-critical)", fields...)
	case isCallerError(err):
		l.logger.Warn("mcp request rejected", fields...)
	default:
		l.logger.Error("mcp request failed", fields...)
	}
}

func (l *requestLogger) fields(ctx context.Context, id any, method mcp.MCPMethod) []zap.Field {
	if raw, ok := id.(json.RawMessage); ok {
		id = string(raw)
	}
	fields := []zap.Field{
		zap.Any("request_id", id),
		zap.String("method", string(method)),
	}
	if session := srv.ClientSessionFromContext(ctx); session != nil {
		fields = append(fields, zap.String("session_id", session.SessionID()))
	}
	return fields
}

// isUnsupportedCapability reports whether a host asked for a list method this server lacks.
func isUnsupportedCapability(method mcp.MCPMethod, err error) bool {
	if err == nil || !strings.Contains(strings.ToLower(err.Error()), "not supported") {
		return false
	}
	switch method {
	case mcp.MethodResourcesList, mcp.MethodResourcesTemplatesList, mcp.MethodPromptsList:
		return true
	default:
		return false
	}
}

// isCallerError reports whether the registry rejected the request itself.
func isCallerError(err error) bool {
	var perr *registry.ProtocolError
	if !errors.As(err, &perr) {
		return false
	}
	return perr.Code == registry.CodeMethodNotFound || perr.Code == registry.CodeInvalidParams
}
