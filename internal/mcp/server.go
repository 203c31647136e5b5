// Package mcp serves the miri.dev tools over the Model Context Protocol.
package mcp

import (
	"context"
	"encoding/json"

	errors "github.com/Laisky/errors/v2"
	logSDK "github.com/Laisky/go-utils/v6/log"
	"github.com/Laisky/zap"
	mcp "github.com/mark3labs/mcp-go/mcp"
	srv "github.com/mark3labs/mcp-go/server"

	"github.com/Laisky/miridev-mcp/internal/mcp/registry"
	"github.com/Laisky/miridev-mcp/library/log"
)

const (
	ServerName    = "miridev-mcp"
	ServerVersion = "1.0.0"
)

const instructions = "Use deploy_website to publish a built static site folder that contains index.html, " +
	"deploy_html to publish a single HTML document, login_miridev / logout_miridev / check_auth_status " +
	"to manage the miri.dev session, and get_deployment_status to see the last deployment."

// Server routes MCP messages. tools/call is answered by the registry so that
// dispatch failures carry distinct protocol error codes; every other method
// is handled by the mcp-go server.
type Server struct {
	registry  *registry.Registry
	mcpServer *srv.MCPServer
	requests  *requestLogger
	logger    logSDK.Logger
}

// NewServer constructs a server exposing every tool of reg.
func NewServer(reg *registry.Registry, logger logSDK.Logger) (*Server, error) {
	if reg == nil {
		return nil, errors.New("tool registry is required")
	}
	if logger == nil {
		logger = log.Logger.Named("mcp")
	}

	requests := newRequestLogger(logger.Named("mcp_requests"))
	mcpServer := srv.NewMCPServer(
		ServerName,
		ServerVersion,
		srv.WithToolCapabilities(true),
		srv.WithInstructions(instructions),
		srv.WithRecovery(),
		srv.WithHooks(requests.hooks()),
	)

	s := &Server{registry: reg, mcpServer: mcpServer, requests: requests, logger: logger}
	for _, def := range reg.List() {
		mcpServer.AddTool(def, s.invokeTool)
	}

	return s, nil
}

// invokeTool adapts the registry to an mcp-go tool handler for paths that
// bypass HandleMessage.
func (s *Server) invokeTool(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, perr := s.registry.Invoke(ctx, req.Params.Name, req.Params.Arguments)
	if perr != nil {
		return nil, perr
	}
	return result, nil
}

type rpcEnvelope struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

type toolCallParams struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments,omitempty"`
}

type rpcResult struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  any             `json:"result"`
}

type rpcErrorData struct {
	ErrorCode string `json:"errorCode"`
}

type rpcErrorBody struct {
	Code    int           `json:"code"`
	Message string        `json:"message"`
	Data    *rpcErrorData `json:"data,omitempty"`
}

type rpcError struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Error   rpcErrorBody    `json:"error"`
}

func newRPCError(id json.RawMessage, code int, message, errorCode string) *rpcError {
	if len(id) == 0 {
		id = json.RawMessage("null")
	}
	resp := &rpcError{
		JSONRPC: mcp.JSONRPC_VERSION,
		ID:      id,
		Error:   rpcErrorBody{Code: code, Message: message},
	}
	if errorCode != "" {
		resp.Error.Data = &rpcErrorData{ErrorCode: errorCode}
	}
	return resp
}

// HandleMessage answers one JSON-RPC message. It returns nil for notifications.
func (s *Server) HandleMessage(ctx context.Context, raw json.RawMessage) any {
	var envelope rpcEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return newRPCError(nil, mcp.PARSE_ERROR, "parse error: "+err.Error(), "")
	}
	if envelope.Method != string(mcp.MethodToolsCall) {
		return s.delegate(ctx, raw)
	}

	var params toolCallParams
	if len(envelope.Params) > 0 {
		if err := json.Unmarshal(envelope.Params, &params); err != nil {
			return newRPCError(envelope.ID, mcp.INVALID_PARAMS, "invalid tools/call params: "+err.Error(),
				string(registry.CodeInvalidParams))
		}
	}

	method := mcp.MethodToolsCall
	s.requests.received(ctx, envelope.ID, method, params)

	result, perr := s.registry.Invoke(ctx, params.Name, params.Arguments)
	if perr != nil {
		s.requests.failed(ctx, envelope.ID, method, params, perr)
		return newRPCError(envelope.ID, perr.Code.JSONRPCCode(), perr.Message, string(perr.Code))
	}

	s.requests.succeeded(ctx, envelope.ID, method, params, result)
	s.logger.Info("tool call finished",
		zap.String("tool", params.Name),
		zap.ByteString("request_id", envelope.ID),
		zap.Bool("is_error", result.IsError))
	return &rpcResult{JSONRPC: mcp.JSONRPC_VERSION, ID: envelope.ID, Result: result}
}

func (s *Server) delegate(ctx context.Context, raw json.RawMessage) any {
	return s.mcpServer.HandleMessage(ctx, raw)
}
