package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/Laisky/miridev-mcp/internal/auth"
	"github.com/Laisky/miridev-mcp/internal/deploy"
	"github.com/Laisky/miridev-mcp/internal/status"
)

// Tool exposes the capabilities required by the MCP server registration lifecycle.
type Tool interface {
	Definition() mcp.Tool
	Handle(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)
}

// Deployer publishes folders and html documents.
type Deployer interface {
	Deploy(ctx context.Context, req deploy.Request) (*deploy.Result, error)
	DeployHTML(ctx context.Context, req deploy.HTMLRequest) (*deploy.Result, error)
}

// AuthService signs the local user in and out.
type AuthService interface {
	Login(ctx context.Context, req auth.LoginRequest) (*auth.LoginResult, error)
	Logout(ctx context.Context) error
	Status(ctx context.Context) auth.Status
}

// StatusReporter summarizes auth, last deployment and service health.
type StatusReporter interface {
	Report(ctx context.Context) status.Report
}
