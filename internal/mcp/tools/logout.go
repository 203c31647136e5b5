package tools

import (
	"context"

	errors "github.com/Laisky/errors/v2"
	"github.com/mark3labs/mcp-go/mcp"
)

// LogoutTool implements the logout_miridev MCP tool.
type LogoutTool struct {
	auth AuthService
}

// NewLogoutTool constructs a LogoutTool.
func NewLogoutTool(auth AuthService) (*LogoutTool, error) {
	if auth == nil {
		return nil, errors.New("auth service is required")
	}
	return &LogoutTool{auth: auth}, nil
}

// Definition returns the MCP metadata for logout_miridev.
func (t *LogoutTool) Definition() mcp.Tool {
	return mcp.NewTool(
		"logout_miridev",
		mcp.WithDescription("Sign out of miri.dev and remove the stored session."),
		mcp.WithIdempotentHintAnnotation(true),
	)
}

// Handle executes the logout_miridev tool logic.
func (t *LogoutTool) Handle(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := t.auth.Logout(ctx); err != nil {
		return toolErrorFromErr("Logout failed", err), nil
	}
	return mcp.NewToolResultText("Signed out."), nil
}
