package tools

import (
	"context"

	errors "github.com/Laisky/errors/v2"
	"github.com/mark3labs/mcp-go/mcp"
)

// CheckAuthStatusTool implements the check_auth_status MCP tool.
type CheckAuthStatusTool struct {
	auth AuthService
}

// NewCheckAuthStatusTool constructs a CheckAuthStatusTool.
func NewCheckAuthStatusTool(auth AuthService) (*CheckAuthStatusTool, error) {
	if auth == nil {
		return nil, errors.New("auth service is required")
	}
	return &CheckAuthStatusTool{auth: auth}, nil
}

// Definition returns the MCP metadata for check_auth_status.
func (t *CheckAuthStatusTool) Definition() mcp.Tool {
	return mcp.NewTool(
		"check_auth_status",
		mcp.WithDescription("Show whether a miri.dev account is signed in, with plan and expiry."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(true),
	)
}

// Handle executes the check_auth_status tool logic.
func (t *CheckAuthStatusTool) Handle(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(t.auth.Status(ctx).Describe()), nil
}
