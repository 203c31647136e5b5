package tools

import (
	"context"
	"fmt"

	errors "github.com/Laisky/errors/v2"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/Laisky/miridev-mcp/internal/auth"
)

// LoginTool implements the login_miridev MCP tool.
type LoginTool struct {
	auth AuthService
}

// NewLoginTool constructs a LoginTool.
func NewLoginTool(svc AuthService) (*LoginTool, error) {
	if svc == nil {
		return nil, errors.New("auth service is required")
	}
	return &LoginTool{auth: svc}, nil
}

// Definition returns the MCP metadata for login_miridev.
func (t *LoginTool) Definition() mcp.Tool {
	return mcp.NewTool(
		"login_miridev",
		mcp.WithDescription("Sign in to miri.dev. Reports the current account when already signed in unless force is set."),
		mcp.WithBoolean("force", mcp.DefaultBool(false),
			mcp.Description("Sign in again even when a valid session exists.")),
		mcp.WithString("email", mcp.Description("Account email.")),
		mcp.WithString("password", mcp.Description("Account password.")),
		mcp.WithIdempotentHintAnnotation(false),
	)
}

// Handle executes the login_miridev tool logic.
func (t *LoginTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := t.auth.Login(ctx, auth.LoginRequest{
		Email:    readStringArg(req, "email"),
		Password: readRawStringArg(req, "password"),
		Force:    readBoolArg(req, "force"),
	})
	if err != nil {
		return toolErrorFromErr("Login failed", err), nil
	}
	if !result.Success {
		return mcp.NewToolResultError("Login failed: " + result.Error), nil
	}

	cred := result.Credential
	if result.AlreadySignedIn {
		return mcp.NewToolResultText(fmt.Sprintf(
			"Already signed in as %s (%s). Pass force=true to sign in again.", cred.DisplayName, cred.Email)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf(
		"Signed in as %s (%s)\nPlan: %s\nExpires: %s",
		cred.DisplayName, cred.Email, cred.Plan, cred.ExpiresAt.Format("2006-01-02"))), nil
}
