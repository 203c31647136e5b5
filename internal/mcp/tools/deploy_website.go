package tools

import (
	"context"

	errors "github.com/Laisky/errors/v2"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/Laisky/miridev-mcp/internal/deploy"
)

// DeployWebsiteTool implements the deploy_website MCP tool.
type DeployWebsiteTool struct {
	deployer Deployer
}

// NewDeployWebsiteTool constructs a DeployWebsiteTool.
func NewDeployWebsiteTool(deployer Deployer) (*DeployWebsiteTool, error) {
	if deployer == nil {
		return nil, errors.New("deployer is required")
	}
	return &DeployWebsiteTool{deployer: deployer}, nil
}

// Definition returns the MCP metadata for deploy_website.
func (t *DeployWebsiteTool) Definition() mcp.Tool {
	return mcp.NewTool(
		"deploy_website",
		mcp.WithDescription("Deploy a built static website folder to miri.dev. "+
			"The folder must contain index.html at its top level. "+
			"Files with unsafe names are renamed on disk before upload."),
		mcp.WithString("message", mcp.Required(),
			mcp.Description("The user's deployment request in natural language.")),
		mcp.WithString("projectPath", mcp.DefaultString("."),
			mcp.Description("Folder to deploy, absolute or relative to the server working directory.")),
		mcp.WithString("siteName", mcp.Description("Optional site name.")),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(false),
		mcp.WithOpenWorldHintAnnotation(true),
	)
}

// Handle executes the deploy_website tool logic.
func (t *DeployWebsiteTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if _, err := req.RequireString("message"); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := t.deployer.Deploy(ctx, deploy.Request{
		ProjectPath: readStringArgWithDefault(req, "projectPath", "."),
		SiteName:    readStringArg(req, "siteName"),
	})
	return deploymentResult(result, err), nil
}
