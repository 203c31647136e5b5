package tools

import (
	"context"

	errors "github.com/Laisky/errors/v2"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/Laisky/miridev-mcp/internal/deploy"
)

// DeployHTMLTool implements the deploy_html MCP tool.
type DeployHTMLTool struct {
	deployer Deployer
}

// NewDeployHTMLTool constructs a DeployHTMLTool.
func NewDeployHTMLTool(deployer Deployer) (*DeployHTMLTool, error) {
	if deployer == nil {
		return nil, errors.New("deployer is required")
	}
	return &DeployHTMLTool{deployer: deployer}, nil
}

// Definition returns the MCP metadata for deploy_html.
func (t *DeployHTMLTool) Definition() mcp.Tool {
	return mcp.NewTool(
		"deploy_html",
		mcp.WithDescription("Deploy a single HTML document, such as a generated artifact, as a one-page site on miri.dev."),
		mcp.WithString("artifactId", mcp.Required(), mcp.Description("Identifier of the artifact being deployed.")),
		mcp.WithString("htmlContent", mcp.Required(), mcp.Description("Complete HTML document to publish as index.html.")),
		mcp.WithString("siteName", mcp.Description("Optional site name. Defaults to the document title.")),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(false),
		mcp.WithOpenWorldHintAnnotation(true),
	)
}

// Handle executes the deploy_html tool logic.
func (t *DeployHTMLTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	artifactID, err := req.RequireString("artifactId")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	htmlContent, err := req.RequireString("htmlContent")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := t.deployer.DeployHTML(ctx, deploy.HTMLRequest{
		ArtifactID:  artifactID,
		HTMLContent: htmlContent,
		SiteName:    readStringArg(req, "siteName"),
	})
	return deploymentResult(result, err), nil
}
