package tools

import (
	"context"

	errors "github.com/Laisky/errors/v2"
	"github.com/mark3labs/mcp-go/mcp"
)

// GetDeploymentStatusTool implements the get_deployment_status MCP tool.
type GetDeploymentStatusTool struct {
	reporter StatusReporter
}

// NewGetDeploymentStatusTool constructs a GetDeploymentStatusTool.
func NewGetDeploymentStatusTool(reporter StatusReporter) (*GetDeploymentStatusTool, error) {
	if reporter == nil {
		return nil, errors.New("status reporter is required")
	}
	return &GetDeploymentStatusTool{reporter: reporter}, nil
}

// Definition returns the MCP metadata for get_deployment_status.
func (t *GetDeploymentStatusTool) Definition() mcp.Tool {
	return mcp.NewTool(
		"get_deployment_status",
		mcp.WithDescription("Show sign-in state, the last successful deployment and miri.dev service health."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
	)
}

// Handle executes the get_deployment_status tool logic.
func (t *GetDeploymentStatusTool) Handle(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(t.reporter.Report(ctx).String()), nil
}
