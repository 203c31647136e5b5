package tools

import (
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/Laisky/miridev-mcp/internal/auth"
	"github.com/Laisky/miridev-mcp/internal/deploy"
)

// readStringArg extracts an optional trimmed string argument from the request.
func readStringArg(req mcp.CallToolRequest, key string) string {
	if raw, ok := req.Params.Arguments.(map[string]any); ok {
		if value, ok := raw[key].(string); ok {
			return strings.TrimSpace(value)
		}
	}
	return ""
}

// readRawStringArg extracts an optional string argument exactly as sent.
func readRawStringArg(req mcp.CallToolRequest, key string) string {
	if raw, ok := req.Params.Arguments.(map[string]any); ok {
		if value, ok := raw[key].(string); ok {
			return value
		}
	}
	return ""
}

// readStringArgWithDefault extracts an optional string argument, returning def when empty.
func readStringArgWithDefault(req mcp.CallToolRequest, key, def string) string {
	if value := readStringArg(req, key); value != "" {
		return value
	}
	return def
}

// readBoolArg extracts an optional bool argument from the request.
func readBoolArg(req mcp.CallToolRequest, key string) bool {
	if raw, ok := req.Params.Arguments.(map[string]any); ok {
		if value, ok := raw[key].(bool); ok {
			return value
		}
	}
	return false
}

// toolErrorFromErr converts service errors into a textual failure result.
func toolErrorFromErr(prefix string, err error) *mcp.CallToolResult {
	if typed, ok := deploy.AsError(err); ok {
		msg := fmt.Sprintf("%s [%s]: %s", prefix, typed.Code, typed.Message)
		if typed.Retryable {
			msg += "\nThis failure may be temporary; retry the request."
		}
		return mcp.NewToolResultError(msg)
	}

	if authErr, ok := auth.AsError(err); ok {
		return mcp.NewToolResultError(fmt.Sprintf("%s [%s]: %s", prefix, authErr.Code, authErr.Message))
	}

	return mcp.NewToolResultError(fmt.Sprintf("%s: %s", prefix, err.Error()))
}

// describeDeployment renders a deploy result as text.
func describeDeployment(result *deploy.Result) string {
	var b strings.Builder
	b.WriteString("Deployment succeeded!\n")
	fmt.Fprintf(&b, "URL: %s\n", result.URL)
	fmt.Fprintf(&b, "Site ID: %s\n", result.SiteID)
	fmt.Fprintf(&b, "Title: %s\n", result.Title)
	fmt.Fprintf(&b, "Files: %d\n", result.FileCount)

	if len(result.Renamed) > 0 {
		b.WriteString("Renamed files:\n")
		for _, plan := range result.Renamed {
			fmt.Fprintf(&b, "  %s -> %s\n", plan.OriginalRelativePath, plan.SanitizedRelativePath)
		}
	}
	if len(result.Skipped) > 0 {
		b.WriteString("Warning: files over the size limit were not uploaded:\n")
		for _, skipped := range result.Skipped {
			fmt.Fprintf(&b, "  %s (%d bytes)\n", skipped.RelativePath, skipped.SizeBytes)
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

// deploymentResult converts a deploy outcome into a tool result.
func deploymentResult(result *deploy.Result, err error) *mcp.CallToolResult {
	if err != nil {
		return toolErrorFromErr("Deployment failed", err)
	}
	if !result.Success {
		return mcp.NewToolResultError("Deployment failed: " + result.Error)
	}
	return mcp.NewToolResultText(describeDeployment(result))
}
