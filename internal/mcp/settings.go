package mcp

import (
	"github.com/Laisky/miridev-mcp/library/config"
)

// Tool names served by this server.
const (
	ToolDeployWebsite       = "deploy_website"
	ToolDeployHTML          = "deploy_html"
	ToolCheckAuthStatus     = "check_auth_status"
	ToolLogin               = "login_miridev"
	ToolLogout              = "logout_miridev"
	ToolGetDeploymentStatus = "get_deployment_status"
)

// AllToolNames lists every tool in registration order.
var AllToolNames = []string{
	ToolDeployWebsite,
	ToolCheckAuthStatus,
	ToolLogin,
	ToolGetDeploymentStatus,
	ToolLogout,
	ToolDeployHTML,
}

// ToolsSettings captures which tools are enabled.
type ToolsSettings struct {
	Enabled map[string]bool
}

// LoadToolsSettings reads settings.mcp.tools.<name>.enabled for every tool.
// Tools are enabled unless explicitly disabled.
func LoadToolsSettings(get config.Getter) ToolsSettings {
	settings := ToolsSettings{Enabled: make(map[string]bool, len(AllToolNames))}
	for _, name := range AllToolNames {
		settings.Enabled[name] = config.Bool(get, "settings.mcp.tools."+name+".enabled", true)
	}
	return settings
}

// IsEnabled reports whether name should be registered.
func (s ToolsSettings) IsEnabled(name string) bool {
	if s.Enabled == nil {
		return true
	}
	enabled, ok := s.Enabled[name]
	return !ok || enabled
}
