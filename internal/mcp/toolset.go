package mcp

import (
	errors "github.com/Laisky/errors/v2"
	logSDK "github.com/Laisky/go-utils/v6/log"
	"github.com/Laisky/zap"

	"github.com/Laisky/miridev-mcp/internal/mcp/registry"
	"github.com/Laisky/miridev-mcp/internal/mcp/tools"
	"github.com/Laisky/miridev-mcp/library/log"
)

// Dependencies are the services behind the tools.
type Dependencies struct {
	Deployer tools.Deployer
	Auth     tools.AuthService
	Reporter tools.StatusReporter
}

// NewRegistry registers every enabled tool.
func NewRegistry(deps Dependencies, settings ToolsSettings, logger logSDK.Logger) (*registry.Registry, error) {
	if logger == nil {
		logger = log.Logger.Named("mcp_tools")
	}

	constructors := map[string]func() (tools.Tool, error){
		ToolDeployWebsite: func() (tools.Tool, error) { return tools.NewDeployWebsiteTool(deps.Deployer) },
		ToolDeployHTML:    func() (tools.Tool, error) { return tools.NewDeployHTMLTool(deps.Deployer) },
		ToolCheckAuthStatus: func() (tools.Tool, error) {
			return tools.NewCheckAuthStatusTool(deps.Auth)
		},
		ToolLogin:  func() (tools.Tool, error) { return tools.NewLoginTool(deps.Auth) },
		ToolLogout: func() (tools.Tool, error) { return tools.NewLogoutTool(deps.Auth) },
		ToolGetDeploymentStatus: func() (tools.Tool, error) {
			return tools.NewGetDeploymentStatusTool(deps.Reporter)
		},
	}

	reg := registry.New(logger.Named("registry"))
	for _, name := range AllToolNames {
		if !settings.IsEnabled(name) {
			logger.Info("tool disabled by configuration", zap.String("tool", name))
			continue
		}

		tool, err := constructors[name]()
		if err != nil {
			return nil, errors.Wrapf(err, "init %s tool", name)
		}
		if err := reg.Register(tool); err != nil {
			return nil, errors.WithStack(err)
		}
	}

	return reg, nil
}
