package cmd

import (
	"os"
	"path/filepath"
	"strings"

	errors "github.com/Laisky/errors/v2"
	gconfig "github.com/Laisky/go-config/v2"
	"github.com/Laisky/zap"

	"github.com/Laisky/miridev-mcp/internal/auth"
	"github.com/Laisky/miridev-mcp/internal/deploy"
	"github.com/Laisky/miridev-mcp/internal/mcp"
	"github.com/Laisky/miridev-mcp/internal/status"
	"github.com/Laisky/miridev-mcp/internal/store"
	"github.com/Laisky/miridev-mcp/library/config"
	"github.com/Laisky/miridev-mcp/library/log"
)

// application holds the services shared by every subcommand.
type application struct {
	deployer *deploy.Service
	auth     *auth.Service
	recorder *status.Recorder
	reporter *status.Reporter
}

// newApplication builds the service graph from the loaded configuration.
func newApplication() (*application, error) {
	logger := log.Logger

	storeSettings := store.LoadSettings(config.Shared)
	records, err := store.Open(storeSettings)
	if err != nil {
		return nil, errors.Wrap(err, "open record store")
	}
	logger.Debug("record store opened", zap.String("backend", storeSettings.Backend))

	credStore, err := auth.NewCredentialStore(records, nil, logger.Named("credential"))
	if err != nil {
		return nil, errors.WithStack(err)
	}
	authSvc, err := auth.NewService(credStore, nil, auth.LoadSettings(config.Shared), nil, logger.Named("auth"))
	if err != nil {
		return nil, errors.WithStack(err)
	}

	recorder, err := status.NewRecorder(records, nil, logger.Named("status"))
	if err != nil {
		return nil, errors.WithStack(err)
	}
	prober := status.NewProber(status.LoadSettings(config.Shared), nil)

	baseDir, err := resolveWorkdir(gconfig.S.GetString("workdir"))
	if err != nil {
		return nil, errors.WithStack(err)
	}
	deployer, err := deploy.NewService(deploy.ServiceOptions{
		Settings: deploy.LoadSettings(config.Shared),
		BaseDir:  baseDir,
		Recorder: recorder,
		Logger:   logger.Named("deploy"),
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return &application{
		deployer: deployer,
		auth:     authSvc,
		recorder: recorder,
		reporter: status.NewReporter(authSvc, recorder, prober),
	}, nil
}

// newMCPServer registers the enabled tools on a new MCP server.
func (a *application) newMCPServer() (*mcp.Server, error) {
	reg, err := mcp.NewRegistry(mcp.Dependencies{
		Deployer: a.deployer,
		Auth:     a.auth,
		Reporter: a.reporter,
	}, mcp.LoadToolsSettings(config.Shared), log.Logger.Named("mcp_tools"))
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return mcp.NewServer(reg, log.Logger.Named("mcp"))
}

// resolveWorkdir returns an absolute base directory, defaulting to the
// process working directory.
func resolveWorkdir(dir string) (string, error) {
	dir = config.ExpandHome(dir)
	if strings.TrimSpace(dir) == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", errors.Wrap(err, "get working directory")
		}
		return wd, nil
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", errors.Wrapf(err, "resolve workdir %q", dir)
	}
	return abs, nil
}
