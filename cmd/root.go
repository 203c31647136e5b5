// Package cmd command line
package cmd

import (
	"context"
	"fmt"
	"os"

	errors "github.com/Laisky/errors/v2"
	gconfig "github.com/Laisky/go-config/v2"
	gcmd "github.com/Laisky/go-utils/v6/cmd"
	glog "github.com/Laisky/go-utils/v6/log"
	"github.com/Laisky/zap"
	"github.com/spf13/cobra"

	"github.com/Laisky/miridev-mcp/library/config"
	"github.com/Laisky/miridev-mcp/library/log"
)

var rootCMD = &cobra.Command{
	Use:   "miridev-mcp",
	Short: "miridev-mcp",
	Long: `MCP server that publishes static websites to miri.dev.

Run "miridev-mcp serve" from an MCP client configuration, or use the
deploy/login/logout/status subcommands directly from a shell.`,
	Args:          gcmd.NoExtraArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initialize(cmd.Context(), cmd)
	},
}

func initialize(ctx context.Context, cmd *cobra.Command) error {
	if err := gconfig.S.BindPFlags(cmd.Flags()); err != nil {
		return errors.Wrap(err, "bind pflags")
	}

	if err := setupSettings(ctx, cmd); err != nil {
		return errors.WithStack(err)
	}
	if err := setupLogger(ctx); err != nil {
		return errors.WithStack(err)
	}

	return validateStartupConfig()
}

func setupSettings(_ context.Context, cmd *cobra.Command) error {
	// mode
	if gconfig.S.GetBool("debug") {
		gconfig.S.Set("log-level", "debug")
	}

	// load configuration. an explicit --config must exist, the default may not.
	cfgPath := gconfig.S.GetString("config")
	if cfgPath == "" {
		cfgPath = config.DefaultFile()
	}
	explicit := cmd.Flags().Changed("config")

	return config.LoadFromFile(cfgPath, explicit)
}

func setupLogger(_ context.Context) error {
	lvl := gconfig.S.GetString("log-level")
	if lvl == "" {
		return nil
	}
	if err := log.Logger.ChangeLevel(glog.Level(lvl)); err != nil {
		return errors.Wrapf(err, "change log level to %q", lvl)
	}

	return nil
}

func init() {
	rootCMD.PersistentFlags().Bool("debug", false, "run in debug mode")
	rootCMD.PersistentFlags().StringP("config", "c", config.DefaultFile(), "config file path")
	rootCMD.PersistentFlags().String("log-level", "info", "`debug/info/error`")
	rootCMD.PersistentFlags().String("workdir", "",
		"base directory for relative project paths, defaults to the current directory")
}

// Execute execute root command
func Execute() {
	if err := rootCMD.ExecuteContext(context.Background()); err != nil {
		log.Logger.Debug("run command", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
