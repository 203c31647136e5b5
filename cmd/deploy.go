package cmd

import (
	"fmt"
	"strings"

	errors "github.com/Laisky/errors/v2"
	gcmd "github.com/Laisky/go-utils/v6/cmd"
	"github.com/spf13/cobra"

	"github.com/Laisky/miridev-mcp/cmd/tui"
	"github.com/Laisky/miridev-mcp/internal/deploy"
)

var deployCMD = &cobra.Command{
	Use:   "deploy",
	Short: "Deploy a folder to miri.dev",
	Long: `Deploy a static site folder to miri.dev.

The folder must contain index.html at its top level. Files with unsafe
names are renamed on disk before upload.

Example:
  miridev-mcp deploy --path ./dist --name "My Site"`,
	Args: gcmd.NoExtraArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		projectPath, _ := cmd.Flags().GetString("path")
		siteName, _ := cmd.Flags().GetString("name")

		app, err := newApplication()
		if err != nil {
			return errors.WithStack(err)
		}

		result, err := app.deployer.Deploy(cmd.Context(), deploy.Request{
			ProjectPath: projectPath,
			SiteName:    siteName,
		})
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), tui.RenderFailure("Deployment failed", err.Error()))
			return errors.WithStack(err)
		}
		if !result.Success {
			fmt.Fprintln(cmd.ErrOrStderr(), tui.RenderFailure("Deployment failed", result.Error))
			return errors.Errorf("deployment rejected: %s", result.Error)
		}

		fmt.Fprintln(cmd.OutOrStdout(), tui.RenderSuccess("Deployment succeeded", summarizeDeployment(result)))
		return nil
	},
}

// summarizeDeployment renders the fields of a successful deployment.
func summarizeDeployment(result *deploy.Result) string {
	lines := []string{
		"URL:     " + result.URL,
		"Site ID: " + result.SiteID,
		"Title:   " + result.Title,
		fmt.Sprintf("Files:   %d", result.FileCount),
	}
	for _, plan := range result.Renamed {
		lines = append(lines, fmt.Sprintf("renamed %s -> %s",
			plan.OriginalRelativePath, plan.SanitizedRelativePath))
	}
	for _, skipped := range result.Skipped {
		lines = append(lines, fmt.Sprintf("skipped %s (%d bytes, over size limit)",
			skipped.RelativePath, skipped.SizeBytes))
	}

	return strings.Join(lines, "\n")
}

func init() {
	rootCMD.AddCommand(deployCMD)
	deployCMD.Flags().String("path", ".", "folder to deploy, relative to --workdir")
	deployCMD.Flags().String("name", "", "site name, defaults to the server-chosen title")
}
