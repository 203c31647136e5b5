package cmd

import (
	"fmt"

	errors "github.com/Laisky/errors/v2"
	gcmd "github.com/Laisky/go-utils/v6/cmd"
	"github.com/spf13/cobra"

	"github.com/Laisky/miridev-mcp/cmd/tui"
)

var statusCMD = &cobra.Command{
	Use:   "status",
	Short: "Show sign-in state, last deployment and service health",
	Args:  gcmd.NoExtraArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApplication()
		if err != nil {
			return errors.WithStack(err)
		}

		if clearHistory, _ := cmd.Flags().GetBool("clear"); clearHistory {
			if err := app.recorder.Clear(cmd.Context()); err != nil {
				return errors.WithStack(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), tui.Hint("Deployment history cleared."))
		}

		report := app.reporter.Report(cmd.Context())
		fmt.Fprintln(cmd.OutOrStdout(), tui.RenderInfo("miri.dev status", report.String()))
		return nil
	},
}

func init() {
	rootCMD.AddCommand(statusCMD)
	statusCMD.Flags().Bool("clear", false, "forget the recorded last deployment first")
}
