package cmd

import (
	"fmt"

	errors "github.com/Laisky/errors/v2"
	gcmd "github.com/Laisky/go-utils/v6/cmd"
	"github.com/spf13/cobra"

	"github.com/Laisky/miridev-mcp/cmd/tui"
)

var logoutCMD = &cobra.Command{
	Use:   "logout",
	Short: "Remove the stored miri.dev credential",
	Args:  gcmd.NoExtraArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApplication()
		if err != nil {
			return errors.WithStack(err)
		}

		if err := app.auth.Logout(cmd.Context()); err != nil {
			return errors.WithStack(err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), tui.RenderSuccess("Signed out", "The local credential was removed."))
		return nil
	},
}

func init() {
	rootCMD.AddCommand(logoutCMD)
}
