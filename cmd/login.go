package cmd

import (
	"fmt"
	"os"

	errors "github.com/Laisky/errors/v2"
	gcmd "github.com/Laisky/go-utils/v6/cmd"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Laisky/miridev-mcp/cmd/tui"
	"github.com/Laisky/miridev-mcp/internal/auth"
)

var loginCMD = &cobra.Command{
	Use:   "login",
	Short: "Sign in to miri.dev",
	Long: `Sign in to miri.dev and store the credential locally.

When stdin is a terminal and --email or --password is missing, an
interactive form asks for them.`,
	Args: gcmd.NoExtraArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")
		force, _ := cmd.Flags().GetBool("force")

		app, err := newApplication()
		if err != nil {
			return errors.WithStack(err)
		}

		if !force {
			if st := app.auth.Status(cmd.Context()); st.Authenticated {
				fmt.Fprintln(cmd.OutOrStdout(), tui.RenderInfo("Already signed in", st.Describe()))
				fmt.Fprintln(cmd.OutOrStdout(), tui.Hint("Use --force to sign in again."))
				return nil
			}
		}

		if (email == "" || password == "") && term.IsTerminal(int(os.Stdin.Fd())) {
			if email, password, err = promptCredentials(email); err != nil {
				return errors.WithStack(err)
			}
		}

		result, err := app.auth.Login(cmd.Context(), auth.LoginRequest{
			Email:    email,
			Password: password,
			Force:    true,
		})
		if err != nil {
			return errors.WithStack(err)
		}
		if !result.Success {
			fmt.Fprintln(cmd.ErrOrStderr(), tui.RenderFailure("Login failed", result.Error))
			return errors.New(result.Error)
		}

		fmt.Fprintln(cmd.OutOrStdout(), tui.RenderSuccess("Signed in", app.auth.Status(cmd.Context()).Describe()))
		return nil
	},
}

// promptCredentials runs the interactive sign-in form.
func promptCredentials(email string) (string, string, error) {
	final, err := tea.NewProgram(tui.NewLoginModel(email)).Run()
	if err != nil {
		return "", "", errors.Wrap(err, "run login form")
	}

	form, ok := final.(tui.LoginModel)
	if !ok || !form.Submitted() {
		return "", "", errors.New("login cancelled")
	}

	return form.Email(), form.Password(), nil
}

func init() {
	rootCMD.AddCommand(loginCMD)
	loginCMD.Flags().String("email", "", "account email")
	loginCMD.Flags().String("password", "", "account password")
	loginCMD.Flags().Bool("force", false, "sign in again even when a valid session exists")
}
