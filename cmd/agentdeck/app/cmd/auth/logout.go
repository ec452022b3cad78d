package auth

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentdeck/agentdeck/cmd/agentdeck/app/cmd/global"
)

// NewLogoutCmd creates the logout cobra command.
func NewLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "logout",
		Short:         "Invalidate the session and clear stored credentials",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Best effort server-side invalidation; local credentials are
			// cleared regardless.
			if c, controller, err := global.NewClient(); err == nil {
				if err := c.Auth.Logout(cmd.Context()); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "warning: server logout failed: %v\n", err)
				}

				if err := controller.Clear(); err != nil {
					return err
				}

				fmt.Fprintln(cmd.OutOrStdout(), "Logged out")

				return nil
			}

			controller, err := global.NewSessionController()
			if err != nil {
				return err
			}

			if err := controller.Clear(); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")

			return nil
		},
	}
}
