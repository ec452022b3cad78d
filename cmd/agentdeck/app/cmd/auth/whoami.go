package auth

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentdeck/agentdeck/cmd/agentdeck/app/cmd/global"
)

// NewWhoamiCmd creates the whoami cobra command.
func NewWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "whoami",
		Short:         "Print the authenticated user",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := global.NewClient()
			if err != nil {
				return err
			}

			user, err := c.Auth.Me(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", user.Email, user.ID)

			return nil
		},
	}
}
