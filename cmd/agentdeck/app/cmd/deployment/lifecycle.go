package deployment

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentdeck/agentdeck/cmd/agentdeck/app/cmd/global"
)

// lifecycleCmd builds one of the start/stop/restart commands; they only
// differ in the verb sent to the backend.
func lifecycleCmd(use, short string, action func(ctx context.Context, id string) error) *cobra.Command {
	return &cobra.Command{
		Use:           use + " <ID>",
		Short:         short,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := action(cmd.Context(), args[0]); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s requested for deployment %s\n", use, args[0])

			return nil
		},
	}
}

func newStartCmd() *cobra.Command {
	return lifecycleCmd("start", "Start a stopped deployment", func(ctx context.Context, id string) error {
		c, _, err := global.NewClient()
		if err != nil {
			return err
		}

		return c.Deployments.Start(ctx, id)
	})
}

func newStopCmd() *cobra.Command {
	return lifecycleCmd("stop", "Stop a running deployment", func(ctx context.Context, id string) error {
		c, _, err := global.NewClient()
		if err != nil {
			return err
		}

		return c.Deployments.Stop(ctx, id)
	})
}

func newRestartCmd() *cobra.Command {
	return lifecycleCmd("restart", "Restart a deployment in place", func(ctx context.Context, id string) error {
		c, _, err := global.NewClient()
		if err != nil {
			return err
		}

		return c.Deployments.Restart(ctx, id)
	})
}

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "delete <ID>",
		Short:         "Delete a deployment",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := global.NewClient()
			if err != nil {
				return err
			}

			if err := c.Deployments.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Deleted deployment %s\n", args[0])

			return nil
		},
	}
}
