package deployment

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentdeck/agentdeck/cmd/agentdeck/app/cmd/global"
	"github.com/agentdeck/agentdeck/pkg/client"
)

func newLogsCmd() *cobra.Command {
	var tail int

	cmd := &cobra.Command{
		Use:           "logs <ID>",
		Short:         "Print recent deployment logs",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := global.NewClient()
			if err != nil {
				return err
			}

			lines, err := c.Deployments.Logs(cmd.Context(), args[0], client.LogsOptions{TailLines: tail})
			if err != nil {
				return err
			}

			for _, line := range lines {
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}

			return nil
		},
	}

	cmd.Flags().IntVar(&tail, "tail", 100, "Number of log lines from the end")

	return cmd
}
