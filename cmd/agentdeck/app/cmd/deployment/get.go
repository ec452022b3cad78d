package deployment

import (
	"github.com/spf13/cobra"

	v1 "github.com/agentdeck/agentdeck/api/v1"
	"github.com/agentdeck/agentdeck/cmd/agentdeck/app/cmd/global"
)

func newGetCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:           "get <ID>",
		Short:         "Get a deployment",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := global.NewClient()
			if err != nil {
				return err
			}

			deployment, err := c.Deployments.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			return printDeployments(cmd.OutOrStdout(), output, []v1.Deployment{*deployment})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "table", "Output format: table, json, yaml")

	return cmd
}
