package deployment

import (
	"github.com/spf13/cobra"

	v1 "github.com/agentdeck/agentdeck/api/v1"
	"github.com/agentdeck/agentdeck/cmd/agentdeck/app/cmd/global"
	"github.com/agentdeck/agentdeck/pkg/client"
)

type listOptions struct {
	status string
	region string
	output string
}

func newListCmd() *cobra.Command {
	opts := &listOptions{}

	cmd := &cobra.Command{
		Use:           "list",
		Short:         "List deployments",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := global.NewClient()
			if err != nil {
				return err
			}

			deployments, err := c.Deployments.List(cmd.Context(), client.ListOptions{
				Status: v1.DeploymentStatus(opts.status),
				Region: opts.region,
			})
			if err != nil {
				return err
			}

			return printDeployments(cmd.OutOrStdout(), opts.output, deployments)
		},
	}

	cmd.Flags().StringVar(&opts.status, "status", "", "Filter by status")
	cmd.Flags().StringVar(&opts.region, "region", "", "Filter by region")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "table", "Output format: table, json, yaml")

	return cmd
}
