package deployment

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.openly.dev/pointy"

	v1 "github.com/agentdeck/agentdeck/api/v1"
	"github.com/agentdeck/agentdeck/cmd/agentdeck/app/cmd/global"
	"github.com/agentdeck/agentdeck/pkg/client"
)

type createOptions struct {
	template string
	model    string
	region   string
	replicas int
	vars     map[string]string
}

func newCreateCmd() *cobra.Command {
	opts := &createOptions{}

	cmd := &cobra.Command{
		Use:           "create <NAME>",
		Short:         "Create a deployment",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := global.NewClient()
			if err != nil {
				return err
			}

			deployment, err := c.Deployments.Create(cmd.Context(), client.CreateDeploymentRequest{
				Name: args[0],
				Spec: &v1.DeploymentSpec{
					AgentTemplate: opts.template,
					Model:         opts.model,
					Region:        opts.region,
					Replicas:      pointy.Int(opts.replicas),
					Variables:     opts.vars,
				},
				IdempotencyKey: uuid.NewString(),
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created deployment %s (%s)\n", deployment.Name, deployment.ID)
			fmt.Fprintf(cmd.OutOrStdout(), "Follow provisioning with: agentdeck status %s --watch\n", deployment.ID)

			return nil
		},
	}

	cmd.Flags().StringVar(&opts.template, "template", "", "Agent template name (required)")
	cmd.Flags().StringVar(&opts.model, "model", "", "Model the agent runs on")
	cmd.Flags().StringVar(&opts.region, "region", "", "Deployment region")
	cmd.Flags().IntVar(&opts.replicas, "replicas", 1, "Replica count")
	cmd.Flags().StringToStringVar(&opts.vars, "var", nil, "Agent variables as key=value")

	_ = cmd.MarkFlagRequired("template")

	return cmd
}
