package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentdeck/agentdeck/cmd/agentdeck/app/cmd/auth"
	"github.com/agentdeck/agentdeck/cmd/agentdeck/app/cmd/billing"
	"github.com/agentdeck/agentdeck/cmd/agentdeck/app/cmd/deployment"
	"github.com/agentdeck/agentdeck/cmd/agentdeck/app/cmd/global"
	"github.com/agentdeck/agentdeck/cmd/agentdeck/app/cmd/status"
	"github.com/agentdeck/agentdeck/cmd/agentdeck/app/cmd/wait"
)

func NewAgentdeckCommand() *cobra.Command {
	agentdeckCmd := &cobra.Command{
		Use:   "agentdeck",
		Short: "Agentdeck Command Line Interface",
		Long: `Agentdeck CLI manages hosted AI agent deployments from the terminal.

Examples:
  # Sign in
  agentdeck login

  # List deployments
  agentdeck deployment list

  # Follow a deployment's status while it provisions
  agentdeck status my-deployment-id --watch

  # Wait for a deployment to become healthy
  agentdeck wait my-deployment-id --for jsonpath=.state.status=healthy`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			global.ResolveEnv()
		},
	}

	global.AddFlags(agentdeckCmd.PersistentFlags())
	// klog registers -v and friends on the standard flag set.
	agentdeckCmd.PersistentFlags().AddGoFlagSet(flag.CommandLine)

	agentdeckCmd.AddCommand(auth.NewLoginCmd())
	agentdeckCmd.AddCommand(auth.NewLogoutCmd())
	agentdeckCmd.AddCommand(auth.NewWhoamiCmd())
	agentdeckCmd.AddCommand(deployment.NewDeploymentCmd())
	agentdeckCmd.AddCommand(status.NewStatusCmd())
	agentdeckCmd.AddCommand(wait.NewWaitCmd())
	agentdeckCmd.AddCommand(billing.NewBillingCmd())
	agentdeckCmd.AddCommand(newVersionCmd())

	return agentdeckCmd
}

func Execute() {
	err := NewAgentdeckCommand().Execute()
	if err != nil {
		fmt.Println(err.Error())
		os.Exit(1)
	}
}
