// Package deployment implements the deployment management commands.
package deployment

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	v1 "github.com/agentdeck/agentdeck/api/v1"
)

// NewDeploymentCmd creates the deployment command group.
func NewDeploymentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "deployment",
		Aliases: []string{"deployments", "deploy"},
		Short:   "Manage agent deployments",
		Long: `Create, inspect and control agent deployments.

Examples:
  # List deployments
  agentdeck deployment list

  # Create a deployment from a template
  agentdeck deployment create my-agent --template support-agent --model gpt-4o

  # Stop and restart
  agentdeck deployment stop <id>
  agentdeck deployment restart <id>`,
	}

	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newGetCmd())
	cmd.AddCommand(newCreateCmd())
	cmd.AddCommand(newDeleteCmd())
	cmd.AddCommand(newStartCmd())
	cmd.AddCommand(newStopCmd())
	cmd.AddCommand(newRestartCmd())
	cmd.AddCommand(newLogsCmd())

	return cmd
}

// printDeployments renders deployments in the requested output format.
func printDeployments(w io.Writer, format string, deployments []v1.Deployment) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		return enc.Encode(deployments)
	case "yaml":
		return yaml.NewEncoder(w).Encode(deployments)
	case "table", "":
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tNAME\tSTATUS\tURL\tCREATED")

		for i := range deployments {
			d := &deployments[i]

			status := v1.DeploymentStatusIdle
			url := ""

			if d.State != nil {
				if d.State.Status != "" {
					status = d.State.Status
				}

				url = d.State.ServiceURL
			}

			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", d.ID, d.Name, status, url, d.CreatedAt)
		}

		return tw.Flush()
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}
