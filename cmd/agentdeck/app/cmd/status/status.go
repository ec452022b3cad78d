// Package status implements the status command, the CLI surface of the
// deployment status poller.
package status

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	v1 "github.com/agentdeck/agentdeck/api/v1"
	"github.com/agentdeck/agentdeck/cmd/agentdeck/app/cmd/global"
	"github.com/agentdeck/agentdeck/pkg/client"
	"github.com/agentdeck/agentdeck/pkg/poller"
	"github.com/agentdeck/agentdeck/pkg/querycache"
)

type statusOptions struct {
	watch   bool
	all     bool
	timeout time.Duration
}

// NewStatusCmd creates the status cobra command.
func NewStatusCmd() *cobra.Command {
	opts := &statusOptions{}

	cmd := &cobra.Command{
		Use:   "status [ID]",
		Short: "Show or follow deployment status",
		Long: `Show the current status of a deployment, or follow it while it changes.

With --watch the status is polled at a cadence matching the lifecycle phase:
fast while provisioning, slower once the deployment settles.

Examples:
  # One-shot status
  agentdeck status my-deployment-id

  # Follow status transitions
  agentdeck status my-deployment-id --watch

  # Follow every deployment
  agentdeck status --all --watch`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(cmd, opts, args)
		},
	}

	cmd.Flags().BoolVar(&opts.watch, "watch", false, "Keep polling and print status transitions")
	cmd.Flags().BoolVar(&opts.all, "all", false, "Follow all deployments (requires --watch)")
	cmd.Flags().DurationVar(&opts.timeout, "watch-timeout", 0, "Stop watching after this duration (0 = until interrupted)")

	return cmd
}

func runStatus(cmd *cobra.Command, opts *statusOptions, args []string) error {
	c, _, err := global.NewClient()
	if err != nil {
		return err
	}

	if opts.all {
		if !opts.watch {
			return fmt.Errorf("--all requires --watch")
		}

		return watchAll(cmd, c, opts)
	}

	if len(args) != 1 {
		return fmt.Errorf("a deployment id is required unless --all is given")
	}

	id := args[0]

	if !opts.watch {
		snapshot, err := c.Deployments.GetStatus(cmd.Context(), id)
		if err != nil {
			return err
		}

		printSnapshot(cmd, snapshot)

		return nil
	}

	ctx := cmd.Context()
	if opts.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.timeout)

		defer cancel()
	}

	cache := querycache.New()
	if err := cache.StartGC(ctx, querycache.DefaultSweepInterval); err != nil {
		return err
	}

	watch(ctx, cmd, c, cache, id)

	return nil
}

func watch(ctx context.Context, cmd *cobra.Command, c *client.Client, cache *querycache.Cache, id string) {
	p := poller.New(c.Deployments, cache, id, poller.Options{
		Enabled: true,
		OnStatusChange: func(status v1.DeploymentStatus, snapshot *v1.StatusSnapshot) {
			printSnapshot(cmd, snapshot)
		},
	})

	p.Run(ctx)

	if state := p.State(); state.Err != nil && state.Snapshot == nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "status fetch failed: %v\n", state.Err)
	}
}

func watchAll(cmd *cobra.Command, c *client.Client, opts *statusOptions) error {
	deployments, err := c.Deployments.List(cmd.Context(), client.ListOptions{})
	if err != nil {
		return err
	}

	if len(deployments) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No deployments")
		return nil
	}

	ctx := cmd.Context()
	if opts.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.timeout)

		defer cancel()
	}

	cache := querycache.New()
	if err := cache.StartGC(ctx, querycache.DefaultSweepInterval); err != nil {
		return err
	}

	// One poller per deployment over a shared cache; each runs its own
	// cadence, failures stay local to their id.
	g, ctx := errgroup.WithContext(ctx)

	for i := range deployments {
		id := deployments[i].ID

		g.Go(func() error {
			watch(ctx, cmd, c, cache, id)
			return nil
		})
	}

	return g.Wait()
}

func printSnapshot(cmd *cobra.Command, snapshot *v1.StatusSnapshot) {
	line := fmt.Sprintf("%s  %s  %s", time.Now().Format(time.RFC3339), snapshot.ID, snapshot.Status)

	if snapshot.ProvisioningStep != "" {
		line += "  step=" + snapshot.ProvisioningStep
	}

	if snapshot.URL != "" {
		line += "  url=" + snapshot.URL
	}

	if snapshot.ErrorMessage != "" {
		line += "  error=" + snapshot.ErrorMessage
	}

	fmt.Fprintln(cmd.OutOrStdout(), line)
}
