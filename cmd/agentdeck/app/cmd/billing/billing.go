// Package billing implements the plan and subscription commands.
package billing

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/agentdeck/agentdeck/cmd/agentdeck/app/cmd/global"
)

// NewBillingCmd creates the billing command group.
func NewBillingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "billing",
		Short: "Manage plans and subscription",
	}

	cmd.AddCommand(newPlansCmd())
	cmd.AddCommand(newSubscriptionCmd())
	cmd.AddCommand(newSubscribeCmd())

	return cmd
}

func newPlansCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "plans",
		Short:         "List available plans",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := global.NewClient()
			if err != nil {
				return err
			}

			plans, err := c.Billing.ListPlans(cmd.Context())
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tPRICE\tINTERVAL\tMAX DEPLOYMENTS")

			for _, plan := range plans {
				fmt.Fprintf(tw, "%s\t%s\t%.2f %s\t%s\t%d\n",
					plan.ID, plan.Name, float64(plan.PriceCents)/100, plan.Currency, plan.Interval, plan.MaxDeployments)
			}

			return tw.Flush()
		},
	}
}

func newSubscriptionCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "subscription",
		Short:         "Show the current subscription",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := global.NewClient()
			if err != nil {
				return err
			}

			sub, err := c.Billing.GetSubscription(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Plan: %s\nStatus: %s\nRenews: %s\n",
				sub.PlanID, sub.Status, sub.CurrentPeriodEnd)

			return nil
		},
	}
}

func newSubscribeCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "subscribe <PLAN_ID>",
		Short:         "Start checkout for a plan",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := global.NewClient()
			if err != nil {
				return err
			}

			checkout, err := c.Billing.CreateCheckoutSession(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Open this URL to complete checkout:\n%s\n", checkout.URL)

			return nil
		},
	}
}
