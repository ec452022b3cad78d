// Package wait implements the wait command.
package wait

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"

	"github.com/agentdeck/agentdeck/cmd/agentdeck/app/cmd/global"
	"github.com/agentdeck/agentdeck/pkg/client"
)

// --- options & command ---

type waitOptions struct {
	forCond  string
	timeout  time.Duration
	interval time.Duration
}

// NewWaitCmd creates the wait cobra command.
func NewWaitCmd() *cobra.Command {
	opts := &waitOptions{}

	cmd := &cobra.Command{
		Use:   "wait <ID>",
		Short: "Wait for a deployment to reach a specific condition",
		Long: `Wait for a deployment to meet a condition, then exit.

Exits 0 when the condition is met, non-zero on timeout.

Supported --for conditions:
  delete                          Wait for the deployment to be deleted
  jsonpath=.state.status=healthy  Wait for a JSON path to equal a value

Examples:
  # Wait for a deployment to become healthy
  agentdeck wait my-deployment-id --for jsonpath=.state.status=healthy

  # Wait for a deployment to be deleted
  agentdeck wait my-deployment-id --for delete

  # Wait with custom timeout and poll interval
  agentdeck wait my-deployment-id --for jsonpath=.state.status=healthy --timeout 5m --interval 10s`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWait(opts, args)
		},
	}

	cmd.Flags().StringVar(&opts.forCond, "for", "", "Condition to wait for: \"delete\" or \"jsonpath=.path=value\" (required)")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 5*time.Minute, "Maximum time to wait")
	cmd.Flags().DurationVar(&opts.interval, "interval", 5*time.Second, "Poll interval")

	_ = cmd.MarkFlagRequired("for")

	return cmd
}

// --- run logic ---

func runWait(opts *waitOptions, args []string) error {
	cond, err := parseForCondition(opts.forCond)
	if err != nil {
		return err
	}

	c, _, err := global.NewClient()
	if err != nil {
		return err
	}

	id := args[0]

	poll := func() (bool, error) {
		deployment, err := c.Deployments.Get(context.Background(), id)
		if err != nil {
			// For delete condition, "not found" means success
			var reqErr *client.RequestError
			if cond.matchNotFound() && errors.As(err, &reqErr) && reqErr.StatusCode == http.StatusNotFound {
				return true, nil
			}

			return false, err
		}

		data, err := json.Marshal(deployment)
		if err != nil {
			return false, err
		}

		return cond.match(data), nil
	}

	// Initial check
	if done, err := poll(); err != nil {
		return err
	} else if done {
		fmt.Printf("deployment/%s condition met\n", id)
		return nil
	}

	// Poll loop
	ticker := time.NewTicker(opts.interval)
	defer ticker.Stop()

	timer := time.NewTimer(opts.timeout)
	defer timer.Stop()

	for {
		select {
		case <-timer.C:
			return fmt.Errorf("timeout waiting for deployment/%s: %s", id, cond)
		case <-ticker.C:
			done, err := poll()
			if err != nil {
				return err
			}

			if done {
				fmt.Printf("deployment/%s condition met\n", id)
				return nil
			}
		}
	}
}

// --- condition parsing & matching ---

// condition represents a parsed --for value.
type condition interface {
	match(data json.RawMessage) bool
	matchNotFound() bool
	String() string
}

// parseForCondition parses the --for flag value into a condition.
// Supported formats:
//   - delete
//   - jsonpath=.state.status=healthy
func parseForCondition(s string) (condition, error) {
	if s == "delete" {
		return deleteCondition{}, nil
	}

	if expr, ok := strings.CutPrefix(s, "jsonpath="); ok {
		// Strip optional leading dot: .state.status → state.status
		expr = strings.TrimPrefix(expr, ".")

		parts := strings.SplitN(expr, "=", 2)
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			return nil, fmt.Errorf("invalid --for value %q: jsonpath format is jsonpath=.path=value", s)
		}

		return jsonpathCondition{path: parts[0], value: parts[1]}, nil
	}

	return nil, fmt.Errorf("invalid --for value %q: must be \"delete\" or \"jsonpath=.path=value\"", s)
}

// deleteCondition waits for the deployment to not exist.
type deleteCondition struct{}

func (d deleteCondition) match(json.RawMessage) bool { return false }
func (d deleteCondition) matchNotFound() bool        { return true }
func (d deleteCondition) String() string             { return "delete" }

// jsonpathCondition waits for a jsonpath expression to match a value.
type jsonpathCondition struct {
	path  string // gjson path, e.g. "state.status"
	value string
}

func (j jsonpathCondition) match(data json.RawMessage) bool {
	return strings.EqualFold(gjson.GetBytes(data, j.path).String(), j.value)
}

func (j jsonpathCondition) matchNotFound() bool { return false }

func (j jsonpathCondition) String() string {
	return fmt.Sprintf("jsonpath=%s=%s", j.path, j.value)
}
