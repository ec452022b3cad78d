// Package global holds the flags and client wiring shared by every command.
package global

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/agentdeck/agentdeck/internal/sessionctl"
	"github.com/agentdeck/agentdeck/pkg/client"
	"github.com/agentdeck/agentdeck/pkg/session"
)

var (
	ServerURL string
	Insecure  bool
	Timeout   time.Duration
)

// AddFlags registers --server-url, --timeout and --insecure on the root
// command's persistent flag set.
func AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&ServerURL, "server-url", "", "API server URL (env: AGENTDECK_SERVER_URL)")
	fs.BoolVar(&Insecure, "insecure", false, "Skip TLS verification")
	fs.DurationVar(&Timeout, "timeout", 30*time.Second, "Request timeout")
}

// ResolveEnv fills in flag values from environment variables and the config
// file when not set via flags.
func ResolveEnv() {
	if ServerURL == "" {
		ServerURL = os.Getenv("AGENTDECK_SERVER_URL")
	}

	if ServerURL == "" {
		if cfg, err := LoadConfig(); err == nil {
			ServerURL = cfg.ServerURL
		}
	}
}

// NewSessionController builds the session controller over the default store.
// The refresher is attached by NewClient; commands that only clear the
// session (logout) can use the controller directly.
func NewSessionController() (*sessionctl.Controller, error) {
	store, err := session.NewDefaultStore()
	if err != nil {
		return nil, err
	}

	return sessionctl.New(sessionctl.Options{
		Store: store,
		OnLogout: func() {
			fmt.Fprintln(os.Stderr, "Session expired, please run 'agentdeck login' again.")
		},
	}), nil
}

// NewClient builds the API client coupled to the stored session. The returned
// controller is the client's token source.
func NewClient() (*client.Client, *sessionctl.Controller, error) {
	if ServerURL == "" {
		return nil, nil, fmt.Errorf("no server URL configured: pass --server-url, set AGENTDECK_SERVER_URL, or run 'agentdeck login'")
	}

	store, err := session.NewDefaultStore()
	if err != nil {
		return nil, nil, err
	}

	// The refresher needs the client and the client needs the token source,
	// so the controller is created first and the auth service wired after.
	controller := sessionctl.New(sessionctl.Options{
		Store: store,
		OnLogout: func() {
			fmt.Fprintln(os.Stderr, "Session expired, please run 'agentdeck login' again.")
		},
	})

	options := []client.ClientOption{
		client.WithTokenSource(controller),
		client.WithTimeout(Timeout),
	}
	if Insecure {
		options = append(options, client.WithInsecureSkipVerify())
	}

	c := client.NewClient(ServerURL, options...)
	controller.SetRefresher(c.Auth)

	return c, controller, nil
}
