// Package auth implements the login/logout/whoami commands.
package auth

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentdeck/agentdeck/cmd/agentdeck/app/cmd/global"
)

type loginOptions struct {
	email    string
	password string
}

// NewLoginCmd creates the login cobra command.
func NewLoginCmd() *cobra.Command {
	opts := &loginOptions{}

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session",
		Long: `Sign in with email and password. The issued session is stored in the OS
keychain (with a file fallback) and attached to every subsequent request.

Examples:
  # Interactive login
  agentdeck login --server-url https://api.agentdeck.dev

  # Non-interactive login
  agentdeck login --email me@example.com --password-stdin < password.txt`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogin(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.email, "email", "", "Account email")
	cmd.Flags().StringVar(&opts.password, "password", "", "Account password (prefer --password-stdin)")
	cmd.Flags().Bool("password-stdin", false, "Read the password from stdin")

	return cmd
}

func runLogin(cmd *cobra.Command, opts *loginOptions) error {
	reader := bufio.NewReader(cmd.InOrStdin())

	if opts.email == "" {
		fmt.Fprint(cmd.OutOrStdout(), "Email: ")

		line, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read email: %w", err)
		}

		opts.email = strings.TrimSpace(line)
	}

	passwordStdin, _ := cmd.Flags().GetBool("password-stdin")
	if opts.password == "" {
		if !passwordStdin {
			fmt.Fprint(cmd.OutOrStdout(), "Password: ")
		}

		line, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}

		opts.password = strings.TrimSpace(line)
	}

	if opts.email == "" || opts.password == "" {
		return fmt.Errorf("email and password are required")
	}

	c, controller, err := global.NewClient()
	if err != nil {
		return err
	}

	session, err := c.Auth.Login(cmd.Context(), opts.email, opts.password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	if err := controller.SetSession(session); err != nil {
		return fmt.Errorf("login succeeded but storing the session failed: %w", err)
	}

	// Remember the server so later invocations don't need --server-url.
	if err := global.SaveConfig(&global.Config{ServerURL: global.ServerURL}); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to save config: %v\n", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", opts.email)

	return nil
}
