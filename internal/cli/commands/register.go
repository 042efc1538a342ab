package commands

import (
	"fmt"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/modelverse-dev/modelverse/internal/cli/client"
)

// NewRegisterCmd creates the register command
func NewRegisterCmd() *cobra.Command {
	var username, email, password, serverAlias string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a new account on a ModelVerse server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRegister(cmd, username, email, password, serverAlias)
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Username for the new account")
	cmd.Flags().StringVar(&email, "email", "", "Email address for the new account")
	cmd.Flags().StringVar(&password, "password", "", "Password (will prompt if not provided)")
	cmd.Flags().StringVar(&serverAlias, "server", "", "Server alias from modelverse.json")

	return cmd
}

func runRegister(cmd *cobra.Command, username, email, password, serverAlias string) error {
	if username == "" {
		return fmt.Errorf("username is required (use --username flag)")
	}
	if email == "" {
		return fmt.Errorf("email is required (use --email flag)")
	}

	app, err := newApp(serverAlias)
	if err != nil {
		return err
	}

	if password == "" {
		if term.IsTerminal(int(syscall.Stdin)) {
			fmt.Print("Password: ")
			bytePassword, err := term.ReadPassword(int(syscall.Stdin))
			if err != nil {
				return fmt.Errorf("failed to read password: %w", err)
			}
			password = string(bytePassword)
			fmt.Println()
		} else {
			return fmt.Errorf("password is required in non-interactive mode (use --password flag)")
		}
	}

	profile, err := app.api.Register(cmd.Context(), client.RegisterRequest{
		Username: username,
		Email:    email,
		Password: password,
	})
	if err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}

	fmt.Println("✓ Account created!")
	fmt.Printf("  User: %s (%s)\n", profile.Username, profile.Email)
	fmt.Println("\nLog in with: modelverse login --username " + profile.Username)
	return nil
}
