package commands

import (
	"fmt"
	"os"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// NewLoginCmd creates the login command
func NewLoginCmd() *cobra.Command {
	var username, password, serverAlias string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate with a ModelVerse server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogin(cmd, username, password, serverAlias)
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Username (or set MODELVERSE_USERNAME)")
	cmd.Flags().StringVar(&password, "password", "", "Password (or set MODELVERSE_PASSWORD, will prompt if not provided)")
	cmd.Flags().StringVar(&serverAlias, "server", "", "Server alias from modelverse.json")

	return cmd
}

func runLogin(cmd *cobra.Command, username, password, serverAlias string) error {
	// Environment variables cover CI logins
	if username == "" {
		username = os.Getenv("MODELVERSE_USERNAME")
	}
	if password == "" {
		password = os.Getenv("MODELVERSE_PASSWORD")
	}

	if username == "" {
		return fmt.Errorf("username is required (use --username flag or MODELVERSE_USERNAME env var)")
	}

	app, err := newApp(serverAlias)
	if err != nil {
		return err
	}

	// Prompt for the password when stdin is a terminal
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
			return fmt.Errorf("password is required in non-interactive mode (use --password flag or MODELVERSE_PASSWORD env var)")
		}
	}

	fmt.Printf("Logging in to %s (%s)...\n", app.server.Alias, app.server.URL)

	profile, err := app.gateway.Login(cmd.Context(), username, password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	fmt.Println("✓ Login successful!")
	fmt.Printf("  User: %s (%s)\n", profile.Username, profile.Email)
	if profile.IsAdmin {
		fmt.Println("  Role: Admin")
	}

	return nil
}
