package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewWhoamiCmd creates the whoami command
func NewWhoamiCmd() *cobra.Command {
	var serverAlias string

	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the currently authenticated user",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWhoami(cmd, serverAlias)
		},
	}

	cmd.Flags().StringVar(&serverAlias, "server", "", "Server alias from modelverse.json")

	return cmd
}

func runWhoami(cmd *cobra.Command, serverAlias string) error {
	app, err := newApp(serverAlias)
	if err != nil {
		return err
	}
	if err := app.requireAuth(); err != nil {
		return err
	}

	profile, err := app.gateway.FetchProfile(cmd.Context())
	if err != nil {
		return fmt.Errorf("session is no longer valid, please run 'modelverse login' again: %w", err)
	}
	if profile == nil {
		return fmt.Errorf("not authenticated. Please run 'modelverse login' first")
	}

	fmt.Printf("User:    %s\n", profile.Username)
	fmt.Printf("Email:   %s\n", profile.Email)
	fmt.Printf("Server:  %s (%s)\n", app.server.Alias, app.server.URL)
	if profile.IsAdmin {
		fmt.Println("Role:    Admin")
	}
	return nil
}
