package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewLogoutCmd creates the logout command
func NewLogoutCmd() *cobra.Command {
	var serverAlias string

	cmd := &cobra.Command{
		Use:   "logout",
		Short: "End the current session and clear stored credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogout(serverAlias)
		},
	}

	cmd.Flags().StringVar(&serverAlias, "server", "", "Server alias from modelverse.json")

	return cmd
}

func runLogout(serverAlias string) error {
	app, err := newApp(serverAlias)
	if err != nil {
		return err
	}

	// Logout is idempotent; logging out while logged out is fine
	app.gateway.Logout()

	fmt.Printf("✓ Logged out of %s (%s)\n", app.server.Alias, app.server.URL)
	return nil
}
