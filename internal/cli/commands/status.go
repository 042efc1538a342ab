package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewStatusCmd creates the status command
func NewStatusCmd() *cobra.Command {
	var serverAlias string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Check server health",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(cmd, serverAlias)
		},
	}

	cmd.Flags().StringVar(&serverAlias, "server", "", "Server alias from modelverse.json")

	return cmd
}

func runStatus(cmd *cobra.Command, serverAlias string) error {
	app, err := newApp(serverAlias)
	if err != nil {
		return err
	}

	health, err := app.api.Health(cmd.Context())
	if err != nil {
		return fmt.Errorf("server %s is unreachable: %w", app.server.URL, err)
	}

	fmt.Printf("Server:  %s (%s)\n", app.server.Alias, app.server.URL)
	fmt.Printf("Status:  %s\n", health.Status)
	if health.Version != "" {
		fmt.Printf("Version: %s\n", health.Version)
	}

	state := app.session.Current()
	if state.Authenticated {
		if state.User != nil {
			fmt.Printf("Session: logged in as %s\n", state.User.Username)
		} else {
			fmt.Println("Session: logged in")
		}
	} else {
		fmt.Println("Session: logged out")
	}
	return nil
}
