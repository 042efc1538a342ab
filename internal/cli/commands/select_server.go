package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/modelverse-dev/modelverse/internal/cli/config"
	"github.com/modelverse-dev/modelverse/internal/cli/serverselect"
	"github.com/modelverse-dev/modelverse/internal/cli/userconfig"
)

// NewSelectServerCmd creates the select-server command
func NewSelectServerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "select-server",
		Short: "Choose which configured server to talk to",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSelectServer()
		},
	}

	return cmd
}

func runSelectServer() error {
	cfg, err := config.LoadFromCurrentDir()
	if err != nil {
		return fmt.Errorf("failed to load config: %w\nRun 'modelverse init' to create a configuration file", err)
	}

	server, err := serverselect.PromptServerSelection(cfg)
	if err != nil {
		return err
	}

	if err := userconfig.SetSelectedServer(server.URL); err != nil {
		return fmt.Errorf("failed to save selected server: %w", err)
	}

	fmt.Printf("✓ Selected server: %s (%s)\n", server.Alias, server.URL)
	return nil
}
