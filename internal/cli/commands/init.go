package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/modelverse-dev/modelverse/internal/cli/config"
)

// NewInitCmd creates the init command
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a modelverse.json configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit()
		},
	}

	return cmd
}

func runInit() error {
	if _, err := os.Stat(config.ConfigFileName); err == nil {
		return fmt.Errorf("%s already exists in the current directory", config.ConfigFileName)
	}

	if err := config.Save(config.ConfigFileName, config.DefaultConfig()); err != nil {
		return err
	}

	fmt.Printf("✓ Created %s\n", config.ConfigFileName)
	fmt.Println("\nEdit it to add your server URL, then run: modelverse login")
	return nil
}
