package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/modelverse-dev/modelverse/internal/cli/commands"
	"github.com/modelverse-dev/modelverse/internal/logger"
)

var version = "dev" // Will be set during build

var (
	logLevel  string
	logFormat string
)

var rootCmd = &cobra.Command{
	Use:   "modelverse",
	Short: "ModelVerse - manage models, training and inference from the terminal",
	Long: `ModelVerse CLI - A client for the ModelVerse model-management platform.

Browse model and dataset resources, run fine-tuning jobs, deploy models for
inference and launch benchmark evaluations against a ModelVerse server.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init(logLevel, logFormat)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "console", "Log format (console, json)")

	// Add version command
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("modelverse version %s\n", version)
		},
	})

	// Add all subcommands
	rootCmd.AddCommand(commands.NewInitCmd())
	rootCmd.AddCommand(commands.NewLoginCmd())
	rootCmd.AddCommand(commands.NewLogoutCmd())
	rootCmd.AddCommand(commands.NewRegisterCmd())
	rootCmd.AddCommand(commands.NewWhoamiCmd())
	rootCmd.AddCommand(commands.NewStatusCmd())
	rootCmd.AddCommand(commands.NewSelectServerCmd())
	rootCmd.AddCommand(commands.NewDashCmd())
	rootCmd.AddCommand(commands.NewResourcesCmd())
	rootCmd.AddCommand(commands.NewTrainingCmd())
	rootCmd.AddCommand(commands.NewInferenceCmd())
	rootCmd.AddCommand(commands.NewEvaluationCmd())
}

// Execute runs the root command
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
