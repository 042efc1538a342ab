package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// NewTrainingCmd creates the training command group
func NewTrainingCmd() *cobra.Command {
	var serverAlias string

	cmd := &cobra.Command{
		Use:   "training",
		Short: "List and manage fine-tuning jobs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrainingList(cmd, serverAlias)
		},
	}

	cmd.PersistentFlags().StringVar(&serverAlias, "server", "", "Server alias from modelverse.json")

	start := &cobra.Command{
		Use:   "start <task-id>",
		Short: "Start a fine-tuning job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrainingAction(cmd, serverAlias, args[0], "start")
		},
	}

	stop := &cobra.Command{
		Use:   "stop <task-id>",
		Short: "Stop a running fine-tuning job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrainingAction(cmd, serverAlias, args[0], "stop")
		},
	}

	logs := &cobra.Command{
		Use:   "logs <task-id>",
		Short: "Show recent log lines of a fine-tuning job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			return runTrainingLogs(cmd, serverAlias, args[0], limit)
		},
	}
	logs.Flags().Int("limit", 100, "Number of log lines to fetch")

	cmd.AddCommand(start, stop, logs)
	return cmd
}

func runTrainingList(cmd *cobra.Command, serverAlias string) error {
	app, err := newApp(serverAlias)
	if err != nil {
		return err
	}
	if err := app.requireAuth(); err != nil {
		return err
	}

	tasks, err := app.api.ListTrainingTasks(cmd.Context())
	if err != nil {
		return err
	}

	if len(tasks) == 0 {
		fmt.Println("No training tasks found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tSTATUS\tPROGRESS\tCREATED")
	fmt.Fprintln(w, "──\t────\t──────\t────────\t───────")
	for _, task := range tasks {
		fmt.Fprintf(w, "%d\t%s\t%s\t%.1f%%\t%s\n", task.ID, task.Name, task.Status, task.Progress, task.CreatedAt)
	}
	return w.Flush()
}

func runTrainingAction(cmd *cobra.Command, serverAlias, arg, action string) error {
	id, err := parseID(arg)
	if err != nil {
		return err
	}

	app, err := newApp(serverAlias)
	if err != nil {
		return err
	}
	if err := app.requireAuth(); err != nil {
		return err
	}

	switch action {
	case "start":
		err = app.api.StartTrainingTask(cmd.Context(), id)
	case "stop":
		err = app.api.StopTrainingTask(cmd.Context(), id)
	}
	if err != nil {
		return err
	}

	fmt.Printf("✓ Training task %d: %s requested\n", id, action)
	return nil
}

func runTrainingLogs(cmd *cobra.Command, serverAlias, arg string, limit int) error {
	id, err := parseID(arg)
	if err != nil {
		return err
	}

	app, err := newApp(serverAlias)
	if err != nil {
		return err
	}
	if err := app.requireAuth(); err != nil {
		return err
	}

	logs, err := app.api.TrainingLogs(cmd.Context(), id, limit, 0)
	if err != nil {
		return err
	}

	for _, line := range logs {
		fmt.Println(line)
	}
	return nil
}
