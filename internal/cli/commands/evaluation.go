package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// NewEvaluationCmd creates the evaluation command group
func NewEvaluationCmd() *cobra.Command {
	var serverAlias string

	cmd := &cobra.Command{
		Use:   "evaluation",
		Short: "List and manage benchmark runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEvaluationList(cmd, serverAlias)
		},
	}

	cmd.PersistentFlags().StringVar(&serverAlias, "server", "", "Server alias from modelverse.json")

	benchmarks := &cobra.Command{
		Use:   "benchmarks",
		Short: "List the benchmark suites the server supports",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEvaluationBenchmarks(cmd, serverAlias)
		},
	}

	cmd.AddCommand(benchmarks)
	return cmd
}

func runEvaluationList(cmd *cobra.Command, serverAlias string) error {
	app, err := newApp(serverAlias)
	if err != nil {
		return err
	}
	if err := app.requireAuth(); err != nil {
		return err
	}

	tasks, err := app.api.ListEvaluationTasks(cmd.Context())
	if err != nil {
		return err
	}

	if len(tasks) == 0 {
		fmt.Println("No evaluation tasks found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tBENCHMARK\tSTATUS")
	fmt.Fprintln(w, "──\t────\t─────────\t──────")
	for _, task := range tasks {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", task.ID, task.Name, task.BenchmarkType, task.Status)
	}
	return w.Flush()
}

func runEvaluationBenchmarks(cmd *cobra.Command, serverAlias string) error {
	app, err := newApp(serverAlias)
	if err != nil {
		return err
	}
	if err := app.requireAuth(); err != nil {
		return err
	}

	benchmarks, err := app.api.Benchmarks(cmd.Context())
	if err != nil {
		return err
	}

	for _, name := range benchmarks {
		fmt.Println(name)
	}
	return nil
}
