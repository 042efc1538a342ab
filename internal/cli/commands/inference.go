package commands

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/modelverse-dev/modelverse/internal/models"
)

// NewInferenceCmd creates the inference command group
func NewInferenceCmd() *cobra.Command {
	var serverAlias string

	cmd := &cobra.Command{
		Use:   "inference",
		Short: "List and manage model deployments",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInferenceList(cmd, serverAlias)
		},
	}

	cmd.PersistentFlags().StringVar(&serverAlias, "server", "", "Server alias from modelverse.json")

	gpu := &cobra.Command{
		Use:   "gpu",
		Short: "Show GPU status on the inference host",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInferenceGPU(cmd, serverAlias)
		},
	}

	chat := &cobra.Command{
		Use:   "chat <task-id> <message>",
		Short: "Send a single chat message to a deployment",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInferenceChat(cmd, serverAlias, args[0], strings.Join(args[1:], " "))
		},
	}

	cmd.AddCommand(gpu, chat)
	return cmd
}

func runInferenceList(cmd *cobra.Command, serverAlias string) error {
	app, err := newApp(serverAlias)
	if err != nil {
		return err
	}
	if err := app.requireAuth(); err != nil {
		return err
	}

	tasks, err := app.api.ListInferenceTasks(cmd.Context())
	if err != nil {
		return err
	}

	if len(tasks) == 0 {
		fmt.Println("No inference deployments found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tSTATUS\tPORT")
	fmt.Fprintln(w, "──\t────\t──────\t────")
	for _, task := range tasks {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\n", task.ID, task.Name, task.Status, task.Port)
	}
	return w.Flush()
}

func runInferenceGPU(cmd *cobra.Command, serverAlias string) error {
	app, err := newApp(serverAlias)
	if err != nil {
		return err
	}
	if err := app.requireAuth(); err != nil {
		return err
	}

	gpus, err := app.api.GPUStatus(cmd.Context())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "GPU\tNAME\tMEMORY\tUTIL")
	for _, gpu := range gpus {
		fmt.Fprintf(w, "%d\t%s\t%.0f/%.0f MiB\t%.0f%%\n",
			gpu.Index, gpu.Name, gpu.MemoryUsed, gpu.MemoryTotal, gpu.Utilization)
	}
	return w.Flush()
}

func runInferenceChat(cmd *cobra.Command, serverAlias, arg, message string) error {
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

	reply, err := app.api.SendChat(cmd.Context(), id, []models.ChatMessage{
		{Role: "user", Content: message},
	})
	if err != nil {
		return err
	}

	fmt.Println(reply.Content)
	return nil
}
