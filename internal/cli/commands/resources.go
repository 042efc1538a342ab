package commands

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// NewResourcesCmd creates the resources command group
func NewResourcesCmd() *cobra.Command {
	var serverAlias string

	cmd := &cobra.Command{
		Use:   "resources",
		Short: "List and manage models and datasets",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResourcesList(cmd, serverAlias)
		},
	}

	cmd.PersistentFlags().StringVar(&serverAlias, "server", "", "Server alias from modelverse.json")

	download := &cobra.Command{
		Use:   "download <resource-id>",
		Short: "Request a server-side download of a resource",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResourceDownload(cmd, serverAlias, args[0])
		},
	}
	download.Flags().String("source", "", "Download source (defaults to OFFICIAL)")

	progress := &cobra.Command{
		Use:   "progress <resource-id>",
		Short: "Show the download progress of a resource",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResourceProgress(cmd, serverAlias, args[0])
		},
	}

	scan := &cobra.Command{
		Use:   "scan",
		Short: "Rescan the server's local resource directories",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResourceScan(cmd, serverAlias)
		},
	}

	cmd.AddCommand(download, progress, scan)
	return cmd
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid ID '%s': must be a number", arg)
	}
	return id, nil
}

func runResourcesList(cmd *cobra.Command, serverAlias string) error {
	app, err := newApp(serverAlias)
	if err != nil {
		return err
	}
	if err := app.requireAuth(); err != nil {
		return err
	}

	resources, err := app.api.ListResources(cmd.Context())
	if err != nil {
		return err
	}

	if len(resources) == 0 {
		fmt.Println("No resources found.")
		return nil
	}

	fmt.Printf("Resources on %s (%s):\n\n", app.server.Alias, app.server.URL)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTYPE\tSTATUS\tPROGRESS")
	fmt.Fprintln(w, "──\t────\t────\t──────\t────────")
	for _, r := range resources {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%.1f%%\n", r.ID, r.Name, r.ResourceType, r.Status, r.Progress)
	}
	return w.Flush()
}

func runResourceDownload(cmd *cobra.Command, serverAlias, arg string) error {
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

	source, _ := cmd.Flags().GetString("source")
	if err := app.api.DownloadResource(cmd.Context(), id, source); err != nil {
		return err
	}

	fmt.Printf("✓ Download requested for resource %d\n", id)
	fmt.Printf("\nTrack it with: modelverse resources progress %d\n", id)
	return nil
}

func runResourceProgress(cmd *cobra.Command, serverAlias, arg string) error {
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

	progress, err := app.api.DownloadProgress(cmd.Context(), id)
	if err != nil {
		return err
	}

	fmt.Printf("Resource %d: %s (%.1f%%)\n", id, progress.Status, progress.Progress)
	if progress.Error != "" {
		fmt.Printf("Error: %s\n", progress.Error)
	}
	return nil
}

func runResourceScan(cmd *cobra.Command, serverAlias string) error {
	app, err := newApp(serverAlias)
	if err != nil {
		return err
	}

	// Scan is anonymous; no auth check
	resources, err := app.api.ScanLocalResources(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Printf("✓ Scan complete, %d resources known to the server\n", len(resources))
	return nil
}
