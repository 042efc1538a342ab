package commands

import (
	"fmt"
	"os/exec"
	"runtime"

	"github.com/spf13/cobra"
)

// NewDashCmd creates the dash command
func NewDashCmd() *cobra.Command {
	var serverAlias, view string

	cmd := &cobra.Command{
		Use:   "dash",
		Short: "Open the web dashboard in browser",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDash(serverAlias, view)
		},
	}

	cmd.Flags().StringVar(&serverAlias, "server", "", "Server alias from modelverse.json")
	cmd.Flags().StringVar(&view, "view", "/", "Dashboard view to open (e.g. /training, /admin)")

	return cmd
}

func runDash(serverAlias, view string) error {
	app, err := newApp(serverAlias)
	if err != nil {
		return err
	}

	// Run the guard locally so the browser lands where the dashboard
	// would put this session anyway: login when logged out, home when a
	// non-admin asks for /admin.
	landing := app.router.Navigate(view)
	dashboardURL := app.server.URL + landing

	fmt.Printf("Opening dashboard for %s...\n", app.server.Alias)
	fmt.Printf("URL: %s\n", dashboardURL)

	if err := openBrowser(dashboardURL); err != nil {
		return fmt.Errorf("failed to open browser: %w\nPlease visit: %s", err, dashboardURL)
	}

	return nil
}

// openBrowser opens the URL in the default browser
func openBrowser(url string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	return cmd.Start()
}
