package cmd

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bnema/sitealert/internal/cli"
)

var watchSource cli.SourceOptions

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Monitor a work order page and alert on urgent sites",
	Long: `Monitor a work order page until interrupted.

The page is re-read whenever the snapshot file changes (--file) or on the
refresh interval (--url). Each time the page shows an unassigned work order,
its location is read and the site code is checked against the urgent rules.
Editing the config file restarts detection with the new rules.

Examples:
  sitealert watch --file ~/work-order.html
  sitealert watch --url http://localhost:8080/work-orders/42`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().StringVarP(&watchSource.File, "file", "f", "", "HTML snapshot file to watch")
	watchCmd.Flags().StringVarP(&watchSource.URL, "url", "u", "", "page URL to poll")
	watchCmd.MarkFlagsMutuallyExclusive("file", "url")
	watchCmd.MarkFlagsOneRequired("file", "url")
}

func runWatch(cmd *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(a.Ctx(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return a.Watch(ctx, watchSource)
}
