// Package cmd provides Cobra CLI commands for sitealert.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/sitealert/internal/cli"
	"github.com/bnema/sitealert/internal/domain/build"
)

var (
	app       *cli.App
	buildInfo build.Info

	configFile string
	logLevel   string
	logFormat  string

	rootCmd = &cobra.Command{
		Use:   "sitealert",
		Short: "Alert on unassigned work orders at urgent sites",
		Long: `Sitealert - urgent site detection for work order pages.

Sitealert reads the work order page of the logistics application, either
from an HTML snapshot on disk or over HTTP, and raises an alert when an
unassigned work order belongs to an urgent site.

When an urgent site is detected:
  - A banner with the minor repair checklist is printed
  - The urgent comment is copied to the clipboard (when enabled)
  - A warning is written to the log

Use 'sitealert watch' to monitor a page, 'sitealert check' for a one-shot
verdict, and 'sitealert match' to test site codes against the rules.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip initialization for commands that don't need app context
			switch cmd.Name() {
			case "help", "completion":
				return nil
			}

			var err error
			app, err = cli.NewApp(cli.AppOptions{
				ConfigFile: configFile,
				LogLevel:   logLevel,
				LogFormat:  logFormat,
				Out:        cmd.OutOrStdout(),
			})
			if err != nil {
				return fmt.Errorf("initialize app: %w", err)
			}
			// Set build info from main.go
			app.BuildInfo = buildInfo
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if app != nil {
				_ = app.Close()
			}
		},
	}
)

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configFile, "config", "c", "", "config file (default $XDG_CONFIG_HOME/sitealert/config.toml)")
	flags.StringVar(&logLevel, "log-level", "", "log level: trace, debug, info, warn, error")
	flags.StringVar(&logFormat, "log-format", "", "log format: console, json")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// GetApp returns the initialized app (for use by subcommands).
func GetApp() *cli.App {
	return app
}

// SetBuildInfo sets the build information (called from main.go before Execute).
func SetBuildInfo(info build.Info) {
	buildInfo = info
}

func requireApp() (*cli.App, error) {
	a := GetApp()
	if a == nil {
		return nil, fmt.Errorf("app not initialized")
	}
	return a, nil
}
