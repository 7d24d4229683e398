package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/sitealert/internal/cli/styles"
	"github.com/bnema/sitealert/internal/infrastructure/config"
)

var (
	configInitPath  string
	configInitForce bool
	configSchemaDir string
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `Show the active configuration, write a default config file, or print its JSON schema.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the active configuration",
	Long:  `Print the config file in use, the urgent rules, and the full configuration as TOML.`,
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	Long: `Write the default configuration to the config path.

An existing file is kept unless --force is given.`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

var configSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of the config file",
	Long: `Print the JSON schema of the config file, or write it next to the
config with --write for editor completion.`,
	Args: cobra.NoArgs,
	RunE: runConfigSchema,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configSchemaCmd)

	configInitCmd.Flags().StringVarP(&configInitPath, "path", "p", "", "destination (default $XDG_CONFIG_HOME/sitealert/config.toml)")
	configInitCmd.Flags().BoolVarP(&configInitForce, "force", "f", false, "overwrite an existing file")
	configSchemaCmd.Flags().StringVarP(&configSchemaDir, "write", "w", "", "write config.schema.json into this directory")
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	renderer := styles.NewConfigRenderer(a.Theme)

	fmt.Fprintln(out, renderer.RenderConfigInfo(a.Manager.GetConfigFile()))
	fmt.Fprintln(out, renderer.RenderRules(a.Config.Rules.ExactCodes, a.Config.Rules.Prefixes))

	data, err := config.EncodeTOML(a.Config)
	if err != nil {
		fmt.Fprintln(out, renderer.RenderError(err))
		return err
	}
	fmt.Fprint(out, string(data))
	return nil
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	renderer := styles.NewConfigRenderer(a.Theme)

	path := configInitPath
	if path == "" {
		if path, err = config.GetConfigFile(); err != nil {
			return fmt.Errorf("resolve config path: %w", err)
		}
	}

	if err := config.WriteDefault(path, configInitForce); err != nil {
		if errors.Is(err, config.ErrConfigExists) {
			return fmt.Errorf("%w (use --force to overwrite)", err)
		}
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderer.RenderWritten("config", path))
	return nil
}

func runConfigSchema(cmd *cobra.Command, _ []string) error {
	if configSchemaDir == "" {
		schema, err := config.GenerateSchema()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(schema))
		return nil
	}

	a, err := requireApp()
	if err != nil {
		return err
	}
	path, err := config.WriteSchemaFile(configSchemaDir)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), styles.NewConfigRenderer(a.Theme).RenderWritten("schema", path))
	return nil
}
