package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/sitealert/internal/cli"
	"github.com/bnema/sitealert/internal/cli/styles"
)

var checkCmd = &cobra.Command{
	Use:   "check FILE|URL",
	Short: "Check a page once and report the verdict",
	Long: `Load a work order page once and report whether it would raise an alert.

Targets starting with http:// or https:// are fetched, anything else is
read from disk.

Examples:
  sitealert check ./work-order.html
  sitealert check https://logistics.example.com/work-orders/42`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}

	opts := cli.SourceFromTarget(args[0])
	out, err := a.Check(a.Ctx(), opts)
	if err != nil {
		return err
	}

	renderer := styles.NewResultRenderer(a.Theme)
	fmt.Fprint(cmd.OutOrStdout(), renderer.RenderCheck(args[0], out))
	return nil
}
