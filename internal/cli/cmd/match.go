package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/sitealert/internal/cli/styles"
)

var matchCmd = &cobra.Command{
	Use:   "match CODE|LOCATION...",
	Short: "Test site codes or location strings against the urgent rules",
	Long: `Extract the site code from each argument and report whether it is urgent.

Arguments may be bare site codes or full location strings as shown on the
work order page.

Examples:
  sitealert match STL5 rdu1
  sitealert match "MCO3 - X1" "RDU1 - PS552 (ParkingSlip)"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runMatch,
}

func init() {
	rootCmd.AddCommand(matchCmd)
}

func runMatch(cmd *cobra.Command, args []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}

	renderer := styles.NewResultRenderer(a.Theme)
	for _, res := range a.Match(args) {
		fmt.Fprintln(cmd.OutOrStdout(), renderer.RenderMatch(res.Input, res.Code, res.Found, res.Urgent))
	}
	return nil
}
