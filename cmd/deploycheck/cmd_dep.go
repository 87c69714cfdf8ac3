package main

import (
	"github.com/spf13/cobra"
)

var depCmd = &cobra.Command{
	Use:   "dep <identifier>",
	Short: "Check that a dependency can be loaded",
	Long: `Check that a dependency can be loaded.

Identifiers:
  flask, py:flask    Python module, imported by the configured interpreter
  cmd:node           executable on PATH
  cmd:node>=18       executable with a version constraint`,
	Args: cobra.ExactArgs(1),
	RunE: runDepCheck,
}

func init() {
	rootCmd.AddCommand(depCmd)
}

func runDepCheck(cmd *cobra.Command, args []string) error {
	_, s, done, err := newSuite(cmd)
	if err != nil {
		return err
	}
	defer done()

	return reportResult(cmd.OutOrStdout(), s.DependencyCheck(args[0]).RunContext(cmd.Context()))
}
