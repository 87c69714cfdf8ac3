package main

import (
	"github.com/spf13/cobra"
)

var dirCmd = &cobra.Command{
	Use:   "dir <path>",
	Short: "Check that a directory exists and is writable, creating it if missing",
	Args:  cobra.ExactArgs(1),
	RunE:  runDirCheck,
}

func init() {
	rootCmd.AddCommand(dirCmd)
}

func runDirCheck(cmd *cobra.Command, args []string) error {
	_, s, done, err := newSuite(cmd)
	if err != nil {
		return err
	}
	defer done()

	return reportResult(cmd.OutOrStdout(), s.DirectoryCheck(args[0]).Run())
}
