package main

import (
	"github.com/spf13/cobra"
)

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Generate a test PDF in the probe directory",
	Args:  cobra.NoArgs,
	RunE:  runProbe,
}

func init() {
	rootCmd.AddCommand(probeCmd)
}

func runProbe(cmd *cobra.Command, _ []string) error {
	_, s, done, err := newSuite(cmd)
	if err != nil {
		return err
	}
	defer done()

	return reportResult(cmd.OutOrStdout(), s.Probe().Run())
}
