package main

import (
	"errors"
	"io"

	"github.com/spf13/cobra"

	"github.com/vertti/deploycheck/pkg/check"
	"github.com/vertti/deploycheck/pkg/output"
)

// ErrChecksFailed is returned when one or more checks fail.
// The returned error causes the process to exit with code 1.
var ErrChecksFailed = errors.New("checks failed")

// printer streams suite progress to w.
type printer struct {
	w io.Writer
}

func (p *printer) Section(title string) { output.Section(p.w, title) }

func (p *printer) Result(r check.Result) { output.PrintResult(p.w, r) }

// reportResult prints a single result and converts failure into ErrChecksFailed.
func reportResult(w io.Writer, r check.Result) error {
	output.PrintResult(w, r)
	if !r.OK() {
		return ErrChecksFailed
	}
	return nil
}

func runSuite(cmd *cobra.Command, _ []string) error {
	cfg, s, done, err := newSuite(cmd)
	if err != nil {
		return err
	}
	defer done()

	w := cmd.OutOrStdout()
	output.Banner(w, cfg.AppName)
	s.Observer = &printer{w: w}

	report := s.Run(cmd.Context())

	output.Section(w, "Test Summary")
	output.PrintSummary(w, report.Results())

	if !report.OK() {
		return ErrChecksFailed
	}
	return nil
}
