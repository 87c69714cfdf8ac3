// Package docprobe checks that PDF documents can be generated and saved,
// exercising the same path the backend uses for admission forms and
// test results.
package docprobe

import (
	"fmt"
	"path/filepath"

	"github.com/vertti/deploycheck/pkg/check"
	"github.com/vertti/deploycheck/pkg/dircheck"
)

// DefaultFileName is the name of the generated test document.
const DefaultFileName = "deployment_test.pdf"

var _ check.Checker = (*Probe)(nil)

// Probe renders a short PDF and writes it into Dir.
type Probe struct {
	Dir      string              // target directory
	Label    string              // display name of Dir; defaults to Dir
	FileName string              // default: deployment_test.pdf
	Lines    []Line              // default: DefaultLines
	FS       dircheck.FileSystem // used to verify Dir

	// Render and Write are replaced in tests.
	Render func(lines []Line) ([]byte, error)
	Write  func(path string, data []byte) error
}

// Run executes the probe. Any error, including a panic raised while
// rendering, is reported as a failed result.
func (p *Probe) Run() (res check.Result) {
	result := check.Result{Name: "probe: pdf"}

	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("panic: %v", r)
			res = result.WithReason(check.ReasonGenerationFailed).
				Fail(fmt.Sprintf("PDF generation failed: %v", err), err)
		}
	}()

	label := p.Label
	if label == "" {
		label = p.Dir
	}

	dir := (&dircheck.Check{Path: p.Dir, Label: label, FS: p.FS}).Run()
	for _, d := range dir.Details {
		result.AddDetailf("%s: %s", dir.Name, d)
	}
	if !dir.OK() {
		return result.WithReason(check.ReasonDirectoryUnavailable).
			Fail("PDF generation skipped: target directory unavailable", dir.Err)
	}

	lines := p.Lines
	if lines == nil {
		lines = DefaultLines
	}
	render := p.Render
	if render == nil {
		render = RenderPDF
	}

	data, err := render(lines)
	if err != nil {
		return result.WithReason(check.ReasonGenerationFailed).
			Fail(fmt.Sprintf("PDF generation failed: %v", err), err)
	}
	if !validPDF(data) {
		return result.WithReason(check.ReasonGenerationFailed).
			Failf("PDF generation failed: output has no PDF header (%d bytes)", len(data))
	}

	name := p.FileName
	if name == "" {
		name = DefaultFileName
	}
	write := p.Write
	if write == nil {
		write = writeFileAtomic
	}

	if err := write(filepath.Join(p.Dir, name), data); err != nil {
		return result.WithReason(check.ReasonWriteFailed).
			Fail(fmt.Sprintf("PDF generation failed: %v", err), err)
	}

	result.AddDetailf("file: %s", filepath.Join(label, name))
	result.AddDetailf("size: %d bytes", len(data))
	return result.Pass()
}
