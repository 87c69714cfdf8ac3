package deploycheck_test

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/vertti/deploycheck/pkg/check"
	"github.com/vertti/deploycheck/pkg/config"
	"github.com/vertti/deploycheck/pkg/depcheck"
	"github.com/vertti/deploycheck/pkg/dircheck"
	"github.com/vertti/deploycheck/pkg/docprobe"
	"github.com/vertti/deploycheck/pkg/suite"
)

// Integration tests verify Real* implementations work with actual system resources.
// Unit tests in each package cover edge cases; these tests verify end-to-end integration.

func TestIntegration_Dir(t *testing.T) {
	c := dircheck.Check{
		Path: filepath.Join(t.TempDir(), "backend", "uploads", "admission_forms"),
		FS:   &dircheck.RealFileSystem{},
	}

	result := c.Run()

	if result.Status != check.StatusOK {
		t.Errorf("Status = %v, want OK (details: %v)", result.Status, result.Details)
	}
	if result.Reason != check.ReasonCreated {
		t.Errorf("Reason = %q, want %q", result.Reason, check.ReasonCreated)
	}
}

func TestIntegration_DepCommand(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}

	c := depcheck.Check{
		Dependency: "cmd:sh",
		Runner:     &depcheck.RealRunner{},
	}

	result := c.Run()

	if result.Status != check.StatusOK {
		t.Errorf("Status = %v, want OK (details: %v)", result.Status, result.Details)
	}
}

func TestIntegration_DepPython(t *testing.T) {
	if _, err := exec.LookPath("python3"); err != nil {
		t.Skip("python3 not available")
	}

	present := depcheck.Check{Dependency: "json", Runner: &depcheck.RealRunner{}}
	if result := present.Run(); result.Status != check.StatusOK {
		t.Errorf("json: Status = %v, want OK (details: %v)", result.Status, result.Details)
	}

	absent := depcheck.Check{Dependency: "deploycheck_no_such_module", Runner: &depcheck.RealRunner{}}
	result := absent.Run()
	if result.Status != check.StatusFail {
		t.Errorf("absent module: Status = %v, want FAIL", result.Status)
	}
	if result.Reason != check.ReasonMissingDependency {
		t.Errorf("absent module: Reason = %q, want %q", result.Reason, check.ReasonMissingDependency)
	}
}

func TestIntegration_Probe(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "backend", "test_output")
	p := docprobe.Probe{Dir: dir, FS: &dircheck.RealFileSystem{}}

	result := p.Run()

	if result.Status != check.StatusOK {
		t.Fatalf("Status = %v, want OK (details: %v)", result.Status, result.Details)
	}
	info, err := os.Stat(filepath.Join(dir, docprobe.DefaultFileName))
	if err != nil {
		t.Fatalf("stat generated file: %v", err)
	}
	if info.Size() == 0 {
		t.Error("generated file is empty")
	}
}

func TestIntegration_SuiteWithoutDependencies(t *testing.T) {
	cfg := config.Default()
	cfg.Root = t.TempDir()
	cfg.Dependencies = nil

	s, err := suite.New(cfg, nil)
	if err != nil {
		t.Fatalf("suite.New: %v", err)
	}

	report := s.Run(context.Background())

	if !report.OK() {
		t.Errorf("report not OK: %+v", report.Results())
	}
	if got := len(report.Results()); got != 7 {
		t.Errorf("len(Results) = %d, want 7", got)
	}
}
