// Package suite runs the deployment readiness checks in order and
// aggregates their results.
package suite

import (
	"context"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/vertti/deploycheck/pkg/check"
	"github.com/vertti/deploycheck/pkg/config"
	"github.com/vertti/deploycheck/pkg/depcheck"
	"github.com/vertti/deploycheck/pkg/dircheck"
	"github.com/vertti/deploycheck/pkg/docprobe"
)

// Section titles, in run order.
const (
	SectionDirectories  = "Checking directories..."
	SectionDependencies = "Checking backend dependencies..."
	SectionProbe        = "Testing PDF generation..."
)

// Observer is notified as the suite progresses.
type Observer interface {
	Section(title string)
	Result(r check.Result)
}

// Section groups the results of one phase.
type Section struct {
	Title   string
	Results []check.Result
}

// Report is the outcome of a full run.
type Report struct {
	Sections []Section
}

// Results returns every result in run order.
func (r Report) Results() []check.Result {
	var all []check.Result
	for _, s := range r.Sections {
		all = append(all, s.Results...)
	}
	return all
}

// OK reports whether every check passed.
func (r Report) OK() bool {
	return check.All(r.Results())
}

// Suite holds everything needed for a run.
type Suite struct {
	Root         string
	Directories  []string
	Dependencies []string
	Python       string
	Timeout      time.Duration
	ProbeDir     string
	ProbeFile    string

	FS       dircheck.FileSystem
	Runner   depcheck.Runner
	Logger   *zap.Logger
	Observer Observer // optional
}

// New builds a suite from cfg using the real file system and runner.
func New(cfg *config.Config, logger *zap.Logger) (*Suite, error) {
	timeout, err := cfg.Timeout()
	if err != nil {
		return nil, err
	}
	return &Suite{
		Root:         cfg.Root,
		Directories:  cfg.Directories,
		Dependencies: cfg.Dependencies,
		Python:       cfg.Python,
		Timeout:      timeout,
		ProbeDir:     cfg.Probe.Dir,
		ProbeFile:    cfg.Probe.File,
		FS:           &dircheck.RealFileSystem{},
		Runner:       &depcheck.RealRunner{},
		Logger:       logger,
	}, nil
}

// Run executes every check once, in order. A failing check never stops
// the run; only the probe depends on its own directory check.
func (s *Suite) Run(ctx context.Context) Report {
	var report Report

	dirs := s.begin(SectionDirectories)
	for _, d := range s.Directories {
		dirs.Results = append(dirs.Results, s.record(s.DirectoryCheck(d).Run()))
	}
	report.Sections = append(report.Sections, *dirs)

	deps := s.begin(SectionDependencies)
	for _, d := range s.Dependencies {
		deps.Results = append(deps.Results, s.record(s.DependencyCheck(d).RunContext(ctx)))
	}
	report.Sections = append(report.Sections, *deps)

	probe := s.begin(SectionProbe)
	probe.Results = append(probe.Results, s.record(s.Probe().Run()))
	report.Sections = append(report.Sections, *probe)

	s.logger().Info("checks finished",
		zap.Bool("ok", report.OK()),
		zap.Int("checks", len(report.Results())),
	)
	return report
}

// DirectoryCheck returns the check for a configured directory.
func (s *Suite) DirectoryCheck(path string) *dircheck.Check {
	return &dircheck.Check{Path: s.resolve(path), Label: path, FS: s.FS}
}

// DependencyCheck returns the check for a dependency identifier.
func (s *Suite) DependencyCheck(id string) *depcheck.Check {
	return &depcheck.Check{Dependency: id, Python: s.Python, Timeout: s.Timeout, Runner: s.Runner}
}

// Probe returns the document generation probe.
func (s *Suite) Probe() *docprobe.Probe {
	return &docprobe.Probe{
		Dir:      s.resolve(s.ProbeDir),
		Label:    s.ProbeDir,
		FileName: s.ProbeFile,
		FS:       s.FS,
	}
}

func (s *Suite) begin(title string) *Section {
	if s.Observer != nil {
		s.Observer.Section(title)
	}
	return &Section{Title: title}
}

func (s *Suite) record(r check.Result) check.Result {
	if s.Observer != nil {
		s.Observer.Result(r)
	}

	fields := []zap.Field{
		zap.String("check", r.Name),
		zap.String("status", string(r.Status)),
	}
	if r.Reason != check.ReasonNone {
		fields = append(fields, zap.String("reason", string(r.Reason)))
	}
	if r.OK() {
		s.logger().Debug("check passed", fields...)
	} else {
		s.logger().Warn("check failed", append(fields, zap.Error(r.Err))...)
	}
	return r
}

func (s *Suite) resolve(path string) string {
	path = filepath.FromSlash(path)
	if filepath.IsAbs(path) || s.Root == "" {
		return path
	}
	return filepath.Join(s.Root, path)
}

func (s *Suite) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}
