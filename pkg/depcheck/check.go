// Package depcheck verifies that the backend's dependencies can be loaded.
//
// Python modules are imported by the interpreter the backend runs under;
// commands are looked up on PATH and optionally version-checked.
package depcheck

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vertti/deploycheck/pkg/check"
	"github.com/vertti/deploycheck/pkg/version"
)

// DefaultTimeout bounds each dependency probe.
const DefaultTimeout = 30 * time.Second

// DefaultPython is the interpreter used when none is configured.
const DefaultPython = "python3"

var _ check.Checker = (*Check)(nil)

// Check verifies that a dependency is present.
type Check struct {
	Dependency string        // identifier, see Parse
	Python     string        // interpreter for Python modules (default: python3)
	Timeout    time.Duration // per-probe timeout (default: 30s)
	Runner     Runner        // injected for testing
}

// Run executes the dependency check with a background context.
func (c *Check) Run() check.Result {
	return c.RunContext(context.Background())
}

// RunContext executes the dependency check.
func (c *Check) RunContext(ctx context.Context) check.Result {
	result := check.Result{
		Name: fmt.Sprintf("dep: %s", strings.TrimSpace(c.Dependency)),
	}

	dep, err := Parse(c.Dependency)
	if err != nil {
		return result.WithReason(check.ReasonInvalidDependency).Fail(err.Error(), err)
	}

	timeout := c.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	switch dep.Kind {
	case KindCommand:
		return c.loadCommand(ctx, dep, &result)
	default:
		return c.loadPython(ctx, dep, &result)
	}
}

func (c *Check) loadPython(ctx context.Context, dep Dependency, result *check.Result) check.Result {
	interpreter := c.Python
	if interpreter == "" {
		interpreter = DefaultPython
	}

	path, err := c.Runner.LookPath(interpreter)
	if err != nil {
		return result.WithReason(check.ReasonMissingDependency).
			Fail(fmt.Sprintf("python interpreter %s not found in PATH", interpreter), err)
	}
	result.AddDetailf("interpreter: %s", path)

	stdout, stderr, err := c.Runner.RunCommandContext(ctx, path, "-c", importScript(dep.Name))
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return result.WithReason(check.ReasonMissingDependency).
				Fail("import timed out", fmt.Errorf("importing %s: %w", dep.Name, ctx.Err()))
		}
		if line := lastLine(stderr); line != "" {
			result.AddDetail(line)
		}
		return result.WithReason(check.ReasonMissingDependency).
			Fail("is NOT installed", fmt.Errorf("importing %s: %w", dep.Name, err))
	}

	if v := strings.TrimSpace(stdout); v != "" {
		result.AddDetailf("version: %s", v)
	}
	result.AddDetail("is installed")
	return result.Pass()
}

func (c *Check) loadCommand(ctx context.Context, dep Dependency, result *check.Result) check.Result {
	path, err := c.Runner.LookPath(dep.Name)
	if err != nil {
		return result.WithReason(check.ReasonMissingDependency).
			Fail(fmt.Sprintf("not found in PATH: %v", err), err)
	}
	result.AddDetailf("path: %s", path)

	if dep.Constraint == "" {
		return result.Pass()
	}

	constraint, err := version.ParseConstraint(dep.Constraint)
	if err != nil {
		return result.WithReason(check.ReasonInvalidDependency).Fail(err.Error(), err)
	}

	stdout, stderr, err := c.Runner.RunCommandContext(ctx, path, "--version")
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return result.WithReason(check.ReasonMissingDependency).Failf("version command timed out")
		}
		return result.WithReason(check.ReasonMissingDependency).
			Fail(fmt.Sprintf("version command failed: %v", err), err)
	}

	output := stdout
	if strings.TrimSpace(output) == "" {
		output = stderr
	}
	v, err := version.Extract(output)
	if err != nil {
		return result.WithReason(check.ReasonVersionMismatch).
			Fail(fmt.Sprintf("could not parse version from output: %v", err), err)
	}
	result.AddDetailf("version: %s", v)

	if !constraint.Check(v) {
		return result.WithReason(check.ReasonVersionMismatch).
			Failf("version %s does not satisfy %s", v, dep.Constraint)
	}
	return result.Pass()
}

// importScript imports module and prints its __version__ when it has one.
// module must already be validated by Parse.
func importScript(module string) string {
	return fmt.Sprintf("import importlib; m = importlib.import_module(%q); print(getattr(m, '__version__', ''))", module)
}

func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}
