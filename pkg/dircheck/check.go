// Package dircheck verifies that a directory exists and is writable,
// creating it when it is missing.
package dircheck

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/vertti/deploycheck/pkg/check"
)

// DefaultPerm is the permission used for directories created by the check.
const DefaultPerm fs.FileMode = 0o755

var _ check.Checker = (*Check)(nil)

// Check verifies that Path is a writable directory.
type Check struct {
	Path  string     // path to verify (absolute or relative to the working directory)
	Label string     // shown in the result name; defaults to Path
	FS    FileSystem // injected for testing
}

// Run executes the directory check.
func (c *Check) Run() check.Result {
	label := c.Label
	if label == "" {
		label = c.Path
	}
	result := check.Result{
		Name: fmt.Sprintf("dir: %s", label),
	}

	info, err := c.FS.Stat(c.Path)
	switch {
	case err == nil:
		return c.checkExisting(info, &result)
	case errors.Is(err, fs.ErrNotExist):
		return c.create(&result)
	default:
		return result.WithReason(check.ReasonStatFailed).Fail(fmt.Sprintf("stat failed: %v", err), err)
	}
}

func (c *Check) checkExisting(info fs.FileInfo, result *check.Result) check.Result {
	if !info.IsDir() {
		return result.WithReason(check.ReasonNotDirectory).
			Fail("exists but is not a directory", fmt.Errorf("%s is not a directory", c.Path))
	}

	result.AddDetailf("permissions: %s", info.Mode().Perm())

	if err := c.FS.Access(c.Path); err != nil {
		return result.WithReason(check.ReasonNotWritable).
			Fail("exists but is not writable", fmt.Errorf("%s is not writable: %w", c.Path, err))
	}

	result.AddDetail("exists and is writable")
	return result.WithReason(check.ReasonExists).Pass()
}

func (c *Check) create(result *check.Result) check.Result {
	if err := c.FS.MkdirAll(c.Path, DefaultPerm); err != nil {
		return result.WithReason(check.ReasonCreateFailed).
			Fail(fmt.Sprintf("failed to create directory: %v", err), err)
	}
	result.AddDetail("created successfully")
	return result.WithReason(check.ReasonCreated).Pass()
}
