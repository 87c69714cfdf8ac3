//go:build windows

package dircheck

import (
	"errors"
	"os"
)

// Access reports whether the read-only attribute is clear on path.
func (r *RealFileSystem) Access(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.Mode().Perm()&0o200 == 0 {
		return errors.New("read-only")
	}
	return nil
}
