//go:build unix

package dircheck

import (
	"golang.org/x/sys/unix"
)

// Access asks the kernel whether the current user may write to path (access(2), W_OK).
func (r *RealFileSystem) Access(path string) error {
	return unix.Access(path, unix.W_OK)
}
