//go:build windows

package store

import "os"

// openFileNoFollow opens a file for writing.
// On Windows, O_NOFOLLOW is not available; creating symlinks requires
// privileges there, and writeFileAtomic checks for them before renaming.
func openFileNoFollow(path string, flag int, perm os.FileMode) (*os.File, error) {
	return os.OpenFile(path, flag, perm)
}
