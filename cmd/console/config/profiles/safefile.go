//go:build !windows

package profiles

import "os"

// newSafeFile creates (or truncates) a file readable and writable only by the current user.
func newSafeFile(path string) (*os.File, error) {
	return os.OpenFile(path, os.O_TRUNC|os.O_CREATE|os.O_RDWR, os.FileMode(0600))
}
