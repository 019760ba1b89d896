//go:build windows

package profiles

import (
	"os"

	winacl "github.com/hectane/go-acl"
)

// newSafeFile creates (or truncates) a file readable and writable only by the current user.
func newSafeFile(path string) (*os.File, error) {
	// permission bits make no sense on windows at creation. ACL is applied after that.
	f, err := os.OpenFile(path, os.O_TRUNC|os.O_CREATE|os.O_RDWR, os.FileMode(0600))
	if err != nil {
		return nil, err
	}
	if err := winacl.Chmod(path, os.FileMode(0600)); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}
