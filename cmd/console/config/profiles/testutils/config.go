package testutils

import (
	"os"
	"path/filepath"
	"testing"

	prof "github.com/opst/cloudconsole/cmd/console/config/profiles"
	"gopkg.in/yaml.v3"
)

// create a profile store file for test, in a temporary directory.
//
// args:
//   - *testing.T
//   - name: name
//   - profile: profile to be stored
//
// returns:
//   - string: filepath to the profile store. if creating is failed, it will be `""`
//   - error: error caused during creating the file.
func TempProfile(t *testing.T, name string, profile *prof.Profile) (string, error) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "profile")
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := yaml.NewEncoder(f).Encode(prof.ProfileStore{name: profile}); err != nil {
		return "", err
	}

	return path, nil
}
