package profiles

import (
	"encoding/base64"
	"encoding/pem"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"

	"github.com/hectane/go-acl"
	yaml "gopkg.in/yaml.v3"
)

var (
	ErrProfileStoreNotFound = errors.New("profile store is not found")
	ErrProfileNotFound      = errors.New("profile is not found")
	ErrCannotCreateConfig   = errors.New("cannot create profile store")
	ErrCannotUpdateConfig   = errors.New("cannot update profile store")
	ErrProfileInvalid       = errors.New("profile is invalid")
)

// ProfileStore is a map from profile name to Profile.
type ProfileStore map[string]*Profile

type Cert struct {
	// base64 encoded CA certificate
	CA string `yaml:"ca,omitempty"`
}

// Identity is where users log in.
type Identity struct {
	URL      string `yaml:"url,omitempty"`
	Realm    string `yaml:"realm,omitempty"`
	ClientID string `yaml:"clientId,omitempty"`
}

// Profile is a profile for a cloud platform.
type Profile struct {
	// endpoint of the v2 API
	ApiRoot string `yaml:"apiRoot"`

	// endpoint of the legacy v1 API. optional.
	ApiRootV1 string `yaml:"apiRootV1,omitempty"`

	Identity Identity `yaml:"identity,omitempty"`

	// TokenFile is a path to the file containing a bearer token.
	TokenFile string `yaml:"tokenFile,omitempty"`

	// cert is a certificate for the platform.
	Cert Cert `yaml:"cert"`
}

func verifyUrl(s string) bool {
	u, err := url.Parse(s)
	return err == nil && u.IsAbs()
}

func verifyPEM(b64cert string) bool {
	bin, err := base64.StdEncoding.DecodeString(b64cert)
	if err != nil {
		return false
	}
	blk, _ := pem.Decode(bin)
	return blk != nil
}

// Verify Profile
//
// # Return
//
// nil if it is valid. Otherwise, ErrProfileInvalid error.
func (p *Profile) Verify() error {
	if !verifyUrl(p.ApiRoot) {
		return fmt.Errorf("%w: apiRoot is not URL: %s", ErrProfileInvalid, p.ApiRoot)
	}
	if p.ApiRootV1 != "" && !verifyUrl(p.ApiRootV1) {
		return fmt.Errorf("%w: apiRootV1 is not URL: %s", ErrProfileInvalid, p.ApiRootV1)
	}
	if p.Identity.URL != "" && !verifyUrl(p.Identity.URL) {
		return fmt.Errorf("%w: identity.url is not URL: %s", ErrProfileInvalid, p.Identity.URL)
	}
	if p.Cert.CA != "" && !verifyPEM(p.Cert.CA) {
		return fmt.Errorf("%w: cert.ca is not PEM", ErrProfileInvalid)
	}

	return nil
}

// LoadProfileStore loads profile store from file.
func LoadProfileStore(path string) (ProfileStore, error) {
	buf, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w at %s", ErrProfileStoreNotFound, path)
	} else if err != nil {
		return nil, err
	}
	return Unmarshall(buf)
}

// Unmarshall profile store from yaml in byte array.
func Unmarshall(buf []byte) (ProfileStore, error) {
	ret := ProfileStore{}
	if err := yaml.Unmarshal(buf, &ret); err != nil {
		return nil, err
	}
	return ret, nil
}

// Get a profile by name, or ErrProfileNotFound.
func (ps ProfileStore) Get(name string) (*Profile, error) {
	p, ok := ps[name]
	if !ok || p == nil {
		return nil, fmt.Errorf("%w: '%s'", ErrProfileNotFound, name)
	}
	return p, nil
}

// Save profile store to file, readable and writable only by the current user.
//
// The previous content is copied to "<path>.backup" before writing,
// and the backup is left only when writing fails.
func (ps ProfileStore) Save(path string) error {
	buf, err := yaml.Marshal(ps)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), os.FileMode(0700)); err != nil {
		return err
	}

	bkpath := path + ".backup"
	hasBackup, err := backup(path, bkpath)
	if err != nil {
		return err
	}

	f, err := newSafeFile(path)
	if errors.Is(err, fs.ErrPermission) {
		return fmt.Errorf("%w, because no permission to write file at %s", ErrCannotUpdateConfig, path)
	} else if err != nil {
		return fmt.Errorf("%w: cannot create a file at %s: %w", ErrCannotCreateConfig, path, err)
	}
	defer f.Close()

	// a file created by an older version may have loose permissions.
	if err := acl.Chmod(path, os.FileMode(0600)); err != nil {
		return err
	}
	if _, err := f.Write(buf); err != nil {
		return fmt.Errorf("%w: %w", ErrCannotUpdateConfig, err)
	}

	if hasBackup {
		return os.Remove(bkpath)
	}
	return nil
}

// backup copies the file at src to dst, if src exists.
func backup(src, dst string) (bool, error) {
	orig, err := os.Open(src)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	} else if errors.Is(err, fs.ErrPermission) {
		return false, fmt.Errorf("%w, because no permission to read file at %s", ErrCannotUpdateConfig, src)
	} else if err != nil {
		return false, err
	}
	defer orig.Close()

	bk, err := newSafeFile(dst)
	if err != nil {
		return false, err
	}
	defer bk.Close()

	if _, err := io.Copy(bk, orig); err != nil {
		return false, err
	}
	return true, nil
}
