package common

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

const (
	// DefaultProfile is used when no profile marker is found.
	DefaultProfile = "default"

	// ProfileMarker is the name of the file telling which profile to use in the directory and below.
	//
	// The first line of the file is the profile name.
	ProfileMarker = ".consoleprofile"

	// EnvFile is the name of the dotenv file overriding endpoints and token.
	EnvFile = ".env"
)

type CommonFlags struct {
	Profile      string `flag:"profile" help:"profile name to use"`
	ProfileStore string `flag:"profile-store" help:"path to profile store file"`
	Env          string `flag:"env" help:"path to .env file overriding endpoints and token"`
}

type commonFlagDetection struct {
	home string
}

type CommonFlagDetectionOption func(*commonFlagDetection) *commonFlagDetection

// WithHome replaces the user's home directory, where the profile store is placed.
func WithHome(home string) CommonFlagDetectionOption {
	return func(opt *commonFlagDetection) *commonFlagDetection {
		opt.home = home
		return opt
	}
}

// Flags detects default values of common flags.
//
// ProfileMarker and EnvFile are searched from the directory `from` toward the root,
// and the nearest ones are used.
// When no EnvFile is found, `from`/.env is the default (it may not exist).
func Flags(from string, opt ...CommonFlagDetectionOption) (CommonFlags, error) {
	det := &commonFlagDetection{}
	for _, o := range opt {
		det = o(det)
	}
	if det.home == "" {
		if home, err := os.UserHomeDir(); err == nil {
			det.home = home
		}
	}
	if abs, err := filepath.Abs(from); err == nil {
		from = abs
	}

	flags := CommonFlags{
		Profile:      DefaultProfile,
		ProfileStore: filepath.Join(det.home, ".console", "profile"),
		Env:          filepath.Join(from, EnvFile),
	}

	if marker, ok := findUpward(from, ProfileMarker); ok {
		content, err := os.ReadFile(marker)
		if err != nil {
			return CommonFlags{}, err
		}
		firstLine, _, _ := strings.Cut(string(content), "\n")
		if p := strings.TrimSpace(firstLine); p != "" {
			flags.Profile = p
		}
	}
	if env, ok := findUpward(from, EnvFile); ok {
		flags.Env = env
	}

	return flags, nil
}

// findUpward returns the path of the regular file `name` in dir or its nearest ancestor.
func findUpward(dir string, name string) (string, bool) {
	for {
		candidate := filepath.Join(dir, name)
		s, err := os.Stat(candidate)
		if err == nil && s.Mode().IsRegular() {
			return candidate, true
		}
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return "", false
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}
