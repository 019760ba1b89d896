// Package buildtime holds values fixed when the binary is built.
//
// VERSION and revision are rewritten by the release build.
package buildtime

import (
	_ "embed"
	"strings"
)

var (
	//go:embed VERSION
	version string

	//go:embed revision
	revision string
)

// Version of this build, like "v0.1.0".
func Version() string {
	return strings.TrimSpace(version)
}

// Revision is the git commit this build is made from.
func Revision() string {
	return strings.TrimSpace(revision)
}

// VersionString is the version and the revision for humans.
func VersionString() string {
	return Version() + " (commit: " + Revision() + ")"
}

// UserAgent for HTTP requests sent by this build.
func UserAgent() string {
	return "cloudconsole/" + Version()
}
