// Package version exposes build metadata stamped in by the release build.
package version

import "fmt"

// Set with -ldflags "-X github.com/nazmul-nhb/nhb-express/pkg/version.Version=...".
var (
	Version = "v1.4.0"
	Commit  = "none"
	Date    = "unknown"
)

// Info is a snapshot of the build metadata.
type Info struct {
	Version string
	Commit  string
	Date    string
}

// Get returns the build metadata of the running binary.
func Get() Info {
	return Info{Version: Version, Commit: Commit, Date: Date}
}

// String renders the metadata on one line, e.g. "v1.4.0 (commit: abc, built: 2025-01-01)".
func (i Info) String() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", i.Version, i.Commit, i.Date)
}
