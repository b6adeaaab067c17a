// Package version carries the build metadata set by the release build.
package version

import "fmt"

// Set with -ldflags "-X github.com/Tiliavir/time-manager/internal/version.Version=...".
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Info formats the metadata for `tm version`.
func Info() string {
	return fmt.Sprintf("%s (commit %s, built %s)", Version, Commit, Date)
}
