package version

import (
	"fmt"
	"runtime"
)

// Build metadata injected by goreleaser or makefile
var (
	Version = "v1.1.1"
	Commit  = "none"
	Date    = "unknown"
)

// ReleasesURL is where users are sent when a newer version exists.
const ReleasesURL = "https://github.com/ramanasai/diary/releases"

// GetVersion returns the version string compared against the published one.
func GetVersion() string {
	return Version
}

// GetVersionInfo returns detailed version information
func GetVersionInfo() string {
	if Commit == "none" {
		return fmt.Sprintf("Diary %s (%s/%s)", Version, runtime.GOOS, runtime.GOARCH)
	}
	return fmt.Sprintf("Diary %s (commit: %s, built: %s, %s/%s)",
		Version, Commit, Date, runtime.GOOS, runtime.GOARCH)
}

// GetShortVersion returns a short version string for display
func GetShortVersion() string {
	return fmt.Sprintf("Diary %s", Version)
}
