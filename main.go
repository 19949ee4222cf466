package main

import (
	"os"

	"github.com/ramanasai/diary/cmd"
	"github.com/ramanasai/diary/internal/version"
)

// Build metadata injected by goreleaser or makefile
var (
	buildVersion = ""
	buildCommit  = "none"
	buildDate    = "unknown"
)

func init() {
	if buildVersion != "" {
		version.Version = buildVersion
	}
	version.Commit = buildCommit
	version.Date = buildDate
}

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
