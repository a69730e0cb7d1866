// Package version carries build metadata injected via -ldflags.
package version

import (
	"fmt"
	"runtime"
)

var (
	App       = "userstore"
	Version   = "dev"
	GitCommit string
	BuildTime string
)

// String returns a single-line version summary.
func String() string {
	s := fmt.Sprintf("%s version %s", App, Version)
	if GitCommit != "" {
		s += fmt.Sprintf(" (%s)", shortCommit())
	}
	return s
}

// PrintVersion prints the full version information to stdout.
func PrintVersion() {
	fmt.Println(String())
	if BuildTime != "" {
		fmt.Printf("Build time: %s\n", BuildTime)
	}
	fmt.Printf("Go version: %s (%s/%s)\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

func shortCommit() string {
	if len(GitCommit) > 7 {
		return GitCommit[:7]
	}
	return GitCommit
}
