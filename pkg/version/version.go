// Package version exposes build-time metadata for the streamplan module.
// The variables are injected through -ldflags at release time and keep
// development defaults otherwise.
package version

import (
	"fmt"
	"runtime"
)

// Version is the semantic version, injected at build time.
var Version = "dev"

// GitCommit is the git commit hash, injected at build time.
var GitCommit = "unknown"

// BuildTime is the timestamp when the binary was built, injected at build time.
var BuildTime = "unknown"

// String returns a single-line description of the build.
func String() string {
	return fmt.Sprintf("streamplan %s (commit %s, built %s, %s)",
		Version, GitCommit, BuildTime, runtime.Version())
}

// Info returns the build metadata as structured log fields.
func Info() map[string]string {
	return map[string]string{
		"version":    Version,
		"commit":     GitCommit,
		"build_time": BuildTime,
		"go_version": runtime.Version(),
		"platform":   fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}
