// Package version holds CLI build metadata, set at build time with:
//
//	go build -ldflags "-X github.com/jmylchreest/readease/internal/version.Version=1.0.0 ..."
package version

import (
	"fmt"
	"runtime"
	"strings"
)

var (
	Version   = "dev"
	Commit    = "unknown"
	Dirty     = "false"
	BuildDate = "unknown" // RFC3339, UTC
)

// Info contains structured version information.
type Info struct {
	Version   string `json:"version" yaml:"version"`
	Commit    string `json:"commit" yaml:"commit"`
	Dirty     bool   `json:"dirty" yaml:"dirty"`
	BuildDate string `json:"build_date" yaml:"build_date"`
	GoVersion string `json:"go_version" yaml:"go_version"`
	Platform  string `json:"platform" yaml:"platform"`
}

// Get returns the current version information.
func Get() Info {
	return Info{
		Version:   Version,
		Commit:    Commit,
		Dirty:     Dirty == "true",
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// String returns the version, suffixed with -dirty for modified trees.
func String() string {
	if Dirty == "true" {
		return Version + "-dirty"
	}
	return Version
}

// Full returns a multi-line description for `readease version`.
func Full() string {
	info := Get()
	var sb strings.Builder
	fmt.Fprintf(&sb, "readease %s\n", String())
	fmt.Fprintf(&sb, "  Commit:     %s\n", info.Commit)
	fmt.Fprintf(&sb, "  Built:      %s\n", info.BuildDate)
	fmt.Fprintf(&sb, "  Go version: %s\n", info.GoVersion)
	fmt.Fprintf(&sb, "  OS/Arch:    %s", info.Platform)
	return sb.String()
}
