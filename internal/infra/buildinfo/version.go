// Package buildinfo identifies the running synckit build.
package buildinfo

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Set at link time, e.g.
//
//	go build -ldflags "-X github.com/yndnr/synckit-go/internal/infra/buildinfo.Version=v1.2.0"
var (
	// Version is the release tag, "dev" for unstamped builds.
	Version = "dev"

	// Commit is the git revision the binary was built from.
	Commit = "unknown"

	// BuildTime is when the release pipeline built the binary.
	BuildTime = "unknown"
)

func init() {
	// When ldflags left the commit unset, fall back to the VCS stamp
	// the toolchain embeds, so a plain `go build` still reports one.
	if Commit != "unknown" {
		return
	}
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	for _, s := range bi.Settings {
		if s.Key == "vcs.revision" {
			Commit = s.Value
			return
		}
	}
}

// Info is the build description exposed on diagnostics endpoints.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"build_time"`
	GoVersion string `json:"go_version"`
}

// Get returns the build description of the running binary.
func Get() Info {
	return Info{
		Version:   Version,
		Commit:    Commit,
		BuildTime: BuildTime,
		GoVersion: runtime.Version(),
	}
}

// String renders the one-line form used for --version output.
func String() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildTime)
}
