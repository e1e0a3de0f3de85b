// Package version holds build metadata injected at link time:
//
//	go build -ldflags "-X git.home.luguber.info/inful/bookgen/internal/version.Version=v0.3.0"
package version

import "fmt"

var Version = "unknown"

var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// String renders the version line printed by `bookgen version`.
func String() string {
	return fmt.Sprintf("bookgen %s (commit %s, built %s)", Version, GitCommit, BuildTime)
}
