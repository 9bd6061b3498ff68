// Package version carries build metadata injected with -ldflags -X.
package version

import "fmt"

var (
	Version    = "dev"
	CommitHash = "unknown"
	BuildDate  = "unknown"
)

// Summary returns the version with the short commit when it is known.
func Summary() string {
	if CommitHash == "" || CommitHash == "unknown" {
		return Version
	}
	commit := CommitHash
	if len(commit) > 7 {
		commit = commit[:7]
	}
	return fmt.Sprintf("%s (%s)", Version, commit)
}
