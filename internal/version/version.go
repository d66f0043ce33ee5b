// Package version holds build information injected at link time.
package version

import "fmt"

// Build information set by ldflags
var (
	Version = "dev"     // Set by goreleaser: -X github.com/arthur-debert/configma/internal/version.Version={{.Version}}
	Commit  = "unknown" // Set by goreleaser: -X github.com/arthur-debert/configma/internal/version.Commit={{.Commit}}
	Date    = "unknown" // Set by goreleaser: -X github.com/arthur-debert/configma/internal/version.Date={{.Date}}
)

// Info renders the multi-line version banner printed by `configma version`
func Info() string {
	return fmt.Sprintf("configma version %s\n  commit: %s\n  built:  %s", Version, Commit, Date)
}
