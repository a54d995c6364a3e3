package version

// Build information set by ldflags
var (
	Version = "dev"     // Set by goreleaser: -X github.com/arthur-debert/agm/internal/version.Version={{.Version}}
	Commit  = "unknown" // Set by goreleaser: -X github.com/arthur-debert/agm/internal/version.Commit={{.Commit}}
	Date    = "unknown" // Set by goreleaser: -X github.com/arthur-debert/agm/internal/version.Date={{.Date}}
)

// String is the one-line version used by `agm version`
func String() string {
	return Version + " (commit " + Commit + ", built " + Date + ")"
}
