package version

import "fmt"

// Set at build time via -ldflags "-X".
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

func String() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// IsDev reports whether this is a local, unreleased build.
func IsDev() bool {
	return Version == "dev"
}
