package core

// Build information, injected at link time:
//
//	go build -ldflags "-X inventory_backend/core.Version=$(git describe --tags --always)" .
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// GetVersion returns the application version string.
func GetVersion() string {
	return Version
}

// GetVersionInfo returns version, build time and commit on one line, e.g.
// "v1.0.0 (built 2024-01-15T10:30:00Z, commit abc1234)".
func GetVersionInfo() string {
	return Version + " (built " + BuildTime + ", commit " + GitCommit + ")"
}
