// Package version exposes the build metadata stamped into the gallerybot
// binary. The ops server reports it on /version.
package version

//nolint:revive // Overwritten by ldflags in release builds.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)
