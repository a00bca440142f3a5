// Package version provides version information for order-sync-tracker.
package version

// Version is the release version. Overridden at build time using ldflags.
var Version = "development"

// Commit is the git commit hash. Overridden at build time using ldflags.
var Commit = "unknown"

// String returns the full version string including the commit hash if available.
func String() string {
	if Commit != "unknown" {
		return Version + "+" + Commit
	}
	return Version
}

// UserAgent returns the User-Agent sent to the Order Sync Service.
func UserAgent() string {
	return "order-sync-tracker/" + String()
}
