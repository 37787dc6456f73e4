// Package version carries build metadata for the codegauge binary.
// The values are overridden at link time via -ldflags.
package version

var (
	// Version is the release version of the binary.
	Version = "dev"

	// Commit is the Git hash the binary was built from.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)
