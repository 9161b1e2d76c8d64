// Package cmd holds the build stamp of the txed binary. Release builds set
// Commit and Date with -ldflags "-X github.com/thoreinstein/txed/cmd.Commit=...".
package cmd

var (
	// Version is the semantic version, also reported by session.Version.
	Version = "1.2.0"
	Commit  = "none"
	Date    = "unknown"
)

// Stamp reports whether the binary was built with release metadata.
func Stamp() bool {
	return Commit != "none"
}
