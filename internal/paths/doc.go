// Package paths resolves the directories txed uses for its own files.
//
// The package wraps github.com/adrg/xdg for cross-platform XDG Base Directory
// Specification compliance. On Linux and macOS, paths follow XDG conventions
// (~/.config, ~/.local/state).
//
//	paths.ConfigDir()  // ~/.config/txed, or $TXED_CONFIG_DIR
//	paths.ConfigFile() // <ConfigDir>/config.yaml
//	paths.LogFile()    // ~/.local/state/txed/txed.log
//
// Paths given on the command line or in edit scripts may start with "~/";
// [ExpandHome] resolves them.
package paths
