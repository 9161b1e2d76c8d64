// Package backup provides CLI commands for managing the backups written next
// to edited files.
package backup

import (
	"github.com/spf13/cobra"

	"github.com/thoreinstein/txed/cmd/txed/commands/flags"
	"github.com/thoreinstein/txed/internal/backup"
	"github.com/thoreinstein/txed/internal/paths"
)

// extFlag holds the value of the --ext flag shared by every subcommand.
var extFlag string

func init() {
	Cmd.PersistentFlags().StringVar(&extFlag, "ext", "",
		"backup suffix to look for (default: from config)")
}

// Cmd is the root backup command.
var Cmd = &cobra.Command{
	Use:   "backup",
	Short: "Manage backups of edited files",
	Long: `Manage the backups txed writes next to the files it edits.

Backups live in the same directory as their file and are named by appending
the backup suffix, by default a timestamp such as notes.txt.2026.0112.093715.
When two backups would share a name, a counter is added (notes.txt~-1).`,
	Example: `  # List backups of a file
  txed backup list notes.txt

  # Restore the most recent backup
  txed backup restore notes.txt

  # Pick a backup interactively
  txed backup restore notes.txt --pick

  # Remove old backups, keeping the 3 most recent
  txed backup prune notes.txt --keep 3

  See Also:
    txed backup list    - List backups of a file
    txed backup restore - Restore a backup
    txed backup prune   - Remove old backups`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}

// resolveExt returns the suffix to search for: the --ext flag, or the
// suffix the configured backup policy would use.
func resolveExt() string {
	if extFlag != "" {
		return extFlag
	}
	return backup.Resolve(flags.Config().BackupTokens()...).Ext
}

// resolvePath expands a leading "~" in the file argument.
func resolvePath(arg string) (string, error) {
	return paths.ExpandHome(arg)
}
