package backup

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/txed/cmd/txed/commands/flags"
	"github.com/thoreinstein/txed/internal/backup"
	"github.com/thoreinstein/txed/internal/errors"
)

var (
	pruneKeep   int
	pruneDryRun bool
)

func init() {
	pruneCmd.Flags().IntVar(&pruneKeep, "keep", -1,
		"number of most recent backups to keep (default: backup_keep from config)")
	pruneCmd.Flags().BoolVarP(&pruneDryRun, "dry-run", "n", false,
		"show what would be removed")
	Cmd.AddCommand(pruneCmd)
}

var pruneCmd = &cobra.Command{
	Use:   "prune <file>",
	Short: "Remove old backups of a file",
	Long: `Remove the oldest backups of a file, keeping the most recent ones.

The number kept defaults to backup_keep from the config file.`,
	Example: `  txed backup prune notes.txt
  txed backup prune notes.txt --keep 1
  txed backup prune notes.txt --dry-run`,
	Args: cobra.ExactArgs(1),
	RunE: runPrune,
}

func runPrune(cmd *cobra.Command, args []string) error {
	return runPruneWithWriter(cmd.OutOrStdout(), args[0])
}

func runPruneWithWriter(w io.Writer, arg string) error {
	path, err := resolvePath(arg)
	if err != nil {
		return err
	}

	keep := pruneKeep
	if keep < 0 {
		keep = flags.Config().BackupKeep
	}

	fsys := flags.Fs()
	ext := resolveExt()

	if pruneDryRun {
		entries, err := backup.List(fsys, path, ext)
		if err != nil && !errors.Is(err, backup.ErrNoBackupsFound) {
			return err
		}
		for i := keep; i < len(entries); i++ {
			fmt.Fprintf(w, "would remove %s\n", entries[i].Path)
		}
		return nil
	}

	removed, err := backup.Prune(fsys, path, ext, keep)
	if !flags.Quiet() {
		for _, p := range removed {
			fmt.Fprintf(w, "removed %s\n", p)
		}
	}
	if err != nil {
		return errors.Wrap(err, "pruning backups")
	}

	if !flags.Quiet() {
		fmt.Fprintf(w, "Removed %d backups of %s, kept up to %d\n", len(removed), path, keep)
	}
	return nil
}
