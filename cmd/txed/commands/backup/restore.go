package backup

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/txed/cmd/txed/commands/flags"
	"github.com/thoreinstein/txed/internal/backup"
	"github.com/thoreinstein/txed/internal/errors"
	"github.com/thoreinstein/txed/internal/logging"
)

// previewLimit caps how much of a backup the picker reads for its preview.
const previewLimit = 64 << 10

var restorePick bool

func init() {
	restoreCmd.Flags().BoolVarP(&restorePick, "pick", "p", false,
		"choose the backup interactively")
	Cmd.AddCommand(restoreCmd)
}

var restoreCmd = &cobra.Command{
	Use:   "restore <file> [backup]",
	Short: "Restore a file from a backup",
	Long: `Restore a file from one of its backups.

Without a backup argument the most recent backup is used, or with --pick a
fuzzy finder lets you choose one. The file's current content is itself
backed up before it is overwritten, so a restore can be undone.`,
	Example: `  # Restore the most recent backup
  txed backup restore notes.txt

  # Restore a specific backup
  txed backup restore notes.txt notes.txt.2026.0112.093715

  # Choose from a list with a preview
  txed backup restore notes.txt --pick

  See Also:
    txed backup list - List backups of a file`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runRestore,
}

func runRestore(cmd *cobra.Command, args []string) error {
	return runRestoreWithWriter(cmd.Context(), cmd.OutOrStdout(), args)
}

func runRestoreWithWriter(ctx context.Context, w io.Writer, args []string) error {
	path, err := resolvePath(args[0])
	if err != nil {
		return err
	}

	fsys := flags.Fs()
	ext := resolveExt()

	var from string
	switch {
	case len(args) > 1:
		if from, err = resolvePath(args[1]); err != nil {
			return err
		}
	default:
		entries, err := backup.List(fsys, path, ext)
		if err != nil {
			return err
		}
		if restorePick {
			if !logging.IsTTY(os.Stdout) {
				return errors.Wrap(errors.ErrInvalidArgument, "--pick needs an interactive terminal")
			}
			idx, err := pickBackup(fsys, entries)
			if err != nil {
				if errors.Is(err, fuzzyfinder.ErrAbort) {
					return nil
				}
				return errors.Wrap(err, "selecting backup")
			}
			from = entries[idx].Path
		} else {
			from = entries[0].Path
			if !flags.Quiet() {
				fmt.Fprintf(w, "Using most recent backup: %s\n", from)
			}
		}
	}

	copier := backup.NewCopier(
		backup.WithFs(fsys),
		backup.WithLogger(logging.FromContext(ctx)),
	)
	saved, err := copier.Restore(path, from, ext)
	if err != nil {
		return errors.Wrap(err, "restoring backup")
	}

	if !flags.Quiet() {
		color.New(color.FgGreen).Fprint(w, "✓ ")
		fmt.Fprintf(w, "Restored %s from %s\n", path, from)
		if saved != "" {
			fmt.Fprintf(w, "  previous content saved to %s\n", saved)
		}
	}
	return nil
}

func pickBackup(fsys afero.Fs, entries []backup.Entry) (int, error) {
	return fuzzyfinder.Find(
		entries,
		func(i int) string {
			return fmt.Sprintf("%s (%s)", entries[i].Path, entries[i].ModTime.Local().Format("2006-01-02 15:04:05"))
		},
		fuzzyfinder.WithPreviewWindow(func(i, _, h int) string {
			if i == -1 {
				return ""
			}
			return preview(fsys, entries[i].Path, h)
		}),
	)
}

// preview returns up to n lines from the head of path.
func preview(fsys afero.Fs, path string, n int) string {
	f, err := fsys.Open(path)
	if err != nil {
		return err.Error()
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, previewLimit))
	if err != nil {
		return err.Error()
	}
	lines := strings.Split(string(data), "\n")
	if n > 0 && len(lines) > n {
		lines = lines[:n]
	}
	return strings.Join(lines, "\n")
}
