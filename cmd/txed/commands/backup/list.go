package backup

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/txed/cmd/txed/commands/flags"
	"github.com/thoreinstein/txed/internal/backup"
	"github.com/thoreinstein/txed/internal/errors"
)

var listJSON bool

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	Cmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:     "list <file>",
	Aliases: []string{"ls"},
	Short:   "List backups of a file",
	Long: `List the backups of a file, most recent first.

Only files whose names match the backup suffix are listed, so a file edited
with a custom suffix needs --ext.`,
	Example: `  txed backup list notes.txt
  txed backup list notes.txt --ext .bak
  txed backup list notes.txt --json`,
	Args: cobra.ExactArgs(1),
	RunE: runList,
}

// entryOutput represents a single backup in JSON output.
type entryOutput struct {
	Path    string    `json:"path"`
	Size    int64     `json:"size"`
	ModTime time.Time `json:"mod_time"`
}

func runList(cmd *cobra.Command, args []string) error {
	return runListWithWriter(cmd.OutOrStdout(), args[0])
}

func runListWithWriter(w io.Writer, arg string) error {
	path, err := resolvePath(arg)
	if err != nil {
		return err
	}

	entries, err := backup.List(flags.Fs(), path, resolveExt())
	if err != nil && !errors.Is(err, backup.ErrNoBackupsFound) {
		return errors.Wrapf(err, "listing backups for %s", path)
	}

	if listJSON {
		return outputListJSON(w, entries)
	}
	return outputListTabular(w, path, entries)
}

func outputListJSON(w io.Writer, entries []backup.Entry) error {
	output := make([]entryOutput, len(entries))
	for i, e := range entries {
		output[i] = entryOutput{Path: e.Path, Size: e.Size, ModTime: e.ModTime}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(output), "encoding output")
}

func outputListTabular(w io.Writer, path string, entries []backup.Entry) error {
	if len(entries) == 0 {
		fmt.Fprintf(w, "No backups of %s\n", path)
		return nil
	}

	bold := color.New(color.Bold)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s\t%s\n", bold.Sprint("BACKUP"), bold.Sprint("MODIFIED"), bold.Sprint("SIZE"))
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%d\n",
			e.Path,
			e.ModTime.Local().Format("2006-01-02 15:04:05"),
			e.Size)
	}
	return tw.Flush()
}
