package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/txed/cmd/txed/commands/flags"
	"github.com/thoreinstein/txed/internal/config"
	"github.com/thoreinstein/txed/internal/logging"
	"github.com/thoreinstein/txed/internal/paths"
	"github.com/thoreinstein/txed/internal/script"
	"github.com/thoreinstein/txed/internal/session"
	"github.com/thoreinstein/txed/pkg/fileutil"
)

var (
	applyFormat string
	applyDryRun bool
)

func init() {
	applyCmd.Flags().StringVar(&applyFormat, "format", "",
		"script format: toml, yaml (default: from file extension)")
	applyCmd.Flags().BoolVarP(&applyDryRun, "dry-run", "n", false,
		"print the result instead of writing it")
	rootCmd.AddCommand(applyCmd)
}

var applyCmd = &cobra.Command{
	Use:   "apply <script>",
	Short: "Run an edit script against a file",
	Long: `Run a TOML or YAML edit script.

A script names the file to edit and a list of operations that run in order
against one buffer. The result is written once, after every operation
succeeds; if any operation fails, nothing is written.

Relative paths in the script are resolved against the script's directory.`,
	Example: `  # edits.toml
  path = "hosts"
  backup = ["load", ".bak"]

  [[ops]]
  op = "delete"
  pattern = "^#"

  [[ops]]
  op = "append"
  line = "127.0.0.1 example.test"

  txed apply edits.toml`,
	Args: cobra.ExactArgs(1),
	RunE: runApply,
}

func runApply(cmd *cobra.Command, args []string) error {
	scriptPath, err := paths.ExpandHome(args[0])
	if err != nil {
		return err
	}

	format, err := scriptFormat(applyFormat, scriptPath)
	if err != nil {
		return err
	}

	fsys := flags.Fs()
	s, err := script.Load(fsys, scriptPath, format)
	if err != nil {
		return err
	}

	cfg := flags.Config()
	opts := []session.Option{
		session.WithFs(fsys),
		session.WithLogger(logging.FromContext(cmd.Context())),
		session.WithMaxFileSize(maxFileSize(cfg)),
		session.WithNewline(cfg.Terminator()),
	}

	if applyDryRun {
		// Drop backup tokens so a load-time backup cannot fire.
		save := false
		s.Save = &save
		s.Backup = nil
	} else {
		opts = append(opts, session.WithBackup(cfg.BackupTokens()...))
	}

	res, err := s.Run(opts...)
	if err != nil {
		return err
	}

	if applyDryRun {
		nl := cfg.Terminator()
		if s.Newline != "" {
			if nl, err = config.ParseNewline(s.Newline); err != nil {
				return err
			}
		}
		fmt.Fprint(cmd.OutOrStdout(), fileutil.JoinLines(res.Lines, nl))
		return nil
	}

	if flags.Quiet() {
		return nil
	}
	out := cmd.OutOrStdout()
	if res.Written == "" {
		fmt.Fprintf(out, "Ran %d ops, buffer discarded (save = false)\n", len(s.Ops))
		return nil
	}
	printSuccess(out, "Wrote %s (%d lines, %d ops)", res.Written, len(res.Lines), len(s.Ops))
	if res.BackupPath != "" {
		fmt.Fprintf(out, "  backup: %s\n", res.BackupPath)
	}
	if len(res.Deleted) > 0 {
		fmt.Fprintf(out, "  deleted: %d lines\n", len(res.Deleted))
	}
	return nil
}
