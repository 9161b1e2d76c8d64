package commands

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/txed/cmd/txed/commands/flags"
	"github.com/thoreinstein/txed/internal/backup"
	"github.com/thoreinstein/txed/internal/config"
	"github.com/thoreinstein/txed/internal/errors"
	"github.com/thoreinstein/txed/internal/logging"
	"github.com/thoreinstein/txed/internal/paths"
	"github.com/thoreinstein/txed/internal/session"
	"github.com/thoreinstein/txed/pkg/fileutil"
)

// editFlags are shared by every command that edits a single file.
type editFlags struct {
	output   string
	backup   []string
	noBackup bool
	newline  string
	dryRun   bool
}

func addEditFlags(c *cobra.Command, f *editFlags) {
	c.Flags().StringVarP(&f.output, "output", "o", "",
		"write the result here instead of back to the file")
	c.Flags().StringSliceVarP(&f.backup, "backup", "b", nil,
		"backup tokens: load, save, or a suffix such as .bak or .%Y%m%d (repeatable)")
	c.Flags().BoolVar(&f.noBackup, "no-backup", false,
		"do not back up the file before writing")
	c.Flags().StringVar(&f.newline, "newline", "",
		"line terminator for the written file: lf, crlf, cr")
	c.Flags().BoolVarP(&f.dryRun, "dry-run", "n", false,
		"print the result instead of writing it")
	c.MarkFlagsMutuallyExclusive("backup", "no-backup")
}

// skipBackup is a backup action that does nothing.
func skipBackup(string) error { return nil }

// backupTokens combines the configured tokens with the flag tokens. Later
// tokens win, so flags override config.
func (f *editFlags) backupTokens(cfg *config.Config) []backup.Token {
	tokens := cfg.BackupTokens()
	tokens = append(tokens, backup.ParseTokens(f.backup)...)
	if f.noBackup {
		tokens = append(tokens, backup.Func(skipBackup))
	}
	return tokens
}

// terminator resolves the newline flag, falling back to config.
func (f *editFlags) terminator(cfg *config.Config) (string, error) {
	if f.newline == "" {
		return cfg.Terminator(), nil
	}
	nl, err := config.ParseNewline(f.newline)
	if err != nil {
		return "", errors.Wrapf(errors.ErrInvalidArgument, "--newline: %v", err)
	}
	return nl, nil
}

// openSession loads path into a new session using config and flags.
func openSession(c *cobra.Command, path string, f *editFlags, extra ...session.Option) (*session.Session, error) {
	cfg := flags.Config()

	nl, err := f.terminator(cfg)
	if err != nil {
		return nil, err
	}

	path, err = paths.ExpandHome(path)
	if err != nil {
		return nil, err
	}

	opts := []session.Option{
		session.WithFs(flags.Fs()),
		session.WithLogger(logging.FromContext(c.Context())),
		session.WithMaxFileSize(maxFileSize(cfg)),
		session.WithNewline(nl),
		session.WithPath(path),
	}
	// Dry runs never touch disk, so a load-time backup must not fire either.
	if !f.dryRun {
		opts = append(opts, session.WithBackup(f.backupTokens(cfg)...))
	}
	opts = append(opts, extra...)

	return session.New(opts...)
}

// commit ends sess according to the edit flags and reports the result.
func commit(c *cobra.Command, sess *session.Session, f *editFlags) error {
	if f.dryRun {
		fmt.Fprint(c.OutOrStdout(), fileutil.JoinLines(sess.Lines(), sess.Newline()))
		return sess.Quit(session.WithoutSave())
	}

	var quitOpts []session.QuitOption
	target := sess.Path()
	if f.output != "" {
		out, err := paths.ExpandHome(f.output)
		if err != nil {
			return err
		}
		target = out
		quitOpts = append(quitOpts, session.WithTarget(out))
	}

	if err := sess.Quit(quitOpts...); err != nil {
		return err
	}

	logging.FromContext(c.Context()).Debug("committed", "path", target, "lines", sess.Len())
	if !flags.Quiet() {
		reportWrite(c.OutOrStdout(), target, sess)
	}
	return nil
}

// printSuccess writes a green check mark followed by the formatted message.
func printSuccess(w io.Writer, format string, a ...any) {
	color.New(color.FgGreen).Fprint(w, "✓ ")
	fmt.Fprintf(w, format+"\n", a...)
}

func reportWrite(w io.Writer, target string, sess *session.Session) {
	printSuccess(w, "Wrote %s (%d lines)", target, sess.Len())
	if bp, ok := sess.BackupPath(); ok {
		fmt.Fprintf(w, "  backup: %s\n", bp)
	}
}

// maxFileSize returns the configured read limit, or the built-in one.
func maxFileSize(cfg *config.Config) int64 {
	if cfg.MaxFileSize > 0 {
		return cfg.MaxFileSize
	}
	return fileutil.MaxFileSize
}
