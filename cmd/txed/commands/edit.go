package commands

import (
	"github.com/spf13/cobra"

	"github.com/thoreinstein/txed/cmd/txed/commands/flags"
	"github.com/thoreinstein/txed/internal/editor"
	"github.com/thoreinstein/txed/internal/logging"
	"github.com/thoreinstein/txed/internal/session"
)

var editFileFlags editFlags

func init() {
	addEditFlags(editCmd, &editFileFlags)
	rootCmd.AddCommand(editCmd)
}

var editCmd = &cobra.Command{
	Use:   "edit <file>",
	Short: "Edit a file in your editor with backup protection",
	Long: `Open the file's lines in an editor and write the result back.

The editor is chosen from the config file, then $EDITOR, then $VISUAL,
falling back to nano or vi. The usual backup rules apply when the result is
written. Saving an empty buffer leaves the file unchanged.`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func runEdit(cmd *cobra.Command, args []string) error {
	sess, err := openSession(cmd, args[0], &editFileFlags)
	if err != nil {
		return err
	}

	ed := editor.New(
		editor.WithCommand(flags.Config().Editor),
		editor.WithIO(cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr()),
		editor.WithLogger(logging.FromContext(cmd.Context())),
	)
	if err := sess.Edit(cmd.Context(), ed); err != nil {
		_ = sess.Quit(session.WithoutSave())
		return err
	}
	return commit(cmd, sess, &editFileFlags)
}
