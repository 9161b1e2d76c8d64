package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/txed/cmd/txed/commands/flags"
	"github.com/thoreinstein/txed/internal/session"
)

var (
	deleteFlags editFlags
	deleteShow  bool
)

func init() {
	addEditFlags(deleteCmd, &deleteFlags)
	deleteCmd.Flags().BoolVar(&deleteShow, "show", false, "print the removed lines to stderr")
	rootCmd.AddCommand(deleteCmd)
}

var deleteCmd = &cobra.Command{
	Use:     "delete <file> <pattern>...",
	Aliases: []string{"del", "rm"},
	Short:   "Delete lines matching a pattern",
	Long: `Delete every line that matches a regular expression anywhere in the line.

Patterns use Go regexp syntax. Anchor with ^ and $ to match whole lines.
With several patterns, each one is applied in turn.`,
	Example: `  txed delete config.ini '^\s*;'
  txed delete hosts 'old-server' --show`,
	Args: cobra.MinimumNArgs(2),
	RunE: runDelete,
}

func runDelete(cmd *cobra.Command, args []string) error {
	sess, err := openSession(cmd, args[0], &deleteFlags)
	if err != nil {
		return err
	}

	var removed []string
	for _, pattern := range args[1:] {
		matched, err := sess.Delete(pattern)
		if err != nil {
			_ = sess.Quit(session.WithoutSave())
			return err
		}
		removed = append(removed, matched...)
	}

	if deleteShow {
		for _, line := range removed {
			fmt.Fprintf(cmd.ErrOrStderr(), "- %s\n", line)
		}
	}
	if len(removed) == 0 && !deleteFlags.dryRun {
		if !flags.Quiet() {
			fmt.Fprintln(cmd.OutOrStdout(), "No lines matched.")
		}
		return sess.Quit(session.WithoutSave())
	}
	return commit(cmd, sess, &deleteFlags)
}
