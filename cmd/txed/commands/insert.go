package commands

import (
	"github.com/spf13/cobra"

	"github.com/thoreinstein/txed/internal/session"
)

var (
	insertFlags editFlags
	insertAt    int
)

func init() {
	addEditFlags(insertCmd, &insertFlags)
	insertCmd.Flags().IntVar(&insertAt, "at", 0, "zero-based line index to insert before")
	rootCmd.AddCommand(insertCmd)
}

var insertCmd = &cobra.Command{
	Use:   "insert <file> <line>...",
	Short: "Insert lines at a position",
	Long: `Insert one or more lines before the line at --at.

--at 0 inserts at the top, and --at equal to the number of lines appends.
Lines are inserted in the order given.`,
	Example: `  txed insert script.sh '#!/bin/sh' --at 0
  txed insert hosts "10.0.0.5 db" --at 3`,
	Args: cobra.MinimumNArgs(2),
	RunE: runInsert,
}

func runInsert(cmd *cobra.Command, args []string) error {
	sess, err := openSession(cmd, args[0], &insertFlags)
	if err != nil {
		return err
	}
	for i, line := range args[1:] {
		if err := sess.Insert(line, insertAt+i); err != nil {
			_ = sess.Quit(session.WithoutSave())
			return err
		}
	}
	return commit(cmd, sess, &insertFlags)
}
