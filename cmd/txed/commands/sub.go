package commands

import (
	"github.com/spf13/cobra"

	"github.com/thoreinstein/txed/internal/session"
)

var (
	subFlags editFlags
	subLimit int
)

func init() {
	addEditFlags(subCmd, &subFlags)
	subCmd.Flags().IntVar(&subLimit, "limit", 0, "maximum replacements per line (0 replaces all)")
	rootCmd.AddCommand(subCmd)
}

var subCmd = &cobra.Command{
	Use:     "sub <file> <pattern> <replacement>",
	Aliases: []string{"substitute", "s"},
	Short:   "Replace regex matches on every line",
	Long: `Replace matches of a regular expression on every line of a file.

The replacement may refer to submatches as $1 or ${name}. Use $$ for a
literal dollar sign. --limit caps the replacements made on each line,
counted from the left.`,
	Example: `  txed sub app.conf 'port=\d+' 'port=8080'
  txed sub names.txt '(\w+) (\w+)' '$2, $1'
  txed sub notes.txt 'e' 'E' --limit 1`,
	Args: cobra.ExactArgs(3),
	RunE: runSub,
}

func runSub(cmd *cobra.Command, args []string) error {
	sess, err := openSession(cmd, args[0], &subFlags)
	if err != nil {
		return err
	}
	if err := sess.Substitute(args[1], args[2], subLimit); err != nil {
		_ = sess.Quit(session.WithoutSave())
		return err
	}
	return commit(cmd, sess, &subFlags)
}
