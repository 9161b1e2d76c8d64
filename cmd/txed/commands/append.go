package commands

import (
	"github.com/spf13/cobra"
)

var appendFlags editFlags

func init() {
	addEditFlags(appendCmd, &appendFlags)
	rootCmd.AddCommand(appendCmd)
}

var appendCmd = &cobra.Command{
	Use:   "append <file> <line>...",
	Short: "Append lines to the end of a file",
	Long: `Append one or more lines to the end of a file.

The file is created if it does not exist. Each argument becomes one line.`,
	Example: `  txed append ~/.profile 'export EDITOR=vim'
  txed append todo.txt "buy milk" "call bank"`,
	Args: cobra.MinimumNArgs(2),
	RunE: runAppend,
}

func runAppend(cmd *cobra.Command, args []string) error {
	sess, err := openSession(cmd, args[0], &appendFlags)
	if err != nil {
		return err
	}
	for _, line := range args[1:] {
		if err := sess.Append(line); err != nil {
			return err
		}
	}
	return commit(cmd, sess, &appendFlags)
}
