package commands

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/txed/cmd"
)

func init() {
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version information",
	Long:  `Print the version, commit, and build date of txed.`,
	Annotations: map[string]string{
		skipConfigAnnotation: "true",
	},
	Run: func(c *cobra.Command, _ []string) {
		w := c.OutOrStdout()
		fmt.Fprintf(w, "txed version %s\n", cmd.Version)
		if cmd.Stamp() {
			fmt.Fprintf(w, "  commit: %s\n", cmd.Commit)
			fmt.Fprintf(w, "  built:  %s\n", cmd.Date)
		}
		fmt.Fprintf(w, "  go:     %s\n", runtime.Version())
	},
}
