package commands

import (
	"github.com/spf13/cobra"

	"github.com/thoreinstein/txed/cmd/txed/commands/flags"
	"github.com/thoreinstein/txed/internal/errors"
	"github.com/thoreinstein/txed/internal/paths"
	"github.com/thoreinstein/txed/internal/script"
	"github.com/thoreinstein/txed/internal/validator"
)

var (
	checkFormat string
	checkJSON   bool
)

func init() {
	checkCmd.Flags().StringVar(&checkFormat, "format", "",
		"script format: toml, yaml (default: from file extension)")
	checkCmd.Flags().BoolVar(&checkJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(checkCmd)
}

var checkCmd = &cobra.Command{
	Use:     "check <script>",
	Aliases: []string{"lint"},
	Short:   "Check an edit script without running it",
	Long: `Run an edit script against the current content of its file in memory and
report problems: inserts that would fall outside the buffer, patterns that
match nothing, conflicting backup tokens and similar.

Nothing is written and no backup is taken. Exits non-zero when any error is
found; warnings alone do not fail the check.`,
	Example: `  txed check edits.toml
  txed check edits.yaml --json`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	scriptPath, err := paths.ExpandHome(args[0])
	if err != nil {
		return err
	}

	format, err := scriptFormat(checkFormat, scriptPath)
	if err != nil {
		return err
	}

	fsys := flags.Fs()
	s, err := script.Load(fsys, scriptPath, format)
	if err != nil {
		return err
	}

	res := s.Check(fsys, args[0], maxFileSize(flags.Config()))

	reportFormat := validator.FormatText
	if checkJSON {
		reportFormat = validator.FormatJSON
	}
	if err := validator.NewReporter(cmd.OutOrStdout(), reportFormat).Report(res); err != nil {
		return err
	}

	if err := res.Err(); err != nil {
		return errors.NewUserError(err, "")
	}
	return nil
}

// scriptFormat returns the --format value, or the format implied by path.
func scriptFormat(flag, path string) (script.Format, error) {
	if flag != "" {
		return script.ParseFormat(flag)
	}
	return script.FormatFromPath(path)
}
