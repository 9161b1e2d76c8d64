package commands

import (
	"github.com/spf13/cobra"

	"github.com/thoreinstein/txed/cmd/txed/commands/flags"
	"github.com/thoreinstein/txed/internal/errors"
	"github.com/thoreinstein/txed/internal/paths"
	"github.com/thoreinstein/txed/internal/script"
	"github.com/thoreinstein/txed/pkg/fileutil"
)

var (
	convertFrom   string
	convertTo     string
	convertOutput string
)

func init() {
	convertCmd.Flags().StringVar(&convertFrom, "format", "",
		"input format: toml, yaml (default: from file extension)")
	convertCmd.Flags().StringVar(&convertTo, "to", "",
		"output format: toml, yaml (default: the other one)")
	convertCmd.Flags().StringVarP(&convertOutput, "output", "o", "",
		"write to this file instead of stdout")
	rootCmd.AddCommand(convertCmd)
}

var convertCmd = &cobra.Command{
	Use:   "convert <script>",
	Short: "Convert an edit script between TOML and YAML",
	Long: `Convert an edit script between TOML and YAML.

The script is validated first. Paths are written exactly as they appear in
the input.`,
	Example: `  txed convert edits.toml > edits.yaml
  txed convert edits.yaml --to toml -o edits.toml`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func runConvert(cmd *cobra.Command, args []string) error {
	scriptPath, err := paths.ExpandHome(args[0])
	if err != nil {
		return err
	}

	from, err := scriptFormat(convertFrom, scriptPath)
	if err != nil {
		return err
	}

	to := script.FormatYAML
	if from == script.FormatYAML {
		to = script.FormatTOML
	}
	if convertTo != "" {
		if to, err = script.ParseFormat(convertTo); err != nil {
			return err
		}
	}

	fsys := flags.Fs()
	data, err := fileutil.ReadFileWithLimit(fsys, scriptPath, 0)
	if err != nil {
		return errors.Wrapf(err, "reading script %s", scriptPath)
	}

	// Parse rather than Load so relative paths stay relative.
	s, err := script.Parse(scriptPath, data, from)
	if err != nil {
		return err
	}

	out, err := s.Encode(to)
	if err != nil {
		return err
	}

	if convertOutput == "" {
		_, err := cmd.OutOrStdout().Write(out)
		return errors.Wrap(err, "writing output")
	}

	target, err := paths.ExpandHome(convertOutput)
	if err != nil {
		return err
	}
	if err := fileutil.AtomicWriteFile(fsys, target, out, fileutil.DefaultFilePerm); err != nil {
		return errors.Wrapf(err, "writing %s", target)
	}
	if !flags.Quiet() {
		printSuccess(cmd.OutOrStdout(), "Wrote %s (%s)", target, to)
	}
	return nil
}

