// Package commands implements the CLI commands for txed.
package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/txed/cmd"
	"github.com/thoreinstein/txed/cmd/txed/commands/backup"
	"github.com/thoreinstein/txed/cmd/txed/commands/flags"
	"github.com/thoreinstein/txed/internal/config"
	"github.com/thoreinstein/txed/internal/errors"
	"github.com/thoreinstein/txed/internal/logging"
	"github.com/thoreinstein/txed/internal/paths"
)

// verbosity holds the count of -v flags.
var verbosity int

// quiet holds the value of the -q/--quiet flag.
var quiet bool

// logFormat holds the value of the --log-format flag.
var logFormat string

// logFile holds the path to the log file.
var logFile string

// configPath holds the value of the --config flag.
var configPath string

// configLoadErr holds any error that occurred during config loading.
var configLoadErr error

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"increase verbosity level (e.g., -v, -vv, -vvv)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text",
		"log format: text, json")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"also write logs to file in JSON format")
	rootCmd.PersistentFlags().Lookup("log-file").NoOptDefVal = paths.LogFile()
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"config file (default: ./config.yaml or "+paths.ConfigFile()+")")

	rootCmd.Version = cmd.Version
	rootCmd.SetVersionTemplate("txed version {{.Version}}\n")

	// Silence errors and usage so we can control error output
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	rootCmd.AddCommand(backup.Cmd)
}

func initConfig() {
	config.Init()
	cfg, err := config.Load(configPath)
	configLoadErr = err
	flags.SetConfig(cfg)
}

var rootCmd = &cobra.Command{
	Use:   "txed",
	Short: "Edit text files from scripts and the command line",
	Long: `txed loads a text file into a buffer, applies line edits (append, insert,
delete, regex substitute), and writes it back exactly once.

Before a file is overwritten, whatever currently sits at the destination is
copied next to it (file.YYYY.mmdd.HHMMSS by default). Backups can instead be
taken when the file is loaded, use a custom suffix, or be managed with
'txed backup'.`,
	Example: `  # Append a line, keeping a timestamped backup
  txed append /etc/hosts "127.0.0.1 example.test"

  # Remove comment lines, backing up at load time with a .bak suffix
  txed delete notes.txt '^#' --backup load --backup .bak

  # Convert to CRLF while writing elsewhere
  txed sub unix.txt 'foo' 'bar' --newline crlf -o dos.txt

  # Run an edit script
  txed apply edits.toml

  See Also: txed backup, txed config`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if err := setupLogging(cmd); err != nil {
			return err
		}
		flags.SetQuiet(quiet)
		return checkConfig(cmd)
	},
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// setupLogging configures the default logger based on verbosity flags.
func setupLogging(cmd *cobra.Command) error {
	if quiet && verbosity > 0 {
		return errors.NewUserError(errors.New("cannot use --quiet and --verbose together"), "")
	}

	format, err := logging.ParseFormat(logFormat)
	if err != nil {
		return errors.NewUserError(err, "")
	}

	debug, _ := os.LookupEnv("TXED_DEBUG")
	level := logLevel(quiet, verbosity, debug)

	cfg := logging.Config{
		Level:  level,
		Format: format,
		Output: cmd.ErrOrStderr(),
	}

	if logFile != "" {
		f, err := openLogFile(logFile)
		if err != nil {
			return errors.NewUserError(err, "check the --log-file path")
		}
		cfg.File = f
	}

	logger := logging.New(cfg)
	slog.SetDefault(logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.NewContext(ctx, logger))

	return nil
}

// logLevel picks the stderr level. -v flags win over TXED_DEBUG, which
// accepts 1 or true for debug and 2 for trace.
func logLevel(quiet bool, verbosity int, debugEnv string) slog.Level {
	if quiet {
		return slog.LevelError
	}
	if verbosity == 0 {
		switch debugEnv {
		case "1", "true":
			verbosity = 2
		case "2":
			verbosity = 3
		}
	}
	return logging.LevelFromVerbosity(verbosity)
}

func openLogFile(path string) (io.Writer, error) {
	path, err := paths.ExpandHome(path)
	if err != nil {
		return nil, err
	}
	fsys := afero.NewOsFs()
	if err := paths.EnsureDir(fsys, filepath.Dir(path), 0); err != nil {
		return nil, errors.Wrap(err, "creating log directory")
	}
	f, err := fsys.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, errors.Wrap(err, "opening log file")
	}
	return f, nil
}

// skipConfigAnnotation marks commands that must run even when the config
// file is broken, so the user can inspect or repair it.
const skipConfigAnnotation = "txed/skip-config"

// checkConfig reports a config load failure for commands that need config.
func checkConfig(cmd *cobra.Command) error {
	if configLoadErr == nil {
		return nil
	}
	for c := cmd; c != nil; c = c.Parent() {
		switch {
		case c.Name() == "help", c.Name() == cobra.ShellCompRequestCmd, c.Name() == "completion":
			return nil
		case c.Annotations[skipConfigAnnotation] == "true":
			return nil
		}
	}
	return errors.NewConfigError(configLoadErr)
}

// Execute runs the root command and prints any error with its suggestion.
func Execute() error {
	err := rootCmd.Execute()
	if err == nil {
		return nil
	}
	err = userFacing(err)
	printError(rootCmd.ErrOrStderr(), err)
	return err
}

func printError(w io.Writer, err error) {
	red := color.New(color.FgRed, color.Bold)
	red.Fprint(w, "Error: ")
	fmt.Fprintln(w, err)

	if s := errors.SuggestionOf(err); s != "" {
		fmt.Fprintf(w, "  %s\n", s)
	}
}
