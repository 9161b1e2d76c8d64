package commands

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/txed/cmd/txed/commands/flags"
	"github.com/thoreinstein/txed/internal/config"
	"github.com/thoreinstein/txed/internal/editor"
	"github.com/thoreinstein/txed/internal/errors"
	"github.com/thoreinstein/txed/internal/logging"
	"github.com/thoreinstein/txed/internal/paths"
	"github.com/thoreinstein/txed/pkg/fileutil"
)

var configInitForce bool

func init() {
	configInitCmd.Flags().BoolVarP(&configInitForce, "force", "f", false,
		"overwrite an existing config file")

	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configListCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configEditCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage txed configuration",
	Long: `Manage txed configuration stored in ` + paths.ConfigFile() + `.

A config.yaml in the current directory takes precedence. Every key can also
be set with a TXED_ environment variable, such as TXED_NEWLINE=crlf.

Without a subcommand, lists all configuration values.`,
	Example: `  # List all configuration
  txed config

  # Back up at load time with a .bak suffix by default
  txed config set backup load,.bak

  # Write CRLF files by default
  txed config set newline crlf

See Also: txed backup`,
	RunE: runConfigList,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Long: `Get a single configuration value by key.

Array values are printed one per line.`,
	Example: `  txed config get newline
  txed config get backup`,
	Args: cobra.ExactArgs(1),
	RunE: runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value and write the config file.

For backup, use comma-separated tokens. The result is validated before it is
written.`,
	Example: `  txed config set editor "code --wait"
  txed config set backup save,~
  txed config set backup_keep 10`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all configuration",
	Long:  `List all configuration values in YAML format.`,
	RunE: runConfigList,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	Long: `Print the config file in use, or where 'txed config init' would create
one when defaults are in use.`,
	Annotations: map[string]string{
		skipConfigAnnotation: "true",
	},
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		path := config.Used()
		if path == "" {
			path = paths.ConfigFile()
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with default values",
	Long:  `Write the default configuration to ` + paths.ConfigFile() + `.`,
	Annotations: map[string]string{
		skipConfigAnnotation: "true",
	},
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open configuration in your editor",
	Long: `Open the configuration file in your editor.

The editor setting is used first, then $EDITOR and $VISUAL. If no
configuration file exists, run 'txed config init' first.`,
	Annotations: map[string]string{
		skipConfigAnnotation: "true",
	},
	Args: cobra.NoArgs,
	RunE: runConfigEdit,
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	key := args[0]
	if !validKey(key) {
		return unknownKey(key)
	}

	w := cmd.OutOrStdout()
	switch v := viper.Get(key).(type) {
	case []any:
		for _, item := range v {
			fmt.Fprintln(w, item)
		}
	case []string:
		for _, item := range v {
			fmt.Fprintln(w, item)
		}
	default:
		fmt.Fprintln(w, viper.GetString(key))
	}
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]
	if !validKey(key) {
		return unknownKey(key)
	}

	switch key {
	case "backup":
		viper.Set(key, splitList(value))
	case "version", "backup_keep":
		n, err := strconv.Atoi(value)
		if err != nil {
			return errors.Wrapf(errors.ErrInvalidArgument, "%s must be an integer", key)
		}
		viper.Set(key, n)
	case "max_file_size":
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return errors.Wrapf(errors.ErrInvalidArgument, "%s must be an integer", key)
		}
		viper.Set(key, n)
	default:
		viper.Set(key, value)
	}

	cfg, err := config.Current()
	if err != nil {
		return err
	}

	path := config.Used()
	if path == "" {
		path = paths.ConfigFile()
	}
	if err := config.Save(flags.Fs(), path, cfg); err != nil {
		return err
	}
	flags.SetConfig(cfg)

	fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %v\n", key, viper.Get(key))
	return nil
}

func runConfigList(cmd *cobra.Command, _ []string) error {
	data, err := yaml.Marshal(flags.Config())
	if err != nil {
		return errors.Wrap(err, "marshaling config")
	}
	fmt.Fprint(cmd.OutOrStdout(), string(data))
	return nil
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	path := paths.ConfigFile()
	fsys := flags.Fs()

	exists, err := fileutil.Exists(fsys, path)
	if err != nil {
		return err
	}
	if exists && !configInitForce {
		return errors.NewUserError(
			errors.Newf("config file already exists at %s", path),
			"Use --force to overwrite it")
	}

	if err := config.Save(fsys, path, config.Default()); err != nil {
		return err
	}
	if !flags.Quiet() {
		printSuccess(cmd.OutOrStdout(), "Wrote %s", path)
	}
	return nil
}

func runConfigEdit(cmd *cobra.Command, _ []string) error {
	path := config.Used()
	if path == "" {
		path = paths.ConfigFile()
	}

	exists, err := fileutil.Exists(flags.Fs(), path)
	if err != nil {
		return err
	}
	if !exists {
		return errors.NewUserError(
			errors.Wrapf(errors.ErrNotFound, "config file not found at %s", path),
			"Run: txed config init")
	}

	ed := editor.New(
		editor.WithCommand(viper.GetString("editor")),
		editor.WithIO(cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr()),
		editor.WithLogger(logging.FromContext(cmd.Context())),
	)
	return ed.Open(cmd.Context(), path)
}

func validKey(key string) bool {
	return slices.Contains(config.Keys, key)
}

func unknownKey(key string) error {
	return errors.NewUserError(
		errors.Wrapf(errors.ErrInvalidArgument, "unknown config key %q", key),
		"Valid keys: "+strings.Join(config.Keys, ", "))
}

// splitList splits a comma-separated string, dropping empty elements.
func splitList(s string) []string {
	var items []string
	for item := range strings.SplitSeq(s, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}
