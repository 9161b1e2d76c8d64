package config

import (
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/viper"

	"github.com/thoreinstein/txed/internal/backup"
	"github.com/thoreinstein/txed/internal/errors"
	"github.com/thoreinstein/txed/internal/paths"
	"github.com/thoreinstein/txed/pkg/fileutil"
)

// EnvPrefix is the prefix for environment variable overrides.
const EnvPrefix = "TXED"

// DefaultBackupKeep is how many backups `txed backup prune` retains by default.
const DefaultBackupKeep = 5

// Config represents the top-level configuration structure.
type Config struct {
	Version     int      `mapstructure:"version" yaml:"version"`
	Newline     string   `mapstructure:"newline" yaml:"newline"`
	Backup      []string `mapstructure:"backup" yaml:"backup"`
	Editor      string   `mapstructure:"editor" yaml:"editor,omitempty"`
	MaxFileSize int64    `mapstructure:"max_file_size" yaml:"max_file_size"`
	BackupKeep  int      `mapstructure:"backup_keep" yaml:"backup_keep"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Version:     1,
		Newline:     "lf",
		Backup:      []string{backup.AtSave.String(), backup.DefaultExt},
		MaxFileSize: fileutil.MaxFileSize,
		BackupKeep:  DefaultBackupKeep,
	}
}

// Init resets Viper and registers search paths, environment binding and
// defaults. Call this once at application startup before Load.
func Init() {
	viper.Reset()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Search paths (in order of precedence)
	viper.AddConfigPath(".")
	viper.AddConfigPath(paths.ConfigDir())

	viper.SetEnvPrefix(EnvPrefix)
	viper.AutomaticEnv()

	d := Default()
	viper.SetDefault("version", d.Version)
	viper.SetDefault("newline", d.Newline)
	viper.SetDefault("backup", d.Backup)
	viper.SetDefault("editor", d.Editor)
	viper.SetDefault("max_file_size", d.MaxFileSize)
	viper.SetDefault("backup_keep", d.BackupKeep)
}

// Load reads the configuration file.
// If path is provided, it reads from that specific file.
// If path is empty, it searches in the default locations and falls back to
// defaults when no file is found.
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound) && path == "":
			// Implicit load: defaults apply.
		case errors.As(err, &notFound) || isNotExist(err):
			return nil, errors.Wrapf(errors.ErrNotFound, "config file not found at %s", path)
		default:
			return nil, errors.Wrap(err, "reading config file")
		}
	}

	cfg, err := Current()
	if err != nil {
		return nil, err
	}

	if errs := Validate(cfg); len(errs) > 0 {
		return nil, errors.Wrap(errors.Join(errs...), "validating config")
	}

	return cfg, nil
}

// Used returns the config file Viper read, or "" when defaults are in use.
func Used() string {
	if f := viper.ConfigFileUsed(); f != "" {
		if abs, err := filepath.Abs(f); err == nil {
			return abs
		}
		return f
	}
	return ""
}

// Terminator returns the line terminator selected by Newline.
func (c *Config) Terminator() string {
	nl, err := ParseNewline(c.Newline)
	if err != nil {
		return "\n"
	}
	return nl
}

// BackupTokens returns Backup classified into backup tokens.
func (c *Config) BackupTokens() []backup.Token {
	return backup.ParseTokens(c.Backup)
}

// Keys lists the configuration keys in file order.
var Keys = []string{"version", "newline", "backup", "editor", "max_file_size", "backup_keep"}

// Save validates cfg and writes it to path as YAML, creating the parent
// directory if needed.
func Save(fsys afero.Fs, path string, cfg *Config) error {
	if errs := Validate(cfg); len(errs) > 0 {
		return errors.Wrap(errors.Join(errs...), "validating config")
	}
	if err := paths.EnsureDir(fsys, filepath.Dir(path), 0); err != nil {
		return errors.Wrap(err, "creating config directory")
	}
	if err := fileutil.AtomicWriteYAML(fsys, path, cfg); err != nil {
		return errors.Wrap(err, "writing config file")
	}
	return nil
}

// Current unmarshals the values Viper holds right now, including any set
// with viper.Set since Load.
func Current() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshaling config")
	}
	return &cfg, nil
}
