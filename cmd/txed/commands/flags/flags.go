// Package flags provides shared accessors for state resolved by the root
// command. It exists to avoid import cycles between the root command and
// noun subpackages such as backup.
package flags

import (
	"github.com/spf13/afero"

	"github.com/thoreinstein/txed/internal/config"
)

var (
	cfg   *config.Config
	fsys  afero.Fs = afero.NewOsFs()
	quiet bool
)

// Config returns the loaded configuration, or defaults before loading.
func Config() *config.Config {
	if cfg == nil {
		return config.Default()
	}
	return cfg
}

// SetConfig stores the configuration loaded by the root command.
func SetConfig(c *config.Config) {
	cfg = c
}

// Fs returns the filesystem commands operate on.
func Fs() afero.Fs {
	return fsys
}

// SetFs replaces the filesystem. Tests use an in-memory one.
func SetFs(f afero.Fs) {
	fsys = f
}

// Quiet reports whether --quiet was given.
func Quiet() bool {
	return quiet
}

// SetQuiet records the --quiet flag.
func SetQuiet(q bool) {
	quiet = q
}
