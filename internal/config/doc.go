// Package config provides configuration management for the txed CLI.
//
// # Configuration File
//
// The default configuration file location is ~/.config/txed/config.yaml
// ($TXED_CONFIG_DIR overrides the directory). A config.yaml in the current
// directory takes precedence. The file uses YAML:
//
//	version: 1
//	newline: lf          # lf, crlf, cr, or a literal terminator
//	backup:              # backup tokens: load, save, or a suffix
//	  - save
//	  - .%Y.%m%d.%H%M%S
//	editor: code --wait  # optional, falls back to $EDITOR
//	max_file_size: 67108864
//	backup_keep: 5
//
// Every key can also be set from the environment with the TXED_ prefix,
// for example TXED_NEWLINE=crlf.
//
// # Loading Configuration
//
//	config.Init()
//	cfg, err := config.Load("")
//	if err != nil {
//		return err
//	}
//
// Load validates the result; see [Validate].
package config
