package script

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/txed/internal/config"
	"github.com/thoreinstein/txed/internal/errors"
	"github.com/thoreinstein/txed/internal/lineops"
	"github.com/thoreinstein/txed/internal/paths"
	"github.com/thoreinstein/txed/pkg/fileutil"
)

// Format is the encoding of a script file.
type Format string

const (
	// FormatTOML selects TOML.
	FormatTOML Format = "toml"
	// FormatYAML selects YAML.
	FormatYAML Format = "yaml"
)

// Operation kinds.
const (
	OpAppend = "append"
	OpInsert = "insert"
	OpDelete = "delete"
	OpSub    = "sub"
)

// ErrInvalidScript indicates a script that parsed but cannot be run.
var ErrInvalidScript = errors.New("invalid script")

// Op is one buffer operation.
type Op struct {
	Op      string `toml:"op" yaml:"op"`
	Line    string `toml:"line,omitempty" yaml:"line,omitempty"`
	At      int    `toml:"at,omitempty" yaml:"at,omitempty"`
	Pattern string `toml:"pattern,omitempty" yaml:"pattern,omitempty"`
	Replace string `toml:"replace,omitempty" yaml:"replace,omitempty"`
	Limit   int    `toml:"limit,omitempty" yaml:"limit,omitempty"`
}

// Script is a parsed edit script.
type Script struct {
	// Path is the file to load. Relative paths are resolved against the
	// script's directory by Load.
	Path string `toml:"path" yaml:"path"`

	// Output, when set, receives the result instead of Path.
	Output string `toml:"output,omitempty" yaml:"output,omitempty"`

	// Newline overrides the configured terminator (lf, crlf, cr or literal).
	Newline string `toml:"newline,omitempty" yaml:"newline,omitempty"`

	// Backup holds raw backup tokens; empty keeps the configured policy.
	Backup []string `toml:"backup,omitempty" yaml:"backup,omitempty"`

	// Save defaults to true; false runs the ops and abandons the buffer.
	Save *bool `toml:"save,omitempty" yaml:"save,omitempty"`

	Ops []Op `toml:"ops" yaml:"ops"`
}

// ShouldSave reports whether the script commits its result.
func (s *Script) ShouldSave() bool {
	return s.Save == nil || *s.Save
}

// ParseError describes a script that could not be decoded or validated.
type ParseError struct {
	Source  string
	Line    int
	Column  int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Line > 0 && e.Column > 0 {
		return fmt.Sprintf("parse error in %s at line %d, column %d: %s", e.Source, e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("parse error in %s: %s", e.Source, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", errors.Wrapf(errors.ErrInvalidArgument, "cannot infer script format from %q (use .toml, .yaml or .yml)", path)
	}
}

// ParseFormat validates a --format value.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case FormatTOML:
		return FormatTOML, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	default:
		return "", errors.Wrapf(errors.ErrInvalidArgument, "unknown script format %q", s)
	}
}

// Parse decodes and validates a script. source names the data in errors.
func Parse(source string, data []byte, format Format) (*Script, error) {
	var sc Script
	switch format {
	case FormatTOML:
		if err := toml.Unmarshal(data, &sc); err != nil {
			pe := &ParseError{Source: source, Message: err.Error(), Err: err}
			var decodeErr *toml.DecodeError
			if errors.As(err, &decodeErr) {
				pe.Line, pe.Column = decodeErr.Position()
			}
			return nil, pe
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &sc); err != nil {
			return nil, &ParseError{Source: source, Message: err.Error(), Err: err}
		}
	default:
		return nil, errors.Wrapf(errors.ErrInvalidArgument, "unknown script format %q", format)
	}

	if err := sc.validate(); err != nil {
		return nil, &ParseError{Source: source, Message: err.Error(), Err: err}
	}
	return &sc, nil
}

// Load reads a script from fsys, inferring the format from its extension
// unless format is set. Relative Path and Output are resolved against the
// script's directory; a leading "~/" is expanded.
func Load(fsys afero.Fs, path string, format Format) (*Script, error) {
	if format == "" {
		f, err := FormatFromPath(path)
		if err != nil {
			return nil, err
		}
		format = f
	}

	data, err := fileutil.ReadFileWithLimit(fsys, path, 0)
	if err != nil {
		return nil, errors.Wrapf(err, "reading script %s", path)
	}

	sc, err := Parse(path, data, format)
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(path)
	if sc.Path, err = resolve(dir, sc.Path); err != nil {
		return nil, err
	}
	if sc.Output, err = resolve(dir, sc.Output); err != nil {
		return nil, err
	}
	return sc, nil
}

func resolve(dir, p string) (string, error) {
	if p == "" {
		return "", nil
	}
	p, err := paths.ExpandHome(p)
	if err != nil {
		return "", err
	}
	if !filepath.IsAbs(p) {
		p = filepath.Join(dir, p)
	}
	return p, nil
}

func (s *Script) validate() error {
	if s.Path == "" && s.Output == "" {
		return errors.Wrap(ErrInvalidScript, "path or output is required")
	}
	if _, err := config.ParseNewline(s.Newline); err != nil {
		return errors.Wrapf(ErrInvalidScript, "newline: %v", err)
	}

	for i, op := range s.Ops {
		switch op.Op {
		case OpAppend:
		case OpInsert:
			if op.At < 0 {
				return errors.Wrapf(ErrInvalidScript, "ops[%d]: insert position %d is negative", i, op.At)
			}
		case OpDelete, OpSub:
			if op.Pattern == "" {
				return errors.Wrapf(ErrInvalidScript, "ops[%d]: %s needs a pattern", i, op.Op)
			}
			if _, err := lineops.Compile(op.Pattern); err != nil {
				return errors.Wrapf(ErrInvalidScript, "ops[%d]: %v", i, err)
			}
		default:
			return errors.Wrapf(ErrInvalidScript, "ops[%d]: unknown op %q (valid: append, insert, delete, sub)", i, op.Op)
		}
	}
	return nil
}

// Encode serializes the script in format. Paths are written as they are
// held, so a loaded script encodes with absolute paths.
func (s *Script) Encode(format Format) ([]byte, error) {
	switch format {
	case FormatTOML:
		data, err := toml.Marshal(s)
		return data, errors.Wrap(err, "marshaling toml")
	case FormatYAML:
		data, err := yaml.Marshal(s)
		return data, errors.Wrap(err, "marshaling yaml")
	default:
		return nil, errors.Wrapf(errors.ErrInvalidArgument, "unknown script format %q", format)
	}
}
