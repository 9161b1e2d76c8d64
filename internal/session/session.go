package session

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/afero"

	"github.com/thoreinstein/txed/cmd"
	"github.com/thoreinstein/txed/internal/backup"
	"github.com/thoreinstein/txed/internal/lineops"
	"github.com/thoreinstein/txed/internal/logging"
	"github.com/thoreinstein/txed/pkg/fileutil"
)

// DefaultNewline is the line terminator used when none is configured.
const DefaultNewline = "\n"

// LineEditor edits a buffer interactively. editor.Launcher implements it.
type LineEditor interface {
	EditLines(ctx context.Context, lines []string, newline string) ([]string, error)
}

// Session owns one buffer from load to commit.
type Session struct {
	fs      afero.Fs
	logger  *slog.Logger
	now     func() time.Time
	maxSize int64

	path       string
	lines      []string
	newline    string
	policy     backup.Policy
	closed     bool
	backupPath string
}

// New creates a session.
//
// Without a path, or with a path that does not exist yet, the buffer holds
// the initial content. With an existing path the file is loaded; giving
// initial content as well fails with ErrOverwriteAmbiguity. When the policy
// fires at load time the freshly read file is backed up before New returns.
func New(opts ...Option) (*Session, error) {
	cfg := settings{
		newline: DefaultNewline,
		fs:      afero.NewOsFs(),
		logger:  slog.New(slog.DiscardHandler),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	s := &Session{
		fs:      cfg.fs,
		logger:  cfg.logger,
		now:     cfg.now,
		maxSize: cfg.maxSize,
		path:    cfg.path,
		newline: cfg.newline,
		policy:  backup.Resolve(cfg.tokens...),
	}

	initial := slices.Clone(cfg.lines)
	if cfg.hasContent {
		initial = splitContent(cfg.content, cfg.newline)
	}
	if initial == nil {
		initial = []string{}
	}

	if s.path == "" {
		s.lines = initial
		return s, nil
	}

	exists, err := fileutil.Exists(s.fs, s.path)
	if err != nil {
		return nil, err
	}
	if !exists {
		s.lines = initial
		return s, nil
	}

	if len(initial) > 0 {
		return nil, errors.Wrapf(ErrOverwriteAmbiguity,
			"%s exists: load it without content first, then mutate and quit", s.path)
	}

	lines, err := fileutil.ReadLines(s.fs, s.path, s.maxSize)
	if err != nil {
		return nil, err
	}
	s.lines = lines
	s.logger.Debug("loaded file", "path", s.path, "lines", len(lines))

	if s.policy.Timing == backup.AtLoad {
		if err := s.runBackup(s.path); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// splitContent splits content on nl, ignoring one trailing terminator.
func splitContent(content, nl string) []string {
	if content == "" {
		return []string{}
	}
	content = strings.TrimSuffix(content, nl)
	return strings.Split(content, nl)
}

// Append adds line to the end of the buffer.
func (s *Session) Append(line string) error {
	if s.closed {
		return ErrClosed
	}
	s.lines = append(s.lines, line)
	s.logger.Log(context.Background(), logging.LevelTrace, "append", "line", line)
	return nil
}

// Insert places line before position at. Valid positions are 0 (front)
// through Len() (end); others return ErrIndexOutOfRange and leave the
// buffer unchanged.
func (s *Session) Insert(line string, at int) error {
	if s.closed {
		return ErrClosed
	}
	if at < 0 || at > len(s.lines) {
		return errors.Wrapf(ErrIndexOutOfRange, "index %d, buffer has %d lines", at, len(s.lines))
	}
	s.lines = slices.Insert(s.lines, at, line)
	s.logger.Log(context.Background(), logging.LevelTrace, "insert", "line", line, "at", at)
	return nil
}

// Delete removes every line matching pattern anywhere in the line and
// returns the removed lines in their original order.
func (s *Session) Delete(pattern string) ([]string, error) {
	if s.closed {
		return nil, ErrClosed
	}
	re, err := lineops.Compile(pattern)
	if err != nil {
		return nil, err
	}
	matched, rest := lineops.Partition(re, s.lines)
	s.lines = rest
	s.logger.Debug("delete", "pattern", pattern, "removed", len(matched))
	return matched, nil
}

// Substitute replaces matches of pattern with repl on every line. At most
// limit replacements are made per line; zero or less replaces all. repl may
// refer to submatches as $1 or ${name}.
func (s *Session) Substitute(pattern, repl string, limit int) error {
	if s.closed {
		return ErrClosed
	}
	re, err := lineops.Compile(pattern)
	if err != nil {
		return err
	}
	s.lines = lineops.ReplaceAll(re, s.lines, repl, limit)
	s.logger.Debug("substitute", "pattern", pattern, "limit", limit)
	return nil
}

// Edit hands the buffer to ed and replaces it with the result. An empty
// result leaves the buffer unchanged.
func (s *Session) Edit(ctx context.Context, ed LineEditor) error {
	if s.closed {
		return ErrClosed
	}
	lines, err := ed.EditLines(ctx, s.Lines(), s.newline)
	if err != nil {
		return err
	}
	if len(lines) == 0 {
		s.logger.Debug("editor returned nothing, buffer kept")
		return nil
	}
	s.lines = lines
	return nil
}

// Len returns the number of lines in the buffer.
func (s *Session) Len() int { return len(s.lines) }

// Lines returns a copy of the buffer.
func (s *Session) Lines() []string { return slices.Clone(s.lines) }

// Path returns the path the session was created with.
func (s *Session) Path() string { return s.path }

// Newline returns the session line terminator.
func (s *Session) Newline() string { return s.newline }

// Closed reports whether Quit has been called.
func (s *Session) Closed() bool { return s.closed }

// Policy returns the current backup policy.
func (s *Session) Policy() backup.Policy { return s.policy }

// BackupPath returns the file written by the most recent built-in backup.
// The second result is false when no built-in backup has run; custom
// actions never set it.
func (s *Session) BackupPath() (string, bool) {
	return s.backupPath, s.backupPath != ""
}

// Version returns the txed semantic version.
func Version() string { return cmd.Version }

// runBackup executes the policy action for path.
func (s *Session) runBackup(path string) error {
	if s.policy.Custom() {
		if err := s.policy.Action(s.policy.Ext); err != nil {
			return errors.Wrapf(err, "backup action for %s", path)
		}
		s.logger.Debug("custom backup ran", "path", path, "ext", s.policy.Ext)
		return nil
	}

	c := backup.NewCopier(
		backup.WithFs(s.fs),
		backup.WithClock(s.now),
		backup.WithLogger(s.logger),
	)
	dst, err := c.Copy(path, s.policy.Ext)
	if err != nil {
		return err
	}
	s.backupPath = dst
	return nil
}
