package session

import (
	"log/slog"
	"time"

	"github.com/spf13/afero"

	"github.com/thoreinstein/txed/internal/backup"
)

type settings struct {
	path       string
	lines      []string
	content    string
	hasContent bool
	tokens     []backup.Token
	newline    string
	fs         afero.Fs
	logger     *slog.Logger
	now        func() time.Time
	maxSize    int64
}

// Option configures a Session at construction.
type Option func(*settings)

// WithPath binds the session to path. If the file exists it is loaded.
func WithPath(path string) Option {
	return func(s *settings) {
		s.path = path
	}
}

// WithLines sets the initial buffer. The slice is copied.
func WithLines(lines []string) Option {
	return func(s *settings) {
		s.lines = lines
		s.hasContent = false
	}
}

// WithContent sets the initial buffer from a single string split on the
// session terminator. A trailing terminator does not produce an empty line.
func WithContent(content string) Option {
	return func(s *settings) {
		s.content = content
		s.hasContent = true
	}
}

// WithBackup sets the backup tokens resolved into the session policy.
func WithBackup(tokens ...backup.Token) Option {
	return func(s *settings) {
		s.tokens = tokens
	}
}

// WithNewline sets the line terminator used on commit. Empty keeps "\n".
func WithNewline(nl string) Option {
	return func(s *settings) {
		if nl != "" {
			s.newline = nl
		}
	}
}

// WithFs sets the filesystem. Tests use afero.NewMemMapFs().
func WithFs(fsys afero.Fs) Option {
	return func(s *settings) {
		if fsys != nil {
			s.fs = fsys
		}
	}
}

// WithLogger sets the logger for lifecycle events.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock sets the time source used for backup names.
func WithClock(now func() time.Time) Option {
	return func(s *settings) {
		if now != nil {
			s.now = now
		}
	}
}

// WithMaxFileSize caps the size of a loaded file. Zero or less uses
// fileutil.MaxFileSize.
func WithMaxFileSize(n int64) Option {
	return func(s *settings) {
		s.maxSize = n
	}
}

type quitSettings struct {
	save      bool
	target    string
	tokens    []backup.Token
	hasTokens bool
	newline   string
}

// QuitOption configures a call to Quit.
type QuitOption func(*quitSettings)

// WithoutSave abandons the buffer instead of writing it.
func WithoutSave() QuitOption {
	return func(q *quitSettings) {
		q.save = false
	}
}

// WithTarget writes to path instead of the session path.
func WithTarget(path string) QuitOption {
	return func(q *quitSettings) {
		q.target = path
	}
}

// WithBackupOverride replaces the session policy with one resolved from
// tokens before the commit-time backup runs.
func WithBackupOverride(tokens ...backup.Token) QuitOption {
	return func(q *quitSettings) {
		q.tokens = tokens
		q.hasTokens = len(tokens) > 0
	}
}

// WithNewlineOverride writes with nl instead of the session terminator.
func WithNewlineOverride(nl string) QuitOption {
	return func(q *quitSettings) {
		q.newline = nl
	}
}
