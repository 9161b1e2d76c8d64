// Package editor launches the user's preferred text editor, either on a
// file or on a buffer round-tripped through a temporary file.
package editor

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/thoreinstein/txed/internal/errors"
	"github.com/thoreinstein/txed/pkg/fileutil"
)

// Launcher runs an external editor.
type Launcher struct {
	command string
	dir     string
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
	logger  *slog.Logger
}

// Option configures a Launcher.
type Option func(*Launcher)

// WithCommand sets the editor command, e.g. "code --wait". Empty falls back
// to the environment.
func WithCommand(command string) Option {
	return func(l *Launcher) {
		l.command = command
	}
}

// WithTempDir sets the directory for buffer temp files. Empty uses os.TempDir().
func WithTempDir(dir string) Option {
	return func(l *Launcher) {
		l.dir = dir
	}
}

// WithIO sets the streams attached to the editor process.
func WithIO(stdin io.Reader, stdout, stderr io.Writer) Option {
	return func(l *Launcher) {
		l.stdin = stdin
		l.stdout = stdout
		l.stderr = stderr
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Launcher) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// New creates a Launcher attached to the process's standard streams.
func New(opts ...Option) *Launcher {
	l := &Launcher{
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Open runs the editor on path and waits for it to exit.
func (l *Launcher) Open(ctx context.Context, path string) error {
	args := strings.Fields(detectEditor(l.command))
	if len(args) == 0 {
		return errors.New("no editor configured")
	}
	args = append(args, path)

	l.logger.Debug("launching editor", "command", args[0], "path", path)

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Stdin = l.stdin
	cmd.Stdout = l.stdout
	cmd.Stderr = l.stderr

	if err := cmd.Run(); err != nil {
		return errors.Wrap(err, "running editor")
	}

	return nil
}

// EditLines writes lines to a temporary file joined by newline, opens it in
// the editor and returns the file's lines once the editor exits. The temp
// file is removed afterwards.
func (l *Launcher) EditLines(ctx context.Context, lines []string, newline string) ([]string, error) {
	fsys := afero.NewOsFs()

	dir := l.dir
	if dir == "" {
		dir = os.TempDir()
	}
	path := filepath.Join(dir, "txed-"+uuid.NewString()+".txt")

	if err := fileutil.AtomicWriteFile(fsys, path, []byte(fileutil.JoinLines(lines, newline)), 0o600); err != nil {
		return nil, errors.Wrap(err, "writing buffer for editor")
	}
	defer func() {
		_ = fsys.Remove(path)
	}()

	if err := l.Open(ctx, path); err != nil {
		return nil, err
	}

	edited, err := fileutil.ReadLines(fsys, path, 0)
	if err != nil {
		return nil, errors.Wrap(err, "reloading buffer from editor")
	}
	return edited, nil
}

// detectEditor returns the editor command to use. Fallback chain:
// configured → $EDITOR → $VISUAL → nano → vi
func detectEditor(configured string) string {
	if configured != "" {
		return configured
	}

	// Check $EDITOR first (most common)
	if editor := os.Getenv("EDITOR"); editor != "" {
		return editor
	}

	// Then $VISUAL (for full-screen editors)
	if visual := os.Getenv("VISUAL"); visual != "" {
		return visual
	}

	if _, err := exec.LookPath("nano"); err == nil {
		return "nano"
	}

	return "vi"
}
