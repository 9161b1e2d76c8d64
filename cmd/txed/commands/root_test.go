package commands

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/thoreinstein/txed/internal/errors"
	"github.com/thoreinstein/txed/internal/logging"
	"github.com/thoreinstein/txed/internal/script"
	"github.com/thoreinstein/txed/internal/session"
	"github.com/thoreinstein/txed/pkg/fileutil"
)

func TestLogLevel(t *testing.T) {
	tests := []struct {
		name      string
		quiet     bool
		verbosity int
		env       string
		want      slog.Level
	}{
		{"default", false, 0, "", slog.LevelWarn},
		{"-v", false, 1, "", slog.LevelInfo},
		{"-vv", false, 2, "", slog.LevelDebug},
		{"-vvv", false, 3, "", logging.LevelTrace},
		{"TXED_DEBUG=1", false, 0, "1", slog.LevelDebug},
		{"TXED_DEBUG=true", false, 0, "true", slog.LevelDebug},
		{"TXED_DEBUG=2", false, 0, "2", logging.LevelTrace},
		{"TXED_DEBUG=0", false, 0, "0", slog.LevelWarn},
		{"TXED_DEBUG unknown", false, 0, "yes please", slog.LevelWarn},
		{"flag beats env", false, 1, "2", slog.LevelInfo},
		{"quiet", true, 0, "2", slog.LevelError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := logLevel(tt.quiet, tt.verbosity, tt.env); got != tt.want {
				t.Errorf("logLevel() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSetupLogging_SetsDefault(t *testing.T) {
	origVerbosity := verbosity
	t.Cleanup(func() { verbosity = origVerbosity })
	t.Setenv("TXED_DEBUG", "")

	verbosity = 2
	if err := setupLogging(rootCmd); err != nil {
		t.Fatalf("setupLogging failed: %v", err)
	}
	if !slog.Default().Enabled(t.Context(), slog.LevelDebug) {
		t.Error("debug should be enabled at -vv")
	}
	if slog.Default().Enabled(t.Context(), logging.LevelTrace) {
		t.Error("trace should stay disabled at -vv")
	}
	if logging.FromContext(rootCmd.Context()) != slog.Default() {
		t.Error("command context should carry the configured logger")
	}
}

func TestSetupLogging_QuietAndVerbose(t *testing.T) {
	origVerbosity, origQuiet := verbosity, quiet
	t.Cleanup(func() { verbosity, quiet = origVerbosity, origQuiet })

	verbosity, quiet = 1, true
	err := setupLogging(rootCmd)
	if errors.ExitCode(err) != errors.ExitUser {
		t.Errorf("want a user error, got %v", err)
	}
}

func TestSetupLogging_InvalidFormat(t *testing.T) {
	origFormat := logFormat
	defer func() { logFormat = origFormat }()

	logFormat = "xml"
	if err := setupLogging(rootCmd); err == nil {
		t.Error("expected error for unknown log format")
	}
}

func TestSetupLogging_LogFile(t *testing.T) {
	origFile := logFile
	origVerbosity := verbosity
	defer func() {
		logFile = origFile
		verbosity = origVerbosity
	}()

	logFile = filepath.Join(t.TempDir(), "logs", "txed.log")
	verbosity = 2

	if err := setupLogging(rootCmd); err != nil {
		t.Fatalf("setupLogging failed: %v", err)
	}
	logging.FromContext(rootCmd.Context()).Debug("hello", "path", "/tmp/x")

	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if !strings.Contains(string(data), `"msg":"hello"`) {
		t.Errorf("log file should hold JSON records, got %q", data)
	}
}

func TestUserFacing(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"overwrite ambiguity", errors.Wrap(session.ErrOverwriteAmbiguity, "x"), errors.ExitUser},
		{"missing destination", session.ErrMissingDestination, errors.ExitUser},
		{"invalid pattern", session.ErrInvalidPattern, errors.ExitUser},
		{"script", errors.Wrap(script.ErrInvalidScript, "ops"), errors.ExitUser},
		{"too large", fileutil.ErrFileTooLarge, errors.ExitUser},
		{"already coded", errors.NewSystemError(errors.New("x"), ""), errors.ExitSystem},
		{"anything else", errors.New("disk on fire"), errors.ExitSystem},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.ExitCode(userFacing(tt.err)); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestPrintError(t *testing.T) {
	var buf bytes.Buffer
	printError(&buf, userFacing(errors.Wrap(fileutil.ErrFileTooLarge, "reading big.log")))

	out := buf.String()
	if !strings.HasPrefix(out, "Error: reading big.log: file exceeds maximum size\n") {
		t.Errorf("unexpected error line: %q", out)
	}
	if !strings.Contains(out, "  raise max_file_size in the config file\n") {
		t.Errorf("missing suggestion: %q", out)
	}
}
