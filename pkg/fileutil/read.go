package fileutil

import (
	"io"
	"strings"

	"github.com/spf13/afero"

	"github.com/thoreinstein/txed/internal/errors"
)

// MaxFileSize is the default maximum file size we'll read (64MiB).
// This prevents memory exhaustion from unexpectedly large files.
const MaxFileSize int64 = 64 << 20

// ErrFileTooLarge indicates that a file exceeded the read limit.
var ErrFileTooLarge = errors.New("file exceeds maximum size")

// Exists reports whether path exists on fsys.
func Exists(fsys afero.Fs, path string) (bool, error) {
	ok, err := afero.Exists(fsys, path)
	if err != nil {
		return false, errors.Wrapf(err, "checking %s", path)
	}
	return ok, nil
}

// ReadFileWithLimit reads a file up to limit bytes. A limit of zero or less
// means MaxFileSize. It returns ErrFileTooLarge if the file is larger.
func ReadFileWithLimit(fsys afero.Fs, path string, limit int64) ([]byte, error) {
	if limit <= 0 {
		limit = MaxFileSize
	}

	f, err := fsys.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening file")
	}
	defer f.Close()

	// Fail fast if the size is already known to be too large
	if info, err := f.Stat(); err == nil && info.Size() > limit {
		return nil, errors.Wrapf(ErrFileTooLarge, "%s has %d bytes, limit %d", path, info.Size(), limit)
	}

	data, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		return nil, errors.Wrap(err, "reading file")
	}

	if int64(len(data)) > limit {
		return nil, errors.Wrapf(ErrFileTooLarge, "%s exceeds limit %d", path, limit)
	}

	return data, nil
}

// ReadLines reads path and returns its lines with trailing line terminator
// characters removed. See SplitLines.
func ReadLines(fsys afero.Fs, path string, limit int64) ([]string, error) {
	data, err := ReadFileWithLimit(fsys, path, limit)
	if err != nil {
		return nil, err
	}
	return SplitLines(string(data)), nil
}

// SplitLines breaks content after each '\n' and strips any run of '\r' and
// '\n' from the end of every line. Content with no '\n' at all but with '\r'
// is treated as CR-terminated and broken after each '\r' instead. Other
// trailing whitespace is kept. A final line without a terminator is still
// returned; empty content yields no lines.
func SplitLines(content string) []string {
	if content == "" {
		return []string{}
	}

	sep := "\n"
	if !strings.Contains(content, "\n") && strings.Contains(content, "\r") {
		sep = "\r"
	}

	parts := strings.SplitAfter(content, sep)
	if parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}

	lines := make([]string, len(parts))
	for i, p := range parts {
		if sep == "\r" {
			lines[i] = strings.TrimSuffix(p, "\r")
			continue
		}
		lines[i] = strings.TrimRight(p, "\r\n")
	}
	return lines
}

// JoinLines writes newline after every line, including the last.
func JoinLines(lines []string, newline string) string {
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(l)
		b.WriteString(newline)
	}
	return b.String()
}
