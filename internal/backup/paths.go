package backup

import (
	"path/filepath"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/afero"
)

// Entry describes one backup file found next to its source.
type Entry struct {
	// Path is the full path of the backup file.
	Path string

	// Size is the backup size in bytes.
	Size int64

	// ModTime is the backup's modification time. The built-in copy keeps the
	// source's time, so this is when the saved content was last written.
	ModTime time.Time

	stem    string
	counter int
}

// extPattern converts a backup extension into a regexp matching the part of
// a file name after the source's base name. Every strftime verb matches one
// or more characters and a trailing collision counter is allowed.
func extPattern(ext string) (*regexp.Regexp, error) {
	var b strings.Builder
	b.WriteString("^(")
	for i := 0; i < len(ext); i++ {
		if ext[i] == '%' && i+1 < len(ext) {
			i++
			if ext[i] == '%' {
				b.WriteString("%")
			} else {
				b.WriteString(".+?")
			}
			continue
		}
		b.WriteString(regexp.QuoteMeta(ext[i : i+1]))
	}
	b.WriteString(`)(?:-(\d+))?$`)

	re, err := regexp.Compile(b.String())
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidExt, "%q: %v", ext, err)
	}
	return re, nil
}

// List returns the backups of path that the built-in copy would have
// produced for ext, newest first. It returns ErrNoBackupsFound when there
// are none.
func List(fsys afero.Fs, path, ext string) ([]Entry, error) {
	if ext == "" {
		ext = DefaultExt
	}
	re, err := extPattern(ext)
	if err != nil {
		return nil, err
	}

	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}

	infos, err := afero.ReadDir(fsys, dir)
	if err != nil {
		return nil, errors.Wrap(err, "reading backup directory")
	}

	var entries []Entry
	for _, info := range infos {
		name := info.Name()
		if info.IsDir() || name == base || !strings.HasPrefix(name, base) {
			continue
		}
		m := re.FindStringSubmatch(name[len(base):])
		if m == nil {
			continue
		}
		counter := 0
		if m[2] != "" {
			counter, _ = strconv.Atoi(m[2])
		}
		entries = append(entries, Entry{
			Path:    filepath.Join(dir, name),
			Size:    info.Size(),
			ModTime: info.ModTime(),
			stem:    m[1],
			counter: counter,
		})
	}

	if len(entries) == 0 {
		return nil, errors.Wrapf(ErrNoBackupsFound, "for %s", path)
	}

	// Rendered timestamps sort chronologically; counters break ties.
	slices.SortFunc(entries, func(a, b Entry) int {
		if c := strings.Compare(b.stem, a.stem); c != 0 {
			return c
		}
		return b.counter - a.counter
	})

	return entries, nil
}

// Prune removes old backups of path beyond the retention count and returns
// the removed paths. Keeps the most recent keep backups.
func Prune(fsys afero.Fs, path, ext string, keep int) ([]string, error) {
	if keep < 0 {
		return nil, errors.New("keep must be non-negative")
	}

	entries, err := List(fsys, path, ext)
	if err != nil {
		if errors.Is(err, ErrNoBackupsFound) {
			return nil, nil // Nothing to prune
		}
		return nil, err
	}

	var removed []string
	for i := keep; i < len(entries); i++ {
		if err := fsys.Remove(entries[i].Path); err != nil {
			return removed, errors.Wrapf(err, "removing backup %s", entries[i].Path)
		}
		removed = append(removed, entries[i].Path)
	}

	return removed, nil
}
