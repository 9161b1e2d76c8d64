package backup

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/lestrrat-go/strftime"
	"github.com/spf13/afero"

	"github.com/thoreinstein/txed/pkg/fileutil"
)

// Copier performs the built-in backup action: copy a file next to itself
// under a timestamped name.
type Copier struct {
	fs     afero.Fs
	now    func() time.Time
	logger *slog.Logger
}

// Option configures a Copier.
type Option func(*Copier)

// WithFs sets the filesystem the copier reads and writes.
func WithFs(fsys afero.Fs) Option {
	return func(c *Copier) {
		if fsys != nil {
			c.fs = fsys
		}
	}
}

// WithClock sets the time source used to render the extension.
func WithClock(now func() time.Time) Option {
	return func(c *Copier) {
		if now != nil {
			c.now = now
		}
	}
}

// WithLogger sets the logger for backup events.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Copier) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewCopier creates a Copier on the OS filesystem with the wall clock.
func NewCopier(opts ...Option) *Copier {
	c := &Copier{
		fs:     afero.NewOsFs(),
		now:    time.Now,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Copy copies path to path + Suffix(ext, now) and returns the backup path.
// When that name is taken, "-1", "-2", ... is appended until a free name is
// found, so existing backups are never overwritten.
func (c *Copier) Copy(path, ext string) (string, error) {
	suffix, err := Suffix(ext, c.now())
	if err != nil {
		return "", err
	}

	dst, err := c.freeName(path + suffix)
	if err != nil {
		return "", err
	}

	hash, err := fileutil.CopyFile(c.fs, path, dst)
	if err != nil {
		return "", errors.Wrapf(err, "backing up %s", path)
	}

	c.logger.Debug("backup created", "source", path, "backup", dst, "sha256", hash)
	return dst, nil
}

// freeName returns candidate, or candidate with the first free counter suffix.
func (c *Copier) freeName(candidate string) (string, error) {
	name := candidate
	for i := 1; ; i++ {
		ok, err := afero.Exists(c.fs, name)
		if err != nil {
			return "", errors.Wrapf(err, "checking %s", name)
		}
		if !ok {
			return name, nil
		}
		name = candidate + "-" + strconv.Itoa(i)
	}
}

// Suffix renders ext as a strftime pattern at t. A plain string without
// verbs is returned unchanged.
func Suffix(ext string, t time.Time) (string, error) {
	s, err := strftime.Format(ext, t)
	if err != nil {
		return "", errors.Wrapf(ErrInvalidExt, "%q: %v", ext, err)
	}
	return s, nil
}
