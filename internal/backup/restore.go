package backup

import (
	"github.com/cockroachdb/errors"
	"github.com/spf13/afero"

	"github.com/thoreinstein/txed/pkg/fileutil"
)

// Restore writes the content of backupPath over path atomically, so an
// interrupted restore leaves path as it was. Whatever currently sits at path is
// backed up first with c and ext, and that new backup's path is returned
// (empty when path did not exist).
func (c *Copier) Restore(path, backupPath, ext string) (string, error) {
	if path == "" {
		return "", errors.New("path is required")
	}
	if backupPath == "" {
		return "", errors.New("backup path is required")
	}
	if ext == "" {
		ext = DefaultExt
	}

	if ok, err := afero.Exists(c.fs, backupPath); err != nil {
		return "", errors.Wrapf(err, "checking %s", backupPath)
	} else if !ok {
		return "", errors.Wrapf(ErrNoBackupsFound, "%s does not exist", backupPath)
	}

	var saved string
	exists, err := afero.Exists(c.fs, path)
	if err != nil {
		return "", errors.Wrapf(err, "checking %s", path)
	}
	if exists {
		saved, err = c.Copy(path, ext)
		if err != nil {
			return "", errors.Wrap(err, "saving current content before restore")
		}
	}

	info, err := c.fs.Stat(backupPath)
	if err != nil {
		return saved, errors.Wrapf(err, "stat %s", backupPath)
	}
	data, err := afero.ReadFile(c.fs, backupPath)
	if err != nil {
		return saved, errors.Wrapf(err, "reading %s", backupPath)
	}
	if err := fileutil.AtomicWriteFile(c.fs, path, data, info.Mode().Perm()); err != nil {
		return saved, errors.Wrapf(err, "restoring %s", path)
	}

	c.logger.Debug("backup restored", "path", path, "from", backupPath, "saved", saved)
	return saved, nil
}
