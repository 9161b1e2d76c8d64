package fileutil

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"

	"github.com/spf13/afero"

	"github.com/thoreinstein/txed/internal/errors"
)

// CopyFile copies src to dst on fsys and returns the hex SHA256 of the copied
// bytes. The destination gets the source's permission bits and modification
// time, so a copy looks like the file it was taken from.
func CopyFile(fsys afero.Fs, src, dst string) (string, error) {
	srcFile, err := fsys.Open(src)
	if err != nil {
		return "", errors.Wrap(err, "opening source file")
	}
	defer srcFile.Close()

	srcInfo, err := srcFile.Stat()
	if err != nil {
		return "", errors.Wrap(err, "stat source file")
	}

	dstFile, err := fsys.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, DefaultFilePerm)
	if err != nil {
		return "", errors.Wrap(err, "creating destination file")
	}

	// Compute hash while copying
	h := sha256.New()
	w := io.MultiWriter(dstFile, h)

	if _, err := io.Copy(w, srcFile); err != nil {
		dstFile.Close()
		return "", errors.Wrap(err, "copying file")
	}

	if err := dstFile.Close(); err != nil {
		return "", errors.Wrap(err, "closing destination file")
	}

	if err := fsys.Chmod(dst, srcInfo.Mode().Perm()); err != nil {
		return "", errors.Wrap(err, "setting permissions")
	}

	if err := fsys.Chtimes(dst, srcInfo.ModTime(), srcInfo.ModTime()); err != nil {
		return "", errors.Wrap(err, "setting modification time")
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}
