package session

import (
	"github.com/cockroachdb/errors"

	"github.com/thoreinstein/txed/internal/backup"
	"github.com/thoreinstein/txed/pkg/fileutil"
)

// Quit ends the session. By default the buffer is written to the session
// path, after backing up the file there if the policy fires at save time.
//
// The session is closed before anything else happens, so it is closed even
// when Quit abandons the buffer or fails. A second call returns ErrClosed.
// Without a session path or WithTarget, Quit returns ErrMissingDestination.
// A failed backup aborts the commit before the destination is touched.
func (s *Session) Quit(opts ...QuitOption) error {
	if s.closed {
		return ErrClosed
	}
	s.closed = true

	q := quitSettings{save: true}
	for _, opt := range opts {
		opt(&q)
	}

	if !q.save {
		s.logger.Debug("buffer abandoned", "path", s.path, "lines", len(s.lines))
		return nil
	}

	if q.hasTokens {
		s.policy = backup.Resolve(q.tokens...)
	}

	target := q.target
	if target == "" {
		target = s.path
	}
	if target == "" {
		return errors.WithStack(ErrMissingDestination)
	}

	exists, err := fileutil.Exists(s.fs, target)
	if err != nil {
		return err
	}
	if exists && s.policy.Timing == backup.AtSave {
		if err := s.runBackup(target); err != nil {
			return errors.Wrap(err, "commit aborted")
		}
	}

	nl := q.newline
	if nl == "" {
		nl = s.newline
	}

	if err := fileutil.WriteLines(s.fs, target, s.lines, nl); err != nil {
		return errors.Wrapf(err, "writing %s", target)
	}

	s.logger.Debug("buffer committed", "path", target, "lines", len(s.lines))
	return nil
}
