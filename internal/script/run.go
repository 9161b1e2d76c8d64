package script

import (
	"github.com/thoreinstein/txed/internal/backup"
	"github.com/thoreinstein/txed/internal/config"
	"github.com/thoreinstein/txed/internal/errors"
	"github.com/thoreinstein/txed/internal/session"
)

// Result summarizes a script run.
type Result struct {
	// Deleted holds every line removed by delete ops, in order.
	Deleted []string

	// Lines is the final buffer.
	Lines []string

	// Written is the committed path, or "" when the buffer was abandoned.
	Written string

	// BackupPath is the file written by the built-in backup, if one ran.
	BackupPath string
}

// Run applies the script through a single session and commits once.
// opts configure the session (filesystem, logger, configured defaults);
// the script's own path, newline and backup tokens are applied after them.
// If an op fails the buffer is abandoned and nothing is written.
func (s *Script) Run(opts ...session.Option) (*Result, error) {
	sessOpts := append([]session.Option{}, opts...)
	if s.Path != "" {
		sessOpts = append(sessOpts, session.WithPath(s.Path))
	}
	if s.Newline != "" {
		nl, err := config.ParseNewline(s.Newline)
		if err != nil {
			return nil, err
		}
		sessOpts = append(sessOpts, session.WithNewline(nl))
	}
	if len(s.Backup) > 0 {
		sessOpts = append(sessOpts, session.WithBackup(backup.ParseTokens(s.Backup)...))
	}

	sess, err := session.New(sessOpts...)
	if err != nil {
		return nil, err
	}

	res := &Result{Deleted: []string{}}
	for i, op := range s.Ops {
		if err := apply(sess, op, res); err != nil {
			_ = sess.Quit(session.WithoutSave())
			return nil, errors.Wrapf(err, "ops[%d] %s", i, op.Op)
		}
	}
	res.Lines = sess.Lines()

	if !s.ShouldSave() {
		return res, sess.Quit(session.WithoutSave())
	}

	var quitOpts []session.QuitOption
	if s.Output != "" {
		quitOpts = append(quitOpts, session.WithTarget(s.Output))
	}
	if err := sess.Quit(quitOpts...); err != nil {
		return nil, err
	}

	res.Written = s.Output
	if res.Written == "" {
		res.Written = s.Path
	}
	res.BackupPath, _ = sess.BackupPath()
	return res, nil
}

func apply(sess *session.Session, op Op, res *Result) error {
	switch op.Op {
	case OpAppend:
		return sess.Append(op.Line)
	case OpInsert:
		return sess.Insert(op.Line, op.At)
	case OpDelete:
		removed, err := sess.Delete(op.Pattern)
		if err != nil {
			return err
		}
		res.Deleted = append(res.Deleted, removed...)
		return nil
	case OpSub:
		return sess.Substitute(op.Pattern, op.Replace, op.Limit)
	default:
		return errors.Wrapf(ErrInvalidScript, "unknown op %q", op.Op)
	}
}
