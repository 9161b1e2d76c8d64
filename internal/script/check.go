package script

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/spf13/afero"

	"github.com/thoreinstein/txed/internal/backup"
	"github.com/thoreinstein/txed/internal/errors"
	"github.com/thoreinstein/txed/internal/session"
	"github.com/thoreinstein/txed/internal/validator"
	"github.com/thoreinstein/txed/pkg/fileutil"
)

// Check runs the script against the current content of its file in memory
// and reports what would go wrong. Nothing is written and no backup fires.
// source names the script in the result.
func (s *Script) Check(fsys afero.Fs, source string, maxSize int64) *validator.Result {
	res := &validator.Result{Source: source}

	s.checkBackup(res)
	if !s.ShouldSave() {
		res.Add(validator.SeverityInfo, validator.NoOp, "save", "save is false, the result will be discarded", nil)
	}

	lines, ok := s.checkPath(fsys, res, maxSize)
	if !ok {
		return res
	}

	sess, err := session.New(session.WithLines(lines))
	if err != nil {
		res.Add(validator.SeverityError, validator.NoOp, "", err.Error(), nil)
		return res
	}
	defer func() { _ = sess.Quit(session.WithoutSave()) }()

	for i, op := range s.Ops {
		checkOp(sess, i, op, res)
	}
	return res
}

func (s *Script) checkBackup(res *validator.Result) {
	var timings []string
	for _, raw := range s.Backup {
		switch raw {
		case backup.AtLoad.String(), backup.AtSave.String():
			timings = append(timings, raw)
		default:
			if _, err := backup.Suffix(raw, time.Time{}); err != nil {
				res.Add(validator.SeverityError, validator.NoOp, "backup", "invalid backup suffix", raw)
			}
		}
	}
	if slices.Contains(timings, "load") && slices.Contains(timings, "save") {
		res.Add(validator.SeverityWarning, validator.NoOp, "backup",
			fmt.Sprintf("both load and save given, %s wins", timings[len(timings)-1]),
			strings.Join(timings, ","))
	}
}

// checkPath loads the starting buffer. It reports false when the file
// exists but cannot be read.
func (s *Script) checkPath(fsys afero.Fs, res *validator.Result, maxSize int64) ([]string, bool) {
	if s.Path == "" {
		return nil, true
	}
	exists, err := fileutil.Exists(fsys, s.Path)
	if err != nil {
		res.Add(validator.SeverityError, validator.NoOp, "path", err.Error(), s.Path)
		return nil, false
	}
	if !exists {
		res.Add(validator.SeverityInfo, validator.NoOp, "path", "file does not exist and will be created", s.Path)
		return nil, true
	}
	lines, err := fileutil.ReadLines(fsys, s.Path, maxSize)
	if err != nil {
		res.Add(validator.SeverityError, validator.NoOp, "path", err.Error(), s.Path)
		return nil, false
	}
	return lines, true
}

func checkOp(sess *session.Session, i int, op Op, res *validator.Result) {
	if op.Limit != 0 && op.Op != OpSub {
		res.Add(validator.SeverityWarning, i, "limit", "only sub uses limit", op.Limit)
	}
	if strings.ContainsAny(op.Line, "\r\n") {
		res.Add(validator.SeverityWarning, i, "line", "line contains a line break and will be written as several lines", op.Line)
	}
	if strings.ContainsAny(op.Replace, "\r\n") {
		res.Add(validator.SeverityWarning, i, "replace", "replacement contains a line break and will be written as several lines", op.Replace)
	}

	switch op.Op {
	case OpInsert:
		if err := sess.Insert(op.Line, op.At); errors.Is(err, session.ErrIndexOutOfRange) {
			res.Add(validator.SeverityError, i, "at",
				fmt.Sprintf("index out of range, the buffer will have %d lines", sess.Len()), op.At)
		}
	case OpDelete:
		removed, err := sess.Delete(op.Pattern)
		if err != nil {
			res.Add(validator.SeverityError, i, "pattern", err.Error(), op.Pattern)
		} else if len(removed) == 0 {
			res.Add(validator.SeverityWarning, i, "pattern", "matches no lines", op.Pattern)
		}
	case OpSub:
		before := sess.Lines()
		if err := sess.Substitute(op.Pattern, op.Replace, op.Limit); err != nil {
			res.Add(validator.SeverityError, i, "pattern", err.Error(), op.Pattern)
		} else if slices.Equal(before, sess.Lines()) {
			res.Add(validator.SeverityWarning, i, "pattern", "changes no lines", op.Pattern)
		}
	default:
		if err := apply(sess, op, &Result{}); err != nil {
			res.Add(validator.SeverityError, i, "op", err.Error(), op.Op)
		}
	}
}
