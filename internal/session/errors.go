package session

import (
	"github.com/cockroachdb/errors"

	"github.com/thoreinstein/txed/internal/lineops"
)

// Sentinel errors returned by Session operations.
var (
	// ErrOverwriteAmbiguity indicates initial content was given for a path
	// that already exists on disk.
	ErrOverwriteAmbiguity = errors.New("file exists and initial content was given")

	// ErrClosed indicates the session was already committed or abandoned.
	ErrClosed = errors.New("session is already closed")

	// ErrMissingDestination indicates a commit had no path to write to.
	ErrMissingDestination = errors.New("no path specified, content will be lost")

	// ErrIndexOutOfRange indicates an insert position outside 0..Len().
	ErrIndexOutOfRange = errors.New("insert index out of range")

	// ErrInvalidPattern indicates a regular expression failed to compile.
	ErrInvalidPattern = lineops.ErrInvalidPattern
)
