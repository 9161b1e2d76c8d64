package backup

import (
	"github.com/cockroachdb/errors"
)

// DefaultExt is the backup suffix used when no extension token is given.
// It renders as ".YYYY.mmdd.HHMMSS".
const DefaultExt = ".%Y.%m%d.%H%M%S"

// Sentinel errors for backup operations.
var (
	// ErrNoBackupsFound indicates no backups exist for the specified file.
	ErrNoBackupsFound = errors.New("no backups found")

	// ErrInvalidExt indicates the extension pattern could not be rendered.
	ErrInvalidExt = errors.New("invalid backup extension")
)

// Timing selects when a backup fires.
type Timing int

const (
	// AtSave backs up the destination right before the buffer is written.
	AtSave Timing = iota

	// AtLoad backs up the source right after it is read.
	AtLoad
)

// String returns the keyword that selects the timing.
func (t Timing) String() string {
	if t == AtLoad {
		return "load"
	}
	return "save"
}

// Action is a custom backup procedure. It receives the resolved extension
// and is responsible for finding the file itself.
type Action func(ext string) error

// Token is one element of a backup specification.
type Token interface {
	isToken()
}

type timingToken Timing

type extToken string

type funcToken Action

func (timingToken) isToken() {}
func (extToken) isToken() {}
func (funcToken) isToken() {}

// Load returns the token that makes backups fire at load time.
func Load() Token { return timingToken(AtLoad) }

// Save returns the token that makes backups fire at save time.
func Save() Token { return timingToken(AtSave) }

// Ext returns a token that sets the backup suffix. The suffix may use
// strftime verbs such as %Y or be a plain string like "~" or ".bak".
func Ext(s string) Token { return extToken(s) }

// Func returns a token that replaces the built-in copy with a.
func Func(a Action) Token { return funcToken(a) }

// Policy is a resolved backup specification.
type Policy struct {
	// Timing is when the backup fires.
	Timing Timing

	// Ext is the suffix handed to the action.
	Ext string

	// Action is the custom backup procedure, or nil for the built-in copy.
	Action Action
}

// Custom reports whether the policy uses a caller-supplied action.
func (p Policy) Custom() bool {
	return p.Action != nil
}
