package errors

import (
	"fmt"

	crdb "github.com/cockroachdb/errors"
)

// Process exit codes.
const (
	ExitSuccess = 0
	ExitUser    = 1 // bad input, missing files, broken config
	ExitSystem  = 2 // I/O and everything unexpected
)

// Re-exported helpers so callers only import this package.
var (
	New    = crdb.New
	Newf   = crdb.Newf
	Errorf = crdb.Errorf
	Wrap   = crdb.Wrap
	Wrapf  = crdb.Wrapf
	Is     = crdb.Is
	As     = crdb.As
	Unwrap = crdb.Unwrap
	Join   = crdb.Join
)

var (
	// ErrNotFound indicates the requested file or backup was not found.
	ErrNotFound = crdb.New("resource not found")

	// ErrInvalidConfig indicates configuration validation failed.
	ErrInvalidConfig = crdb.New("invalid configuration")

	// ErrInvalidArgument indicates a command-line argument could not be used.
	ErrInvalidArgument = crdb.New("invalid argument")
)

// ExitError is an error that has reached the top of the command tree and
// knows how the process should end. Suggestion, when set, is printed on its
// own line below the error.
type ExitError struct {
	Err        error
	Code       int
	Suggestion string
}

// NewUserError marks err as caused by the user's input.
func NewUserError(err error, suggestion string) *ExitError {
	return &ExitError{Err: err, Code: ExitUser, Suggestion: suggestion}
}

// NewSystemError marks err as an environment or I/O failure.
func NewSystemError(err error, suggestion string) *ExitError {
	return &ExitError{Err: err, Code: ExitSystem, Suggestion: suggestion}
}

// NewConfigError marks err as a configuration problem.
func NewConfigError(err error) *ExitError {
	return &ExitError{Err: err, Code: ExitUser, Suggestion: "Run: txed config edit"}
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit code %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCode returns the exit code carried by err, ExitSuccess for nil,
// and ExitUser for errors that carry no code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if crdb.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitUser
}

// SuggestionOf returns the suggestion attached anywhere in err's chain.
func SuggestionOf(err error) string {
	var exitErr *ExitError
	if crdb.As(err, &exitErr) {
		return exitErr.Suggestion
	}
	return ""
}

// HasExitCode reports whether err already carries an ExitError.
func HasExitCode(err error) bool {
	var exitErr *ExitError
	return crdb.As(err, &exitErr)
}
