package commands

import (
	"github.com/thoreinstein/txed/internal/backup"
	"github.com/thoreinstein/txed/internal/config"
	"github.com/thoreinstein/txed/internal/errors"
	"github.com/thoreinstein/txed/internal/script"
	"github.com/thoreinstein/txed/internal/session"
	"github.com/thoreinstein/txed/pkg/fileutil"
)

// userFacing attaches an exit code and suggestion to errors that reach the
// top of the command tree. Errors that already carry a code pass through.
func userFacing(err error) error {
	if errors.HasExitCode(err) {
		return err
	}

	var parseErr *script.ParseError
	switch {
	case errors.Is(err, session.ErrOverwriteAmbiguity):
		return errors.NewUserError(err, "load the existing file instead of passing new content")
	case errors.Is(err, session.ErrMissingDestination):
		return errors.NewUserError(err, "pass --output or set path in the script")
	case errors.Is(err, session.ErrIndexOutOfRange):
		return errors.NewUserError(err, "check the --at value against the file length")
	case errors.Is(err, session.ErrInvalidPattern):
		return errors.NewUserError(err, "patterns use Go regexp syntax")
	case errors.As(err, &parseErr), errors.Is(err, script.ErrInvalidScript):
		return errors.NewUserError(err, "")
	case errors.Is(err, fileutil.ErrFileTooLarge):
		return errors.NewUserError(err, "raise max_file_size in the config file")
	case errors.Is(err, config.ErrInvalidNewline):
		return errors.NewUserError(err, "use lf, crlf, or cr")
	case errors.Is(err, backup.ErrNoBackupsFound), errors.Is(err, errors.ErrNotFound):
		return errors.NewUserError(err, "")
	case errors.Is(err, errors.ErrInvalidArgument):
		return errors.NewUserError(err, "Run: txed --help")
	}
	return errors.NewSystemError(err, "")
}
