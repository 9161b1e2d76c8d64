package config

import (
	"strings"

	"github.com/thoreinstein/txed/internal/errors"
)

// ErrInvalidNewline indicates a newline setting that is neither a known name
// nor made only of '\r' and '\n'.
var ErrInvalidNewline = errors.New("invalid newline")

var newlineNames = map[string]string{
	"":     "\n",
	"lf":   "\n",
	"crlf": "\r\n",
	"cr":   "\r",
}

// ParseNewline converts a newline setting to the terminator it names.
// Names are case-insensitive; escaped literals such as `\r\n` are accepted.
func ParseNewline(s string) (string, error) {
	if nl, ok := newlineNames[strings.ToLower(s)]; ok {
		return nl, nil
	}

	lit := strings.NewReplacer(`\r`, "\r", `\n`, "\n").Replace(s)
	if strings.Trim(lit, "\r\n") != "" {
		return "", errors.Wrapf(ErrInvalidNewline, "%q (valid: lf, crlf, cr)", s)
	}
	return lit, nil
}

// NewlineName returns the name for a terminator, or its escaped form.
func NewlineName(nl string) string {
	switch nl {
	case "\n":
		return "lf"
	case "\r\n":
		return "crlf"
	case "\r":
		return "cr"
	default:
		return strings.NewReplacer("\r", `\r`, "\n", `\n`).Replace(nl)
	}
}
