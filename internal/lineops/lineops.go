// Package lineops provides the regular expression helpers used to search and
// rewrite buffer lines.
//
// Patterns use Go's RE2 syntax and match anywhere in a line. Replacement
// strings use the template syntax of [regexp.Regexp.Expand], so "$1" and
// "${name}" refer to submatches.
package lineops

import (
	"regexp"
	"strings"

	"github.com/cockroachdb/errors"
)

// ErrInvalidPattern indicates a pattern failed to compile.
var ErrInvalidPattern = errors.New("invalid regex pattern")

// Compile compiles pattern, wrapping failures in ErrInvalidPattern.
func Compile(pattern string) (*regexp.Regexp, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidPattern, "%q: %v", pattern, err)
	}
	return re, nil
}

// Partition splits lines into those re matches and those it doesn't, both
// in their original order.
func Partition(re *regexp.Regexp, lines []string) (matched, rest []string) {
	matched = []string{}
	rest = make([]string, 0, len(lines))
	for _, l := range lines {
		if re.MatchString(l) {
			matched = append(matched, l)
		} else {
			rest = append(rest, l)
		}
	}
	return matched, rest
}

// Replace replaces matches of re in line with the expanded template repl.
// At most limit matches are replaced; zero or less means all of them.
func Replace(re *regexp.Regexp, line, repl string, limit int) string {
	n := -1
	if limit > 0 {
		n = limit
	}

	matches := re.FindAllStringSubmatchIndex(line, n)
	if len(matches) == 0 {
		return line
	}

	var b strings.Builder
	var dst []byte
	last := 0
	for _, m := range matches {
		b.WriteString(line[last:m[0]])
		dst = re.ExpandString(dst[:0], repl, line, m)
		b.Write(dst)
		last = m[1]
	}
	b.WriteString(line[last:])
	return b.String()
}

// ReplaceAll applies Replace to every line and returns a new slice of the
// same length.
func ReplaceAll(re *regexp.Regexp, lines []string, repl string, limit int) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = Replace(re, l, repl, limit)
	}
	return out
}
