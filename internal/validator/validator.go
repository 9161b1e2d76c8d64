package validator

import (
	"fmt"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
)

// NoOp is the op index of an issue that concerns the whole script.
const NoOp = -1

// ErrCheckFailed is returned by Result.Err when any issue is an error.
var ErrCheckFailed = errors.New("script check failed")

// Severity represents the impact of an issue.
type Severity int

const (
	// SeverityError means the script would fail or write nothing useful.
	SeverityError Severity = iota
	// SeverityWarning means the script runs but probably not as intended.
	SeverityWarning
	// SeverityInfo is an informational note.
	SeverityInfo
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	default:
		return "unknown"
	}
}

// MarshalText encodes the severity by name.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a severity name.
func (s *Severity) UnmarshalText(b []byte) error {
	switch string(b) {
	case "error":
		*s = SeverityError
	case "warning":
		*s = SeverityWarning
	case "info":
		*s = SeverityInfo
	default:
		return errors.Newf("unknown severity %q", b)
	}
	return nil
}

// Issue is a single problem found in a script.
type Issue struct {
	Severity Severity `json:"severity"`
	// Op is the index into the script's ops, or NoOp.
	Op      int    `json:"op"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
	Value   any    `json:"value,omitempty"`
}

// Location names where the issue is, such as "ops[2].pattern" or "backup".
func (i Issue) Location() string {
	var parts []string
	if i.Op != NoOp {
		parts = append(parts, fmt.Sprintf("ops[%d]", i.Op))
	}
	if i.Field != "" {
		parts = append(parts, i.Field)
	}
	return strings.Join(parts, ".")
}

// Error implements the error interface.
func (i Issue) Error() string {
	var sb strings.Builder
	sb.WriteString(i.Severity.String())
	sb.WriteString(": ")
	if loc := i.Location(); loc != "" {
		sb.WriteString(loc)
		sb.WriteString(": ")
	}
	sb.WriteString(i.Message)
	if i.Value != nil {
		fmt.Fprintf(&sb, " (got %v)", i.Value)
	}
	return sb.String()
}

// Result aggregates the issues found in one script.
type Result struct {
	Source string  `json:"source"`
	Issues []Issue `json:"issues"`
}

// Add records an issue.
func (r *Result) Add(sev Severity, op int, field, message string, value any) {
	r.Issues = append(r.Issues, Issue{
		Severity: sev,
		Op:       op,
		Field:    field,
		Message:  message,
		Value:    value,
	})
}

// Count returns how many issues have severity sev.
func (r *Result) Count(sev Severity) int {
	if r == nil {
		return 0
	}
	n := 0
	for _, i := range r.Issues {
		if i.Severity == sev {
			n++
		}
	}
	return n
}

// HasErrors reports whether any issue is an error.
func (r *Result) HasErrors() bool {
	return r.Count(SeverityError) > 0
}

// Sorted returns the issues ordered by op, script-level issues first.
// Issues on the same op keep the order they were added in.
func (r *Result) Sorted() []Issue {
	if r == nil {
		return nil
	}
	issues := slices.Clone(r.Issues)
	slices.SortStableFunc(issues, func(a, b Issue) int {
		return a.Op - b.Op
	})
	return issues
}

// Err returns nil when there are no errors, or ErrCheckFailed carrying the
// first error issue.
func (r *Result) Err() error {
	for _, i := range r.Sorted() {
		if i.Severity == SeverityError {
			return errors.Wrapf(ErrCheckFailed, "%s: %d error(s), first: %s",
				r.Source, r.Count(SeverityError), i.Error())
		}
	}
	return nil
}
