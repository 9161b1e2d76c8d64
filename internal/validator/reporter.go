package validator

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/fatih/color"
)

// Format specifies the output format for reports.
type Format string

const (
	// FormatText produces human-readable text output.
	FormatText Format = "text"
	// FormatJSON produces machine-readable JSON output.
	FormatJSON Format = "json"
)

// maxValueLen caps how much of an issue's value is printed.
const maxValueLen = 50

// Reporter formats and writes check results.
type Reporter struct {
	out    io.Writer
	format Format
}

// NewReporter creates a new Reporter.
func NewReporter(out io.Writer, format Format) *Reporter {
	return &Reporter{
		out:    out,
		format: format,
	}
}

// Report writes the result to the output.
func (r *Reporter) Report(result *Result) error {
	if result == nil {
		return nil
	}

	switch r.format {
	case FormatJSON:
		return r.reportJSON(result)
	default:
		return r.reportText(result)
	}
}

func (r *Reporter) reportJSON(result *Result) error {
	out := *result
	out.Issues = result.Sorted()
	if out.Issues == nil {
		out.Issues = []Issue{}
	}
	encoder := json.NewEncoder(r.out)
	encoder.SetIndent("", "  ")
	return errors.Wrap(encoder.Encode(out), "encoding JSON report")
}

func (r *Reporter) reportText(result *Result) error {
	errs := result.Count(SeverityError)
	warns := result.Count(SeverityWarning)

	for _, i := range result.Sorted() {
		r.printIssue(i)
	}

	if errs == 0 && warns == 0 {
		fmt.Fprintln(r.out, color.GreenString("✓ %s: no problems found", result.Source))
		return nil
	}

	var summary []string
	if errs > 0 {
		summary = append(summary, color.RedString("%d error(s)", errs))
	}
	if warns > 0 {
		summary = append(summary, color.YellowString("%d warning(s)", warns))
	}
	fmt.Fprintf(r.out, "%s: %s\n", result.Source, strings.Join(summary, ", "))
	return nil
}

func (r *Reporter) printIssue(i Issue) {
	var label string
	switch i.Severity {
	case SeverityError:
		label = color.RedString("error")
	case SeverityWarning:
		label = color.YellowString("warning")
	default:
		label = color.New(color.FgHiBlack).Sprint("info")
	}

	var sb strings.Builder
	sb.WriteString("  ")
	sb.WriteString(label)
	sb.WriteString(" ")
	if loc := i.Location(); loc != "" {
		sb.WriteString(color.New(color.Bold).Sprint(loc))
		sb.WriteString(": ")
	}
	sb.WriteString(i.Message)

	if i.Value != nil {
		valStr := fmt.Sprintf("%v", i.Value)
		if len(valStr) > maxValueLen {
			valStr = valStr[:maxValueLen-3] + "..."
		}
		sb.WriteString(color.New(color.FgHiBlack).Sprintf(" [%s]", valStr))
	}

	fmt.Fprintln(r.out, sb.String())
}
