// Package validator collects the problems found while checking an edit
// script and reports them as text or JSON.
//
// Issues carry the index of the op they concern, or NoOp for problems with
// the script as a whole:
//
//	result := &validator.Result{Source: "edits.toml"}
//	result.Add(validator.SeverityError, 2, "at", "index out of range", 9)
//
//	if result.HasErrors() {
//		// refuse to run the script
//	}
package validator
