// Package errors is the error vocabulary of txed.
//
// It re-exports the [github.com/cockroachdb/errors] helpers the module uses,
// so `errors.Is` also sees through joined errors, and it defines the
// [ExitError] that the CLI turns into an exit status and a suggestion line:
//
//	return errors.NewUserError(err, "pass --output or set path in the script")
//
// ExitUser (1) is for problems the user can fix by changing input or config.
// ExitSystem (2) covers I/O failures and anything unclassified.
package errors
