// Package backup resolves backup policies and performs the file copies that
// protect content before txed overwrites it.
//
// # Backup Policy
//
// A policy is built from zero or more [Token] values:
//
//   - [Load] or [Save]: when the backup fires (at load time or at save time)
//   - [Ext]: the suffix appended to the backed up path, as a strftime pattern
//     or a literal string
//   - [Func]: a custom [Action] that replaces the built-in copy
//
// [Resolve] folds the tokens into a [Policy]. It never fails: a later timing
// token replaces an earlier one, and nil or foreign tokens are ignored.
//
//	p := backup.Resolve(backup.Load(), backup.Ext("~"))
//	// p.Timing == backup.AtLoad, p.Ext == "~"
//
// Raw strings from flags and config files go through [ParseToken], which
// treats "load" and "save" as timing keywords and everything else as an
// extension.
//
// # Built-in Copy
//
// [Copier.Copy] copies path to path + strftime(ext, now):
//
//	c := backup.NewCopier()
//	dst, err := c.Copy("/etc/hosts", backup.DefaultExt)
//	// dst == "/etc/hosts.2026.1019.093715"
//
// If that name is already taken, a counter is added ("-1", "-2", ...) so an
// earlier backup is never overwritten.
//
// # Housekeeping
//
// [List] finds the backups a given extension produced for a file (newest first),
// [Prune] removes all but the newest N, and [Restore] copies a backup back over
// the file after backing up whatever is there now.
package backup
