// Package session implements the load, mutate and commit lifecycle of a
// single text buffer.
//
// A Session is created with [New], optionally loading an existing file, is
// changed with [Session.Append], [Session.Insert], [Session.Delete] and
// [Session.Substitute], and ends with exactly one call to [Session.Quit],
// which either writes the buffer or abandons it. Backups follow the
// [backup.Policy] resolved from the session's tokens: at load time the source
// file is copied right after it is read; at save time whatever occupies the
// destination is copied right before it is replaced.
//
//	s, err := session.New(session.WithPath("/etc/hosts"), session.WithBackup(backup.Ext(".bak")))
//	if err != nil {
//		return err
//	}
//	if _, err := s.Delete(`^#`); err != nil {
//		return err
//	}
//	return s.Quit()
//
// A Session is not safe for concurrent use.
package session
