// Package script runs edit scripts: a file plus an ordered list of buffer
// operations, written in TOML or YAML, applied through one session and
// committed once.
//
// TOML:
//
//	path = "/etc/hosts"
//	backup = ["load", ".bak"]
//
//	[[ops]]
//	op = "delete"
//	pattern = "^#"
//
//	[[ops]]
//	op = "sub"
//	pattern = "localhost"
//	replace = "loopback"
//	limit = 1
//
// YAML:
//
//	path: /etc/hosts
//	newline: crlf
//	ops:
//	  - op: append
//	    line: 127.0.0.1 example.test
//	  - op: insert
//	    line: "# managed by txed"
//	    at: 0
package script
