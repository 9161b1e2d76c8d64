package commands

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/spf13/afero"

	"github.com/thoreinstein/txed/internal/backup"
	"github.com/thoreinstein/txed/internal/errors"
	"github.com/thoreinstein/txed/internal/session"
)

func countBackups(t *testing.T, fsys afero.Fs, path string) int {
	t.Helper()
	entries, err := backup.List(fsys, path, backup.DefaultExt)
	if errors.Is(err, backup.ErrNoBackupsFound) {
		return 0
	}
	if err != nil {
		t.Fatal(err)
	}
	return len(entries)
}

func TestAppend_CreatesFile(t *testing.T) {
	fsys := afero.NewMemMapFs()

	out, _, err := run(t, fsys, "append", "/work/notes.txt", "one", "two")
	if err != nil {
		t.Fatalf("append failed: %v", err)
	}

	if got := readFile(t, fsys, "/work/notes.txt"); got != "one\ntwo\n" {
		t.Errorf("content = %q, want %q", got, "one\ntwo\n")
	}
	if !strings.Contains(out, "Wrote /work/notes.txt (2 lines)") {
		t.Errorf("unexpected output: %q", out)
	}
	if strings.Contains(out, "backup:") {
		t.Errorf("new file should not report a backup: %q", out)
	}
}

func TestAppend_BacksUpExistingFile(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeFile(t, fsys, "/work/notes.txt", "one\n")

	out, _, err := run(t, fsys, "append", "/work/notes.txt", "two")
	if err != nil {
		t.Fatalf("append failed: %v", err)
	}

	if got := readFile(t, fsys, "/work/notes.txt"); got != "one\ntwo\n" {
		t.Errorf("content = %q", got)
	}
	if n := countBackups(t, fsys, "/work/notes.txt"); n != 1 {
		t.Fatalf("expected 1 backup, got %d", n)
	}
	if !strings.Contains(out, "backup: /work/notes.txt.") {
		t.Errorf("expected backup path in output: %q", out)
	}
}

func TestAppend_BackupFlagSuffix(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeFile(t, fsys, "/work/notes.txt", "one\n")

	if _, _, err := run(t, fsys, "append", "/work/notes.txt", "two", "--backup", ".bak"); err != nil {
		t.Fatalf("append failed: %v", err)
	}

	if got := readFile(t, fsys, "/work/notes.txt.bak"); got != "one\n" {
		t.Errorf("backup content = %q, want %q", got, "one\n")
	}
}

func TestAppend_NoBackup(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeFile(t, fsys, "/work/notes.txt", "one\n")

	if _, _, err := run(t, fsys, "append", "/work/notes.txt", "two", "--no-backup"); err != nil {
		t.Fatalf("append failed: %v", err)
	}
	if n := countBackups(t, fsys, "/work/notes.txt"); n != 0 {
		t.Errorf("expected no backups, got %d", n)
	}
}

func TestAppend_Quiet(t *testing.T) {
	fsys := afero.NewMemMapFs()

	out, _, err := run(t, fsys, "-q", "append", "/work/notes.txt", "one")
	if err != nil {
		t.Fatalf("append failed: %v", err)
	}
	if out != "" {
		t.Errorf("expected no output with --quiet, got %q", out)
	}
}

func TestInsert(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeFile(t, fsys, "/work/list.txt", "a\nd\n")

	if _, _, err := run(t, fsys, "insert", "/work/list.txt", "b", "c", "--at", "1", "--no-backup"); err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if got := readFile(t, fsys, "/work/list.txt"); got != "a\nb\nc\nd\n" {
		t.Errorf("content = %q, want %q", got, "a\nb\nc\nd\n")
	}
}

func TestInsert_OutOfRange(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeFile(t, fsys, "/work/list.txt", "a\n")

	_, _, err := run(t, fsys, "insert", "/work/list.txt", "x", "--at", "5")
	if !errors.Is(err, session.ErrIndexOutOfRange) {
		t.Fatalf("expected ErrIndexOutOfRange, got %v", err)
	}
	if got := readFile(t, fsys, "/work/list.txt"); got != "a\n" {
		t.Errorf("file should be unchanged, got %q", got)
	}
	if n := countBackups(t, fsys, "/work/list.txt"); n != 0 {
		t.Errorf("failed edit should not leave a backup, got %d", n)
	}
	if code := errors.ExitCode(userFacing(err)); code != errors.ExitUser {
		t.Errorf("exit code = %d, want %d", code, errors.ExitUser)
	}
}

func TestDelete(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeFile(t, fsys, "/work/app.ini", "; comment\nkey=1\n  ; indented\nother=2\n")

	_, stderr, err := run(t, fsys, "delete", "/work/app.ini", `^\s*;`, "--show", "--no-backup")
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if got := readFile(t, fsys, "/work/app.ini"); got != "key=1\nother=2\n" {
		t.Errorf("content = %q", got)
	}
	if !strings.Contains(stderr, "- ; comment\n-   ; indented\n") {
		t.Errorf("--show output = %q", stderr)
	}
}

func TestDelete_NoMatchLeavesFile(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeFile(t, fsys, "/work/app.ini", "key=1\n")

	out, _, err := run(t, fsys, "delete", "/work/app.ini", "^#")
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if !strings.Contains(out, "No lines matched.") {
		t.Errorf("output = %q", out)
	}
	if n := countBackups(t, fsys, "/work/app.ini"); n != 0 {
		t.Errorf("expected no backups, got %d", n)
	}
}

func TestDelete_DryRun(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeFile(t, fsys, "/work/app.ini", "# c\nkey=1\n")

	out, _, err := run(t, fsys, "delete", "/work/app.ini", "^#", "--dry-run")
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if out != "key=1\n" {
		t.Errorf("dry-run output = %q, want %q", out, "key=1\n")
	}
	if got := readFile(t, fsys, "/work/app.ini"); got != "# c\nkey=1\n" {
		t.Errorf("dry run modified file: %q", got)
	}
	if n := countBackups(t, fsys, "/work/app.ini"); n != 0 {
		t.Errorf("dry run wrote %d backups", n)
	}
}

func TestSub(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeFile(t, fsys, "/work/names.txt", "ada lovelace\nalan turing\n")

	if _, _, err := run(t, fsys, "sub", "/work/names.txt", `(\w+) (\w+)`, "$2, $1", "--no-backup"); err != nil {
		t.Fatalf("sub failed: %v", err)
	}
	want := "lovelace, ada\nturing, alan\n"
	if got := readFile(t, fsys, "/work/names.txt"); got != want {
		t.Errorf("content = %q, want %q", got, want)
	}
}

func TestSub_Limit(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeFile(t, fsys, "/work/e.txt", "eee\nbee\n")

	if _, _, err := run(t, fsys, "sub", "/work/e.txt", "e", "E", "--limit", "1", "--no-backup"); err != nil {
		t.Fatalf("sub failed: %v", err)
	}
	if got := readFile(t, fsys, "/work/e.txt"); got != "Eee\nbEe\n" {
		t.Errorf("content = %q, want %q", got, "Eee\nbEe\n")
	}
}

func TestSub_InvalidPattern(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeFile(t, fsys, "/work/e.txt", "x\n")

	_, _, err := run(t, fsys, "sub", "/work/e.txt", "(", "y")
	if !errors.Is(err, session.ErrInvalidPattern) {
		t.Fatalf("expected ErrInvalidPattern, got %v", err)
	}
}

func TestSub_NewlineAndOutput(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeFile(t, fsys, "/work/unix.txt", "foo\nbar\n")

	_, _, err := run(t, fsys, "sub", "/work/unix.txt", "foo", "baz",
		"--newline", "crlf", "-o", "/work/dos.txt")
	if err != nil {
		t.Fatalf("sub failed: %v", err)
	}
	if got := readFile(t, fsys, "/work/dos.txt"); got != "baz\r\nbar\r\n" {
		t.Errorf("output content = %q", got)
	}
	if got := readFile(t, fsys, "/work/unix.txt"); got != "foo\nbar\n" {
		t.Errorf("source should be untouched, got %q", got)
	}
}

func TestEditFlags_InvalidNewline(t *testing.T) {
	fsys := afero.NewMemMapFs()

	_, _, err := run(t, fsys, "append", "/work/x.txt", "a", "--newline", "tab")
	if !errors.Is(err, errors.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestEdit_WithConfiguredEditor(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("skipping on windows (uses shell script mock)")
	}
	script := filepath.Join(t.TempDir(), "mock-editor.sh")
	if err := os.WriteFile(script, []byte("#!/bin/sh\nprintf 'edited\\n' > \"$1\"\n"), 0o755); err != nil {
		t.Fatal(err)
	}

	fsys := afero.NewMemMapFs()
	writeFile(t, fsys, "/work/doc.txt", "original\n")
	t.Setenv("TXED_EDITOR", script)

	if _, _, err := run(t, fsys, "edit", "/work/doc.txt", "--no-backup"); err != nil {
		t.Fatalf("edit failed: %v", err)
	}
	if got := readFile(t, fsys, "/work/doc.txt"); got != "edited\n" {
		t.Errorf("content = %q, want %q", got, "edited\n")
	}
}
