package commands

import (
	"strings"
	"testing"

	"github.com/spf13/afero"

	"github.com/thoreinstein/txed/internal/errors"
	"github.com/thoreinstein/txed/internal/script"
)

const hostsScript = `
path = "hosts"
backup = [".bak"]

[[ops]]
op = "delete"
pattern = "^#"

[[ops]]
op = "append"
line = "127.0.0.1 example.test"
`

func TestApply(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeFile(t, fsys, "/etc/hosts", "# comment\n127.0.0.1 localhost\n")
	writeFile(t, fsys, "/etc/edits.toml", hostsScript)

	out, _, err := run(t, fsys, "apply", "/etc/edits.toml")
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}

	want := "127.0.0.1 localhost\n127.0.0.1 example.test\n"
	if got := readFile(t, fsys, "/etc/hosts"); got != want {
		t.Errorf("content = %q, want %q", got, want)
	}
	if got := readFile(t, fsys, "/etc/hosts.bak"); got != "# comment\n127.0.0.1 localhost\n" {
		t.Errorf("backup content = %q", got)
	}
	for _, s := range []string{"Wrote /etc/hosts (2 lines, 2 ops)", "backup: /etc/hosts.bak", "deleted: 1 lines"} {
		if !strings.Contains(out, s) {
			t.Errorf("output missing %q:\n%s", s, out)
		}
	}
}

func TestApply_DryRun(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeFile(t, fsys, "/etc/hosts", "# comment\n127.0.0.1 localhost\n")
	writeFile(t, fsys, "/etc/edits.toml", hostsScript)

	out, _, err := run(t, fsys, "apply", "/etc/edits.toml", "--dry-run")
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if out != "127.0.0.1 localhost\n127.0.0.1 example.test\n" {
		t.Errorf("dry-run output = %q", out)
	}
	if got := readFile(t, fsys, "/etc/hosts"); got != "# comment\n127.0.0.1 localhost\n" {
		t.Errorf("dry run modified file: %q", got)
	}
	if ok, _ := afero.Exists(fsys, "/etc/hosts.bak"); ok {
		t.Error("dry run wrote a backup")
	}
}

func TestApply_YAMLWithFormatFlag(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeFile(t, fsys, "/work/a.txt", "x\n")
	writeFile(t, fsys, "/work/edits.script", "path: a.txt\nops:\n  - op: sub\n    pattern: x\n    replace: y\n")

	if _, _, err := run(t, fsys, "apply", "/work/edits.script", "--format", "yaml"); err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if got := readFile(t, fsys, "/work/a.txt"); got != "y\n" {
		t.Errorf("content = %q, want %q", got, "y\n")
	}
}

func TestApply_UnknownExtension(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeFile(t, fsys, "/work/edits.script", "path: a.txt\n")

	_, _, err := run(t, fsys, "apply", "/work/edits.script")
	if !errors.Is(err, errors.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestApply_FailingOpWritesNothing(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeFile(t, fsys, "/work/a.txt", "x\n")
	writeFile(t, fsys, "/work/edits.toml", `
path = "a.txt"

[[ops]]
op = "append"
line = "y"

[[ops]]
op = "insert"
line = "z"
at = 10
`)

	_, _, err := run(t, fsys, "apply", "/work/edits.toml")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "ops[1] insert") {
		t.Errorf("error should name the failing op: %v", err)
	}
	if got := readFile(t, fsys, "/work/a.txt"); got != "x\n" {
		t.Errorf("file should be unchanged, got %q", got)
	}
}

func TestApply_ParseError(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeFile(t, fsys, "/work/bad.toml", "path = \n")

	_, _, err := run(t, fsys, "apply", "/work/bad.toml")
	var parseErr *script.ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
	if code := errors.ExitCode(userFacing(err)); code != errors.ExitUser {
		t.Errorf("exit code = %d, want %d", code, errors.ExitUser)
	}
}
