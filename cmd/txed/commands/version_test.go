package commands

import (
	"runtime"
	"strings"
	"testing"

	"github.com/spf13/afero"

	"github.com/thoreinstein/txed/cmd"
)

func TestVersionCommand(t *testing.T) {
	out, _, err := run(t, afero.NewMemMapFs(), "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}

	for _, want := range []string{
		"txed version " + cmd.Version,
		"go:     " + runtime.Version(),
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "commit:") {
		t.Errorf("unstamped build should not print a commit:\n%s", out)
	}
}

func TestVersionCommand_Stamped(t *testing.T) {
	oldCommit, oldDate := cmd.Commit, cmd.Date
	cmd.Commit, cmd.Date = "abc1234", "2026-01-12"
	t.Cleanup(func() { cmd.Commit, cmd.Date = oldCommit, oldDate })

	out, _, err := run(t, afero.NewMemMapFs(), "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	for _, want := range []string{"txed version " + cmd.Version, "commit: abc1234", "built:  2026-01-12"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestVersionCommand_IgnoresBrokenConfig(t *testing.T) {
	fsys := afero.NewMemMapFs()
	t.Setenv("TXED_NEWLINE", "tab")

	if _, _, err := run(t, fsys, "version"); err != nil {
		t.Errorf("version should run with a broken config: %v", err)
	}
	_, _, err := run(t, fsys, "append", "/work/x.txt", "a")
	if err == nil {
		t.Error("expected a config error for append")
	}
}

func TestVersionFlag(t *testing.T) {
	out, _, err := run(t, afero.NewMemMapFs(), "--version")
	if err != nil {
		t.Fatalf("--version failed: %v", err)
	}
	if out != "txed version "+cmd.Version+"\n" {
		t.Errorf("output = %q", out)
	}
}
