package session

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/txed/internal/backup"
	"github.com/thoreinstein/txed/internal/errors"
	"github.com/thoreinstein/txed/internal/logging"
	"github.com/thoreinstein/txed/pkg/fileutil"
)

var fixedTime = time.Date(2026, 1, 12, 9, 37, 15, 0, time.UTC)

const stamp = ".2026.0112.093715"

func testFs(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()
	fsys := afero.NewMemMapFs()
	for name, content := range files {
		require.NoError(t, afero.WriteFile(fsys, name, []byte(content), 0o644))
	}
	return fsys
}

func newTestSession(t *testing.T, fsys afero.Fs, opts ...Option) *Session {
	t.Helper()
	base := []Option{
		WithFs(fsys),
		WithClock(func() time.Time { return fixedTime }),
		WithLogger(logging.ForTest(t)),
	}
	s, err := New(append(base, opts...)...)
	require.NoError(t, err)
	return s
}

func readFile(t *testing.T, fsys afero.Fs, name string) string {
	t.Helper()
	data, err := afero.ReadFile(fsys, name)
	require.NoError(t, err)
	return string(data)
}

func TestNew_NoPath(t *testing.T) {
	s := newTestSession(t, afero.NewMemMapFs(), WithLines([]string{"x", "y"}))

	assert.Equal(t, []string{"x", "y"}, s.Lines())
	assert.Equal(t, "", s.Path())
	assert.False(t, s.Closed())
	assert.Equal(t, backup.DefaultPolicy(), s.Policy())
}

func TestNew_Empty(t *testing.T) {
	s := newTestSession(t, afero.NewMemMapFs())
	assert.Equal(t, 0, s.Len())
	assert.NotNil(t, s.Lines())
}

func TestNew_MissingPathKeepsContent(t *testing.T) {
	fsys := afero.NewMemMapFs()
	s := newTestSession(t, fsys,
		WithPath("/data/new.txt"),
		WithLines([]string{"one"}),
		WithBackup(backup.Load()),
	)

	assert.Equal(t, []string{"one"}, s.Lines())
	_, ok := s.BackupPath()
	assert.False(t, ok, "no load-time backup for a file that does not exist")

	entries, err := afero.ReadDir(fsys, "/data")
	if err == nil {
		assert.Empty(t, entries)
	}
}

func TestNew_LoadsExistingFile(t *testing.T) {
	fsys := testFs(t, map[string]string{"/data/f": "a\r\nb  \n\tc\n"})
	s := newTestSession(t, fsys, WithPath("/data/f"))

	assert.Equal(t, []string{"a", "b  ", "\tc"}, s.Lines())
	_, ok := s.BackupPath()
	assert.False(t, ok)
}

func TestNew_OverwriteAmbiguity(t *testing.T) {
	fsys := testFs(t, map[string]string{"/data/f": "on disk\n"})

	tests := []struct {
		name string
		opt  Option
	}{
		{"lines", WithLines([]string{"new"})},
		{"content", WithContent("new\n")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(WithFs(fsys), WithPath("/data/f"), tt.opt)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrOverwriteAmbiguity))
			assert.Contains(t, err.Error(), "/data/f")
			assert.Equal(t, "on disk\n", readFile(t, fsys, "/data/f"))
		})
	}
}

func TestNew_EmptyContentOverExistingFileLoads(t *testing.T) {
	fsys := testFs(t, map[string]string{"/data/f": "kept\n"})
	s := newTestSession(t, fsys, WithPath("/data/f"), WithLines([]string{}))
	assert.Equal(t, []string{"kept"}, s.Lines())
}

func TestNew_LoadTimeBackup(t *testing.T) {
	fsys := testFs(t, map[string]string{"/data/f": "v1\n"})
	s := newTestSession(t, fsys, WithPath("/data/f"), WithBackup(backup.Load()))

	p, ok := s.BackupPath()
	require.True(t, ok)
	assert.Equal(t, "/data/f"+stamp, p)
	assert.Equal(t, "v1\n", readFile(t, fsys, p))
}

func TestNew_LoadTimeCustomBackup(t *testing.T) {
	fsys := testFs(t, map[string]string{"/data/f": "v1\n"})
	var got []string
	action := func(ext string) error {
		got = append(got, ext)
		return nil
	}

	s := newTestSession(t, fsys,
		WithPath("/data/f"),
		WithBackup(backup.Load(), backup.Func(action), backup.Ext("~")),
	)

	assert.Equal(t, []string{"~"}, got)
	_, ok := s.BackupPath()
	assert.False(t, ok, "custom actions do not report a path")
}

func TestNew_LoadTimeBackupFailure(t *testing.T) {
	fsys := testFs(t, map[string]string{"/data/f": "v1\n"})
	boom := errors.New("boom")

	_, err := New(WithFs(fsys), WithPath("/data/f"),
		WithBackup(backup.Load(), backup.Func(func(string) error { return boom })))
	require.Error(t, err)
	assert.True(t, errors.Is(err, boom))
}

func TestNew_FileTooLarge(t *testing.T) {
	fsys := testFs(t, map[string]string{"/data/f": strings.Repeat("x", 64)})
	_, err := New(WithFs(fsys), WithPath("/data/f"), WithMaxFileSize(16))
	require.Error(t, err)
	assert.True(t, errors.Is(err, fileutil.ErrFileTooLarge))
}

func TestNew_WithContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
		newline string
		want    []string
	}{
		{"empty", "", "", []string{}},
		{"lf", "a\nb\n", "", []string{"a", "b"}},
		{"no trailing terminator", "a\nb", "", []string{"a", "b"}},
		{"crlf", "a\r\nb\r\n", "\r\n", []string{"a", "b"}},
		{"blank line kept", "a\n\nb\n", "", []string{"a", "", "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSession(t, afero.NewMemMapFs(), WithContent(tt.content), WithNewline(tt.newline))
			assert.Equal(t, tt.want, s.Lines())
		})
	}
}

func TestNew_FreshBufferPerSession(t *testing.T) {
	initial := []string{"shared"}
	a := newTestSession(t, afero.NewMemMapFs(), WithLines(initial))
	b := newTestSession(t, afero.NewMemMapFs(), WithLines(initial))

	require.NoError(t, a.Append("only a"))
	assert.Equal(t, []string{"shared"}, b.Lines())
	assert.Equal(t, []string{"shared"}, initial)

	c := newTestSession(t, afero.NewMemMapFs())
	d := newTestSession(t, afero.NewMemMapFs())
	require.NoError(t, c.Append("only c"))
	assert.Equal(t, 0, d.Len())
}

func TestLines_ReturnsCopy(t *testing.T) {
	s := newTestSession(t, afero.NewMemMapFs(), WithLines([]string{"a"}))
	lines := s.Lines()
	lines[0] = "mutated"
	assert.Equal(t, []string{"a"}, s.Lines())
}

func TestAppend(t *testing.T) {
	s := newTestSession(t, afero.NewMemMapFs(), WithLines([]string{"a"}))
	require.NoError(t, s.Append("b"))
	require.NoError(t, s.Append(""))
	assert.Equal(t, []string{"a", "b", ""}, s.Lines())
}

func TestInsert(t *testing.T) {
	tests := []struct {
		name    string
		at      int
		want    []string
		wantErr bool
	}{
		{"front", 0, []string{"new", "a", "b"}, false},
		{"middle", 1, []string{"a", "new", "b"}, false},
		{"end", 2, []string{"a", "b", "new"}, false},
		{"past end", 3, []string{"a", "b"}, true},
		{"negative", -1, []string{"a", "b"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSession(t, afero.NewMemMapFs(), WithLines([]string{"a", "b"}))
			err := s.Insert("new", tt.at)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrIndexOutOfRange))
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, s.Lines())
		})
	}
}

func TestDelete(t *testing.T) {
	fsys := testFs(t, map[string]string{"/data/f": "a\nb test\nc\nd test\n"})
	s := newTestSession(t, fsys, WithPath("/data/f"))

	removed, err := s.Delete(" test")
	require.NoError(t, err)
	assert.Equal(t, []string{"b test", "d test"}, removed)
	assert.Equal(t, []string{"a", "c"}, s.Lines())
}

func TestDelete_PartitionPreservesOrder(t *testing.T) {
	original := []string{"k1", "x", "k2", "y", "k3", "", "zk"}
	s := newTestSession(t, afero.NewMemMapFs(), WithLines(original))

	removed, err := s.Delete("k")
	require.NoError(t, err)

	// Merge by original index: each line comes from whichever side it landed on.
	var rebuilt []string
	ri, ki := 0, 0
	kept := s.Lines()
	for _, l := range original {
		if ri < len(removed) && removed[ri] == l && strings.Contains(l, "k") {
			rebuilt = append(rebuilt, removed[ri])
			ri++
			continue
		}
		rebuilt = append(rebuilt, kept[ki])
		ki++
	}
	assert.Equal(t, original, rebuilt)
	assert.Equal(t, len(original), len(removed)+len(kept))
}

func TestDelete_NoMatch(t *testing.T) {
	s := newTestSession(t, afero.NewMemMapFs(), WithLines([]string{"a"}))
	removed, err := s.Delete("zzz")
	require.NoError(t, err)
	assert.Empty(t, removed)
	assert.NotNil(t, removed)
	assert.Equal(t, []string{"a"}, s.Lines())
}

func TestDelete_InvalidPattern(t *testing.T) {
	s := newTestSession(t, afero.NewMemMapFs(), WithLines([]string{"a"}))
	_, err := s.Delete("(")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidPattern))
	assert.Equal(t, []string{"a"}, s.Lines())
}

func TestSubstitute(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		repl    string
		limit   int
		want    []string
	}{
		{"unlimited", "e", "E", 0, []string{"EEE", "hEllo", "xyz"}},
		{"negative is unlimited", "e", "E", -1, []string{"EEE", "hEllo", "xyz"}},
		{"first only", "e", "E", 1, []string{"Eee", "hEllo", "xyz"}},
		{"two", "e", "E", 2, []string{"EEe", "hEllo", "xyz"}},
		{"submatch", `h(e)llo`, "$1-$1", 0, []string{"eee", "e-e", "xyz"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSession(t, afero.NewMemMapFs(), WithLines([]string{"eee", "hello", "xyz"}))
			require.NoError(t, s.Substitute(tt.pattern, tt.repl, tt.limit))
			assert.Equal(t, tt.want, s.Lines())
		})
	}
}

func TestSubstitute_InvalidPattern(t *testing.T) {
	s := newTestSession(t, afero.NewMemMapFs(), WithLines([]string{"a"}))
	err := s.Substitute("[", "x", 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidPattern))
}

type fakeEditor struct {
	got    []string
	newNl  string
	result []string
	err    error
}

func (f *fakeEditor) EditLines(_ context.Context, lines []string, newline string) ([]string, error) {
	f.got = lines
	f.newNl = newline
	return f.result, f.err
}

func TestEdit(t *testing.T) {
	s := newTestSession(t, afero.NewMemMapFs(), WithLines([]string{"a"}), WithNewline("\r\n"))

	ed := &fakeEditor{result: []string{"b", "c"}}
	require.NoError(t, s.Edit(t.Context(), ed))
	assert.Equal(t, []string{"a"}, ed.got)
	assert.Equal(t, "\r\n", ed.newNl)
	assert.Equal(t, []string{"b", "c"}, s.Lines())

	require.NoError(t, s.Edit(t.Context(), &fakeEditor{}))
	assert.Equal(t, []string{"b", "c"}, s.Lines(), "empty reload is a no-op")

	boom := errors.New("editor crashed")
	err := s.Edit(t.Context(), &fakeEditor{err: boom})
	assert.True(t, errors.Is(err, boom))
	assert.Equal(t, []string{"b", "c"}, s.Lines())
}

func TestClosedSessionRejectsMutations(t *testing.T) {
	s := newTestSession(t, afero.NewMemMapFs(), WithLines([]string{"a"}))
	require.NoError(t, s.Quit(WithoutSave()))

	assert.True(t, errors.Is(s.Append("x"), ErrClosed))
	assert.True(t, errors.Is(s.Insert("x", 0), ErrClosed))
	_, err := s.Delete("a")
	assert.True(t, errors.Is(err, ErrClosed))
	assert.True(t, errors.Is(s.Substitute("a", "b", 0), ErrClosed))
	assert.True(t, errors.Is(s.Edit(t.Context(), &fakeEditor{result: []string{"z"}}), ErrClosed))
	assert.Equal(t, []string{"a"}, s.Lines())
}

func TestVersion(t *testing.T) {
	assert.Regexp(t, `^\d+\.\d+\.\d+`, Version())
}
