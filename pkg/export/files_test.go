package export

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desknote/desknote/pkg/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memNotes struct {
	notes map[string]store.Note
	order []string
	err   error
}

func newMemNotes(notes ...store.Note) *memNotes {
	m := &memNotes{notes: make(map[string]store.Note)}
	for _, n := range notes {
		m.notes[n.ID] = n
		m.order = append(m.order, n.ID)
	}
	return m
}

func (m *memNotes) ListNotes(context.Context) ([]store.Note, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []store.Note
	for _, id := range m.order {
		out = append(out, m.notes[id])
	}
	return out, nil
}

func (m *memNotes) ImportNote(_ context.Context, n store.Note) (bool, error) {
	if old, ok := m.notes[n.ID]; ok && old.UpdatedAt >= n.UpdatedAt {
		return false, nil
	}
	if _, ok := m.notes[n.ID]; !ok {
		m.order = append(m.order, n.ID)
	}
	m.notes[n.ID] = n
	return true, nil
}

func TestFileName(t *testing.T) {
	tests := []struct {
		name string
		note store.Note
		want string
	}{
		{name: "Plain", note: store.Note{ID: "abcdef0123", Title: "groceries"}, want: "groceries-abcdef01.md"},
		{name: "Reserved", note: store.Note{ID: "abcdef0123", Title: `a/b\c:d*e?`}, want: "a_b_c_d_e_-abcdef01.md"},
		{name: "Traversal", note: store.Note{ID: "abcdef0123", Title: "../../etc/passwd"}, want: "_.._etc_passwd-abcdef01.md"},
		{name: "Dots", note: store.Note{ID: "abcdef0123", Title: ".."}, want: "Untitled-abcdef01.md"},
		{name: "Empty", note: store.Note{Title: "  "}, want: "Untitled.md"},
		{name: "Unicode", note: store.Note{ID: "abcdef0123", Title: "会议记录"}, want: "会议记录-abcdef01.md"},
		{name: "Long", note: store.Note{Title: strings.Repeat("x", 200)}, want: strings.Repeat("x", maxNameRunes) + ".md"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FileName(tt.note))
		})
	}
}

func TestSafeJoin(t *testing.T) {
	dir := t.TempDir()

	p, err := safeJoin(dir, "note.md")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "note.md"), p)

	for _, name := range []string{"", ".", "..", "../x.md", "a/b.md", `a\b.md`, "/etc/passwd"} {
		_, err := safeJoin(dir, name)
		assert.ErrorIs(t, err, ErrUnsafePath, name)
	}
}

func TestExportImportDir(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "out")

	a := sampleNote()
	b := store.Note{ID: "99999999-0000-4000-8000-000000000002", Title: "second", Content: "two", CreatedAt: 1000, UpdatedAt: 2000}
	src := newMemNotes(a, b)

	paths, err := ToDir(ctx, src, dir)
	require.NoError(t, err)
	require.Len(t, paths, 2)
	for _, p := range paths {
		assert.Equal(t, dir, filepath.Dir(p))
		assert.FileExists(t, p)
	}

	// junk that import must skip
	require.NoError(t, os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("x"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.md"), 0o755))

	dst := newMemNotes()
	n, err := FromDir(ctx, dst, dir)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, "second", dst.notes[b.ID].Title)
	assert.Equal(t, b.UpdatedAt, dst.notes[b.ID].UpdatedAt)

	// importing again changes nothing
	n, err = FromDir(ctx, dst, dir)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestFromDirReportsBadFiles(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "ok.md"), []byte("plain text"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.md"), []byte("---\ntitle: x\n"), 0o644))

	dst := newMemNotes()
	n, err := FromDir(ctx, dst, dir)
	assert.Equal(t, 1, n)
	assert.ErrorIs(t, err, ErrFrontMatter)

	var imported store.Note
	for _, note := range dst.notes {
		imported = note
	}
	assert.Equal(t, "ok", imported.Title)
	assert.Equal(t, "plain text", imported.Content)
}

func TestToFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "all.md")

	require.NoError(t, ToFile(ctx, newMemNotes(sampleNote()), path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "## Plan: Q3")

	boom := errors.New("boom")
	assert.ErrorIs(t, ToFile(ctx, &memNotes{err: boom}, path), boom)
}
