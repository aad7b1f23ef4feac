package export

import (
	"strings"
	"testing"
	"time"

	"github.com/desknote/desknote/pkg/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleNote() store.Note {
	return store.Note{
		ID:        "3f2b8c1e-0000-4000-8000-000000000001",
		Title:     "Plan: Q3",
		Content:   "- ship\n- rest",
		CreatedAt: time.Date(2025, 1, 2, 3, 4, 5, 6e6, time.UTC).UnixMilli(),
		UpdatedAt: time.Date(2025, 1, 3, 3, 4, 5, 0, time.UTC).UnixMilli(),
	}
}

func TestMarshalNote(t *testing.T) {
	n := sampleNote()
	data, err := MarshalNote(n)
	require.NoError(t, err)

	text := string(data)
	assert.True(t, strings.HasPrefix(text, "---\n"))
	assert.Contains(t, text, "Plan: Q3")
	assert.Contains(t, text, n.ID)
	assert.True(t, strings.HasSuffix(text, "---\n\n- ship\n- rest\n"))

	back, err := UnmarshalNote(data, "fallback")
	require.NoError(t, err)
	n.Content += "\n"
	assert.Equal(t, n, back)
}

func TestUnmarshalNote(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		title   string
		content string
		err     error
	}{
		{name: "NoFrontMatter", input: "# hello\nworld\n", title: "file", content: "# hello\nworld\n"},
		{name: "CRLF", input: "---\r\ntitle: x\r\n---\r\n\r\nbody\r\n", title: "x", content: "body\n"},
		{name: "BOM", input: "\ufeff---\ntitle: x\n---\nbody", title: "x", content: "body"},
		{name: "EmptyHeader", input: "---\n---\nbody", title: "file", content: "body"},
		{name: "HeaderOnly", input: "---\ntitle: x\n---", title: "x", content: ""},
		{name: "Unclosed", input: "---\ntitle: x\nbody", err: ErrFrontMatter},
		{name: "BadYAML", input: "---\ntitle: [x\n---\nbody", err: ErrFrontMatter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := UnmarshalNote([]byte(tt.input), "file")
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.title, n.Title)
			assert.Equal(t, tt.content, n.Content)
		})
	}
}

func TestDocument(t *testing.T) {
	doc := string(Document([]store.Note{
		sampleNote(),
		{Title: " ", Content: "loose"},
	}, time.Date(2025, 5, 1, 8, 30, 0, 0, time.UTC)))

	assert.Contains(t, doc, "_Exported 2025-05-01 08:30_")
	assert.Contains(t, doc, "## Plan: Q3\n\n- ship\n- rest\n")
	assert.Contains(t, doc, "## Untitled\n\nloose\n")
}
