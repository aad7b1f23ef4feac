// Package export converts notes to and from Markdown files with a YAML
// front matter block.
package export

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/desknote/desknote/pkg/store"
	"gopkg.in/yaml.v3"
)

const fence = "---"

// ErrFrontMatter is returned for a front matter block that is not closed or
// does not parse.
var ErrFrontMatter = errors.New("export: malformed front matter")

// frontMatter is the YAML header of an exported note.
type frontMatter struct {
	ID      string    `yaml:"id,omitempty"`
	Title   string    `yaml:"title"`
	Created time.Time `yaml:"created"`
	Updated time.Time `yaml:"updated"`
}

// MarshalNote renders n as Markdown with a front matter header.
func MarshalNote(n store.Note) ([]byte, error) {
	fm := frontMatter{
		ID:      n.ID,
		Title:   n.Title,
		Created: time.UnixMilli(n.CreatedAt).UTC(),
		Updated: time.UnixMilli(n.UpdatedAt).UTC(),
	}
	header, err := yaml.Marshal(&fm)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteString(fence + "\n")
	buf.Write(header)
	buf.WriteString(fence + "\n\n")
	buf.WriteString(n.Content)
	if n.Content != "" && !strings.HasSuffix(n.Content, "\n") {
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}

// UnmarshalNote parses a Markdown document. Without a front matter header
// the whole document is the content and fallbackTitle becomes the title.
func UnmarshalNote(data []byte, fallbackTitle string) (store.Note, error) {
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	text = strings.TrimPrefix(text, "\ufeff")

	if !strings.HasPrefix(text, fence+"\n") {
		return store.Note{Title: fallbackTitle, Content: text}, nil
	}

	rest := text[len(fence)+1:]
	end := strings.Index(rest, "\n"+fence+"\n")
	var header, body string
	switch {
	case strings.HasPrefix(rest, fence+"\n"):
		body = rest[len(fence)+1:]
	case end >= 0:
		header, body = rest[:end+1], rest[end+len(fence)+2:]
	case strings.HasSuffix(rest, "\n"+fence):
		header = rest[:len(rest)-len(fence)]
	default:
		return store.Note{}, ErrFrontMatter
	}

	var fm frontMatter
	if err := yaml.Unmarshal([]byte(header), &fm); err != nil {
		return store.Note{}, fmt.Errorf("%w: %v", ErrFrontMatter, err)
	}

	n := store.Note{
		ID:      fm.ID,
		Title:   fm.Title,
		Content: strings.TrimPrefix(body, "\n"),
	}
	if n.Title == "" {
		n.Title = fallbackTitle
	}
	if !fm.Created.IsZero() {
		n.CreatedAt = fm.Created.UnixMilli()
	}
	if !fm.Updated.IsZero() {
		n.UpdatedAt = fm.Updated.UnixMilli()
	}
	return n, nil
}

// Document renders every note into one Markdown document, one section per
// note.
func Document(notes []store.Note, generated time.Time) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# DeskNote notes\n\n_Exported %s_\n", generated.Format("2006-01-02 15:04"))
	for _, n := range notes {
		title := n.Title
		if strings.TrimSpace(title) == "" {
			title = untitled
		}
		fmt.Fprintf(&buf, "\n## %s\n\n", title)
		if n.Content != "" {
			buf.WriteString(n.Content)
			if !strings.HasSuffix(n.Content, "\n") {
				buf.WriteByte('\n')
			}
		}
	}
	return buf.Bytes()
}
