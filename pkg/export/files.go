package export

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/desknote/desknote/pkg/store"
	"github.com/desknote/desknote/util/log"
)

const (
	untitled     = "Untitled"
	maxNameRunes = 80
	// largest file read on import
	maxFileBytes = 4 * store.MaxNoteContent
)

// ErrUnsafePath is returned for a file name that would leave the target
// directory.
var ErrUnsafePath = errors.New("export: unsafe path")

// NoteSource lists notes to export.
type NoteSource interface {
	ListNotes(ctx context.Context) ([]store.Note, error)
}

// NoteSink receives imported notes.
type NoteSink interface {
	ImportNote(ctx context.Context, n store.Note) (bool, error)
}

// FileName returns a file system safe name for n.
func FileName(n store.Note) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(n.Title) {
		switch {
		case strings.ContainsRune(`<>:"/\|?*`, r), unicode.IsControl(r):
			b.WriteRune('_')
		default:
			b.WriteRune(r)
		}
	}

	name := strings.Trim(b.String(), ". ")
	if runes := []rune(name); len(runes) > maxNameRunes {
		name = strings.TrimRight(string(runes[:maxNameRunes]), ". ")
	}
	if name == "" {
		name = untitled
	}
	if len(n.ID) >= 8 {
		name += "-" + n.ID[:8]
	}
	return name + ".md"
}

// safeJoin joins dir and name, rejecting names that are not a single path
// element inside dir.
func safeJoin(dir, name string) (string, error) {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) || filepath.IsAbs(name) {
		return "", fmt.Errorf("%w: %q", ErrUnsafePath, name)
	}
	p := filepath.Join(dir, name)
	rel, err := filepath.Rel(dir, p)
	if err != nil || rel != name {
		return "", fmt.Errorf("%w: %q", ErrUnsafePath, name)
	}
	return p, nil
}

// ToDir writes one Markdown file per note into dir and returns the paths
// written.
func ToDir(ctx context.Context, src NoteSource, dir string) ([]string, error) {
	notes, err := src.ListNotes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(notes))
	for _, n := range notes {
		if err := ctx.Err(); err != nil {
			return paths, err
		}
		p, err := safeJoin(dir, FileName(n))
		if err != nil {
			return paths, err
		}
		data, err := MarshalNote(n)
		if err != nil {
			return paths, fmt.Errorf("failed to render note %s: %w", n.ID, err)
		}
		if err := os.WriteFile(p, data, 0o644); err != nil {
			return paths, err
		}
		paths = append(paths, p)
	}
	return paths, nil
}

// ToFile writes all notes into a single Markdown document at path.
func ToFile(ctx context.Context, src NoteSource, path string) error {
	notes, err := src.ListNotes(ctx)
	if err != nil {
		return fmt.Errorf("failed to list notes: %w", err)
	}
	return os.WriteFile(path, Document(notes, time.Now()), 0o644)
}

// FromFile imports one Markdown file.
func FromFile(ctx context.Context, dst NoteSink, path string) (bool, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return false, err
	}
	if !info.Mode().IsRegular() {
		return false, fmt.Errorf("%w: %s is not a regular file", ErrUnsafePath, path)
	}
	if info.Size() > maxFileBytes {
		return false, fmt.Errorf("%w: %s", store.ErrTooLong, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	title := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	n, err := UnmarshalNote(data, title)
	if err != nil {
		return false, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return dst.ImportNote(ctx, n)
}

// FromDir imports every *.md file directly inside dir. Files that fail are
// skipped and reported in the returned error; the count is of notes added
// or updated.
func FromDir(ctx context.Context, dst NoteSink, dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, err
	}

	var (
		imported int
		errs     []error
	)
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return imported, err
		}
		if e.Type()&fs.ModeType != 0 || !strings.EqualFold(filepath.Ext(e.Name()), ".md") {
			continue
		}
		p, err := safeJoin(dir, e.Name())
		if err != nil {
			errs = append(errs, err)
			continue
		}
		changed, err := FromFile(ctx, dst, p)
		if err != nil {
			log.Warnf("export: skipped %s: %v", e.Name(), err)
			errs = append(errs, err)
			continue
		}
		if changed {
			imported++
		}
	}
	return imported, errors.Join(errs...)
}
