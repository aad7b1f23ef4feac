// Package dialogs shows file and folder pickers, natively where the platform
// offers them.
package dialogs

import (
	"errors"
	"path/filepath"
	"strings"

	"fyne.io/fyne/v2"
)

// ErrCancelled is passed to a callback when the user closes the picker
// without choosing.
var ErrCancelled = errors.New("dialogs: cancelled")

// Filter restricts the files a picker shows.
type Filter struct {
	Name    string // e.g. "Markdown"
	Pattern string // e.g. "*.md;*.markdown"
}

// Markdown is the filter used for note files.
var Markdown = Filter{Name: "Markdown (*.md)", Pattern: "*.md;*.markdown"}

// Callback receives the chosen path, or an error. It runs on the fyne
// event thread.
type Callback func(path string, err error)

// Picker shows pickers attached to a parent window.
type Picker interface {
	SaveFile(title, defaultName string, filters []Filter, cb Callback)
	OpenFile(title string, filters []Filter, cb Callback)
	PickFolder(title string, cb Callback)
}

// New returns the picker for the current platform.
func New(parent fyne.Window) Picker {
	return newPicker(parent)
}

// extensions returns the file extensions, with leading dot, of the
// patterns in filters.
func extensions(filters []Filter) []string {
	var exts []string
	for _, f := range filters {
		for _, p := range strings.Split(f.Pattern, ";") {
			p = strings.TrimSpace(p)
			if ext := filepath.Ext(p); ext != "" && ext != ".*" && strings.HasPrefix(p, "*") {
				exts = append(exts, strings.ToLower(ext))
			}
		}
	}
	return exts
}

// defaultExtension returns the first extension of filters without the dot.
func defaultExtension(filters []Filter) string {
	exts := extensions(filters)
	if len(exts) == 0 {
		return ""
	}
	return strings.TrimPrefix(exts[0], ".")
}
