//go:build windows

package dialogs

import (
	"errors"

	"fyne.io/fyne/v2"
	"github.com/desknote/desknote/util/log"
	"github.com/harry1453/go-common-file-dialog/cfd"
	"github.com/harry1453/go-common-file-dialog/cfdutil"
)

// windowsPicker uses the Common Item Dialog, falling back to fyne when COM
// fails.
type windowsPicker struct {
	fallback *fynePicker
}

func newPicker(parent fyne.Window) Picker {
	return &windowsPicker{fallback: &fynePicker{parent: parent}}
}

func fileFilters(filters []Filter) []cfd.FileFilter {
	out := make([]cfd.FileFilter, 0, len(filters))
	for _, f := range filters {
		out = append(out, cfd.FileFilter{DisplayName: f.Name, Pattern: f.Pattern})
	}
	return out
}

// deliver runs cb on the fyne thread, mapping cancellation.
func deliver(cb Callback, path string, err error) {
	if errors.Is(err, cfd.ErrorCancelled) {
		err = ErrCancelled
	}
	fyne.Do(func() { cb(path, err) })
}

func (p *windowsPicker) SaveFile(title, defaultName string, filters []Filter, cb Callback) {
	cfg := cfd.DialogConfig{
		Title:            title,
		Role:             "DeskNoteSave",
		FileFilters:      fileFilters(filters),
		FileName:         defaultName,
		DefaultExtension: defaultExtension(filters),
	}
	go func() {
		path, err := cfdutil.ShowSaveFileDialog(cfg)
		if err != nil && !errors.Is(err, cfd.ErrorCancelled) {
			log.Warnf("dialogs: native save dialog failed: %v", err)
			fyne.Do(func() { p.fallback.SaveFile(title, defaultName, filters, cb) })
			return
		}
		deliver(cb, path, err)
	}()
}

func (p *windowsPicker) OpenFile(title string, filters []Filter, cb Callback) {
	cfg := cfd.DialogConfig{
		Title:       title,
		Role:        "DeskNoteOpen",
		FileFilters: fileFilters(filters),
	}
	go func() {
		path, err := cfdutil.ShowOpenFileDialog(cfg)
		if err != nil && !errors.Is(err, cfd.ErrorCancelled) {
			log.Warnf("dialogs: native open dialog failed: %v", err)
			fyne.Do(func() { p.fallback.OpenFile(title, filters, cb) })
			return
		}
		deliver(cb, path, err)
	}()
}

func (p *windowsPicker) PickFolder(title string, cb Callback) {
	cfg := cfd.DialogConfig{
		Title: title,
		Role:  "DeskNoteFolder",
	}
	go func() {
		path, err := cfdutil.ShowPickFolderDialog(cfg)
		if err != nil && !errors.Is(err, cfd.ErrorCancelled) {
			log.Warnf("dialogs: native folder dialog failed: %v", err)
			fyne.Do(func() { p.fallback.PickFolder(title, cb) })
			return
		}
		deliver(cb, path, err)
	}()
}
