package dialogs

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
)

// fynePicker uses fyne's built in file dialogs.
type fynePicker struct {
	parent fyne.Window
}

func (p *fynePicker) SaveFile(title, defaultName string, filters []Filter, cb Callback) {
	d := dialog.NewFileSave(func(w fyne.URIWriteCloser, err error) {
		if err != nil {
			cb("", err)
			return
		}
		if w == nil {
			cb("", ErrCancelled)
			return
		}
		path := w.URI().Path()
		w.Close()
		cb(path, nil)
	}, p.parent)
	d.SetFileName(defaultName)
	if exts := extensions(filters); len(exts) > 0 {
		d.SetFilter(storage.NewExtensionFileFilter(exts))
	}
	d.SetTitleText(title)
	d.Show()
}

func (p *fynePicker) OpenFile(title string, filters []Filter, cb Callback) {
	d := dialog.NewFileOpen(func(r fyne.URIReadCloser, err error) {
		if err != nil {
			cb("", err)
			return
		}
		if r == nil {
			cb("", ErrCancelled)
			return
		}
		path := r.URI().Path()
		r.Close()
		cb(path, nil)
	}, p.parent)
	if exts := extensions(filters); len(exts) > 0 {
		d.SetFilter(storage.NewExtensionFileFilter(exts))
	}
	d.SetTitleText(title)
	d.Show()
}

func (p *fynePicker) PickFolder(title string, cb Callback) {
	d := dialog.NewFolderOpen(func(l fyne.ListableURI, err error) {
		if err != nil {
			cb("", err)
			return
		}
		if l == nil {
			cb("", ErrCancelled)
			return
		}
		cb(l.Path(), nil)
	}, p.parent)
	d.SetTitleText(title)
	d.Show()
}
