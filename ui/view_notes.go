package ui

import (
	"context"
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/desknote/desknote/pkg/store"
)

type notesView struct {
	da       *DeskNoteApp
	notes    []store.Note
	activeID string
	dirty    bool

	picker  *widget.Select
	title   *widget.Entry
	content *widget.Entry
	save    *widget.Button
	del     *widget.Button
}

func newNotesView(da *DeskNoteApp) *notesView {
	return &notesView{da: da}
}

func (v *notesView) db() *store.Store {
	return v.da.sql.db
}

func noteLabel(n store.Note, i int) string {
	title := n.Title
	if title == "" {
		title = "Untitled"
	}
	return fmt.Sprintf("%d. %s", i+1, title)
}

func (v *notesView) build() fyne.CanvasObject {
	v.picker = widget.NewSelect(nil, func(string) {
		i := v.picker.SelectedIndex()
		if i < 0 || i >= len(v.notes) || v.notes[i].ID == v.activeID {
			return
		}
		v.flush()
		v.open(v.notes[i].ID)
	})
	v.picker.PlaceHolder = "No notes yet"

	v.title = widget.NewEntry()
	v.title.SetPlaceHolder("Title")
	v.title.Validator = maxRunes(store.MaxNoteTitle)
	v.content = widget.NewMultiLineEntry()
	v.content.SetPlaceHolder("Write something...")
	v.content.Wrapping = fyne.TextWrapWord
	v.content.SetMinRowsVisible(8)
	v.content.Validator = maxRunes(store.MaxNoteContent)

	v.save = widget.NewButtonWithIcon("Save", theme.DocumentSaveIcon(), func() { v.flush() })
	v.save.Disable()
	newButton := widget.NewButtonWithIcon("", theme.ContentAddIcon(), v.create)
	v.del = widget.NewButtonWithIcon("", theme.DeleteIcon(), v.confirmDelete)

	v.reload()
	top := container.NewBorder(nil, nil, nil, container.NewHBox(newButton, v.del), v.picker)
	return container.NewBorder(container.NewVBox(top, v.title), v.save, nil, nil, v.content)
}

// reload lists the notes again, keeping the open note when it still exists.
func (v *notesView) reload() {
	if v.db() == nil || v.picker == nil {
		return
	}
	notes, err := v.db().ListNotes(context.Background())
	if err != nil {
		v.da.showError(err)
		return
	}
	v.notes = notes

	options := make([]string, len(notes))
	active := -1
	for i, n := range notes {
		options[i] = noteLabel(n, i)
		if n.ID == v.activeID {
			active = i
		}
	}
	v.picker.SetOptions(options)

	switch {
	case active >= 0:
		v.picker.SetSelectedIndex(active)
	case len(notes) > 0:
		v.open(notes[0].ID)
	default:
		v.open("")
	}
}

// open loads the note with id into the editor. An empty id clears it.
func (v *notesView) open(id string) {
	v.activeID = id
	var n store.Note
	for i, candidate := range v.notes {
		if candidate.ID == id {
			n = candidate
			v.picker.SetSelectedIndex(i)
			break
		}
	}

	v.title.OnChanged, v.content.OnChanged = nil, nil
	v.title.SetText(n.Title)
	v.content.SetText(n.Content)
	markDirty := func(string) {
		v.dirty = true
		v.save.Enable()
	}
	v.title.OnChanged, v.content.OnChanged = markDirty, markDirty

	v.dirty = false
	v.save.Disable()
	if id == "" {
		v.title.Disable()
		v.content.Disable()
		v.del.Disable()
		return
	}
	v.title.Enable()
	v.content.Enable()
	v.del.Enable()
}

// flush saves pending edits of the open note.
func (v *notesView) flush() {
	if !v.dirty || v.activeID == "" {
		return
	}
	if v.title.Validate() != nil || v.content.Validate() != nil {
		return
	}
	if _, err := v.db().UpdateNote(context.Background(), v.activeID, v.title.Text, v.content.Text); err != nil {
		v.da.showError(err)
		return
	}
	v.dirty = false
	v.save.Disable()
	v.da.changed(kindNotes)
}

func (v *notesView) create() {
	v.flush()
	n, err := v.db().CreateNote(context.Background(), "", "")
	if err != nil {
		v.da.showError(err)
		return
	}
	v.activeID = n.ID
	v.da.changed(kindNotes)
}

func (v *notesView) confirmDelete() {
	if v.activeID == "" {
		return
	}
	id := v.activeID
	dialog.ShowConfirm("Delete note", "Are you sure you want to delete this note?", func(ok bool) {
		if !ok {
			return
		}
		if err := v.db().DeleteNote(context.Background(), id); err != nil {
			v.da.showError(err)
			return
		}
		v.activeID = ""
		v.dirty = false
		v.da.changed(kindNotes)
	}, v.da.MainWindow())
}

// maxRunes validates a text length in characters.
func maxRunes(limit int) fyne.StringValidator {
	return func(s string) error {
		if n := len([]rune(s)); n > limit {
			return fmt.Errorf("%d characters, at most %d allowed", n, limit)
		}
		return nil
	}
}
