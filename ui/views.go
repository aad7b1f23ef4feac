package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/desknote/desknote/config"
	"github.com/desknote/desknote/util/log"
)

// Kinds of data a view shows, used to refresh after changes.
const (
	kindTodos    = "todos"
	kindNotes    = "notes"
	kindWorkLogs = "worklogs"
)

// views holds the cards of the main window.
type views struct {
	da       *DeskNoteApp
	todo     *todoView
	notes    *notesView
	worklog  *workLogView
	settings *settingsView
	cards    map[string]*card
}

func newViews(da *DeskNoteApp) *views {
	v := &views{da: da, cards: make(map[string]*card)}
	v.todo = newTodoView(da)
	v.notes = newNotesView(da)
	v.worklog = newWorkLogView(da)
	v.settings = newSettingsView(da)
	return v
}

func (v *views) content() fyne.CanvasObject {
	collapsed := v.da.cfg.GetCardCollapsed()
	bodies := map[string]fyne.CanvasObject{
		config.CardTodo:     v.todo.build(),
		config.CardNotes:    v.notes.build(),
		config.CardWorkLog:  v.worklog.build(),
		config.CardSettings: v.settings.build(),
	}
	titles := map[string]string{
		config.CardTodo:     "Todo",
		config.CardNotes:    "Notes",
		config.CardWorkLog:  "Work log",
		config.CardSettings: "Settings",
	}

	box := container.NewVBox()
	for _, id := range config.Cards {
		c := newCard(titles[id], bodies[id], collapsed[id], func(collapsed bool) {
			v.da.cfg.SetCardCollapsed(id, collapsed)
		})
		v.cards[id] = c
		box.Add(c.object())
	}
	return container.NewVScroll(box)
}

// refresh reloads the views showing kind. Runs on the fyne thread.
func (v *views) refresh(kind string) {
	switch kind {
	case kindTodos:
		v.todo.reload()
	case kindNotes:
		v.notes.reload()
	case kindWorkLogs:
		v.worklog.reload()
	}
}

// card is a collapsible section with a header button.
type card struct {
	header    *widget.Button
	body      fyne.CanvasObject
	collapsed bool
	onToggle  func(collapsed bool)
}

func newCard(title string, body fyne.CanvasObject, collapsed bool, onToggle func(bool)) *card {
	c := &card{body: body, collapsed: collapsed, onToggle: onToggle}
	c.header = widget.NewButtonWithIcon(title, nil, c.toggle)
	c.header.Alignment = widget.ButtonAlignLeading
	c.header.Importance = widget.LowImportance
	c.apply()
	return c
}

func (c *card) object() fyne.CanvasObject {
	return container.NewVBox(c.header, c.body, widget.NewSeparator())
}

func (c *card) toggle() {
	c.collapsed = !c.collapsed
	c.apply()
	if c.onToggle != nil {
		c.onToggle(c.collapsed)
	}
}

func (c *card) apply() {
	if c.collapsed {
		c.header.SetIcon(theme.MenuExpandIcon())
		c.body.Hide()
	} else {
		c.header.SetIcon(theme.MenuDropDownIcon())
		c.body.Show()
	}
}

// showError reports err on the main window.
func (da *DeskNoteApp) showError(err error) {
	if err == nil {
		return
	}
	log.Warnf("ui: %v", err)
	if w := da.MainWindow(); w != nil {
		dialog.ShowError(err, w)
	}
}
