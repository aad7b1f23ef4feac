package ui

import (
	"context"
	"errors"
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/desknote/desknote/pkg/store"
)

var priorityImportance = map[store.Priority]widget.Importance{
	store.PriorityNormal:    widget.LowImportance,
	store.PriorityImportant: widget.WarningImportance,
	store.PriorityUrgent:    widget.DangerImportance,
}

type todoView struct {
	da       *DeskNoteApp
	todos    []store.Todo
	entry    *widget.Entry
	list     *widget.List
	archived *widget.Label
}

func newTodoView(da *DeskNoteApp) *todoView {
	return &todoView{da: da}
}

func (v *todoView) db() *store.Store {
	return v.da.sql.db
}

func (v *todoView) build() fyne.CanvasObject {
	v.entry = widget.NewEntry()
	v.entry.SetPlaceHolder("Add a todo and press Enter")
	v.entry.Validator = maxRunes(store.MaxTodoContent)
	v.entry.OnSubmitted = func(string) { v.add() }
	addButton := widget.NewButtonWithIcon("", theme.ContentAddIcon(), v.add)

	v.archived = widget.NewLabel("")
	v.archived.Importance = widget.LowImportance

	v.list = widget.NewList(
		func() int {
			return len(v.todos)
		},
		func() fyne.CanvasObject {
			done := widget.NewCheck("", nil)
			text := widget.NewLabel("Placeholder")
			text.Truncation = fyne.TextTruncateEllipsis
			priority := widget.NewButtonWithIcon("", theme.WarningIcon(), nil)
			del := widget.NewButtonWithIcon("", theme.DeleteIcon(), nil)
			return container.NewBorder(nil, nil, done, container.NewHBox(priority, del), text)
		},
		func(i widget.ListItemID, o fyne.CanvasObject) {
			if i >= len(v.todos) {
				return
			}
			t := v.todos[i]
			c := o.(*fyne.Container)
			text := c.Objects[0].(*widget.Label)
			done := c.Objects[1].(*widget.Check)
			buttons := c.Objects[2].(*fyne.Container)
			priority := buttons.Objects[0].(*widget.Button)
			del := buttons.Objects[1].(*widget.Button)

			text.SetText(t.Content)
			text.TextStyle = fyne.TextStyle{Italic: t.Done}
			text.Importance = widget.MediumImportance
			if t.Done {
				text.Importance = widget.LowImportance
			}
			text.Refresh()

			done.OnChanged = nil
			done.SetChecked(t.Done)
			done.OnChanged = func(bool) { v.toggle(t.ID) }

			priority.Importance = priorityImportance[t.Priority]
			priority.OnTapped = func() { v.cyclePriority(t) }
			priority.Refresh()
			del.OnTapped = func() { v.remove(t.ID) }
		},
	)

	v.reload()
	input := container.NewBorder(nil, nil, nil, addButton, v.entry)
	footer := container.NewHBox(layout.NewSpacer(), v.archived)
	return container.NewBorder(input, footer, nil, nil, container.NewGridWrap(fyne.NewSize(320, 240), v.list))
}

func (v *todoView) reload() {
	if v.db() == nil || v.list == nil {
		return
	}
	todos, err := v.db().ListTodos(context.Background())
	if err != nil {
		v.da.showError(err)
		return
	}
	v.todos = todos
	v.list.Refresh()

	if n, err := v.db().ArchivedCount(context.Background()); err == nil && n > 0 {
		v.archived.SetText(fmt.Sprintf("%d archived", n))
	} else {
		v.archived.SetText("")
	}
}

func (v *todoView) add() {
	if v.entry.Validate() != nil {
		return
	}
	if _, err := v.db().AddTodo(context.Background(), v.entry.Text); err != nil {
		if !errors.Is(err, store.ErrEmpty) {
			v.da.showError(err)
		}
		return
	}
	v.entry.SetText("")
	v.da.changed(kindTodos)
}

func (v *todoView) toggle(id string) {
	if _, err := v.db().ToggleTodo(context.Background(), id); err != nil {
		v.da.showError(err)
		return
	}
	v.da.changed(kindTodos)
}

func (v *todoView) cyclePriority(t store.Todo) {
	if err := v.db().SetTodoPriority(context.Background(), t.ID, t.Priority.Next()); err != nil {
		v.da.showError(err)
		return
	}
	v.da.changed(kindTodos)
}

func (v *todoView) remove(id string) {
	if err := v.db().DeleteTodo(context.Background(), id); err != nil {
		v.da.showError(err)
		return
	}
	v.da.changed(kindTodos)
}
