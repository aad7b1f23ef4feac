package ui

import (
	"context"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/desknote/desknote/pkg/store"
)

type workLogView struct {
	da      *DeskNoteApp
	logs    []store.WorkLog
	date    *widget.Entry
	content *widget.Entry
	list    *widget.List
}

func newWorkLogView(da *DeskNoteApp) *workLogView {
	return &workLogView{da: da}
}

func (v *workLogView) db() *store.Store {
	return v.da.sql.db
}

func validDate(s string) error {
	_, err := time.Parse(store.DateLayout, s)
	return err
}

// firstLine returns the first non-empty line of s.
func firstLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return ""
}

func (v *workLogView) build() fyne.CanvasObject {
	v.date = widget.NewEntry()
	v.date.SetText(time.Now().Format(store.DateLayout))
	v.date.Validator = validDate

	v.content = widget.NewMultiLineEntry()
	v.content.SetPlaceHolder("What did you work on?")
	v.content.Wrapping = fyne.TextWrapWord
	v.content.SetMinRowsVisible(3)
	v.content.Validator = maxRunes(store.MaxWorkLogContent)

	addButton := widget.NewButtonWithIcon("Log", theme.ContentAddIcon(), v.add)

	v.list = widget.NewList(
		func() int {
			return len(v.logs)
		},
		func() fyne.CanvasObject {
			date := widget.NewLabel("2006-01-02")
			date.TextStyle = fyne.TextStyle{Monospace: true}
			text := widget.NewLabel("Placeholder")
			text.Truncation = fyne.TextTruncateEllipsis
			del := widget.NewButtonWithIcon("", theme.DeleteIcon(), nil)
			return container.NewBorder(nil, nil, date, del, text)
		},
		func(i widget.ListItemID, o fyne.CanvasObject) {
			if i >= len(v.logs) {
				return
			}
			w := v.logs[i]
			c := o.(*fyne.Container)
			c.Objects[0].(*widget.Label).SetText(firstLine(w.Content))
			c.Objects[1].(*widget.Label).SetText(w.Date)
			c.Objects[2].(*widget.Button).OnTapped = func() { v.remove(w.ID) }
		},
	)

	v.reload()
	form := container.NewBorder(nil, nil, nil, addButton, v.date)
	input := container.NewVBox(form, v.content)
	return container.NewBorder(input, nil, nil, nil, container.NewGridWrap(fyne.NewSize(320, 200), v.list))
}

func (v *workLogView) reload() {
	if v.db() == nil || v.list == nil {
		return
	}
	logs, err := v.db().ListWorkLogs(context.Background())
	if err != nil {
		v.da.showError(err)
		return
	}
	v.logs = logs
	v.list.Refresh()
}

func (v *workLogView) add() {
	if v.date.Validate() != nil || v.content.Validate() != nil {
		return
	}
	if strings.TrimSpace(v.content.Text) == "" {
		return
	}
	if _, err := v.db().AddWorkLog(context.Background(), v.date.Text, v.content.Text); err != nil {
		v.da.showError(err)
		return
	}
	v.content.SetText("")
	v.da.changed(kindWorkLogs)
}

func (v *workLogView) remove(id string) {
	if err := v.db().DeleteWorkLog(context.Background(), id); err != nil {
		v.da.showError(err)
		return
	}
	v.da.changed(kindWorkLogs)
}
