package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver"

	"github.com/desknote/desknote/pkg/desktop"
	"github.com/desknote/desknote/util"
)

// mainWindow wraps the fyne main window for the tray toggle and the
// desktop controller. It never owns the window.
type mainWindow struct {
	win   fyne.Window
	desk  *desktop.Controller
	shown *util.SafeFlag
}

func newMainWindow(win fyne.Window, desk *desktop.Controller) *mainWindow {
	return &mainWindow{win: win, desk: desk, shown: util.NewSafeFlag(false)}
}

// NativeHandle returns the HWND of the window on Windows.
func (m *mainWindow) NativeHandle() (uintptr, error) {
	nw, ok := m.win.(driver.NativeWindow)
	if !ok {
		return 0, desktop.ErrNoHandle
	}
	var hwnd uintptr
	nw.RunNative(func(ctx any) {
		if wc, ok := ctx.(driver.WindowsWindowContext); ok {
			hwnd = wc.HWND
		}
	})
	if hwnd == 0 {
		return 0, desktop.ErrNoHandle
	}
	return hwnd, nil
}

// IsVisible asks the platform where it can, and otherwise reports the last
// state this adapter set.
func (m *mainWindow) IsVisible() (bool, error) {
	if m.desk.Supported() {
		return m.desk.IsVisible(m)
	}
	return m.shown.Value(), nil
}

func (m *mainWindow) Hide() error {
	m.shown.Set(false)
	fyne.Do(m.win.Hide)
	return nil
}

func (m *mainWindow) Show() error {
	m.shown.Set(true)
	fyne.Do(m.win.Show)
	return nil
}

func (m *mainWindow) SetFocus() error {
	fyne.Do(m.win.RequestFocus)
	return nil
}
