// Package tray owns the system tray icon and its click-to-toggle behaviour.
package tray

import (
	"sync"

	"github.com/desknote/desknote/util"
	"github.com/desknote/desknote/util/log"
)

// MouseButton identifies the button of a tray click.
type MouseButton int

// Tray mouse buttons.
const (
	MouseLeft MouseButton = iota
	MouseRight
	MouseMiddle
)

func (b MouseButton) String() string {
	switch b {
	case MouseLeft:
		return "left"
	case MouseRight:
		return "right"
	case MouseMiddle:
		return "middle"
	}
	return "unknown"
}

// Event is a click on the tray icon.
type Event struct {
	Button MouseButton
}

// Window is the part of the main window the toggle needs.
type Window interface {
	IsVisible() (bool, error)
	Hide() error
	Show() error
	SetFocus() error
}

// WindowLookup finds the main window, reporting false if it is gone.
type WindowLookup func() (Window, bool)

// Stats counts failures swallowed by the toggler.
type Stats struct {
	QueryFailed  int64
	ActionFailed int64
	NoWindow     int64
}

// Toggler shows or hides the main window on left-click.
type Toggler struct {
	mu     sync.Mutex
	lookup WindowLookup

	queryFailed  *util.SafeCounter
	actionFailed *util.SafeCounter
	noWindow     *util.SafeCounter
}

// NewToggler creates a toggler for the window returned by lookup.
func NewToggler(lookup WindowLookup) *Toggler {
	return &Toggler{
		lookup:       lookup,
		queryFailed:  util.NewSafeCounter(),
		actionFailed: util.NewSafeCounter(),
		noWindow:     util.NewSafeCounter(),
	}
}

// Stats returns a snapshot of the swallowed failure counters.
func (t *Toggler) Stats() Stats {
	return Stats{
		QueryFailed:  t.queryFailed.Value(),
		ActionFailed: t.actionFailed.Value(),
		NoWindow:     t.noWindow.Value(),
	}
}

// Handle reacts to a tray event. Only left-clicks toggle the window.
func (t *Toggler) Handle(ev Event) {
	if ev.Button != MouseLeft {
		return
	}
	t.Toggle()
}

// Toggle hides a visible window, or shows and focuses a hidden one.
// An unreadable visibility counts as hidden so the window comes back.
func (t *Toggler) Toggle() {
	t.mu.Lock()
	defer t.mu.Unlock()

	w, ok := t.lookup()
	if !ok || w == nil {
		t.noWindow.Increment()
		return
	}

	visible, err := w.IsVisible()
	if err != nil {
		t.queryFailed.Increment()
		log.Debugf("tray: visibility query failed, showing window: %v", err)
		visible = false
	}

	if visible {
		t.check("hide", w.Hide())
		return
	}
	t.check("show", w.Show())
	t.check("focus", w.SetFocus())
}

func (t *Toggler) check(op string, err error) {
	if err == nil {
		return
	}
	t.actionFailed.Increment()
	log.Warnf("tray: %s main window failed: %v", op, err)
}
