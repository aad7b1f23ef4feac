// Package winstate saves and restores main window geometry across runs.
package winstate

import (
	"errors"

	"fyne.io/fyne/v2"
	"github.com/desknote/desknote/pkg/desktop"
	"github.com/desknote/desknote/util/log"
)

// Smallest size restored, so a bad value never leaves an unusable window.
const (
	MinWidth  = 240
	MinHeight = 200
)

// onScreenMargin is how much of a restored window must stay on screen.
const onScreenMargin = 80

// Preference keys, prefixed with the window id.
const (
	widthKey   = ".width"
	heightKey  = ".height"
	xKey       = ".x"
	yKey       = ".y"
	hasPosKey  = ".hasPosition"
	visibleKey = ".visible"
)

// Positioner reads and moves a native window.
type Positioner interface {
	Position(w desktop.HandleSource) (desktop.Point, error)
	SetPosition(w desktop.HandleSource, p desktop.Point) error
}

// State is the persisted geometry of a window.
type State struct {
	Width, Height float32
	Position      desktop.Point
	HasPosition   bool
	Visible       bool
}

// Tracker persists the state of one window under a preference prefix.
type Tracker struct {
	prefs  fyne.Preferences
	pos    Positioner
	source desktop.HandleSource
	prefix string
	screen func() (int, int, error)
}

// New creates a tracker for the window identified by id. pos and source
// may be nil where positions cannot be read.
func New(prefs fyne.Preferences, id string, pos Positioner, source desktop.HandleSource) *Tracker {
	return &Tracker{prefs: prefs, pos: pos, source: source, prefix: "window." + id}
}

// KeepOnScreen makes RestorePosition pull saved positions back inside the
// screen size reported by fn.
func (t *Tracker) KeepOnScreen(fn func() (int, int, error)) {
	t.screen = fn
}

// Load returns the saved state, and false if nothing was saved yet.
func (t *Tracker) Load() (State, bool) {
	w := t.prefs.Float(t.prefix + widthKey)
	h := t.prefs.Float(t.prefix + heightKey)
	if w <= 0 || h <= 0 {
		return State{Visible: true}, false
	}
	return State{
		Width:  float32(max(w, MinWidth)),
		Height: float32(max(h, MinHeight)),
		Position: desktop.Point{
			X: t.prefs.Int(t.prefix + xKey),
			Y: t.prefs.Int(t.prefix + yKey),
		},
		HasPosition: t.prefs.Bool(t.prefix + hasPosKey),
		Visible:     t.prefs.BoolWithFallback(t.prefix+visibleKey, true),
	}, true
}

// Save records the current size of w, its native position when available,
// and visible.
func (t *Tracker) Save(w fyne.Window, visible bool) {
	size := w.Canvas().Size()
	if size.Width <= 0 || size.Height <= 0 {
		log.Debugf("winstate: skipping save of empty size %v", size)
		return
	}
	t.prefs.SetFloat(t.prefix+widthKey, float64(size.Width))
	t.prefs.SetFloat(t.prefix+heightKey, float64(size.Height))
	t.prefs.SetBool(t.prefix+visibleKey, visible)

	if t.pos == nil {
		return
	}
	p, err := t.pos.Position(t.source)
	if err != nil {
		if !errors.Is(err, desktop.ErrUnsupported) {
			log.Warnf("winstate: failed to read window position: %v", err)
		}
		return
	}
	t.prefs.SetInt(t.prefix+xKey, p.X)
	t.prefs.SetInt(t.prefix+yKey, p.Y)
	t.prefs.SetBool(t.prefix+hasPosKey, true)
}

// RestoreSize resizes w to the saved size. It is safe before the window is
// shown.
func (t *Tracker) RestoreSize(w fyne.Window) (State, bool) {
	s, ok := t.Load()
	if ok {
		w.Resize(fyne.NewSize(s.Width, s.Height))
	}
	return s, ok
}

// RestorePosition moves the native window to the saved position. It needs
// a native handle, so call it once the window is shown.
func (t *Tracker) RestorePosition() {
	s, ok := t.Load()
	if !ok || !s.HasPosition || t.pos == nil {
		return
	}
	p := s.Position
	if t.screen != nil {
		if w, h, err := t.screen(); err == nil {
			p = clampToScreen(p, w, h)
		} else {
			log.Debugf("winstate: screen size unknown: %v", err)
		}
	}
	if err := t.pos.SetPosition(t.source, p); err != nil && !errors.Is(err, desktop.ErrUnsupported) {
		log.Warnf("winstate: failed to restore window position: %v", err)
	}
}

// clampToScreen moves p so at least onScreenMargin pixels of the window
// corner stay within a width x height screen.
func clampToScreen(p desktop.Point, width, height int) desktop.Point {
	if width <= onScreenMargin || height <= onScreenMargin {
		return p
	}
	p.X = min(max(p.X, 0), width-onScreenMargin)
	p.Y = min(max(p.Y, 0), height-onScreenMargin)
	return p
}
