// Package desktop pins the main window to the desktop layer.
//
// A pinned window is hidden from the taskbar and window switcher, never
// takes keyboard focus and sits below every normal window. All operations
// are best effort: an unsupported platform or a missing native handle is
// an expected condition, counted in Stats and otherwise ignored.
package desktop

import (
	"errors"
	"fmt"

	"github.com/desknote/desknote/util"
	"github.com/desknote/desknote/util/log"
)

var (
	// ErrUnsupported is returned by platforms without the window capability.
	ErrUnsupported = errors.New("desktop: capability not supported on this platform")
	// ErrNoHandle is returned when the native window handle is unavailable.
	ErrNoHandle = errors.New("desktop: native window handle unavailable")
)

// Extended window style bits applied when pinning.
const (
	ExToolWindow uint32 = 0x00000080 // hidden from taskbar and alt-tab
	ExNoActivate uint32 = 0x08000000 // never activated on show or click
	ExLayered    uint32 = 0x00080000 // per-window alpha
)

// PinStyle is the set of extended style bits a pinned window carries.
const PinStyle = ExToolWindow | ExNoActivate

// HandleSource exposes the native handle of a window.
type HandleSource interface {
	NativeHandle() (uintptr, error)
}

// HandleFunc adapts a function to HandleSource.
type HandleFunc func() (uintptr, error)

// NativeHandle calls f.
func (f HandleFunc) NativeHandle() (uintptr, error) {
	return f()
}

// Point is a window position in physical screen pixels.
type Point struct {
	X, Y int
}

// OS is the window capability of the running platform.
type OS interface {
	supportsPinning() bool
	exStyle(hwnd uintptr) (uint32, error)
	setExStyle(hwnd uintptr, style uint32) error
	sendToBottom(hwnd uintptr) error
	isVisible(hwnd uintptr) (bool, error)
	applyBackdrop(hwnd uintptr) error
	setOpacity(hwnd uintptr, alpha byte) error
	position(hwnd uintptr) (Point, error)
	setPosition(hwnd uintptr, p Point) error
}

// Stats counts failures that were swallowed by the controller.
type Stats struct {
	HandleUnavailable     int64
	CapabilityUnavailable int64
	CallFailed            int64
}

// Controller applies desktop-level window behaviour.
type Controller struct {
	os OS

	handleUnavailable     *util.SafeCounter
	capabilityUnavailable *util.SafeCounter
	callFailed            *util.SafeCounter
}

// NewController returns a controller for the running platform.
func NewController() *Controller {
	return newController(getOS())
}

func newController(os OS) *Controller {
	return &Controller{
		os:                    os,
		handleUnavailable:     util.NewSafeCounter(),
		capabilityUnavailable: util.NewSafeCounter(),
		callFailed:            util.NewSafeCounter(),
	}
}

// Supported reports whether the platform can pin windows.
func (c *Controller) Supported() bool {
	return c.os.supportsPinning()
}

// Stats returns a snapshot of the swallowed failure counters.
func (c *Controller) Stats() Stats {
	return Stats{
		HandleUnavailable:     c.handleUnavailable.Value(),
		CapabilityUnavailable: c.capabilityUnavailable.Value(),
		CallFailed:            c.callFailed.Value(),
	}
}

// PinToDesktop hides the window from the taskbar, stops it from taking
// focus and moves it to the bottom of the Z-order. Applying it again has
// no further effect.
func (c *Controller) PinToDesktop(w HandleSource) {
	hwnd, ok := c.pinnableHandle(w)
	if !ok {
		return
	}

	style, err := c.os.exStyle(hwnd)
	if err != nil {
		c.record("read extended style", err)
	} else if err := c.os.setExStyle(hwnd, style|PinStyle); err != nil {
		c.record("write extended style", err)
	}

	if err := c.os.sendToBottom(hwnd); err != nil {
		c.record("send to bottom", err)
	}
}

// RestorePinOnFocusLoss moves the window back to the bottom of the Z-order
// after it lost focus. Style flags are left untouched.
func (c *Controller) RestorePinOnFocusLoss(w HandleSource) {
	hwnd, ok := c.pinnableHandle(w)
	if !ok {
		return
	}
	if err := c.os.sendToBottom(hwnd); err != nil {
		c.record("send to bottom", err)
	}
}

// IsVisible queries the native visibility of the window.
func (c *Controller) IsVisible(w HandleSource) (bool, error) {
	hwnd, err := rawHandle(w)
	if err != nil {
		return false, err
	}
	return c.os.isVisible(hwnd)
}

// ApplyBackdrop applies the translucent system backdrop where available
// and reports whether it was applied.
func (c *Controller) ApplyBackdrop(w HandleSource) bool {
	hwnd, ok := c.handle(w)
	if !ok {
		return false
	}
	if err := c.os.applyBackdrop(hwnd); err != nil {
		c.record("apply backdrop", err)
		return false
	}
	return true
}

// SetOpacity sets the window alpha, 0 being transparent and 1 opaque.
func (c *Controller) SetOpacity(w HandleSource, opacity float64) {
	hwnd, ok := c.handle(w)
	if !ok {
		return
	}
	if err := c.os.setOpacity(hwnd, alphaFromOpacity(opacity)); err != nil {
		c.record("set opacity", err)
	}
}

// Position returns the window position in physical pixels.
func (c *Controller) Position(w HandleSource) (Point, error) {
	hwnd, err := rawHandle(w)
	if err != nil {
		return Point{}, err
	}
	return c.os.position(hwnd)
}

// SetPosition moves the window without resizing or activating it.
func (c *Controller) SetPosition(w HandleSource, p Point) error {
	hwnd, err := rawHandle(w)
	if err != nil {
		return err
	}
	return c.os.setPosition(hwnd, p)
}

func (c *Controller) pinnableHandle(w HandleSource) (uintptr, bool) {
	if !c.os.supportsPinning() {
		c.capabilityUnavailable.Increment()
		return 0, false
	}
	return c.handle(w)
}

func (c *Controller) handle(w HandleSource) (uintptr, bool) {
	hwnd, err := rawHandle(w)
	if err != nil {
		c.handleUnavailable.Increment()
		log.Debugf("%v", err)
		return 0, false
	}
	return hwnd, true
}

func rawHandle(w HandleSource) (uintptr, error) {
	if w == nil {
		return 0, ErrNoHandle
	}
	hwnd, err := w.NativeHandle()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrNoHandle, err)
	}
	if hwnd == 0 {
		return 0, ErrNoHandle
	}
	return hwnd, nil
}

func (c *Controller) record(op string, err error) {
	if errors.Is(err, ErrUnsupported) {
		c.capabilityUnavailable.Increment()
		return
	}
	c.callFailed.Increment()
	log.Warnf("desktop: %s failed: %v", op, err)
}

func alphaFromOpacity(opacity float64) byte {
	switch {
	case opacity <= 0:
		return 0
	case opacity >= 1:
		return 255
	}
	return byte(opacity*255 + 0.5)
}
