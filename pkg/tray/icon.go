package tray

import (
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/systray"
)

// Backend installs an icon into the platform notification area.
type Backend interface {
	SetIcon(res fyne.Resource)
	SetMenu(menu *fyne.Menu)
	SetTooltip(tooltip string)
	// OnEvent registers the click callback; nil removes it.
	OnEvent(func(Event))
}

// Icon is the process-lifetime tray icon. It is created once at startup,
// owned by the application context and released at shutdown.
type Icon struct {
	mu      sync.Mutex
	backend Backend
	toggler *Toggler
	tooltip string
	open    bool
}

// NewIcon installs the tray icon with the given resource and menu and
// routes clicks to toggler. The tooltip is applied by Ready.
func NewIcon(backend Backend, res fyne.Resource, tooltip string, menu *fyne.Menu, toggler *Toggler) *Icon {
	backend.SetMenu(menu)
	backend.SetIcon(res)
	backend.OnEvent(toggler.Handle)
	return &Icon{backend: backend, toggler: toggler, tooltip: tooltip, open: true}
}

// Ready applies the tooltip. Call it once the platform tray exists; on
// Windows and macOS a tooltip set earlier is dropped.
func (i *Icon) Ready() {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.open {
		i.backend.SetTooltip(i.tooltip)
	}
}

// Toggler returns the handler behind the icon.
func (i *Icon) Toggler() *Toggler {
	return i.toggler
}

// SetIcon swaps the icon image.
func (i *Icon) SetIcon(res fyne.Resource) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.open {
		i.backend.SetIcon(res)
	}
}

// Close detaches the click handler. It is safe to call more than once.
func (i *Icon) Close() {
	i.mu.Lock()
	defer i.mu.Unlock()
	if !i.open {
		return
	}
	i.open = false
	i.backend.OnEvent(nil)
}

// FyneBackend drives the tray through fyne's desktop driver.
type FyneBackend struct {
	Desk desktop.App
}

// SetIcon sets the tray icon image.
func (b *FyneBackend) SetIcon(res fyne.Resource) {
	b.Desk.SetSystemTrayIcon(res)
}

// SetMenu sets the menu shown by the platform on secondary click.
func (b *FyneBackend) SetMenu(menu *fyne.Menu) {
	b.Desk.SetSystemTrayMenu(menu)
}

// SetTooltip sets the hover text of the tray icon.
func (b *FyneBackend) SetTooltip(tooltip string) {
	systray.SetTooltip(tooltip)
}

// OnEvent routes primary clicks to fn. Secondary clicks keep the
// platform's default menu behaviour.
func (b *FyneBackend) OnEvent(fn func(Event)) {
	if fn == nil {
		systray.SetOnTapped(nil)
		return
	}
	systray.SetOnTapped(func() {
		fn(Event{Button: MouseLeft})
	})
}
