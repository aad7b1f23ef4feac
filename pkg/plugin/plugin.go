// Package plugin wires the capability plugins of the application in a fixed
// order.
package plugin

import (
	"fyne.io/fyne/v2"
	"github.com/desknote/desknote/config"
	"github.com/desknote/desknote/pkg/ipc"
)

// Plugin is the interface that must be implemented by all plugins.
type Plugin interface {
	Name() string    // Returns the plugin's name.
	Init(Host) error // Called once at startup, in registration order.
	Close() error    // Called once at shutdown, in reverse order.
}

// Host is what the application hands to every plugin.
type Host interface {
	App() fyne.App                // Returns the fyne application.
	Commands() *ipc.Registry      // Returns the command registry.
	Config() *config.AppConfig    // Returns the settings store.
	MainWindow() fyne.Window      // Returns the main window, nil before it exists.
	Notify(title, message string) // Notifies the user.
}

// Func adapts a pair of functions to a Plugin.
type Func struct {
	ID      string
	OnInit  func(Host) error
	OnClose func() error
}

// Name returns the plugin's name.
func (f *Func) Name() string { return f.ID }

// Init calls OnInit when set.
func (f *Func) Init(h Host) error {
	if f.OnInit == nil {
		return nil
	}
	return f.OnInit(h)
}

// Close calls OnClose when set.
func (f *Func) Close() error {
	if f.OnClose == nil {
		return nil
	}
	return f.OnClose()
}
