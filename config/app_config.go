package config

import (
	"strings"

	"fyne.io/fyne/v2"
)

// Card identifiers of the main window, in display order.
const (
	CardTodo     = "todo"
	CardNotes    = "notes"
	CardWorkLog  = "worklog"
	CardSettings = "settings"
)

// Cards lists every card of the main window in display order.
var Cards = []string{CardTodo, CardNotes, CardWorkLog, CardSettings}

// Preference keys.
const (
	OpacityKey            = "opacity"
	DesktopModeKey        = "desktopMode"
	CollapsedCardsKey     = "cardCollapsed"
	AppUpdateCheckEnabled = "app_update_check_enabled"
	BridgeEnabledKey      = "bridge_enabled"
	BridgeAddrKey         = "bridge_addr"
)

// DefaultOpacity is the window opacity used until the user picks one.
const DefaultOpacity = 0.85

// MinOpacity keeps the window from becoming fully invisible.
const MinOpacity = 0.2

// DefaultBridgeAddr is the loopback address of the command bridge.
const DefaultBridgeAddr = "127.0.0.1:49453"

var defaultCollapsed = []string{CardNotes, CardWorkLog, CardSettings}

// AppConfig holds the application-wide configuration backed by the key-value store.
type AppConfig struct {
	prefs fyne.Preferences
}

// NewAppConfig creates a new AppConfig instance
func NewAppConfig(p fyne.Preferences) *AppConfig {
	return &AppConfig{prefs: p}
}

// Preferences returns the underlying key-value store.
func (c *AppConfig) Preferences() fyne.Preferences {
	return c.prefs
}

// GetOpacity returns the main window opacity in the range [MinOpacity, 1].
func (c *AppConfig) GetOpacity() float64 {
	return clampOpacity(c.prefs.FloatWithFallback(OpacityKey, DefaultOpacity))
}

// SetOpacity stores the main window opacity, clamped to [MinOpacity, 1].
func (c *AppConfig) SetOpacity(v float64) float64 {
	v = clampOpacity(v)
	c.prefs.SetFloat(OpacityKey, v)
	return v
}

func clampOpacity(v float64) float64 {
	switch {
	case v < MinOpacity:
		return MinOpacity
	case v > 1:
		return 1
	}
	return v
}

// GetDesktopMode reports whether the window should stay pinned to the desktop.
func (c *AppConfig) GetDesktopMode() bool {
	return c.prefs.BoolWithFallback(DesktopModeKey, false)
}

// SetDesktopMode stores the desktop mode flag.
func (c *AppConfig) SetDesktopMode(enabled bool) {
	c.prefs.SetBool(DesktopModeKey, enabled)
}

// GetCardCollapsed returns the collapsed state of every card.
func (c *AppConfig) GetCardCollapsed() map[string]bool {
	collapsed := c.prefs.StringListWithFallback(CollapsedCardsKey, defaultCollapsed)
	out := make(map[string]bool, len(Cards))
	for _, card := range Cards {
		out[card] = false
	}
	for _, card := range collapsed {
		card = strings.TrimSpace(card)
		if _, known := out[card]; known {
			out[card] = true
		}
	}
	return out
}

// SetCardCollapsed stores the collapsed state of a single card.
func (c *AppConfig) SetCardCollapsed(card string, collapsed bool) {
	state := c.GetCardCollapsed()
	if _, known := state[card]; !known {
		return
	}
	state[card] = collapsed

	list := make([]string, 0, len(state))
	for _, id := range Cards {
		if state[id] {
			list = append(list, id)
		}
	}
	c.prefs.SetStringList(CollapsedCardsKey, list)
}

// GetUpdateCheckEnabled returns whether the application should check for updates
func (c *AppConfig) GetUpdateCheckEnabled() bool {
	return c.prefs.BoolWithFallback(AppUpdateCheckEnabled, true)
}

// SetUpdateCheckEnabled sets whether the application should check for updates
func (c *AppConfig) SetUpdateCheckEnabled(enabled bool) {
	c.prefs.SetBool(AppUpdateCheckEnabled, enabled)
}

// GetBridgeEnabled reports whether the localhost command bridge should run.
func (c *AppConfig) GetBridgeEnabled() bool {
	return c.prefs.BoolWithFallback(BridgeEnabledKey, false)
}

// SetBridgeEnabled toggles the localhost command bridge.
func (c *AppConfig) SetBridgeEnabled(enabled bool) {
	c.prefs.SetBool(BridgeEnabledKey, enabled)
}

// GetBridgeAddr returns the listen address of the command bridge.
func (c *AppConfig) GetBridgeAddr() string {
	return c.prefs.StringWithFallback(BridgeAddrKey, DefaultBridgeAddr)
}
