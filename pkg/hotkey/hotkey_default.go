//go:build !darwin && !windows

package hotkey

import "golang.design/x/hotkey"

const (
	modCtrl = hotkey.ModCtrl
	modAlt  = hotkey.Mod1
	keyN    = hotkey.KeyN

	modCtrlLabel = "Ctrl"
	modAltLabel  = "Alt"
)

// HasAccessibility reports whether global shortcuts can be delivered.
func HasAccessibility() bool {
	return true
}
