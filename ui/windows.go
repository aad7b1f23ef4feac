//go:build windows

package ui

// windowsOS implements the OS interface for Windows.
type windowsOS struct{}

// TransformToForeground is a no-op: the taskbar entry follows the window
// style set by the desktop controller.
func (w *windowsOS) TransformToForeground() {}

// TransformToBackground is a no-op, see TransformToForeground.
func (w *windowsOS) TransformToBackground() {}

// getOS returns a new instance of the windowsOS struct.
func getOS() OS {
	return &windowsOS{}
}
