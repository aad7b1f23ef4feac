//go:build linux

package ui

// linuxOS has no taskbar policy to change; desktop mode relies on the
// window manager.
type linuxOS struct{}

func (l *linuxOS) TransformToForeground() {}

func (l *linuxOS) TransformToBackground() {}

func getOS() OS {
	return &linuxOS{}
}
