//go:build windows

package sysinfo

import (
	"golang.org/x/sys/windows"
)

var (
	user32               = windows.NewLazySystemDLL("user32.dll")
	procGetSystemMetrics = user32.NewProc("GetSystemMetrics")
)

const (
	smCXScreen = 0
	smCYScreen = 1
)

// ScreenSize returns the size of the primary monitor in pixels.
func ScreenSize() (int, int, error) {
	if err := procGetSystemMetrics.Find(); err != nil {
		return 0, 0, err
	}
	width, _, _ := procGetSystemMetrics.Call(smCXScreen)
	height, _, _ := procGetSystemMetrics.Call(smCYScreen)
	if width == 0 || height == 0 {
		return 0, 0, ErrNoDisplay
	}
	return int(width), int(height), nil
}
