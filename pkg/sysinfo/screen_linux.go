//go:build linux

package sysinfo

import (
	"fmt"
	"os/exec"
)

// ScreenSize returns the size of the X display in pixels.
func ScreenSize() (int, int, error) {
	out, err := exec.Command("xdpyinfo").Output()
	if err != nil {
		return 0, 0, fmt.Errorf("xdpyinfo: %w", err)
	}
	return parseXdpyinfo(string(out))
}
