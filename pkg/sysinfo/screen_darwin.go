//go:build darwin

package sysinfo

import (
	"fmt"
	"os/exec"
)

// ScreenSize returns the size of the main display in pixels.
func ScreenSize() (int, int, error) {
	out, err := exec.Command("system_profiler", "SPDisplaysDataType", "-json").Output()
	if err != nil {
		return 0, 0, fmt.Errorf("system_profiler: %w", err)
	}
	return parseProfiler(out)
}
