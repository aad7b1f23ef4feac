//go:build !windows && !linux && !darwin

package sysinfo

// ScreenSize is not available on this platform.
func ScreenSize() (int, int, error) {
	return 0, 0, ErrNoDisplay
}
