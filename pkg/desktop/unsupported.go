//go:build !windows

package desktop

// unsupportedOS implements the OS interface for platforms without
// extended window styles or Z-order control. Every call is a no-op.
type unsupportedOS struct{}

// getOS returns a new instance of the unsupportedOS struct.
func getOS() OS {
	return &unsupportedOS{}
}

func (u *unsupportedOS) supportsPinning() bool { return false }

func (u *unsupportedOS) exStyle(uintptr) (uint32, error) { return 0, ErrUnsupported }

func (u *unsupportedOS) setExStyle(uintptr, uint32) error { return ErrUnsupported }

func (u *unsupportedOS) sendToBottom(uintptr) error { return ErrUnsupported }

func (u *unsupportedOS) isVisible(uintptr) (bool, error) { return false, ErrUnsupported }

func (u *unsupportedOS) applyBackdrop(uintptr) error { return ErrUnsupported }

func (u *unsupportedOS) setOpacity(uintptr, byte) error { return ErrUnsupported }

func (u *unsupportedOS) position(uintptr) (Point, error) { return Point{}, ErrUnsupported }

func (u *unsupportedOS) setPosition(uintptr, Point) error { return ErrUnsupported }
