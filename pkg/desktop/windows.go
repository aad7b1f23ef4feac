//go:build windows

package desktop

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32                    = windows.NewLazySystemDLL("user32.dll")
	dwmapi                    = windows.NewLazySystemDLL("dwmapi.dll")
	procIsWindow              = user32.NewProc("IsWindow")
	procIsWindowVisible       = user32.NewProc("IsWindowVisible")
	procGetWindowLongW        = user32.NewProc("GetWindowLongW")
	procSetWindowLongW        = user32.NewProc("SetWindowLongW")
	procSetWindowPos          = user32.NewProc("SetWindowPos")
	procGetWindowRect         = user32.NewProc("GetWindowRect")
	procSetLayeredWindowAttrs = user32.NewProc("SetLayeredWindowAttributes")
	procDwmSetWindowAttribute = dwmapi.NewProc("DwmSetWindowAttribute")
)

// Windows API constants (defined manually)
const (
	gwlExStyle = -20

	hwndBottom = 1

	swpNoSize     = 0x0001
	swpNoMove     = 0x0002
	swpNoZOrder   = 0x0004
	swpNoActivate = 0x0010

	lwaAlpha = 0x00000002

	dwmwaUseImmersiveDarkMode = 20
	dwmwaSystemBackdropType   = 38
	dwmwaMicaEffect           = 1029 // pre-release Windows 11 builds
	dwmsbtMainWindow          = 2
)

// windowsOS implements the OS interface for Windows.
type windowsOS struct{}

// getOS returns a new instance of the windowsOS struct.
func getOS() OS {
	return &windowsOS{}
}

func (w *windowsOS) supportsPinning() bool {
	return procSetWindowPos.Find() == nil && procGetWindowLongW.Find() == nil
}

func (w *windowsOS) checkWindow(hwnd uintptr) error {
	if ret, _, _ := procIsWindow.Call(hwnd); ret == 0 {
		return fmt.Errorf("%w: %#x is not a window", ErrNoHandle, hwnd)
	}
	return nil
}

func (w *windowsOS) exStyle(hwnd uintptr) (uint32, error) {
	if err := w.checkWindow(hwnd); err != nil {
		return 0, err
	}
	idx := int32(gwlExStyle)
	ret, _, _ := procGetWindowLongW.Call(hwnd, uintptr(idx))
	return uint32(ret), nil
}

func (w *windowsOS) setExStyle(hwnd uintptr, style uint32) error {
	if err := w.checkWindow(hwnd); err != nil {
		return err
	}
	idx := int32(gwlExStyle)
	// The return value is the previous style, zero is ambiguous so it is ignored.
	procSetWindowLongW.Call(hwnd, uintptr(idx), uintptr(style))
	return nil
}

func (w *windowsOS) sendToBottom(hwnd uintptr) error {
	ret, _, err := procSetWindowPos.Call(
		hwnd,
		uintptr(hwndBottom),
		0, 0, 0, 0,
		uintptr(swpNoMove|swpNoSize|swpNoActivate),
	)
	if ret == 0 {
		return fmt.Errorf("SetWindowPos: %w", err)
	}
	return nil
}

func (w *windowsOS) isVisible(hwnd uintptr) (bool, error) {
	if err := w.checkWindow(hwnd); err != nil {
		return false, err
	}
	ret, _, _ := procIsWindowVisible.Call(hwnd)
	return ret != 0, nil
}

func (w *windowsOS) applyBackdrop(hwnd uintptr) error {
	if err := procDwmSetWindowAttribute.Find(); err != nil {
		return ErrUnsupported
	}

	dark := int32(1)
	w.dwmSet(hwnd, dwmwaUseImmersiveDarkMode, unsafe.Pointer(&dark))

	backdrop := int32(dwmsbtMainWindow)
	if w.dwmSet(hwnd, dwmwaSystemBackdropType, unsafe.Pointer(&backdrop)) == nil {
		return nil
	}
	mica := int32(1)
	if w.dwmSet(hwnd, dwmwaMicaEffect, unsafe.Pointer(&mica)) == nil {
		return nil
	}
	// Windows 10 and earlier reject both attributes.
	return ErrUnsupported
}

func (w *windowsOS) dwmSet(hwnd uintptr, attr uint32, value unsafe.Pointer) error {
	hr, _, _ := procDwmSetWindowAttribute.Call(hwnd, uintptr(attr), uintptr(value), unsafe.Sizeof(int32(0)))
	if hr != 0 {
		return fmt.Errorf("DwmSetWindowAttribute(%d): HRESULT %#x", attr, hr)
	}
	return nil
}

func (w *windowsOS) setOpacity(hwnd uintptr, alpha byte) error {
	style, err := w.exStyle(hwnd)
	if err != nil {
		return err
	}
	if style&ExLayered == 0 {
		if err := w.setExStyle(hwnd, style|ExLayered); err != nil {
			return err
		}
	}
	ret, _, callErr := procSetLayeredWindowAttrs.Call(hwnd, 0, uintptr(alpha), uintptr(lwaAlpha))
	if ret == 0 {
		return fmt.Errorf("SetLayeredWindowAttributes: %w", callErr)
	}
	return nil
}

func (w *windowsOS) position(hwnd uintptr) (Point, error) {
	var r windows.Rect
	ret, _, err := procGetWindowRect.Call(hwnd, uintptr(unsafe.Pointer(&r)))
	if ret == 0 {
		return Point{}, fmt.Errorf("GetWindowRect: %w", err)
	}
	return Point{X: int(r.Left), Y: int(r.Top)}, nil
}

func (w *windowsOS) setPosition(hwnd uintptr, p Point) error {
	ret, _, err := procSetWindowPos.Call(
		hwnd,
		0,
		uintptr(int32(p.X)), uintptr(int32(p.Y)), 0, 0,
		uintptr(swpNoSize|swpNoZOrder|swpNoActivate),
	)
	if ret == 0 {
		return fmt.Errorf("SetWindowPos: %w", err)
	}
	return nil
}
