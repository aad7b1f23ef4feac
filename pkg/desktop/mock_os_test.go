package desktop

import "github.com/stretchr/testify/mock"

// MockOS is a mock implementation of the OS interface.
type MockOS struct {
	mock.Mock
}

func (m *MockOS) supportsPinning() bool {
	return m.Called().Bool(0)
}

func (m *MockOS) exStyle(hwnd uintptr) (uint32, error) {
	args := m.Called(hwnd)
	return args.Get(0).(uint32), args.Error(1)
}

func (m *MockOS) setExStyle(hwnd uintptr, style uint32) error {
	return m.Called(hwnd, style).Error(0)
}

func (m *MockOS) sendToBottom(hwnd uintptr) error {
	return m.Called(hwnd).Error(0)
}

func (m *MockOS) isVisible(hwnd uintptr) (bool, error) {
	args := m.Called(hwnd)
	return args.Bool(0), args.Error(1)
}

func (m *MockOS) applyBackdrop(hwnd uintptr) error {
	return m.Called(hwnd).Error(0)
}

func (m *MockOS) setOpacity(hwnd uintptr, alpha byte) error {
	return m.Called(hwnd, alpha).Error(0)
}

func (m *MockOS) position(hwnd uintptr) (Point, error) {
	args := m.Called(hwnd)
	return args.Get(0).(Point), args.Error(1)
}

func (m *MockOS) setPosition(hwnd uintptr, p Point) error {
	return m.Called(hwnd, p).Error(0)
}

// fakeOS models a small window stack so observable attributes can be compared.
type fakeOS struct {
	supported bool
	styles    map[uintptr]uint32
	zorder    []uintptr // front to back
}

func newFakeOS(supported bool, hwnds ...uintptr) *fakeOS {
	f := &fakeOS{supported: supported, styles: make(map[uintptr]uint32)}
	for _, h := range hwnds {
		f.styles[h] = 0
		f.zorder = append(f.zorder, h)
	}
	return f
}

type fakeSnapshot struct {
	styles map[uintptr]uint32
	zorder []uintptr
}

func (f *fakeOS) snapshot() fakeSnapshot {
	s := fakeSnapshot{styles: make(map[uintptr]uint32, len(f.styles))}
	for h, st := range f.styles {
		s.styles[h] = st
	}
	s.zorder = append(s.zorder, f.zorder...)
	return s
}

func (f *fakeOS) supportsPinning() bool { return f.supported }

func (f *fakeOS) exStyle(hwnd uintptr) (uint32, error) {
	st, ok := f.styles[hwnd]
	if !ok {
		return 0, ErrNoHandle
	}
	return st, nil
}

func (f *fakeOS) setExStyle(hwnd uintptr, style uint32) error {
	if _, ok := f.styles[hwnd]; !ok {
		return ErrNoHandle
	}
	f.styles[hwnd] = style
	return nil
}

func (f *fakeOS) sendToBottom(hwnd uintptr) error {
	idx := -1
	for i, h := range f.zorder {
		if h == hwnd {
			idx = i
		}
	}
	if idx < 0 {
		return ErrNoHandle
	}
	f.zorder = append(f.zorder[:idx], f.zorder[idx+1:]...)
	f.zorder = append(f.zorder, hwnd)
	return nil
}

func (f *fakeOS) isVisible(uintptr) (bool, error) { return true, nil }
func (f *fakeOS) applyBackdrop(uintptr) error { return ErrUnsupported }
func (f *fakeOS) setOpacity(uintptr, byte) error { return nil }
func (f *fakeOS) position(uintptr) (Point, error) { return Point{}, nil }
func (f *fakeOS) setPosition(uintptr, Point) error { return nil }
