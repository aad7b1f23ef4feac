package desktop

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func handleOf(hwnd uintptr) HandleSource {
	return HandleFunc(func() (uintptr, error) { return hwnd, nil })
}

func TestPinToDesktopAppliesStyleAndZOrder(t *testing.T) {
	fos := newFakeOS(true, 10, 20, 30)
	fos.styles[10] = ExLayered
	c := newController(fos)

	c.PinToDesktop(handleOf(10))

	assert.Equal(t, ExLayered|ExToolWindow|ExNoActivate, fos.styles[10], "existing bits must be kept")
	assert.Equal(t, []uintptr{20, 30, 10}, fos.zorder)
	assert.Equal(t, Stats{}, c.Stats())
}

func TestPinToDesktopIsIdempotent(t *testing.T) {
	tests := []struct {
		name   string
		style  uint32
		target uintptr
	}{
		{name: "PlainTopWindow", style: 0, target: 1},
		{name: "LayeredMiddleWindow", style: ExLayered, target: 2},
		{name: "AlreadyPinnedBottomWindow", style: PinStyle, target: 3},
		{name: "PartiallyPinned", style: ExToolWindow, target: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			once := newFakeOS(true, 1, 2, 3)
			once.styles[tt.target] = tt.style
			newController(once).PinToDesktop(handleOf(tt.target))

			twice := newFakeOS(true, 1, 2, 3)
			twice.styles[tt.target] = tt.style
			c := newController(twice)
			c.PinToDesktop(handleOf(tt.target))
			c.PinToDesktop(handleOf(tt.target))

			assert.Equal(t, once.snapshot(), twice.snapshot())
			assert.Equal(t, tt.target, twice.zorder[len(twice.zorder)-1])
			assert.Equal(t, PinStyle, twice.styles[tt.target]&PinStyle)
		})
	}
}

func TestRestorePinOnFocusLossOnlyTouchesZOrder(t *testing.T) {
	mos := new(MockOS)
	mos.On("supportsPinning").Return(true)
	mos.On("sendToBottom", uintptr(42)).Return(nil)
	c := newController(mos)

	c.RestorePinOnFocusLoss(handleOf(42))

	mos.AssertExpectations(t)
	mos.AssertNotCalled(t, "exStyle", mock.Anything)
	mos.AssertNotCalled(t, "setExStyle", mock.Anything, mock.Anything)
}

func TestRestorePinOnFocusLossKeepsStyles(t *testing.T) {
	fos := newFakeOS(true, 1, 2)
	fos.styles[1] = ExLayered
	c := newController(fos)

	c.RestorePinOnFocusLoss(handleOf(1))

	assert.Equal(t, ExLayered, fos.styles[1])
	assert.Equal(t, []uintptr{2, 1}, fos.zorder)
}

func TestUnsupportedPlatformIsNoop(t *testing.T) {
	fos := newFakeOS(false, 1, 2)
	before := fos.snapshot()
	c := newController(fos)

	called := false
	src := HandleFunc(func() (uintptr, error) {
		called = true
		return 1, nil
	})

	c.PinToDesktop(src)
	c.RestorePinOnFocusLoss(src)

	assert.Equal(t, before, fos.snapshot())
	assert.False(t, called, "handle must not be requested without the capability")
	assert.Equal(t, int64(2), c.Stats().CapabilityUnavailable)
	assert.False(t, c.Supported())
}

func TestHandleUnavailableIsNoop(t *testing.T) {
	mos := new(MockOS)
	mos.On("supportsPinning").Return(true)
	c := newController(mos)

	c.PinToDesktop(HandleFunc(func() (uintptr, error) { return 0, errors.New("window not realised") }))
	c.PinToDesktop(handleOf(0))
	c.RestorePinOnFocusLoss(nil)

	assert.Equal(t, int64(3), c.Stats().HandleUnavailable)
	mos.AssertNotCalled(t, "exStyle", mock.Anything)
	mos.AssertNotCalled(t, "sendToBottom", mock.Anything)
}

func TestCallFailuresAreCounted(t *testing.T) {
	mos := new(MockOS)
	mos.On("supportsPinning").Return(true)
	mos.On("exStyle", uintptr(7)).Return(uint32(0), errors.New("access denied"))
	mos.On("sendToBottom", uintptr(7)).Return(errors.New("access denied"))
	c := newController(mos)

	c.PinToDesktop(handleOf(7))

	assert.Equal(t, int64(2), c.Stats().CallFailed)
	mos.AssertNotCalled(t, "setExStyle", mock.Anything, mock.Anything)
}

func TestIsVisible(t *testing.T) {
	mos := new(MockOS)
	mos.On("isVisible", uintptr(5)).Return(true, nil)
	c := newController(mos)

	visible, err := c.IsVisible(handleOf(5))
	require.NoError(t, err)
	assert.True(t, visible)

	_, err = c.IsVisible(HandleFunc(func() (uintptr, error) { return 0, errors.New("gone") }))
	assert.ErrorIs(t, err, ErrNoHandle)

	_, err = c.IsVisible(nil)
	assert.ErrorIs(t, err, ErrNoHandle)
}

func TestApplyBackdrop(t *testing.T) {
	mos := new(MockOS)
	mos.On("applyBackdrop", uintptr(1)).Return(nil)
	mos.On("applyBackdrop", uintptr(2)).Return(ErrUnsupported)
	c := newController(mos)

	assert.True(t, c.ApplyBackdrop(handleOf(1)))
	assert.False(t, c.ApplyBackdrop(handleOf(2)))
	assert.Equal(t, int64(1), c.Stats().CapabilityUnavailable)
	assert.Equal(t, int64(0), c.Stats().CallFailed)
}

func TestSetOpacity(t *testing.T) {
	mos := new(MockOS)
	mos.On("setOpacity", uintptr(1), byte(217)).Return(nil)
	c := newController(mos)

	c.SetOpacity(handleOf(1), 0.85)
	mos.AssertExpectations(t)
}

func TestPosition(t *testing.T) {
	mos := new(MockOS)
	mos.On("position", uintptr(1)).Return(Point{X: -40, Y: 120}, nil)
	mos.On("setPosition", uintptr(1), Point{X: 10, Y: 20}).Return(nil)
	c := newController(mos)

	p, err := c.Position(handleOf(1))
	require.NoError(t, err)
	assert.Equal(t, Point{X: -40, Y: 120}, p)

	require.NoError(t, c.SetPosition(handleOf(1), Point{X: 10, Y: 20}))
	assert.ErrorIs(t, c.SetPosition(nil, Point{}), ErrNoHandle)
}

func TestAlphaFromOpacity(t *testing.T) {
	assert.Equal(t, byte(0), alphaFromOpacity(-1))
	assert.Equal(t, byte(0), alphaFromOpacity(0))
	assert.Equal(t, byte(128), alphaFromOpacity(0.5))
	assert.Equal(t, byte(255), alphaFromOpacity(1))
	assert.Equal(t, byte(255), alphaFromOpacity(2))
}
