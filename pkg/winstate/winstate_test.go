package winstate

import (
	"errors"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/desknote/desknote/pkg/desktop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePositioner struct {
	at     desktop.Point
	err    error
	setErr error
	moved  []desktop.Point
}

func (f *fakePositioner) Position(desktop.HandleSource) (desktop.Point, error) {
	return f.at, f.err
}

func (f *fakePositioner) SetPosition(_ desktop.HandleSource, p desktop.Point) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.moved = append(f.moved, p)
	return nil
}

func TestLoadEmpty(t *testing.T) {
	a := test.NewTempApp(t)
	tr := New(a.Preferences(), "main", nil, nil)

	s, ok := tr.Load()
	assert.False(t, ok)
	assert.True(t, s.Visible)
}

func TestSaveRestore(t *testing.T) {
	a := test.NewTempApp(t)
	pos := &fakePositioner{at: desktop.Point{X: 120, Y: -40}}
	tr := New(a.Preferences(), "main", pos, nil)

	w := a.NewWindow("main")
	w.Resize(fyne.NewSize(360, 520))
	tr.Save(w, false)

	s, ok := tr.Load()
	require.True(t, ok)
	assert.Equal(t, float32(360), s.Width)
	assert.Equal(t, float32(520), s.Height)
	assert.True(t, s.HasPosition)
	assert.Equal(t, desktop.Point{X: 120, Y: -40}, s.Position)
	assert.False(t, s.Visible)

	w2 := a.NewWindow("main")
	_, ok = tr.RestoreSize(w2)
	require.True(t, ok)
	assert.Equal(t, fyne.NewSize(360, 520), w2.Canvas().Size())

	tr.RestorePosition()
	assert.Equal(t, []desktop.Point{{X: 120, Y: -40}}, pos.moved)
}

func TestSaveWithoutPosition(t *testing.T) {
	a := test.NewTempApp(t)
	pos := &fakePositioner{err: desktop.ErrUnsupported}
	tr := New(a.Preferences(), "main", pos, nil)

	w := a.NewWindow("main")
	w.Resize(fyne.NewSize(300, 300))
	tr.Save(w, true)

	s, ok := tr.Load()
	require.True(t, ok)
	assert.False(t, s.HasPosition)
	assert.True(t, s.Visible)

	tr.RestorePosition()
	assert.Empty(t, pos.moved)
}

func TestLoadClampsSize(t *testing.T) {
	a := test.NewTempApp(t)
	p := a.Preferences()
	p.SetFloat("window.main.width", 10)
	p.SetFloat("window.main.height", 5000)

	s, ok := New(p, "main", nil, nil).Load()
	require.True(t, ok)
	assert.Equal(t, float32(MinWidth), s.Width)
	assert.Equal(t, float32(5000), s.Height)
}

func TestRestorePositionFailureIsSoft(t *testing.T) {
	a := test.NewTempApp(t)
	pos := &fakePositioner{at: desktop.Point{X: 1, Y: 2}}
	tr := New(a.Preferences(), "main", pos, nil)

	w := a.NewWindow("main")
	w.Resize(fyne.NewSize(300, 300))
	tr.Save(w, true)

	pos.setErr = errors.New("gone")
	assert.NotPanics(t, tr.RestorePosition)
	assert.Empty(t, pos.moved)
}

func TestRestorePositionKeepsOnScreen(t *testing.T) {
	a := test.NewTempApp(t)
	pos := &fakePositioner{at: desktop.Point{X: 3000, Y: -40}}
	tr := New(a.Preferences(), "main", pos, nil)

	w := a.NewWindow("main")
	w.Resize(fyne.NewSize(300, 300))
	tr.Save(w, true)

	tr.KeepOnScreen(func() (int, int, error) { return 1920, 1080, nil })
	tr.RestorePosition()
	assert.Equal(t, []desktop.Point{{X: 1920 - onScreenMargin, Y: 0}}, pos.moved)

	tr.KeepOnScreen(func() (int, int, error) { return 0, 0, errors.New("no display") })
	tr.RestorePosition()
	assert.Equal(t, desktop.Point{X: 3000, Y: -40}, pos.moved[1], "unknown screen leaves the position alone")
}

func TestClampToScreen(t *testing.T) {
	tests := []struct {
		in, want desktop.Point
	}{
		{desktop.Point{X: 100, Y: 100}, desktop.Point{X: 100, Y: 100}},
		{desktop.Point{X: -500, Y: 50}, desktop.Point{X: 0, Y: 50}},
		{desktop.Point{X: 50, Y: 9999}, desktop.Point{X: 50, Y: 600 - onScreenMargin}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, clampToScreen(tt.in, 800, 600))
	}
	assert.Equal(t, desktop.Point{X: -5, Y: -5}, clampToScreen(desktop.Point{X: -5, Y: -5}, 10, 10))
}
