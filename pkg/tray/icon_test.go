package tray

import (
	"testing"

	"fyne.io/fyne/v2"
	"github.com/stretchr/testify/assert"
)

// fakeBackend drops tooltips until started, like the Windows tray.
type fakeBackend struct {
	icon    fyne.Resource
	menu    *fyne.Menu
	tooltip string
	handler func(Event)
	started bool
}

func (b *fakeBackend) SetIcon(res fyne.Resource) { b.icon = res }
func (b *fakeBackend) SetMenu(menu *fyne.Menu) { b.menu = menu }
func (b *fakeBackend) SetTooltip(tooltip string) {
	if b.started {
		b.tooltip = tooltip
	}
}
func (b *fakeBackend) OnEvent(fn func(Event)) { b.handler = fn }

func TestIconLifecycle(t *testing.T) {
	backend := &fakeBackend{started: true}
	res := fyne.NewStaticResource("tray.png", []byte{1, 2, 3})
	menu := fyne.NewMenu("DeskNote")
	w := &fakeWindow{visible: true}

	icon := NewIcon(backend, res, "tooltip", menu, NewToggler(lookupOf(w)))
	icon.Ready()

	assert.Equal(t, res, backend.icon)
	assert.Equal(t, menu, backend.menu)
	assert.Equal(t, "tooltip", backend.tooltip)
	if assert.NotNil(t, backend.handler) {
		backend.handler(Event{Button: MouseLeft})
	}
	assert.False(t, w.visible)

	other := fyne.NewStaticResource("dim.png", []byte{4})
	icon.SetIcon(other)
	assert.Equal(t, other, backend.icon)

	icon.Close()
	assert.Nil(t, backend.handler)

	icon.SetIcon(res)
	assert.Equal(t, other, backend.icon, "closed icon must ignore updates")

	assert.NotPanics(t, icon.Close)
}

func TestIconTooltipAppliedWhenReady(t *testing.T) {
	backend := &fakeBackend{}
	w := &fakeWindow{}
	icon := NewIcon(backend, nil, "DeskNote", fyne.NewMenu("DeskNote"), NewToggler(lookupOf(w)))
	assert.Empty(t, backend.tooltip, "tooltip must wait for the tray")

	backend.started = true
	icon.Ready()
	assert.Equal(t, "DeskNote", backend.tooltip)

	backend.tooltip = ""
	icon.Close()
	icon.Ready()
	assert.Empty(t, backend.tooltip, "closed icon must ignore Ready")
}
