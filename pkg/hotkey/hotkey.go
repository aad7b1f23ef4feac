// Package hotkey registers the global keyboard shortcuts.
package hotkey

import (
	"strings"
	"sync"
	"time"

	"github.com/desknote/desknote/util/log"
	"golang.design/x/hotkey"
)

// debounce drops repeats of a held shortcut.
const debounce = 200 * time.Millisecond

// Binding is one shortcut and what it does.
type Binding struct {
	Name   string
	Mods   []hotkey.Modifier
	Key    hotkey.Key
	Label  string // human readable, e.g. "Ctrl+Alt+N"
	Action func()
}

// String returns the label of the shortcut.
func (b Binding) String() string {
	return b.Label
}

// ToggleWindow is Ctrl+Alt+N (Cmd+Option+N on macOS).
func ToggleWindow(action func()) Binding {
	return Binding{
		Name:   "Toggle Window",
		Mods:   []hotkey.Modifier{modCtrl, modAlt},
		Key:    keyN,
		Label:  strings.Join([]string{modCtrlLabel, modAltLabel, "N"}, "+"),
		Action: action,
	}
}

// Listener owns registered shortcuts until Stop.
type Listener struct {
	mu      sync.Mutex
	hotkeys []*hotkey.Hotkey
	wg      sync.WaitGroup
}

// Start registers bindings and listens for them. Shortcuts that cannot be
// registered, usually because another program holds them, are logged and
// skipped.
func Start(bindings ...Binding) *Listener {
	l := &Listener{}
	for _, b := range bindings {
		hk := hotkey.New(b.Mods, b.Key)
		if err := hk.Register(); err != nil {
			log.Warnf("Failed to register hotkey %s (%s): %v", b.Name, b, err)
			continue
		}
		log.Debugf("Registered hotkey: %s (%s)", b.Name, b)

		l.mu.Lock()
		l.hotkeys = append(l.hotkeys, hk)
		l.mu.Unlock()

		l.wg.Add(1)
		go func(b Binding) {
			defer l.wg.Done()
			var last time.Time
			for range hk.Keydown() {
				if time.Since(last) < debounce {
					continue
				}
				last = time.Now()
				log.Debugf("Hotkey pressed: %s", b.Name)
				b.Action()
			}
		}(b)
	}
	return l
}

// Registered returns how many shortcuts are active.
func (l *Listener) Registered() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.hotkeys)
}

// Stop unregisters every shortcut and waits for the listeners to exit.
func (l *Listener) Stop() {
	l.mu.Lock()
	hks := l.hotkeys
	l.hotkeys = nil
	l.mu.Unlock()

	for _, hk := range hks {
		if err := hk.Unregister(); err != nil {
			log.Warnf("Failed to unregister hotkey: %v", err)
		}
	}
	l.wg.Wait()
}
