package plugin

import (
	"errors"
	"fmt"
	"sync"

	"github.com/desknote/desknote/util/log"
)

// ErrDuplicate is returned when a plugin name is registered twice.
var ErrDuplicate = errors.New("plugin: already registered")

// Manager keeps plugins in registration order.
type Manager struct {
	mu      sync.Mutex
	plugins []Plugin
	started int
}

// NewManager creates an empty manager.
func NewManager() *Manager {
	return &Manager{}
}

// Register appends p. Registering after InitAll is an error.
func (m *Manager) Register(p Plugin) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.started > 0 {
		return fmt.Errorf("plugin: cannot register %s after init", p.Name())
	}
	for _, existing := range m.plugins {
		if existing.Name() == p.Name() {
			return fmt.Errorf("%w: %s", ErrDuplicate, p.Name())
		}
	}
	m.plugins = append(m.plugins, p)
	return nil
}

// Names returns plugin names in registration order.
func (m *Manager) Names() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	names := make([]string, len(m.plugins))
	for i, p := range m.plugins {
		names[i] = p.Name()
	}
	return names
}

// Get returns the plugin registered under name.
func (m *Manager) Get(name string) (Plugin, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.plugins {
		if p.Name() == name {
			return p, true
		}
	}
	return nil, false
}

// InitAll initialises plugins in order and stops at the first failure.
// Plugins initialised before the failure stay registered for CloseAll.
func (m *Manager) InitAll(h Host) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := m.started; i < len(m.plugins); i++ {
		p := m.plugins[i]
		if err := p.Init(h); err != nil {
			return fmt.Errorf("plugin %s: %w", p.Name(), err)
		}
		m.started = i + 1
		log.Debugf("plugin %s initialised", p.Name())
	}
	return nil
}

// CloseAll closes initialised plugins in reverse order. Every plugin is
// closed even if an earlier one fails; the errors are joined.
func (m *Manager) CloseAll() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	var errs []error
	for i := m.started - 1; i >= 0; i-- {
		p := m.plugins[i]
		if err := p.Close(); err != nil {
			log.Warnf("plugin %s: close failed: %v", p.Name(), err)
			errs = append(errs, fmt.Errorf("plugin %s: %w", p.Name(), err))
		}
	}
	m.started = 0
	return errors.Join(errs...)
}
