// Package ipc is the command bridge between the UI layer and the native shell.
//
// Commands are registered by name on a Registry. The in-process UI invokes
// them directly; other front ends reach the same registry through Server.
package ipc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
)

var (
	// ErrUnknownCommand is returned when invoking a name that was never registered.
	ErrUnknownCommand = errors.New("ipc: unknown command")
	// ErrDuplicateCommand is returned when registering a name twice.
	ErrDuplicateCommand = errors.New("ipc: command already registered")
)

// Command handles one invocation. args is the raw JSON argument object and
// may be empty.
type Command func(ctx context.Context, args json.RawMessage) (any, error)

// Registry maps command names to handlers.
type Registry struct {
	mu       sync.RWMutex
	commands map[string]Command
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{commands: make(map[string]Command)}
}

// Register adds a command under name.
func (r *Registry) Register(name string, cmd Command) error {
	if name == "" || cmd == nil {
		return fmt.Errorf("ipc: invalid registration for %q", name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.commands[name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateCommand, name)
	}
	r.commands[name] = cmd
	return nil
}

// MustRegister is Register for bootstrap code, panicking on error.
func (r *Registry) MustRegister(name string, cmd Command) {
	if err := r.Register(name, cmd); err != nil {
		panic(err)
	}
}

// Invoke runs the named command.
func (r *Registry) Invoke(ctx context.Context, name string, args json.RawMessage) (any, error) {
	r.mu.RLock()
	cmd, ok := r.commands[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}
	return cmd(ctx, args)
}

// Names returns the registered command names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Action adapts a function without arguments or result to a Command.
func Action(fn func()) Command {
	return func(context.Context, json.RawMessage) (any, error) {
		fn()
		return nil, nil
	}
}
