package util

import "sync/atomic"

// SafeCounter is a counter safe to use concurrently.
type SafeCounter struct {
	value atomic.Int64
}

// NewSafeCounter creates a new SafeCounter starting at zero.
func NewSafeCounter() *SafeCounter {
	return &SafeCounter{}
}

// Increment increments the counter's value and returns the new value.
func (c *SafeCounter) Increment() int64 {
	return c.value.Add(1)
}

// Value returns the current value of the counter.
func (c *SafeCounter) Value() int64 {
	return c.value.Load()
}

// Reset sets the counter back to zero and returns the previous value.
func (c *SafeCounter) Reset() int64 {
	return c.value.Swap(0)
}

// SafeFlag is a boolean safe to use concurrently.
type SafeFlag struct {
	value atomic.Bool
}

// NewSafeFlag creates a new SafeFlag with an initial value.
func NewSafeFlag(initial bool) *SafeFlag {
	f := &SafeFlag{}
	f.value.Store(initial)
	return f
}

// Set sets the value of the flag and returns it.
func (f *SafeFlag) Set(v bool) bool {
	f.value.Store(v)
	return v
}

// Value returns the current value of the flag.
func (f *SafeFlag) Value() bool {
	return f.value.Load()
}

// Toggle flips the flag and returns the new value.
func (f *SafeFlag) Toggle() bool {
	for {
		old := f.value.Load()
		if f.value.CompareAndSwap(old, !old) {
			return !old
		}
	}
}
