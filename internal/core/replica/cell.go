// Package replica holds a window's local copy of a replicated record.
package replica

import "sync"

// Cell is a last-writer-wins replica of a single value written by another
// window. Each snapshot overwrites it wholesale; nothing is ever merged.
type Cell[T any] struct {
	mu      sync.RWMutex
	value   T
	version uint64
}

// NewCell creates a cell holding initial at version 0
func NewCell[T any](initial T) *Cell[T] {
	return &Cell[T]{value: initial}
}

// Value returns the current value
func (c *Cell[T]) Value() T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.value
}

// ApplyRemote overwrites the value and returns the cell's new version
func (c *Cell[T]) ApplyRemote(v T) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.value = v
	c.version++
	return c.version
}
