// Package cache implements the bounded in-memory image cache.
package cache

import (
	"sync"

	"go.trai.ch/itinerary/internal/core/domain"
	"go.trai.ch/itinerary/internal/core/ports"
)

var _ ports.ImageCache = (*Bounded)(nil)

// Bounded implements ports.ImageCache with first-in-first-out eviction.
// Reads never change the eviction order.
type Bounded struct {
	mu       sync.Mutex
	capacity int
	entries  map[string]string
	order    []string
}

// New creates a Bounded cache holding at most capacity entries.
// A capacity below one falls back to domain.DefaultImageCacheCapacity.
func New(capacity int) *Bounded {
	if capacity < 1 {
		capacity = domain.DefaultImageCacheCapacity
	}
	return &Bounded{
		capacity: capacity,
		entries:  make(map[string]string, capacity),
		order:    make([]string, 0, capacity),
	}
}

// Get returns the value stored for key.
func (c *Bounded) Get(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.entries[key]
	return v, ok
}

// Set stores value for key. An existing key is updated in place and keeps its position;
// a new key evicts the oldest entry first when the cache is full.
func (c *Bounded) Set(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[key]; ok {
		c.entries[key] = value
		return
	}

	if len(c.order) >= c.capacity {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}

	c.entries[key] = value
	c.order = append(c.order, key)
}

// Has reports whether key is present.
func (c *Bounded) Has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[key]
	return ok
}

// Clear removes every entry.
func (c *Bounded) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]string, c.capacity)
	c.order = make([]string, 0, c.capacity)
}

// Len returns the number of entries.
func (c *Bounded) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.order)
}

// Capacity returns the maximum number of entries.
func (c *Bounded) Capacity() int {
	return c.capacity
}
