// Package netmon observes connectivity transitions and fans them out to subscribers.
package netmon

import (
	"slices"
	"sync"
	"sync/atomic"

	"go.trai.ch/itinerary/internal/core/ports"
)

var _ ports.Connectivity = (*Monitor)(nil)

type listener struct {
	fn     func(online bool)
	active atomic.Bool
}

// Monitor caches the connectivity flag and notifies subscribers on every real transition.
type Monitor struct {
	// transition serialises SetOnline so a pass completes before the next one starts.
	transition sync.Mutex

	mu        sync.Mutex
	online    bool
	listeners []*listener
}

// New creates a Monitor with the initial connectivity flag.
func New(initial bool) *Monitor {
	return &Monitor{online: initial}
}

// IsConnected returns the cached flag.
func (m *Monitor) IsConnected() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.online
}

// Subscribe registers fn and returns a function removing it again. Calling the returned
// function more than once has no further effect.
func (m *Monitor) Subscribe(fn func(online bool)) func() {
	l := &listener{fn: fn}
	l.active.Store(true)

	m.mu.Lock()
	m.listeners = append(m.listeners, l)
	m.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			l.active.Store(false)
			m.mu.Lock()
			defer m.mu.Unlock()
			m.listeners = slices.DeleteFunc(slices.Clone(m.listeners), func(other *listener) bool {
				return other == l
			})
		})
	}
}

// SetOnline records a connectivity reading. Subscribers are notified in registration order
// only when the flag changes. Listeners must not call SetOnline themselves.
func (m *Monitor) SetOnline(online bool) {
	m.transition.Lock()
	defer m.transition.Unlock()

	m.mu.Lock()
	if m.online == online {
		m.mu.Unlock()
		return
	}
	m.online = online
	snapshot := slices.Clone(m.listeners)
	m.mu.Unlock()

	for _, l := range snapshot {
		// A listener removed earlier in this pass is skipped.
		if l.active.Load() {
			l.fn(online)
		}
	}
}
