// Package statesync keeps an optimistic local mirror of the Masters
// aggregate in line with the remote store. Writers persist through the
// repository; every process (including the writer) converges by
// reconciling the change feed into its mirror.
package statesync

import (
	"sync"

	"github.com/padelclub/padel-league/masters"
)

// Snapshot is an immutable view of the aggregate at one revision.
type Snapshot struct {
	State    masters.State
	Revision int64
}

// Mirror holds the latest known snapshot. Reconcile applies last-writer-
// wins by revision: older or duplicate revisions are ignored, so feed
// deliveries may race local writes in any order.
type Mirror struct {
	mu       sync.RWMutex
	state    masters.State
	revision int64
	onUpdate func(Snapshot)
}

// NewMirror creates an empty mirror. onUpdate fires (synchronously) for
// every accepted reconciliation; it may be nil.
func NewMirror(onUpdate func(Snapshot)) *Mirror {
	return &Mirror{
		state:    masters.NewState(nil),
		onUpdate: onUpdate,
	}
}

// Snapshot returns the current view.
func (m *Mirror) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return Snapshot{State: m.state, Revision: m.revision}
}

// Revision returns the current revision without copying the state.
func (m *Mirror) Revision() int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.revision
}

// Reconcile replaces the mirrored aggregate when revision is newer than
// what the mirror holds. It reports whether the snapshot was accepted.
func (m *Mirror) Reconcile(state masters.State, revision int64) bool {
	m.mu.Lock()
	if revision <= m.revision {
		m.mu.Unlock()
		return false
	}
	m.state = state
	m.revision = revision
	onUpdate := m.onUpdate
	snap := Snapshot{State: state, Revision: revision}
	m.mu.Unlock()

	if onUpdate != nil {
		onUpdate(snap)
	}
	return true
}
