package statesync

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/padelclub/padel-league/masters"
)

func TestMirror_ReconcileAcceptsOnlyNewerRevisions(t *testing.T) {
	m := NewMirror(nil)

	s1 := masters.NewState([]string{"alice"})
	require.True(t, m.Reconcile(s1, 1))
	assert.Equal(t, int64(1), m.Revision())

	// Duplicate and stale deliveries are ignored.
	assert.False(t, m.Reconcile(masters.NewState(nil), 1))
	assert.False(t, m.Reconcile(masters.NewState(nil), 0))
	assert.Equal(t, []string{"alice"}, m.Snapshot().State.Pool)

	// Revisions may skip ahead (missed notifications).
	s5 := masters.NewState([]string{"bob"})
	require.True(t, m.Reconcile(s5, 5))
	assert.Equal(t, int64(5), m.Snapshot().Revision)
	assert.Equal(t, []string{"bob"}, m.Snapshot().State.Pool)
}

func TestMirror_OnUpdateFiresPerAcceptedSnapshot(t *testing.T) {
	var got []int64
	m := NewMirror(func(s Snapshot) { got = append(got, s.Revision) })

	m.Reconcile(masters.NewState(nil), 1)
	m.Reconcile(masters.NewState(nil), 1) // rejected, no callback
	m.Reconcile(masters.NewState(nil), 3)

	assert.Equal(t, []int64{1, 3}, got)
}

func TestMirror_StartsEmptyAtRevisionZero(t *testing.T) {
	m := NewMirror(nil)
	snap := m.Snapshot()
	assert.Zero(t, snap.Revision)
	assert.Empty(t, snap.State.Teams)
	assert.Equal(t, masters.StageSetup, masters.StageOf(snap.State))
}
