package services

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/padelclub/padel-league/masters"
	"github.com/padelclub/padel-league/repositories"
	"github.com/padelclub/padel-league/statesync"
)

// memoryMastersRepository mimics the single-row revision-guarded store.
type memoryMastersRepository struct {
	mu       sync.Mutex
	state    masters.State
	revision int64
}

func (r *memoryMastersRepository) Load(context.Context) (masters.State, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.revision == 0 {
		return masters.NewState(nil), 0, nil
	}
	return r.state, r.revision, nil
}

func (r *memoryMastersRepository) Save(_ context.Context, state masters.State, baseRevision int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if baseRevision != r.revision {
		return 0, repositories.ErrStaleRevision
	}
	r.state = state
	r.revision++
	return r.revision, nil
}

type stubPlayerNames struct {
	repositories.PlayerRepository
	names []string
}

func (s stubPlayerNames) ListNames(context.Context) ([]string, error) {
	return s.names, nil
}

func newTestService(names ...string) (MastersService, *statesync.Mirror) {
	mirror := statesync.NewMirror(nil)
	repo := &memoryMastersRepository{}
	return NewMastersService(repo, stubPlayerNames{names: names}, mirror), mirror
}

func TestMastersService_CommandsAdvanceRevisionAndMirror(t *testing.T) {
	svc, mirror := newTestService()
	ctx := context.Background()

	snap, err := svc.AddTeam(ctx, "alice", "bob", masters.GroupI)
	require.NoError(t, err)
	assert.Equal(t, int64(1), snap.Revision)
	assert.Len(t, snap.State.Teams, 1)

	// Writer reconciles its own mirror without waiting for the feed.
	assert.Equal(t, int64(1), mirror.Revision())

	snap, err = svc.AddTeam(ctx, "carol", "dave", masters.GroupII)
	require.NoError(t, err)
	assert.Equal(t, int64(2), snap.Revision)
}

func TestMastersService_ValidationErrorPersistsNothing(t *testing.T) {
	svc, mirror := newTestService()
	ctx := context.Background()

	_, err := svc.AddTeam(ctx, "alice", "alice", masters.GroupI)
	assert.ErrorIs(t, err, masters.ErrSamePlayer)
	assert.Equal(t, int64(0), mirror.Revision())

	snap, err := svc.State(ctx)
	require.NoError(t, err)
	assert.Empty(t, snap.State.Teams)
}

func TestMastersService_AutoFillUsesRegisteredPlayers(t *testing.T) {
	svc, _ := newTestService("p1", "p2", "p3", "p4", "p5", "p6", "p7", "p8")
	ctx := context.Background()

	snap, err := svc.AutoFill(ctx)
	require.NoError(t, err)
	assert.Len(t, snap.State.TeamsInGroup(masters.GroupI), masters.GroupCapacity)
	assert.Empty(t, snap.State.TeamsInGroup(masters.GroupII))
}

func TestMastersService_FullTournamentFlow(t *testing.T) {
	svc, _ := newTestService("p1", "p2", "p3", "p4", "p5", "p6", "p7", "p8",
		"p9", "p10", "p11", "p12", "p13", "p14", "p15", "p16",
		"p17", "p18", "p19", "p20", "p21", "p22", "p23", "p24",
		"p25", "p26", "p27", "p28", "p29", "p30", "p31", "p32")
	ctx := context.Background()

	snap, err := svc.AutoFill(ctx)
	require.NoError(t, err)
	require.Len(t, snap.State.Teams, 16)

	snap, err = svc.StartTournament(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, masters.StageGroups, masters.StageOf(snap.State))
	require.Len(t, snap.State.Matches, 24)

	for _, m := range snap.State.MatchesInPhase(masters.PhaseGroups) {
		snap, err = svc.RecordResult(ctx, m.ID, m.Team1ID)
		require.NoError(t, err)
	}

	snap, err = svc.StartCrossRound(ctx, false)
	require.NoError(t, err)
	require.Len(t, snap.State.MatchesInPhase(masters.PhaseCrossRound), 8)

	for _, m := range snap.State.MatchesInPhase(masters.PhaseCrossRound) {
		snap, err = svc.RecordResult(ctx, m.ID, m.Team2ID)
		require.NoError(t, err)
	}

	snap, err = svc.StartFinals(ctx, false)
	require.NoError(t, err)
	require.Len(t, snap.State.MatchesInPhase(masters.PhaseFinals), 8)

	final, ok := masters.FinalMatch(snap.State)
	require.True(t, ok)
	third, ok := masters.ThirdPlaceMatch(snap.State)
	require.True(t, ok)
	_, err = svc.RecordResult(ctx, final.ID, final.Team1ID)
	require.NoError(t, err)
	_, err = svc.RecordResult(ctx, third.ID, third.Team1ID)
	require.NoError(t, err)

	podium, ok, err := svc.Podium(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, final.Team1ID, podium.First.ID)

	// Reset wipes the bracket but the pool (and podium history) is gone by
	// design; only eligible names in the aggregate pool survive.
	snap, err = svc.Reset(ctx)
	require.NoError(t, err)
	assert.Empty(t, snap.State.Teams)
	assert.Empty(t, snap.State.Matches)
	assert.Equal(t, masters.StageSetup, masters.StageOf(snap.State))
}

func TestMastersService_PrerequisiteWarningSurfacesAsTyped(t *testing.T) {
	svc, _ := newTestService("p1", "p2", "p3", "p4")
	ctx := context.Background()

	_, err := svc.AutoFill(ctx)
	require.NoError(t, err)

	_, err = svc.StartTournament(ctx, false)
	var prereq *masters.PrerequisiteError
	require.ErrorAs(t, err, &prereq)

	snap, err := svc.StartTournament(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, masters.StageGroups, masters.StageOf(snap.State))
}
