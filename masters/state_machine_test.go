package masters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStageOf(t *testing.T) {
	s := NewState(nil)
	assert.Equal(t, StageSetup, StageOf(s))

	s, err := StartTournament(fullRoster(t), false)
	require.NoError(t, err)
	assert.Equal(t, StageGroups, StageOf(s))

	s, err = StartCrossRound(playGroups(t), false)
	require.NoError(t, err)
	assert.Equal(t, StageCrossRound, StageOf(s))
	assert.Equal(t, PhaseCrossRound, s.CurrentPhase)
}

func TestStartTournament_WarnsBelowSixteenTeams(t *testing.T) {
	s := NewState(nil)
	s, err := AddTeam(s, "a", "b", GroupI)
	require.NoError(t, err)
	s, err = AddTeam(s, "c", "d", GroupI)
	require.NoError(t, err)

	_, err = StartTournament(s, false)
	var prereq *PrerequisiteError
	require.ErrorAs(t, err, &prereq)
	assert.NotEmpty(t, prereq.Warnings)

	// Forcing proceeds on the partial roster.
	forced, err := StartTournament(s, true)
	require.NoError(t, err)
	assert.Equal(t, StageGroups, StageOf(forced))
}

func TestStartTournament_RefusesWhenStarted(t *testing.T) {
	s, err := StartTournament(fullRoster(t), false)
	require.NoError(t, err)
	_, err = StartTournament(s, true)
	assert.ErrorIs(t, err, ErrAlreadyStarted)
}

func TestStartCrossRound_WarnsOnUnderfullGroup(t *testing.T) {
	s := NewState(nil)
	var err error
	for _, g := range Groups {
		s, err = AddTeam(s, string(g)+"-a", string(g)+"-b", g)
		require.NoError(t, err)
		s, err = AddTeam(s, string(g)+"-c", string(g)+"-d", g)
		require.NoError(t, err)
	}
	s, err = StartTournament(s, true)
	require.NoError(t, err)

	_, err = StartCrossRound(s, false)
	var prereq *PrerequisiteError
	require.ErrorAs(t, err, &prereq)
	assert.Len(t, prereq.Warnings, 4)

	forced, err := StartCrossRound(s, true)
	require.NoError(t, err)
	assert.Equal(t, StageCrossRound, StageOf(forced))
}

func TestStartCrossRound_WrongStage(t *testing.T) {
	_, err := StartCrossRound(NewState(nil), true)
	assert.ErrorIs(t, err, ErrWrongStage)
}

func TestStartFinals_WarnsOnUndecidedCrossRound(t *testing.T) {
	s, err := StartCrossRound(playGroups(t), false)
	require.NoError(t, err)

	_, err = StartFinals(s, false)
	var prereq *PrerequisiteError
	require.ErrorAs(t, err, &prereq)

	forced, err := StartFinals(s, true)
	require.NoError(t, err)
	assert.Equal(t, StageFinals, StageOf(forced))
	assert.Empty(t, forced.MatchesInPhase(PhaseFinals))
}

func TestPodium(t *testing.T) {
	s, err := StartCrossRound(playGroups(t), false)
	require.NoError(t, err)
	for _, m := range s.MatchesInPhase(PhaseCrossRound) {
		s, err = RecordResult(s, m.ID, m.Team1ID)
		require.NoError(t, err)
	}
	s, err = StartFinals(s, false)
	require.NoError(t, err)

	_, ok := ComputePodium(s)
	assert.False(t, ok, "podium before finals are decided")

	final, _ := FinalMatch(s)
	third, _ := ThirdPlaceMatch(s)
	s, err = RecordResult(s, final.ID, final.Team1ID)
	require.NoError(t, err)
	s, err = RecordResult(s, third.ID, third.Team2ID)
	require.NoError(t, err)

	podium, ok := ComputePodium(s)
	require.True(t, ok)
	assert.Equal(t, final.Team1ID, podium.First.ID)
	assert.Equal(t, final.Team2ID, podium.Second.ID)
	assert.Equal(t, third.Team2ID, podium.Third.ID)
	assert.Equal(t, third.Team1ID, podium.Fourth.ID)
}

func TestReset_KeepsPool(t *testing.T) {
	s := NewState([]string{"alice", "bob"})
	var err error
	s, err = AddTeam(s, "alice", "bob", GroupI)
	require.NoError(t, err)
	s, err = StartTournament(s, true)
	require.NoError(t, err)

	s = Reset(s)
	assert.Empty(t, s.Teams)
	assert.Empty(t, s.Matches)
	assert.Equal(t, PhaseGroups, s.CurrentPhase)
	assert.Equal(t, []string{"alice", "bob"}, s.Pool)
	assert.Equal(t, StageSetup, StageOf(s))
}
