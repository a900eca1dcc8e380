package masters

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fullRoster builds a SETUP aggregate with four teams in every group.
func fullRoster(t *testing.T) State {
	t.Helper()
	s := NewState(nil)
	var err error
	for _, g := range Groups {
		for i := 0; i < GroupCapacity; i++ {
			s, err = AddTeam(s, fmt.Sprintf("%s-%d-a", g, i), fmt.Sprintf("%s-%d-b", g, i), g)
			require.NoError(t, err)
		}
	}
	return s
}

func TestGenerateGroupMatches_RoundRobinPerGroup(t *testing.T) {
	s, err := GenerateGroupMatches(fullRoster(t))
	require.NoError(t, err)

	// 4 teams per group -> 6 fixtures per group, 24 total.
	require.Len(t, s.MatchesInPhase(PhaseGroups), 24)

	for _, g := range Groups {
		pairs := map[string]int{}
		count := 0
		for _, m := range s.Matches {
			if m.Group != g {
				continue
			}
			count++
			a, b := m.Team1ID, m.Team2ID
			if b < a {
				a, b = b, a
			}
			pairs[a+"|"+b]++
			assert.Equal(t, PhaseGroups, m.Phase)
			assert.False(t, m.Decided())
		}
		assert.Equal(t, 6, count, "group %s fixture count", g)
		for pair, n := range pairs {
			assert.Equal(t, 1, n, "pair %s appears more than once", pair)
		}
	}
}

func TestGenerateGroupMatches_PartialGroup(t *testing.T) {
	s := NewState(nil)
	var err error
	for i := 0; i < 3; i++ {
		s, err = AddTeam(s, fmt.Sprintf("p%da", i), fmt.Sprintf("p%db", i), GroupII)
		require.NoError(t, err)
	}

	s, err = GenerateGroupMatches(s)
	require.NoError(t, err)
	assert.Len(t, s.Matches, 3) // k(k-1)/2 for k=3
}

func TestGenerateGroupMatches_RefusesSecondRun(t *testing.T) {
	s, err := GenerateGroupMatches(fullRoster(t))
	require.NoError(t, err)

	_, err = GenerateGroupMatches(s)
	assert.ErrorIs(t, err, ErrAlreadyStarted)
}

func TestGenerateGroupMatches_AlternatesGroupCourts(t *testing.T) {
	s, err := GenerateGroupMatches(fullRoster(t))
	require.NoError(t, err)

	courts := map[int]int{}
	for _, m := range s.Matches {
		if m.Group == GroupI {
			courts[m.Court]++
		}
	}
	assert.Equal(t, map[int]int{1: 3, 2: 3}, courts)
}

func TestRecordResult_TalliesGroupStats(t *testing.T) {
	s, err := GenerateGroupMatches(fullRoster(t))
	require.NoError(t, err)

	m := s.MatchesInPhase(PhaseGroups)[0]
	s, err = RecordResult(s, m.ID, m.Team1ID)
	require.NoError(t, err)

	winner, _ := s.TeamByID(m.Team1ID)
	loser, _ := s.TeamByID(m.Team2ID)
	assert.Equal(t, 1, winner.Points)
	assert.Equal(t, 1, winner.GamesWon)
	assert.Equal(t, 0, winner.GamesLost)
	assert.Equal(t, 0, loser.Points)
	assert.Equal(t, 1, loser.GamesLost)
}

func TestRecordResult_Idempotent(t *testing.T) {
	s, err := GenerateGroupMatches(fullRoster(t))
	require.NoError(t, err)
	m := s.MatchesInPhase(PhaseGroups)[0]

	once, err := RecordResult(s, m.ID, m.Team1ID)
	require.NoError(t, err)
	twice, err := RecordResult(once, m.ID, m.Team1ID)
	require.NoError(t, err)

	assert.Equal(t, once.Teams, twice.Teams)
}

func TestRecordResult_CorrectionRetallies(t *testing.T) {
	s, err := GenerateGroupMatches(fullRoster(t))
	require.NoError(t, err)
	m := s.MatchesInPhase(PhaseGroups)[0]

	// Record the wrong winner, then correct it.
	corrected, err := RecordResult(s, m.ID, m.Team2ID)
	require.NoError(t, err)
	corrected, err = RecordResult(corrected, m.ID, m.Team1ID)
	require.NoError(t, err)

	// Must equal the history where team 1 won from the start.
	direct, err := RecordResult(s, m.ID, m.Team1ID)
	require.NoError(t, err)
	assert.Equal(t, direct.Teams, corrected.Teams)
}

func TestRecordResult_RejectsForeignWinner(t *testing.T) {
	s, err := GenerateGroupMatches(fullRoster(t))
	require.NoError(t, err)
	ms := s.MatchesInPhase(PhaseGroups)

	_, err = RecordResult(s, ms[0].ID, ms[5].Team1ID)
	assert.ErrorIs(t, err, ErrInvalidWinner)

	_, err = RecordResult(s, "no-such-match", ms[0].Team1ID)
	assert.ErrorIs(t, err, ErrMatchNotFound)
}

func TestRecordResult_KnockoutResultLeavesStatsAlone(t *testing.T) {
	s := playGroups(t)
	s, err := StartCrossRound(s, false)
	require.NoError(t, err)

	before := append([]Team(nil), s.Teams...)
	m := s.MatchesInPhase(PhaseCrossRound)[0]
	s, err = RecordResult(s, m.ID, m.Team1ID)
	require.NoError(t, err)

	assert.Equal(t, before, s.Teams)
}
