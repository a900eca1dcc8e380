package masters

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddTeam_EnforcesGroupCapacity(t *testing.T) {
	s := NewState(nil)
	var err error
	for i := 0; i < GroupCapacity; i++ {
		s, err = AddTeam(s, fmt.Sprintf("p%da", i), fmt.Sprintf("p%db", i), GroupI)
		require.NoError(t, err)
	}

	_, err = AddTeam(s, "extra1", "extra2", GroupI)
	assert.ErrorIs(t, err, ErrGroupFull)
	assert.Len(t, s.TeamsInGroup(GroupI), GroupCapacity)

	// Other groups are unaffected by a full group I.
	s, err = AddTeam(s, "extra1", "extra2", GroupII)
	require.NoError(t, err)
	assert.Len(t, s.TeamsInGroup(GroupII), 1)
}

func TestAddTeam_RejectsDuplicatePlayer(t *testing.T) {
	s := NewState(nil)
	_, err := AddTeam(s, "alice", "alice", GroupI)
	assert.ErrorIs(t, err, ErrSamePlayer)
}

func TestAddTeam_RejectsUnknownGroup(t *testing.T) {
	s := NewState(nil)
	_, err := AddTeam(s, "alice", "bob", Group("V"))
	assert.ErrorIs(t, err, ErrUnknownGroup)
}

func TestAddTeam_DoesNotMutateInput(t *testing.T) {
	s := NewState(nil)
	next, err := AddTeam(s, "alice", "bob", GroupI)
	require.NoError(t, err)

	assert.Empty(t, s.Teams)
	assert.Len(t, next.Teams, 1)
	team := next.Teams[0]
	assert.NotEmpty(t, team.ID)
	assert.Zero(t, team.Points)
	assert.Zero(t, team.GamesWon)
	assert.Zero(t, team.GamesLost)
}

func TestRemoveTeam(t *testing.T) {
	s := NewState(nil)
	s, err := AddTeam(s, "alice", "bob", GroupI)
	require.NoError(t, err)
	id := s.Teams[0].ID

	s, err = RemoveTeam(s, id)
	require.NoError(t, err)
	assert.Empty(t, s.Teams)

	_, err = RemoveTeam(s, id)
	assert.ErrorIs(t, err, ErrTeamNotFound)
}

func TestAutoFillGroups_FillsOneEmptyGroupFromEightNames(t *testing.T) {
	s := NewState(nil)
	var err error
	for _, g := range []Group{GroupII, GroupIII, GroupIV} {
		for i := 0; i < GroupCapacity; i++ {
			s, err = AddTeam(s, fmt.Sprintf("%s-%da", g, i), fmt.Sprintf("%s-%db", g, i), g)
			require.NoError(t, err)
		}
	}

	names := []string{"n1", "n2", "n3", "n4", "n5", "n6", "n7", "n8"}
	s, err = AutoFillGroups(s, names, rand.New(rand.NewSource(7)))
	require.NoError(t, err)

	filled := s.TeamsInGroup(GroupI)
	require.Len(t, filled, GroupCapacity)

	// All eight names consumed, none repeated within or across teams.
	seen := map[string]bool{}
	for _, team := range filled {
		assert.NotEqual(t, team.Player1, team.Player2)
		assert.False(t, seen[team.Player1], "name %s used twice", team.Player1)
		assert.False(t, seen[team.Player2], "name %s used twice", team.Player2)
		seen[team.Player1] = true
		seen[team.Player2] = true
	}
	assert.Len(t, seen, 8)
}

func TestAutoFillGroups_PartialFillOnExhaustedPool(t *testing.T) {
	s := NewState(nil)
	next, err := AutoFillGroups(s, []string{"a", "b", "c", "d", "e"}, rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	// Five names make two teams; the odd name stays unused.
	assert.Len(t, next.Teams, 2)
	assert.Len(t, next.TeamsInGroup(GroupI), 2)
}

func TestAutoFillGroups_FillsInGroupOrder(t *testing.T) {
	s := NewState(nil)
	s, err := AddTeam(s, "x1", "x2", GroupI)
	require.NoError(t, err)

	// Enough for 5 teams: 3 to finish group I, 2 starting group II.
	names := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"}
	s, err = AutoFillGroups(s, names, rand.New(rand.NewSource(3)))
	require.NoError(t, err)

	assert.Len(t, s.TeamsInGroup(GroupI), GroupCapacity)
	assert.Len(t, s.TeamsInGroup(GroupII), 2)
	assert.Empty(t, s.TeamsInGroup(GroupIII))
}

func TestAutoFillGroups_SkipsNamesAlreadyOnTeams(t *testing.T) {
	s := NewState(nil)
	s, err := AddTeam(s, "alice", "bob", GroupI)
	require.NoError(t, err)

	_, err = AutoFillGroups(s, []string{"alice", "bob", "carol"}, rand.New(rand.NewSource(1)))
	assert.ErrorIs(t, err, ErrInsufficientPool)
}

func TestAutoFillGroups_InsufficientPool(t *testing.T) {
	s := NewState(nil)
	_, err := AutoFillGroups(s, []string{"only-one"}, rand.New(rand.NewSource(1)))
	assert.ErrorIs(t, err, ErrInsufficientPool)
}
