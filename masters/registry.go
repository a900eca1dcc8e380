package masters

import (
	"math/rand"
	"slices"

	"github.com/google/uuid"
)

// AddTeam appends a new zero-stat team to the given group. It fails when
// the group is full or the two player names are equal; the input state is
// returned unchanged on failure.
func AddTeam(s State, player1, player2 string, group Group) (State, error) {
	if !slices.Contains(Groups[:], group) {
		return s, ErrUnknownGroup
	}
	if player1 == player2 {
		return s, ErrSamePlayer
	}
	if len(s.TeamsInGroup(group)) >= GroupCapacity {
		return s, ErrGroupFull
	}

	next := s.clone()
	next.Teams = append(next.Teams, Team{
		ID:      uuid.NewString(),
		Player1: player1,
		Player2: player2,
		Group:   group,
	})
	return next, nil
}

// RemoveTeam drops a team unconditionally. Matches referencing the team
// are left alone: removal is only meaningful before brackets exist, and a
// dangling reference simply renders as an unknown team.
func RemoveTeam(s State, teamID string) (State, error) {
	idx := slices.IndexFunc(s.Teams, func(t Team) bool { return t.ID == teamID })
	if idx < 0 {
		return s, ErrTeamNotFound
	}
	next := s.clone()
	next.Teams = slices.Delete(next.Teams, idx, idx+1)
	return next, nil
}

// AutoFillGroups tops the groups up to capacity from the available name
// pool. Names already on a team are skipped, the remainder is shuffled
// (Fisher-Yates, via rand.Shuffle) and consumed two per team in group
// order I through IV. The fill is partial when the pool runs out; only a
// pool with fewer than two usable names is an error.
func AutoFillGroups(s State, available []string, rng *rand.Rand) (State, error) {
	onRoster := s.RosterNames()
	pool := make([]string, 0, len(available))
	for _, name := range available {
		if !onRoster[name] {
			pool = append(pool, name)
		}
	}
	if len(pool) < 2 {
		return s, ErrInsufficientPool
	}

	rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})

	next := s.clone()
	for _, g := range Groups {
		deficit := GroupCapacity - len(next.TeamsInGroup(g))
		for i := 0; i < deficit; i++ {
			if len(pool) < 2 {
				return next, nil
			}
			next.Teams = append(next.Teams, Team{
				ID:      uuid.NewString(),
				Player1: pool[0],
				Player2: pool[1],
				Group:   g,
			})
			pool = pool[2:]
		}
	}
	return next, nil
}
