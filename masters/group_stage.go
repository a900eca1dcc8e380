package masters

import "github.com/google/uuid"

// Two court slots are pre-allocated per group; fixtures alternate between
// them in generation order. Purely cosmetic display grouping.
var groupCourts = map[Group][2]int{
	GroupI:   {1, 2},
	GroupII:  {3, 4},
	GroupIII: {5, 6},
	GroupIV:  {7, 8},
}

// GenerateGroupMatches emits the round-robin fixtures for every group: one
// match per unordered pair of teams, k*(k-1)/2 for a group of k. It is a
// one-time action; calling it again would duplicate the fixtures, so it
// refuses when phase-1 matches already exist.
func GenerateGroupMatches(s State) (State, error) {
	if len(s.MatchesInPhase(PhaseGroups)) > 0 {
		return s, ErrAlreadyStarted
	}

	next := s.clone()
	for _, g := range Groups {
		teams := next.TeamsInGroup(g)
		courts := groupCourts[g]
		n := 0
		for i := 0; i < len(teams); i++ {
			for j := i + 1; j < len(teams); j++ {
				next.Matches = append(next.Matches, Match{
					ID:      uuid.NewString(),
					Phase:   PhaseGroups,
					Court:   courts[n%2],
					Team1ID: teams[i].ID,
					Team2ID: teams[j].ID,
					Group:   g,
				})
				n++
			}
		}
	}
	return next, nil
}

// RecordResult sets (or corrects) a match winner. For group-stage matches
// every phase-1 team's stats are recomputed from scratch afterwards, which
// keeps standings consistent no matter how often a result is changed.
func RecordResult(s State, matchID, winnerID string) (State, error) {
	idx := -1
	for i, m := range s.Matches {
		if m.ID == matchID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return s, ErrMatchNotFound
	}
	m := s.Matches[idx]
	if winnerID != m.Team1ID && winnerID != m.Team2ID {
		return s, ErrInvalidWinner
	}

	next := s.clone()
	next.Matches[idx].WinnerID = winnerID
	if m.Phase == PhaseGroups {
		retallyGroupStats(&next)
	}
	return next, nil
}

// retallyGroupStats zeroes every team's aggregates and re-scans all decided
// phase-1 matches: a win is worth one point and one game won, a loss one
// game lost. The dataset is bounded, so the full rescan stays cheap and
// never accumulates stale tallies across corrections.
func retallyGroupStats(s *State) {
	byID := make(map[string]int, len(s.Teams))
	for i := range s.Teams {
		s.Teams[i].Points = 0
		s.Teams[i].GamesWon = 0
		s.Teams[i].GamesLost = 0
		byID[s.Teams[i].ID] = i
	}

	for _, m := range s.Matches {
		if m.Phase != PhaseGroups || !m.Decided() {
			continue
		}
		if i, ok := byID[m.WinnerID]; ok {
			s.Teams[i].Points++
			s.Teams[i].GamesWon++
		}
		if loser, ok := m.LoserID(); ok {
			if i, ok := byID[loser]; ok {
				s.Teams[i].GamesLost++
			}
		}
	}
}
