package masters

import "github.com/google/uuid"

// Cross-round pairing design: teams of matching rank position meet across
// designated opposite groups (I vs III, II vs IV), which avoids same-group
// rematches. Rank position p occupies the fixed slot pair of courts
// 2p+1 and 2p+2.

// slotPairs is the number of fixed court slot pairs feeding the finals.
const slotPairs = 4

// GenerateCrossRound derives the phase-2 fixtures from the current group
// standings. A pairing is only created when both groups actually have a
// team at that rank position, so incomplete groups simply leave court
// slots empty.
func GenerateCrossRound(s State) (State, error) {
	rankings := map[Group][]Team{}
	for _, g := range Groups {
		rankings[g] = Rank(s.TeamsInGroup(g))
	}

	next := s.clone()
	for p := 0; p < GroupCapacity; p++ {
		next.Matches = appendPairing(next.Matches, rankings[GroupI], rankings[GroupIII], p, 2*p+1)
		next.Matches = appendPairing(next.Matches, rankings[GroupII], rankings[GroupIV], p, 2*p+2)
	}
	return next, nil
}

func appendPairing(matches []Match, sideA, sideB []Team, pos, court int) []Match {
	if pos >= len(sideA) || pos >= len(sideB) {
		return matches
	}
	return append(matches, Match{
		ID:      uuid.NewString(),
		Phase:   PhaseCrossRound,
		Court:   court,
		Team1ID: sideA[pos].ID,
		Team2ID: sideB[pos].ID,
	})
}

// GenerateFinals cascades phase-2 results into phase 3. Each slot pair is
// evaluated on its own: when both of its phase-2 matches are decided, the
// two winners meet in an upper match on the pair's first court and the two
// losers in a consolation match on the second. Slot pairs still missing a
// result produce nothing without blocking the ready ones. The overall
// final is the upper match of slot pair one, the third-place playoff its
// consolation sibling.
func GenerateFinals(s State) (State, error) {
	next := s.clone()
	for k := 0; k < slotPairs; k++ {
		upperCourt, lowerCourt := 2*k+1, 2*k+2

		if _, exists := next.matchOnCourt(PhaseFinals, upperCourt); exists {
			continue
		}
		m1, ok1 := next.matchOnCourt(PhaseCrossRound, upperCourt)
		m2, ok2 := next.matchOnCourt(PhaseCrossRound, lowerCourt)
		if !ok1 || !ok2 || !m1.Decided() || !m2.Decided() {
			continue
		}

		loser1, _ := m1.LoserID()
		loser2, _ := m2.LoserID()
		next.Matches = append(next.Matches,
			Match{
				ID:      uuid.NewString(),
				Phase:   PhaseFinals,
				Court:   upperCourt,
				Team1ID: m1.WinnerID,
				Team2ID: m2.WinnerID,
			},
			Match{
				ID:      uuid.NewString(),
				Phase:   PhaseFinals,
				Court:   lowerCourt,
				Team1ID: loser1,
				Team2ID: loser2,
			},
		)
	}
	return next, nil
}

// FinalMatch returns the designated overall final once it exists.
func FinalMatch(s State) (Match, bool) {
	return s.matchOnCourt(PhaseFinals, 1)
}

// ThirdPlaceMatch returns the designated third-place playoff once it exists.
func ThirdPlaceMatch(s State) (Match, bool) {
	return s.matchOnCourt(PhaseFinals, 2)
}
