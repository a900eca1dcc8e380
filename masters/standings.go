package masters

import "sort"

// Rank orders a group's teams best-first: points, then games won minus
// games lost, then games won, all descending. Teams equal on all three
// keep their input order (stable), so the result is a deterministic total
// order. The input slice is not modified.
func Rank(teams []Team) []Team {
	ranked := make([]Team, len(teams))
	copy(ranked, teams)

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		diffA := a.GamesWon - a.GamesLost
		diffB := b.GamesWon - b.GamesLost
		if diffA != diffB {
			return diffA > diffB
		}
		return a.GamesWon > b.GamesWon
	})
	return ranked
}
