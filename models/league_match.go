package models

import "time"

// LeagueMatch is a decided weekly doubles match, distinct from Masters
// bracket matches. It is recorded once with its outcome; the points ledger
// credits every winner two points and every loser one for playing.
type LeagueMatch struct {
	ID         int       `json:"id" db:"id"`
	ShiftID    *int      `json:"shift_id,omitempty" db:"shift_id"`
	Pair1AID   int       `json:"pair1_a_id" db:"pair1_a_id"`
	Pair1BID   int       `json:"pair1_b_id" db:"pair1_b_id"`
	Pair2AID   int       `json:"pair2_a_id" db:"pair2_a_id"`
	Pair2BID   int       `json:"pair2_b_id" db:"pair2_b_id"`
	WinnerPair int       `json:"winner_pair" db:"winner_pair"` // 1 or 2
	PlayedAt   time.Time `json:"played_at" db:"played_at"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// PointsWin and PointsLoss are the ledger credits per player and match.
const (
	PointsWin  = 2
	PointsLoss = 1
)

// RankingEntry is one row of the season ranking, aggregated from the
// ledger.
type RankingEntry struct {
	PlayerID      int    `json:"player_id" db:"player_id"`
	Name          string `json:"name" db:"name"`
	Points        int    `json:"points" db:"points"`
	Wins          int    `json:"wins" db:"wins"`
	MatchesPlayed int    `json:"matches_played" db:"matches_played"`
}
