package models

import "time"

// PlayersPerCourt is how many players one padel court takes.
const PlayersPerCourt = 4

// Shift is a weekly playing slot with a fixed number of courts.
type Shift struct {
	ID        int       `json:"id" db:"id"`
	Date      time.Time `json:"date" db:"date"`
	Courts    int       `json:"courts" db:"courts"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	Signups []Signup `json:"signups,omitempty" db:"-"`
}

// Capacity is the number of players the shift can hold.
func (s Shift) Capacity() int {
	return s.Courts * PlayersPerCourt
}

// Signup registers one player on one shift.
type Signup struct {
	ID        int       `json:"id" db:"id"`
	ShiftID   int       `json:"shift_id" db:"shift_id"`
	PlayerID  int       `json:"player_id" db:"player_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	Player *Player `json:"player,omitempty" db:"-"`
}
