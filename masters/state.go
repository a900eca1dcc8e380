// Package masters implements the Masters mini-tournament bracket engine.
// Every command is a pure transition: it takes the current aggregate value
// and returns a new one, leaving persistence and broadcasting to the caller.
package masters

import "slices"

type Phase int

const (
	PhaseGroups     Phase = 1
	PhaseCrossRound Phase = 2
	PhaseFinals     Phase = 3
)

// Group is one of the four fixed round-robin pools.
type Group string

const (
	GroupI   Group = "I"
	GroupII  Group = "II"
	GroupIII Group = "III"
	GroupIV  Group = "IV"
)

// Groups lists the pools in fill order.
var Groups = [4]Group{GroupI, GroupII, GroupIII, GroupIV}

// GroupCapacity is the maximum number of teams per pool.
const GroupCapacity = 4

// Team is a doubles pairing inside a group. Players are free-text names,
// not references into the club roster.
type Team struct {
	ID      string `json:"id"`
	Player1 string `json:"player1"`
	Player2 string `json:"player2"`
	Group   Group  `json:"group"`

	Points    int `json:"points"`
	GamesWon  int `json:"games_won"`
	GamesLost int `json:"games_lost"`
	SetsWon   int `json:"sets_won"`
}

// Match is a bracket fixture. Court identifies a fixed pairing slot, not a
// physical resource. WinnerID empty means the match is undecided; once set
// it always equals Team1ID or Team2ID (enforced in RecordResult, the only
// place a winner is written).
type Match struct {
	ID       string `json:"id"`
	Phase    Phase  `json:"phase"`
	Court    int    `json:"court"`
	Team1ID  string `json:"team1_id"`
	Team2ID  string `json:"team2_id"`
	WinnerID string `json:"winner_id,omitempty"`
	Group    Group  `json:"group,omitempty"` // set for phase-1 matches only
}

func (m Match) Decided() bool {
	return m.WinnerID != ""
}

// LoserID returns the losing side of a decided match.
func (m Match) LoserID() (string, bool) {
	switch m.WinnerID {
	case "":
		return "", false
	case m.Team1ID:
		return m.Team2ID, true
	default:
		return m.Team1ID, true
	}
}

// State is the whole Masters aggregate, persisted and broadcast as one
// value. Pool holds eligible player names for team creation; the engine
// never consumes it except through AutoFillGroups input.
type State struct {
	Teams        []Team   `json:"teams"`
	Matches      []Match  `json:"matches"`
	CurrentPhase Phase    `json:"current_phase"`
	Pool         []string `json:"pool"`
}

// NewState returns an empty aggregate in phase 1 with the given name pool.
func NewState(pool []string) State {
	return State{
		Teams:        []Team{},
		Matches:      []Match{},
		CurrentPhase: PhaseGroups,
		Pool:         slices.Clone(pool),
	}
}

// clone deep-copies the aggregate so transitions never alias the input.
func (s State) clone() State {
	return State{
		Teams:        slices.Clone(s.Teams),
		Matches:      slices.Clone(s.Matches),
		CurrentPhase: s.CurrentPhase,
		Pool:         slices.Clone(s.Pool),
	}
}

// TeamsInGroup returns the teams of one pool in roster order.
func (s State) TeamsInGroup(g Group) []Team {
	teams := make([]Team, 0, GroupCapacity)
	for _, t := range s.Teams {
		if t.Group == g {
			teams = append(teams, t)
		}
	}
	return teams
}

// TeamByID looks a team up by id. Matches may reference teams removed
// during setup, so a miss is not an invariant violation.
func (s State) TeamByID(id string) (Team, bool) {
	for _, t := range s.Teams {
		if t.ID == id {
			return t, true
		}
	}
	return Team{}, false
}

// MatchByID looks a bracket match up by id.
func (s State) MatchByID(id string) (Match, bool) {
	for _, m := range s.Matches {
		if m.ID == id {
			return m, true
		}
	}
	return Match{}, false
}

// MatchesInPhase returns the fixtures of one phase in creation order.
func (s State) MatchesInPhase(p Phase) []Match {
	matches := make([]Match, 0, len(s.Matches))
	for _, m := range s.Matches {
		if m.Phase == p {
			matches = append(matches, m)
		}
	}
	return matches
}

func (s State) matchOnCourt(p Phase, court int) (Match, bool) {
	for _, m := range s.Matches {
		if m.Phase == p && m.Court == court {
			return m, true
		}
	}
	return Match{}, false
}

// RosterNames returns every player name currently on a team.
func (s State) RosterNames() map[string]bool {
	names := make(map[string]bool, len(s.Teams)*2)
	for _, t := range s.Teams {
		names[t.Player1] = true
		names[t.Player2] = true
	}
	return names
}
