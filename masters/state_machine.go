package masters

import "fmt"

// Stage is the observable lifecycle position of the tournament. It is
// derived, not stored: SETUP means phase 1 with no fixtures yet, after
// that the stage follows CurrentPhase.
type Stage string

const (
	StageSetup      Stage = "SETUP"
	StageGroups     Stage = "GROUPS"
	StageCrossRound Stage = "CROSS_ROUND"
	StageFinals     Stage = "FINALS"
)

func StageOf(s State) Stage {
	switch s.CurrentPhase {
	case PhaseCrossRound:
		return StageCrossRound
	case PhaseFinals:
		return StageFinals
	default:
		if len(s.MatchesInPhase(PhaseGroups)) == 0 {
			return StageSetup
		}
		return StageGroups
	}
}

// StartTournament moves SETUP to GROUPS by generating the round-robin
// fixtures. A roster below the full sixteen teams is a warning, not a
// blocker: without force the transition returns a *PrerequisiteError and
// leaves the state untouched, with force it proceeds on whatever teams
// exist.
func StartTournament(s State, force bool) (State, error) {
	if StageOf(s) != StageSetup {
		return s, ErrAlreadyStarted
	}
	if !force {
		if n := len(s.Teams); n < GroupCapacity*len(Groups) {
			return s, &PrerequisiteError{Warnings: []string{
				fmt.Sprintf("only %d of %d teams registered", n, GroupCapacity*len(Groups)),
			}}
		}
	}
	return GenerateGroupMatches(s)
}

// StartCrossRound moves GROUPS to CROSS_ROUND, seeding the knockout from
// the current group standings. Underfull groups warn without blocking.
func StartCrossRound(s State, force bool) (State, error) {
	if StageOf(s) != StageGroups {
		return s, ErrWrongStage
	}
	if !force {
		var warnings []string
		for _, g := range Groups {
			if n := len(s.TeamsInGroup(g)); n < GroupCapacity {
				warnings = append(warnings, fmt.Sprintf("group %s has %d of %d teams", g, n, GroupCapacity))
			}
		}
		if len(warnings) > 0 {
			return s, &PrerequisiteError{Warnings: warnings}
		}
	}
	next, err := GenerateCrossRound(s)
	if err != nil {
		return s, err
	}
	next.CurrentPhase = PhaseCrossRound
	return next, nil
}

// StartFinals moves CROSS_ROUND to FINALS. Undecided phase-2 matches warn
// without blocking; with force the finals are generated for whichever slot
// pairs are ready.
func StartFinals(s State, force bool) (State, error) {
	if StageOf(s) != StageCrossRound {
		return s, ErrWrongStage
	}
	if !force {
		pending := 0
		for _, m := range s.MatchesInPhase(PhaseCrossRound) {
			if !m.Decided() {
				pending++
			}
		}
		if pending > 0 {
			return s, &PrerequisiteError{Warnings: []string{
				fmt.Sprintf("%d cross-round matches still undecided", pending),
			}}
		}
	}
	next, err := GenerateFinals(s)
	if err != nil {
		return s, err
	}
	next.CurrentPhase = PhaseFinals
	return next, nil
}

// Reset destructively clears teams and matches and returns to phase 1.
// The eligible-name pool survives. Confirmation is the caller's concern.
func Reset(s State) State {
	next := s.clone()
	next.Teams = []Team{}
	next.Matches = []Match{}
	next.CurrentPhase = PhaseGroups
	return next
}

// Podium is the ordered top-four outcome.
type Podium struct {
	First  Team `json:"first"`
	Second Team `json:"second"`
	Third  Team `json:"third"`
	Fourth Team `json:"fourth"`
}

// ComputePodium resolves the podium once both the final and the
// third-place playoff are decided: final winner and loser take first and
// second, the playoff winner and loser third and fourth.
func ComputePodium(s State) (Podium, bool) {
	final, ok := FinalMatch(s)
	if !ok || !final.Decided() {
		return Podium{}, false
	}
	third, ok := ThirdPlaceMatch(s)
	if !ok || !third.Decided() {
		return Podium{}, false
	}

	finalLoser, _ := final.LoserID()
	thirdLoser, _ := third.LoserID()
	return Podium{
		First:  teamOrStub(s, final.WinnerID),
		Second: teamOrStub(s, finalLoser),
		Third:  teamOrStub(s, third.WinnerID),
		Fourth: teamOrStub(s, thirdLoser),
	}, true
}

// teamOrStub tolerates dangling team references left by setup-time
// removals.
func teamOrStub(s State, id string) Team {
	if t, ok := s.TeamByID(id); ok {
		return t
	}
	return Team{ID: id}
}
