package masters

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrGroupFull        = errors.New("group already holds the maximum number of teams")
	ErrSamePlayer       = errors.New("a team needs two different players")
	ErrInsufficientPool = errors.New("fewer than two available names to fill with")
	ErrUnknownGroup     = errors.New("unknown group")
	ErrTeamNotFound     = errors.New("team not found")
	ErrMatchNotFound    = errors.New("bracket match not found")
	ErrInvalidWinner    = errors.New("winner must be one of the match's teams")
	ErrAlreadyStarted   = errors.New("group matches have already been generated")
	ErrWrongStage       = errors.New("operation not valid in the current tournament stage")
)

// PrerequisiteError reports missing prerequisites for a phase transition.
// It is warning-grade: callers may retry the transition with force set to
// proceed anyway.
type PrerequisiteError struct {
	Warnings []string
}

func (e *PrerequisiteError) Error() string {
	return fmt.Sprintf("transition prerequisites not met: %s", strings.Join(e.Warnings, "; "))
}
