package services

import "errors"

// Shared validation and business-rule errors, mapped to HTTP statuses in
// the handler layer.
var (
	ErrValidationFailed = errors.New("validation failed")

	ErrPlayerNameRequired = errors.New("player name is required")
	ErrShiftDateRequired  = errors.New("shift date is required")
	ErrShiftCourtsInvalid = errors.New("shift needs at least one court")
	ErrShiftFull          = errors.New("shift is already full")

	ErrMatchPlayersNotDistinct = errors.New("a match needs four distinct players")
	ErrMatchWinnerPairInvalid  = errors.New("winner pair must be 1 or 2")
)
