package bracket

import "errors"

// Score validation errors.
var (
	ErrInvalidScore = errors.New("scores must be non-negative integers")
	ErrScoreTooHigh = errors.New("scores cannot exceed 6")
	ErrTiedScore    = errors.New("scores cannot be tied")
	ErrNoWinner     = errors.New("exactly one team must reach 6 rounds")
)

// Seeding and bracket construction errors.
var (
	ErrInvalidTeam    = errors.New("team is missing an id")
	ErrDuplicateTeam  = errors.New("duplicate team id")
	ErrWrongTeamCount = errors.New("registered team count does not match tournament capacity")
	ErrNotPowerOfTwo  = errors.New("tournament capacity must be a power of two of at least 2")
)

// Advancement and submission errors.
var (
	ErrTournamentNotFound  = errors.New("tournament not found")
	ErrMatchNotFound       = errors.New("match not found")
	ErrMatchNotLive        = errors.New("match is not live")
	ErrMapConfirmed        = errors.New("map score already confirmed")
	ErrSlotAlreadyResolved = errors.New("next match slot already holds a different team")
	ErrRoundNotComplete    = errors.New("previous round is not complete")
	ErrVersionConflict     = errors.New("match was modified concurrently, retry with fresh state")
)
