package bracket

// RoundsToWinMap is the round count a team must reach to take a map.
const RoundsToWinMap = 6

// ValidateScore checks a single map's score pair against the first-to-6
// format. Pure; called both on raw submissions and again before a
// dual-submitted result is confirmed.
func ValidateScore(score1, score2 int) error {
	if score1 < 0 || score2 < 0 {
		return ErrInvalidScore
	}
	if score1 > RoundsToWinMap || score2 > RoundsToWinMap {
		return ErrScoreTooHigh
	}
	if score1 == RoundsToWinMap && score2 == RoundsToWinMap {
		return ErrNoWinner
	}
	if score1 == score2 {
		return ErrTiedScore
	}
	if score1 != RoundsToWinMap && score2 != RoundsToWinMap {
		return ErrNoWinner
	}
	return nil
}

// ScoreWinner returns the winning slot (1 or 2) for a valid score pair.
func ScoreWinner(score1, score2 int) int {
	if score1 == RoundsToWinMap {
		return 1
	}
	return 2
}
