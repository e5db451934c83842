package service

import (
	"fmt"
	"math"

	"github.com/Shadowrun-FPS/tournament-service/internal/bracket"
	"github.com/Shadowrun-FPS/tournament-service/internal/utils"
	"github.com/google/uuid"
)

// buildBracket constructs the full match graph for a tournament up front:
// winners rounds populated from the seeded pairs, and for double elimination
// the losers rounds plus a grand final and a conditional reset final. Later
// rounds are placeholders whose team slots fill as results propagate along
// the precomputed winner/loser links.
func buildBracket(tournamentID uuid.UUID, format bracket.TournamentFormat, pairs [][2]bracket.Team) ([]bracket.Match, error) {
	n := len(pairs) * 2
	if !isPowerOfTwo(n) {
		return nil, bracket.ErrNotPowerOfTwo
	}
	if format == bracket.DoubleElimination && n < 4 {
		return nil, fmt.Errorf("double elimination needs at least 4 teams: %w", bracket.ErrWrongTeamCount)
	}

	totalRounds := int(math.Log2(float64(n)))

	var matches []bracket.Match

	newMatch := func(side bracket.BracketSide, round, order int) bracket.Match {
		return bracket.Match{
			ID:           uuid.New(),
			TournamentID: tournamentID,
			BracketSide:  side,
			RoundNumber:  round,
			MatchOrder:   order,
			Status:       bracket.MatchUpcoming,
			Version:      1,
		}
	}

	// Grand finals first so the losers and winners finals can link into
	// them. The reset final is only played if the losers-side team takes
	// the first grand final; that branch is decided at advancement time,
	// so the grand final carries no precomputed winner link.
	var grandFinalID uuid.UUID
	if format == bracket.DoubleElimination {
		gf := newMatch(bracket.FinalsSide, 1, 1)
		reset := newMatch(bracket.FinalsSide, 2, 1)
		grandFinalID = gf.ID
		matches = append(matches, gf, reset)
	}

	// Losers rounds, last to first, so winner links can point forward.
	// Round counts follow the standard progression: the first two rounds
	// have n/4 matches, then each odd round halves the previous pair.
	lbIDs := make(map[int]map[int]uuid.UUID)
	if format == bracket.DoubleElimination {
		lbRounds := 2 * (totalRounds - 1)
		for r := lbRounds; r >= 1; r-- {
			count := lbRoundMatchCount(n, r)
			lbIDs[r] = make(map[int]uuid.UUID, count)

			for order := 1; order <= count; order++ {
				m := newMatch(bracket.LosersSide, r, order)

				if r == lbRounds {
					// Losers champion meets the winners champion.
					m.WinnerNextMatchID = &grandFinalID
					m.WinnerNextSlot = utils.Ptr(2)
				} else if r%2 == 1 {
					// Pairing round feeds the same-order match of the
					// merge round; slot 2 there is reserved for the
					// winners-bracket dropper.
					next := lbIDs[r+1][order]
					m.WinnerNextMatchID = &next
					m.WinnerNextSlot = utils.Ptr(1)
				} else {
					next := lbIDs[r+1][(order+1)/2]
					m.WinnerNextMatchID = &next
					if order%2 != 0 {
						m.WinnerNextSlot = utils.Ptr(1)
					} else {
						m.WinnerNextSlot = utils.Ptr(2)
					}
				}

				matches = append(matches, m)
				lbIDs[r][order] = m.ID
			}
		}
	}

	// Winners rounds, last to first, teacher-style backwards construction.
	nextRoundIDs := make(map[int]uuid.UUID)
	for r := totalRounds; r >= 1; r-- {
		count := int(math.Pow(2, float64(totalRounds-r)))
		currentRoundIDs := make(map[int]uuid.UUID, count)

		for order := 1; order <= count; order++ {
			m := newMatch(bracket.WinnersSide, r, order)

			if r < totalRounds {
				parentID := nextRoundIDs[(order+1)/2]
				m.WinnerNextMatchID = &parentID
				if order%2 != 0 {
					m.WinnerNextSlot = utils.Ptr(1)
				} else {
					m.WinnerNextSlot = utils.Ptr(2)
				}
			} else if format == bracket.DoubleElimination {
				m.WinnerNextMatchID = &grandFinalID
				m.WinnerNextSlot = utils.Ptr(1)
			}

			if format == bracket.DoubleElimination {
				if r == 1 {
					target := lbIDs[1][(order+1)/2]
					m.LoserNextMatchID = &target
					if order%2 != 0 {
						m.LoserNextSlot = utils.Ptr(1)
					} else {
						m.LoserNextSlot = utils.Ptr(2)
					}
				} else {
					target := lbIDs[2*(r-1)][order]
					m.LoserNextMatchID = &target
					m.LoserNextSlot = utils.Ptr(2)
				}
			}

			if r == 1 {
				pair := pairs[order-1]
				team1 := pair[0].ID
				team2 := pair[1].ID
				m.Team1ID = &team1
				m.Team2ID = &team2
			}

			matches = append(matches, m)
			currentRoundIDs[order] = m.ID
		}
		nextRoundIDs = currentRoundIDs
	}

	return matches, nil
}

// lbRoundMatchCount gives the match count for losers round r of an n-team
// double elimination field: n/4, n/4, n/8, n/8, ... down to two 1-match
// rounds.
func lbRoundMatchCount(n, r int) int {
	return n / (1 << ((r+1)/2 + 1))
}
