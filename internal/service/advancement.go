package service

import (
	"context"
	"errors"

	"github.com/Shadowrun-FPS/tournament-service/internal/bracket"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// completeMatch finishes a match, pushes the winner (and loser, in double
// elimination) along the precomputed links, and launches any next-round
// matches once the whole round is decided.
func (s *MatchService) completeMatch(ctx context.Context, tx *sqlx.Tx, match *bracket.Match, winnerSlot int) error {
	match.Status = bracket.MatchCompleted
	match.WinnerSlot = &winnerSlot
	if err := s.matches.UpdateMatch(ctx, tx, match); err != nil {
		return err
	}

	winnerID := match.TeamInSlot(winnerSlot)
	loserID := match.LoserTeamID()

	if match.WinnerNextMatchID != nil && match.WinnerNextSlot != nil && winnerID != nil {
		if err := s.fillSlot(ctx, tx, match.WinnerNextMatchID.String(), *match.WinnerNextSlot, *winnerID); err != nil {
			return err
		}
	}
	if match.LoserNextMatchID != nil && match.LoserNextSlot != nil && loserID != nil {
		if err := s.fillSlot(ctx, tx, match.LoserNextMatchID.String(), *match.LoserNextSlot, *loserID); err != nil {
			return err
		}
	}

	if match.BracketSide == bracket.FinalsSide {
		return s.resolveFinals(ctx, tx, match, winnerSlot)
	}

	if match.WinnerNextMatchID == nil {
		// Single elimination final.
		return s.store.UpdateTournamentStatusTx(ctx, tx, match.TournamentID.String(), bracket.TournamentCompleted)
	}

	if err := s.launchReadyMatches(ctx, tx, match); err != nil && !errors.Is(err, bracket.ErrRoundNotComplete) {
		return err
	}
	return nil
}

// fillSlot writes a team into a placeholder slot of a downstream match.
// Re-propagating the same team is a no-op; a different team in the slot
// means the bracket state diverged.
func (s *MatchService) fillSlot(ctx context.Context, tx *sqlx.Tx, matchID string, slot int, teamID uuid.UUID) error {
	next, err := s.matches.GetMatchTx(ctx, tx, matchID)
	if err != nil {
		return err
	}

	if existing := next.TeamInSlot(slot); existing != nil {
		if *existing == teamID {
			return nil
		}
		return bracket.ErrSlotAlreadyResolved
	}

	if slot == 1 {
		next.Team1ID = &teamID
	} else {
		next.Team2ID = &teamID
	}
	return s.matches.UpdateMatch(ctx, tx, next)
}

// launchReadyMatches gates round progression: only when every match of the
// just-completed round is finished do downstream matches with both slots
// filled go live. Launching checks the upcoming status first, so running
// this twice over the same state changes nothing.
func (s *MatchService) launchReadyMatches(ctx context.Context, tx *sqlx.Tx, completed *bracket.Match) error {
	roundMatches, err := s.matches.GetRoundMatchesTx(ctx, tx, completed.TournamentID.String(), completed.BracketSide, completed.RoundNumber)
	if err != nil {
		return err
	}

	targets := make(map[uuid.UUID]bool)
	for _, m := range roundMatches {
		if m.Status != bracket.MatchCompleted {
			return bracket.ErrRoundNotComplete
		}
		if m.WinnerNextMatchID != nil {
			targets[*m.WinnerNextMatchID] = true
		}
		if m.LoserNextMatchID != nil {
			targets[*m.LoserNextMatchID] = true
		}
	}

	for id := range targets {
		next, err := s.matches.GetMatchTx(ctx, tx, id.String())
		if err != nil {
			return err
		}
		if next.Status != bracket.MatchUpcoming || next.Team1ID == nil || next.Team2ID == nil {
			continue
		}
		if err := s.launchMatch(ctx, tx, next); err != nil {
			return err
		}
	}
	return nil
}

func (s *MatchService) launchMatch(ctx context.Context, tx *sqlx.Tx, match *bracket.Match) error {
	match.Status = bracket.MatchLive
	match.Maps = joinMaps(s.picker.Pick(bracket.MapsPerMatch))
	return s.matches.UpdateMatch(ctx, tx, match)
}

// resolveFinals handles grand finals semantics: if the winners-bracket team
// takes the first grand final the tournament is over; if the losers-side
// team wins it, the bracket resets into one decisive match.
func (s *MatchService) resolveFinals(ctx context.Context, tx *sqlx.Tx, match *bracket.Match, winnerSlot int) error {
	if match.RoundNumber == 2 || winnerSlot == 1 {
		return s.store.UpdateTournamentStatusTx(ctx, tx, match.TournamentID.String(), bracket.TournamentCompleted)
	}

	resetRound, err := s.matches.GetRoundMatchesTx(ctx, tx, match.TournamentID.String(), bracket.FinalsSide, 2)
	if err != nil {
		return err
	}
	if len(resetRound) == 0 {
		return bracket.ErrMatchNotFound
	}

	reset := &resetRound[0]
	if reset.Status != bracket.MatchUpcoming {
		return nil
	}
	reset.Team1ID = match.Team1ID
	reset.Team2ID = match.Team2ID
	return s.launchMatch(ctx, tx, reset)
}
