package service

import (
	"context"
	"fmt"

	"github.com/Shadowrun-FPS/tournament-service/internal/bracket"
	"github.com/Shadowrun-FPS/tournament-service/internal/store"
	"github.com/Shadowrun-FPS/tournament-service/internal/utils"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type MatchService struct {
	db      *sqlx.DB
	store   *store.TournamentStore
	matches *store.MatchStore
	picker  MapPicker
}

func NewMatchService(db *sqlx.DB, tournaments *store.TournamentStore, matches *store.MatchStore, picker MapPicker) *MatchService {
	return &MatchService{db: db, store: tournaments, matches: matches, picker: picker}
}

type MatchData struct {
	Match     *bracket.Match
	MapScores []bracket.MapScore
}

// SubmitResult reports what a single submission did: nothing yet (waiting
// on the other side), confirmed a map, flagged a mismatch, or finished the
// whole match.
type SubmitResult struct {
	Confirmed      bool
	Mismatch       bool
	MapWinner      *int
	MatchCompleted bool
	MatchWinnerID  *uuid.UUID
}

func (s *MatchService) GetMatchData(ctx context.Context, matchID string) (*MatchData, error) {
	match, err := s.matches.GetMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}

	scores, err := s.matches.GetMapScores(ctx, matchID)
	if err != nil {
		return nil, err
	}

	return &MatchData{Match: match, MapScores: scores}, nil
}

// SubmitMapScore runs one side's score report through the dual-submission
// state machine. A map is only confirmed when both sides have submitted the
// identical pair; disagreeing pairs are discarded and both sides must
// resubmit. The second map win completes the match and advances the
// bracket, all in one transaction.
func (s *MatchService) SubmitMapScore(ctx context.Context, matchID uuid.UUID, mapIndex, side, score1, score2 int) (*SubmitResult, error) {
	if side != 1 && side != 2 {
		return nil, fmt.Errorf("submitting side must be 1 or 2, got %d", side)
	}
	if mapIndex < 0 || mapIndex >= bracket.MapsPerMatch {
		return nil, fmt.Errorf("map index %d out of range", mapIndex)
	}
	if err := bracket.ValidateScore(score1, score2); err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	match, err := s.matches.GetMatchTx(ctx, tx, matchID.String())
	if err != nil {
		return nil, err
	}
	if match.Status != bracket.MatchLive {
		return nil, bracket.ErrMatchNotLive
	}

	ms, err := s.matches.GetMapScoreTx(ctx, tx, matchID.String(), mapIndex)
	if err != nil {
		return nil, err
	}

	created := false
	if ms == nil {
		created = true
		names := SplitMaps(match.Maps)
		name := ""
		if mapIndex < len(names) {
			name = names[mapIndex]
		}
		ms = &bracket.MapScore{
			ID:       uuid.New(),
			MatchID:  match.ID,
			MapIndex: mapIndex,
			MapName:  name,
		}
	}

	if ms.Confirmed() {
		return nil, bracket.ErrMapConfirmed
	}

	// A side resubmitting before the other side reports just replaces its
	// own pending pair.
	if side == 1 {
		ms.Submitted1 = true
		ms.Team1Score1 = score1
		ms.Team1Score2 = score2
	} else {
		ms.Submitted2 = true
		ms.Team2Score1 = score1
		ms.Team2Score2 = score2
	}
	ms.Mismatch = false

	result := &SubmitResult{}

	if ms.Submitted1 && ms.Submitted2 {
		if ms.Team1Score1 == ms.Team2Score1 && ms.Team1Score2 == ms.Team2Score2 {
			if err := bracket.ValidateScore(ms.Team1Score1, ms.Team1Score2); err != nil {
				return nil, err
			}
			winner := bracket.ScoreWinner(ms.Team1Score1, ms.Team1Score2)
			ms.FinalScore1 = utils.Ptr(ms.Team1Score1)
			ms.FinalScore2 = utils.Ptr(ms.Team1Score2)
			ms.Winner = utils.Ptr(winner)
			result.Confirmed = true
			result.MapWinner = utils.Ptr(winner)
		} else {
			ms.Submitted1 = false
			ms.Submitted2 = false
			ms.Team1Score1, ms.Team1Score2 = 0, 0
			ms.Team2Score1, ms.Team2Score2 = 0, 0
			ms.Mismatch = true
			result.Mismatch = true
		}
	}

	if created {
		err = s.matches.CreateMapScore(ctx, tx, ms)
	} else {
		err = s.matches.UpdateMapScore(ctx, tx, ms)
	}
	if err != nil {
		return nil, err
	}

	if result.Confirmed {
		if *ms.Winner == 1 {
			match.MapWins1++
		} else {
			match.MapWins2++
		}

		if match.MapWins1 >= bracket.MapsToWinMatch || match.MapWins2 >= bracket.MapsToWinMatch {
			winnerSlot := 1
			if match.MapWins2 >= bracket.MapsToWinMatch {
				winnerSlot = 2
			}
			if err := s.completeMatch(ctx, tx, match, winnerSlot); err != nil {
				return nil, err
			}
			result.MatchCompleted = true
			result.MatchWinnerID = match.WinnerTeamID()
		} else if err := s.matches.UpdateMatch(ctx, tx, match); err != nil {
			return nil, err
		}
	}

	return result, tx.Commit()
}
