package bracket

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type MatchStatus string

const (
	MatchUpcoming  MatchStatus = "upcoming"
	MatchLive      MatchStatus = "live"
	MatchCompleted MatchStatus = "completed"
)

type BracketSide string

const (
	WinnersSide BracketSide = "winners"
	LosersSide  BracketSide = "losers"
	FinalsSide  BracketSide = "finals"
)

// Maps per match and map wins needed, best-of-3.
const (
	MapsPerMatch   = 3
	MapsToWinMatch = 2
)

type Match struct {
	ID           uuid.UUID `db:"id"`
	TournamentID uuid.UUID `db:"tournament_id"`

	// Structured position in the bracket; the derived Code is only ever
	// built from these, never parsed back.
	BracketSide BracketSide `db:"bracket_side"`
	RoundNumber int         `db:"round_number"`
	MatchOrder  int         `db:"match_order"`

	Team1ID *uuid.UUID `db:"team_1_id"`
	Team2ID *uuid.UUID `db:"team_2_id"`

	MapWins1 int         `db:"map_wins_1"`
	MapWins2 int         `db:"map_wins_2"`
	Status   MatchStatus `db:"status"`

	WinnerNextMatchID *uuid.UUID `db:"winner_next_match_id"`
	WinnerNextSlot    *int       `db:"winner_next_slot"`

	LoserNextMatchID *uuid.UUID `db:"loser_next_match_id"`
	LoserNextSlot    *int       `db:"loser_next_slot"`

	WinnerSlot *int `db:"winner_slot"`

	// Comma-joined map names assigned when the match goes live.
	Maps string `db:"maps"`

	// Optimistic concurrency token; bumped on every update.
	Version int `db:"version"`

	CreatedAt time.Time `db:"created_at"`
}

// Code derives the stable human-readable match identifier, e.g.
// "3f2a…-winners-r1-m2".
func (m *Match) Code() string {
	return fmt.Sprintf("%s-%s-r%d-m%d", m.TournamentID, m.BracketSide, m.RoundNumber, m.MatchOrder)
}

func (m *Match) IsWinner(slot int) bool {
	return m.Status == MatchCompleted && m.WinnerSlot != nil && *m.WinnerSlot == slot
}

func (m *Match) TeamInSlot(slot int) *uuid.UUID {
	if slot == 1 {
		return m.Team1ID
	}
	return m.Team2ID
}

// WinnerTeamID returns the winning team once the match is completed.
func (m *Match) WinnerTeamID() *uuid.UUID {
	if m.Status != MatchCompleted || m.WinnerSlot == nil {
		return nil
	}
	return m.TeamInSlot(*m.WinnerSlot)
}

// LoserTeamID returns the losing team once the match is completed.
func (m *Match) LoserTeamID() *uuid.UUID {
	if m.Status != MatchCompleted || m.WinnerSlot == nil {
		return nil
	}
	if *m.WinnerSlot == 1 {
		return m.Team2ID
	}
	return m.Team1ID
}
