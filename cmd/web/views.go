package main

import (
	"github.com/Shadowrun-FPS/tournament-service/internal/bracket"
	"github.com/Shadowrun-FPS/tournament-service/internal/service"
	"github.com/Shadowrun-FPS/tournament-service/internal/utils"
	"github.com/google/uuid"
)

// JSON shapes for the HTTP surface. Matches are exposed both grouped into
// bracket rounds and as a flat live list.

type matchView struct {
	ID         string   `json:"id"`
	Code       string   `json:"code"`
	Side       string   `json:"side"`
	Round      int      `json:"round"`
	Order      int      `json:"order"`
	Team1ID    *string  `json:"team1Id"`
	Team2ID    *string  `json:"team2Id"`
	MapWins1   int      `json:"mapWins1"`
	MapWins2   int      `json:"mapWins2"`
	Status     string   `json:"status"`
	WinnerSlot int      `json:"winnerSlot"`
	Winner     *string  `json:"winnerTeamId"`
	Maps       []string `json:"maps"`
}

type roundView struct {
	Round   int         `json:"round"`
	Matches []matchView `json:"matches"`
}

type bracketView struct {
	Winners []roundView `json:"winners"`
	Losers  []roundView `json:"losers,omitempty"`
	Finals  []roundView `json:"finals,omitempty"`
}

type teamView struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Tag    string `json:"tag"`
	Rating int    `json:"rating"`
	Seed   int    `json:"seed"`
}

type tournamentView struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Format      string      `json:"format"`
	Capacity    int         `json:"capacity"`
	Status      string      `json:"status"`
	Teams       []teamView  `json:"teams"`
	Bracket     bracketView `json:"bracket"`
	LiveMatches []matchView `json:"liveMatches"`
}

func uuidString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

func toMatchView(m *bracket.Match) matchView {
	return matchView{
		ID:         m.ID.String(),
		Code:       m.Code(),
		Side:       string(m.BracketSide),
		Round:      m.RoundNumber,
		Order:      m.MatchOrder,
		Team1ID:    uuidString(m.Team1ID),
		Team2ID:    uuidString(m.Team2ID),
		MapWins1:   m.MapWins1,
		MapWins2:   m.MapWins2,
		Status:     string(m.Status),
		WinnerSlot: utils.OrZero(m.WinnerSlot),
		Winner:     uuidString(m.WinnerTeamID()),
		Maps:       service.SplitMaps(m.Maps),
	}
}

func groupRounds(matches []bracket.Match, side bracket.BracketSide) []roundView {
	var rounds []roundView
	byRound := make(map[int][]matchView)
	maxRound := 0
	for i := range matches {
		m := &matches[i]
		if m.BracketSide != side {
			continue
		}
		byRound[m.RoundNumber] = append(byRound[m.RoundNumber], toMatchView(m))
		if m.RoundNumber > maxRound {
			maxRound = m.RoundNumber
		}
	}
	for r := 1; r <= maxRound; r++ {
		rounds = append(rounds, roundView{Round: r, Matches: byRound[r]})
	}
	return rounds
}

func tournamentResponse(data *service.TournamentData) tournamentView {
	teams := make([]teamView, 0, len(data.Teams))
	for _, t := range data.Teams {
		teams = append(teams, teamView{
			ID:     t.ID.String(),
			Name:   t.Name,
			Tag:    t.Tag,
			Rating: t.Rating,
			Seed:   t.Seed,
		})
	}

	live := make([]matchView, 0, len(data.LiveMatches))
	for i := range data.LiveMatches {
		live = append(live, toMatchView(&data.LiveMatches[i]))
	}

	return tournamentView{
		ID:       data.Tournament.ID.String(),
		Name:     data.Tournament.Name,
		Format:   string(data.Tournament.Format),
		Capacity: data.Tournament.Capacity,
		Status:   string(data.Tournament.Status),
		Teams:    teams,
		Bracket: bracketView{
			Winners: groupRounds(data.Matches, bracket.WinnersSide),
			Losers:  groupRounds(data.Matches, bracket.LosersSide),
			Finals:  groupRounds(data.Matches, bracket.FinalsSide),
		},
		LiveMatches: live,
	}
}

type mapScoreView struct {
	MapIndex    int    `json:"mapIndex"`
	MapName     string `json:"mapName"`
	Submitted1  bool   `json:"submitted1"`
	Submitted2  bool   `json:"submitted2"`
	FinalScore1 *int   `json:"finalScore1"`
	FinalScore2 *int   `json:"finalScore2"`
	Winner      *int   `json:"winner"`
	Mismatch    bool   `json:"mismatch"`
}

type matchDetailView struct {
	Match  matchView      `json:"match"`
	Scores []mapScoreView `json:"scores"`
}

func matchDetailResponse(data *service.MatchData) matchDetailView {
	scores := make([]mapScoreView, 0, len(data.MapScores))
	for _, ms := range data.MapScores {
		scores = append(scores, mapScoreView{
			MapIndex:    ms.MapIndex,
			MapName:     ms.MapName,
			Submitted1:  ms.Submitted1,
			Submitted2:  ms.Submitted2,
			FinalScore1: ms.FinalScore1,
			FinalScore2: ms.FinalScore2,
			Winner:      ms.Winner,
			Mismatch:    ms.Mismatch,
		})
	}
	return matchDetailView{Match: toMatchView(data.Match), Scores: scores}
}

type submitView struct {
	Confirmed      bool    `json:"confirmed"`
	Mismatch       bool    `json:"mismatch"`
	MapWinner      *int    `json:"mapWinner"`
	MatchCompleted bool    `json:"matchCompleted"`
	MatchWinnerID  *string `json:"matchWinnerId"`
}

func submitResponse(result *service.SubmitResult) submitView {
	return submitView{
		Confirmed:      result.Confirmed,
		Mismatch:       result.Mismatch,
		MapWinner:      result.MapWinner,
		MatchCompleted: result.MatchCompleted,
		MatchWinnerID:  uuidString(result.MatchWinnerID),
	}
}
