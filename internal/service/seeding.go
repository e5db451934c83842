package service

import (
	"sort"

	"github.com/Shadowrun-FPS/tournament-service/internal/bracket"
	"github.com/google/uuid"
)

func isPowerOfTwo(n int) bool {
	return n >= 2 && n&(n-1) == 0
}

// seedTeams orders teams by rating (highest first, ties keep registration
// order) and assigns seeds 1..n. The input slice is not modified.
func seedTeams(teams []bracket.Team, capacity int) ([]bracket.Team, error) {
	if !isPowerOfTwo(capacity) {
		return nil, bracket.ErrNotPowerOfTwo
	}
	if len(teams) != capacity {
		return nil, bracket.ErrWrongTeamCount
	}

	seen := make(map[uuid.UUID]bool, len(teams))
	for _, t := range teams {
		if t.ID == uuid.Nil {
			return nil, bracket.ErrInvalidTeam
		}
		if seen[t.ID] {
			return nil, bracket.ErrDuplicateTeam
		}
		seen[t.ID] = true
	}

	sorted := make([]bracket.Team, len(teams))
	copy(sorted, teams)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Rating > sorted[j].Rating
	})

	for i := range sorted {
		sorted[i].Seed = i + 1
	}

	return sorted, nil
}

// seedPairs pairs seed i+1 against seed n-i, so an 8 team field plays
// 1v8, 2v7, 3v6, 4v5 in that match order.
func seedPairs(sorted []bracket.Team) [][2]bracket.Team {
	n := len(sorted)
	pairs := make([][2]bracket.Team, 0, n/2)
	for i := 0; i < n/2; i++ {
		pairs = append(pairs, [2]bracket.Team{sorted[i], sorted[n-1-i]})
	}
	return pairs
}
