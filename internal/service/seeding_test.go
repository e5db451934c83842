package service

import (
	"testing"

	"github.com/Shadowrun-FPS/tournament-service/internal/bracket"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func teamsWithRatings(ratings ...int) []bracket.Team {
	teams := make([]bracket.Team, 0, len(ratings))
	for _, r := range ratings {
		teams = append(teams, bracket.Team{ID: uuid.New(), Rating: r})
	}
	return teams
}

func TestSeedTeams(t *testing.T) {
	// Shuffled input: seeding must order purely by rating.
	teams := teamsWithRatings(1600, 2000, 1300, 1800, 1500, 1900, 1400, 1700)

	seeded, err := seedTeams(teams, 8)
	require.NoError(t, err)

	expectedRatings := []int{2000, 1900, 1800, 1700, 1600, 1500, 1400, 1300}
	for i, team := range seeded {
		assert.Equal(t, expectedRatings[i], team.Rating)
		assert.Equal(t, i+1, team.Seed)
	}

	pairs := seedPairs(seeded)
	require.Len(t, pairs, 4)
	expectedPairs := [][2]int{{2000, 1300}, {1900, 1400}, {1800, 1500}, {1700, 1600}}
	for i, pair := range pairs {
		assert.Equal(t, expectedPairs[i][0], pair[0].Rating, "pair %d high seed", i)
		assert.Equal(t, expectedPairs[i][1], pair[1].Rating, "pair %d low seed", i)
	}
}

func TestSeedTeamsStableTieBreak(t *testing.T) {
	teams := teamsWithRatings(1500, 1500, 1500, 1500)

	seeded, err := seedTeams(teams, 4)
	require.NoError(t, err)

	// Equal ratings keep registration order.
	for i, team := range seeded {
		assert.Equal(t, teams[i].ID, team.ID)
		assert.Equal(t, i+1, team.Seed)
	}
}

func TestSeedTeamsErrors(t *testing.T) {
	dup := uuid.New()

	testCases := []struct {
		name     string
		teams    []bracket.Team
		capacity int
		expected error
	}{
		{
			name:     "wrong team count",
			teams:    teamsWithRatings(1500, 1400, 1300),
			capacity: 4,
			expected: bracket.ErrWrongTeamCount,
		},
		{
			name:     "capacity not power of two",
			teams:    teamsWithRatings(1500, 1400, 1300, 1200, 1100, 1000),
			capacity: 6,
			expected: bracket.ErrNotPowerOfTwo,
		},
		{
			name:     "capacity below two",
			teams:    teamsWithRatings(1500),
			capacity: 1,
			expected: bracket.ErrNotPowerOfTwo,
		},
		{
			name: "missing team id",
			teams: []bracket.Team{
				{ID: uuid.New(), Rating: 1500},
				{Rating: 1400},
			},
			capacity: 2,
			expected: bracket.ErrInvalidTeam,
		},
		{
			name: "duplicate team id",
			teams: []bracket.Team{
				{ID: dup, Rating: 1500},
				{ID: dup, Rating: 1400},
			},
			capacity: 2,
			expected: bracket.ErrDuplicateTeam,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := seedTeams(tc.teams, tc.capacity)
			assert.ErrorIs(t, err, tc.expected)
		})
	}
}
