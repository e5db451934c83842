package service

import (
	"context"
	"testing"

	"github.com/Shadowrun-FPS/tournament-service/internal/bracket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitMapScoreReconciliation(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	svc, matchSvc, _, matchStore := newTestServices(db)
	ctx := context.Background()

	id := seedTestTournament(t, svc, bracket.SingleElimination, 4)
	matches, err := matchStore.GetMatches(ctx, id.String())
	require.NoError(t, err)
	m1 := findMatch(t, matches, bracket.WinnersSide, 1, 1)

	// First side alone confirms nothing.
	result, err := matchSvc.SubmitMapScore(ctx, m1.ID, 0, 1, 6, 2)
	require.NoError(t, err)
	assert.False(t, result.Confirmed)
	assert.False(t, result.Mismatch)

	scores, err := matchStore.GetMapScores(ctx, m1.ID.String())
	require.NoError(t, err)
	require.Len(t, scores, 1)
	assert.True(t, scores[0].Submitted1)
	assert.False(t, scores[0].Submitted2)
	assert.False(t, scores[0].Confirmed())
	assert.Equal(t, "Santos", scores[0].MapName)

	// Matching pair from the other side confirms the map.
	result, err = matchSvc.SubmitMapScore(ctx, m1.ID, 0, 2, 6, 2)
	require.NoError(t, err)
	assert.True(t, result.Confirmed)
	require.NotNil(t, result.MapWinner)
	assert.Equal(t, 1, *result.MapWinner)
	assert.False(t, result.MatchCompleted)

	scores, err = matchStore.GetMapScores(ctx, m1.ID.String())
	require.NoError(t, err)
	require.True(t, scores[0].Confirmed())
	assert.Equal(t, 6, *scores[0].FinalScore1)
	assert.Equal(t, 2, *scores[0].FinalScore2)

	updated, err := matchStore.GetMatch(ctx, m1.ID.String())
	require.NoError(t, err)
	assert.Equal(t, 1, updated.MapWins1)
	assert.Equal(t, 0, updated.MapWins2)
	assert.Equal(t, bracket.MatchLive, updated.Status)
}

func TestSubmitMapScoreMismatchResets(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	svc, matchSvc, _, matchStore := newTestServices(db)
	ctx := context.Background()

	id := seedTestTournament(t, svc, bracket.SingleElimination, 4)
	matches, err := matchStore.GetMatches(ctx, id.String())
	require.NoError(t, err)
	m1 := findMatch(t, matches, bracket.WinnersSide, 1, 1)

	_, err = matchSvc.SubmitMapScore(ctx, m1.ID, 0, 1, 6, 3)
	require.NoError(t, err)
	result, err := matchSvc.SubmitMapScore(ctx, m1.ID, 0, 2, 6, 4)
	require.NoError(t, err)

	assert.True(t, result.Mismatch)
	assert.False(t, result.Confirmed)

	// Both submissions are discarded; the map is back to empty.
	scores, err := matchStore.GetMapScores(ctx, m1.ID.String())
	require.NoError(t, err)
	require.Len(t, scores, 1)
	assert.False(t, scores[0].Submitted1)
	assert.False(t, scores[0].Submitted2)
	assert.True(t, scores[0].Mismatch)
	assert.False(t, scores[0].Confirmed())

	// Resubmission after the reset works normally.
	result = submitBoth(t, matchSvc, m1.ID, 0, 6, 3)
	assert.True(t, result.Confirmed)

	scores, err = matchStore.GetMapScores(ctx, m1.ID.String())
	require.NoError(t, err)
	assert.False(t, scores[0].Mismatch)
}

func TestSubmitMapScoreValidation(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	svc, matchSvc, _, matchStore := newTestServices(db)
	ctx := context.Background()

	id := seedTestTournament(t, svc, bracket.SingleElimination, 4)
	matches, err := matchStore.GetMatches(ctx, id.String())
	require.NoError(t, err)
	m1 := findMatch(t, matches, bracket.WinnersSide, 1, 1)

	testCases := []struct {
		name     string
		score1   int
		score2   int
		expected error
	}{
		{name: "tied", score1: 4, score2: 4, expected: bracket.ErrTiedScore},
		{name: "too high", score1: 9, score2: 6, expected: bracket.ErrScoreTooHigh},
		{name: "negative", score1: -1, score2: 6, expected: bracket.ErrInvalidScore},
		{name: "no winner", score1: 5, score2: 4, expected: bracket.ErrNoWinner},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := matchSvc.SubmitMapScore(ctx, m1.ID, 0, 1, tc.score1, tc.score2)
			assert.ErrorIs(t, err, tc.expected)
		})
	}

	// Rejected submissions never count as a side having submitted.
	scores, err := matchStore.GetMapScores(ctx, m1.ID.String())
	require.NoError(t, err)
	assert.Empty(t, scores)

	_, err = matchSvc.SubmitMapScore(ctx, m1.ID, 5, 1, 6, 2)
	assert.Error(t, err, "map index out of range")

	_, err = matchSvc.SubmitMapScore(ctx, m1.ID, 0, 3, 6, 2)
	assert.Error(t, err, "side must be 1 or 2")
}

func TestResubmitAfterConfirmedRejected(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	svc, matchSvc, _, matchStore := newTestServices(db)
	ctx := context.Background()

	id := seedTestTournament(t, svc, bracket.SingleElimination, 4)
	matches, err := matchStore.GetMatches(ctx, id.String())
	require.NoError(t, err)
	m1 := findMatch(t, matches, bracket.WinnersSide, 1, 1)

	submitBoth(t, matchSvc, m1.ID, 0, 6, 2)

	_, err = matchSvc.SubmitMapScore(ctx, m1.ID, 0, 1, 6, 5)
	assert.ErrorIs(t, err, bracket.ErrMapConfirmed)
}

func TestSubmitToUpcomingMatchRejected(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	svc, matchSvc, _, matchStore := newTestServices(db)
	ctx := context.Background()

	id := seedTestTournament(t, svc, bracket.SingleElimination, 4)
	matches, err := matchStore.GetMatches(ctx, id.String())
	require.NoError(t, err)
	final := findMatch(t, matches, bracket.WinnersSide, 2, 1)

	_, err = matchSvc.SubmitMapScore(ctx, final.ID, 0, 1, 6, 2)
	assert.ErrorIs(t, err, bracket.ErrMatchNotLive)
}

func TestOneSideCanRevisePendingSubmission(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	svc, matchSvc, _, matchStore := newTestServices(db)
	ctx := context.Background()

	id := seedTestTournament(t, svc, bracket.SingleElimination, 4)
	matches, err := matchStore.GetMatches(ctx, id.String())
	require.NoError(t, err)
	m1 := findMatch(t, matches, bracket.WinnersSide, 1, 1)

	// Side 1 corrects itself before side 2 reports; the revised pair is
	// the one reconciled.
	_, err = matchSvc.SubmitMapScore(ctx, m1.ID, 0, 1, 6, 4)
	require.NoError(t, err)
	_, err = matchSvc.SubmitMapScore(ctx, m1.ID, 0, 1, 6, 2)
	require.NoError(t, err)

	result, err := matchSvc.SubmitMapScore(ctx, m1.ID, 0, 2, 6, 2)
	require.NoError(t, err)
	assert.True(t, result.Confirmed)
}
