package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/Shadowrun-FPS/tournament-service/internal/bracket"
	"github.com/Shadowrun-FPS/tournament-service/internal/store"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates an in-memory SQLite database and applies migrations
func setupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	database, err := sqlx.Connect("sqlite3", "file::memory:")
	require.NoError(t, err, "Failed to connect to in-memory DB")

	_, err = database.Exec("PRAGMA foreign_keys = ON;")
	require.NoError(t, err)

	driver, err := sqlite3.WithInstance(database.DB, &sqlite3.Config{})
	require.NoError(t, err, "Failed to create migrate driver instance")

	m, err := migrate.NewWithDatabaseInstance(
		"file://../../migrations",
		"sqlite3",
		driver,
	)
	require.NoError(t, err, "Failed to create migrate instance")

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		require.NoError(t, err, "Failed to apply migrations")
	}

	return database
}

// fixedMapPicker always returns the pool front-to-back so tests can assert
// exact map assignments.
type fixedMapPicker struct {
	pool []string
}

func (p fixedMapPicker) Pick(n int) []string {
	if n > len(p.pool) {
		n = len(p.pool)
	}
	return p.pool[:n]
}

func newTestServices(db *sqlx.DB) (*TournamentService, *MatchService, *store.TournamentStore, *store.MatchStore) {
	tournamentStore := store.NewTournamentStore(db)
	matchStore := store.NewMatchStore(db)
	picker := fixedMapPicker{pool: []string{"Santos", "Pinnacle", "Power Station", "Dig Site"}}
	return NewTournamentService(db, tournamentStore, matchStore, picker),
		NewMatchService(db, tournamentStore, matchStore, picker),
		tournamentStore, matchStore
}

// seedTestTournament creates a tournament, fills it with teams rated
// descending from 2000 in steps of 100, and seeds it. Team at index i ends
// up with seed i+1.
func seedTestTournament(t *testing.T, svc *TournamentService, format bracket.TournamentFormat, capacity int) uuid.UUID {
	t.Helper()
	ctx := context.Background()

	id, err := svc.CreateTournament(ctx, "Test Cup", format, capacity)
	require.NoError(t, err)

	for i := 0; i < capacity; i++ {
		_, err := svc.RegisterTeam(ctx, id.String(), TeamInput{
			Name:   fmt.Sprintf("Team %d", i+1),
			Tag:    fmt.Sprintf("T%d", i+1),
			Rating: 2000 - i*100,
		})
		require.NoError(t, err)
	}

	require.NoError(t, svc.SeedTournament(ctx, id.String()))
	return id
}

func findMatch(t *testing.T, matches []bracket.Match, side bracket.BracketSide, round, order int) *bracket.Match {
	t.Helper()
	for i := range matches {
		m := &matches[i]
		if m.BracketSide == side && m.RoundNumber == round && m.MatchOrder == order {
			return m
		}
	}
	t.Fatalf("no %s round %d match %d", side, round, order)
	return nil
}

// submitBoth reports the same pair from both sides, confirming the map.
func submitBoth(t *testing.T, svc *MatchService, matchID uuid.UUID, mapIndex, score1, score2 int) *SubmitResult {
	t.Helper()
	ctx := context.Background()

	_, err := svc.SubmitMapScore(ctx, matchID, mapIndex, 1, score1, score2)
	require.NoError(t, err)
	result, err := svc.SubmitMapScore(ctx, matchID, mapIndex, 2, score1, score2)
	require.NoError(t, err)
	return result
}

// winMatch plays two maps won by the given slot, completing the match.
func winMatch(t *testing.T, svc *MatchService, matchID uuid.UUID, winnerSlot int) *SubmitResult {
	t.Helper()

	score1, score2 := 6, 2
	if winnerSlot == 2 {
		score1, score2 = 2, 6
	}

	submitBoth(t, svc, matchID, 0, score1, score2)
	result := submitBoth(t, svc, matchID, 1, score1, score2)
	require.True(t, result.MatchCompleted, "match should complete after two map wins")
	return result
}
