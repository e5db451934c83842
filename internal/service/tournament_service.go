package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Shadowrun-FPS/tournament-service/internal/bracket"
	"github.com/Shadowrun-FPS/tournament-service/internal/store"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type TournamentService struct {
	db      *sqlx.DB
	store   *store.TournamentStore
	matches *store.MatchStore
	picker  MapPicker
}

func NewTournamentService(db *sqlx.DB, tournaments *store.TournamentStore, matches *store.MatchStore, picker MapPicker) *TournamentService {
	return &TournamentService{db: db, store: tournaments, matches: matches, picker: picker}
}

type TeamInput struct {
	Name   string
	Tag    string
	Rating int
}

type TournamentData struct {
	Tournament  *bracket.Tournament
	Teams       []bracket.Team
	Matches     []bracket.Match
	LiveMatches []bracket.Match
}

func (s *TournamentService) CreateTournament(ctx context.Context, name string, format bracket.TournamentFormat, capacity int) (uuid.UUID, error) {
	if !isPowerOfTwo(capacity) {
		return uuid.Nil, bracket.ErrNotPowerOfTwo
	}
	if format == bracket.DoubleElimination && capacity < 4 {
		return uuid.Nil, fmt.Errorf("double elimination needs at least 4 teams: %w", bracket.ErrWrongTeamCount)
	}
	if format != bracket.SingleElimination && format != bracket.DoubleElimination {
		return uuid.Nil, fmt.Errorf("unknown tournament format %q", format)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return uuid.Nil, err
	}
	defer tx.Rollback()

	tournament := bracket.Tournament{
		ID:       uuid.New(),
		Name:     name,
		Format:   format,
		Capacity: capacity,
		Status:   bracket.TournamentRegistration,
	}

	if err := s.store.CreateTournament(ctx, tx, &tournament); err != nil {
		return uuid.Nil, err
	}

	return tournament.ID, tx.Commit()
}

func (s *TournamentService) RegisterTeam(ctx context.Context, tournamentID string, input TeamInput) (uuid.UUID, error) {
	if input.Rating < 0 {
		return uuid.Nil, fmt.Errorf("rating must be non-negative: %w", bracket.ErrInvalidTeam)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return uuid.Nil, err
	}
	defer tx.Rollback()

	tournament, err := s.store.GetTournamentTx(ctx, tx, tournamentID)
	if errors.Is(err, sql.ErrNoRows) {
		return uuid.Nil, bracket.ErrTournamentNotFound
	}
	if err != nil {
		return uuid.Nil, err
	}

	if tournament.Status != bracket.TournamentRegistration {
		return uuid.Nil, fmt.Errorf("tournament %s is not accepting registrations", tournament.ID)
	}

	count, err := s.store.CountTeamsTx(ctx, tx, tournamentID)
	if err != nil {
		return uuid.Nil, err
	}
	if count >= tournament.Capacity {
		return uuid.Nil, fmt.Errorf("tournament is full: %w", bracket.ErrWrongTeamCount)
	}

	team := bracket.Team{
		ID:           uuid.New(),
		TournamentID: tournament.ID,
		Name:         input.Name,
		Tag:          input.Tag,
		Rating:       input.Rating,
	}

	if err := s.store.CreateTeam(ctx, tx, &team); err != nil {
		return uuid.Nil, err
	}

	return team.ID, tx.Commit()
}

// SeedTournament seeds the registered field, builds the full bracket, and
// launches round 1 with assigned maps. The tournament goes live in the same
// transaction.
func (s *TournamentService) SeedTournament(ctx context.Context, tournamentID string) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	tournament, err := s.store.GetTournamentTx(ctx, tx, tournamentID)
	if errors.Is(err, sql.ErrNoRows) {
		return bracket.ErrTournamentNotFound
	}
	if err != nil {
		return err
	}

	if tournament.Status != bracket.TournamentRegistration {
		return fmt.Errorf("tournament %s has already been seeded", tournament.ID)
	}

	teams, err := s.store.GetTeamsTx(ctx, tx, tournamentID)
	if err != nil {
		return err
	}

	seeded, err := seedTeams(teams, tournament.Capacity)
	if err != nil {
		return err
	}

	if err := s.store.UpdateTeamSeedsTx(ctx, tx, seeded); err != nil {
		return err
	}

	matches, err := buildBracket(tournament.ID, tournament.Format, seedPairs(seeded))
	if err != nil {
		return err
	}

	// Round 1 goes live immediately, everything downstream stays upcoming.
	for i := range matches {
		if matches[i].BracketSide == bracket.WinnersSide && matches[i].RoundNumber == 1 {
			matches[i].Status = bracket.MatchLive
			matches[i].Maps = joinMaps(s.picker.Pick(bracket.MapsPerMatch))
		}
	}

	if err := s.matches.CreateMatches(ctx, tx, matches); err != nil {
		return err
	}

	if err := s.store.UpdateTournamentStatusTx(ctx, tx, tournamentID, bracket.TournamentLive); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *TournamentService) GetTournamentData(ctx context.Context, id string) (*TournamentData, error) {
	tournament, err := s.store.GetTournament(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, bracket.ErrTournamentNotFound
	}
	if err != nil {
		return nil, err
	}

	teams, err := s.store.GetTeams(ctx, id)
	if err != nil {
		return nil, err
	}

	matches, err := s.matches.GetMatches(ctx, id)
	if err != nil {
		return nil, err
	}

	var live []bracket.Match
	for _, m := range matches {
		if m.Status == bracket.MatchLive {
			live = append(live, m)
		}
	}

	return &TournamentData{
		Tournament:  tournament,
		Teams:       teams,
		Matches:     matches,
		LiveMatches: live,
	}, nil
}

func (s *TournamentService) GetTournaments(ctx context.Context) ([]bracket.Tournament, error) {
	return s.store.GetTournaments(ctx)
}
