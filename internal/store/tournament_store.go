package store

import (
	"context"

	"github.com/Shadowrun-FPS/tournament-service/internal/bracket"
	"github.com/jmoiron/sqlx"
)

type TournamentStore struct {
	db *sqlx.DB
}

func NewTournamentStore(db *sqlx.DB) *TournamentStore {
	return &TournamentStore{db: db}
}

func (s *TournamentStore) CreateTournament(ctx context.Context, tx *sqlx.Tx, tournament *bracket.Tournament) error {
	_, err := tx.NamedExecContext(ctx, `INSERT INTO tournaments (id, name, format, capacity, status)
        VALUES (:id, :name, :format, :capacity, :status)`, tournament)
	return err
}

func (s *TournamentStore) GetTournament(ctx context.Context, id string) (*bracket.Tournament, error) {
	var tournament bracket.Tournament
	err := s.db.GetContext(ctx, &tournament, "SELECT * FROM tournaments WHERE id = ?", id)
	return &tournament, err
}

func (s *TournamentStore) GetTournamentTx(ctx context.Context, tx *sqlx.Tx, id string) (*bracket.Tournament, error) {
	var tournament bracket.Tournament
	err := tx.GetContext(ctx, &tournament, "SELECT * FROM tournaments WHERE id = ?", id)
	return &tournament, err
}

func (s *TournamentStore) GetTournaments(ctx context.Context) ([]bracket.Tournament, error) {
	var tournaments []bracket.Tournament
	err := s.db.SelectContext(ctx, &tournaments, "SELECT * FROM tournaments ORDER BY created_at DESC")
	return tournaments, err
}

func (s *TournamentStore) UpdateTournamentStatusTx(ctx context.Context, tx *sqlx.Tx, id string, status bracket.TournamentStatus) error {
	_, err := tx.ExecContext(ctx, "UPDATE tournaments SET status = ? WHERE id = ?", status, id)
	return err
}

func (s *TournamentStore) CreateTeam(ctx context.Context, tx *sqlx.Tx, team *bracket.Team) error {
	_, err := tx.NamedExecContext(ctx, `INSERT INTO teams (id, tournament_id, name, tag, rating, seed)
        VALUES (:id, :tournament_id, :name, :tag, :rating, :seed)`, team)
	return err
}

func (s *TournamentStore) GetTeams(ctx context.Context, tournamentID string) ([]bracket.Team, error) {
	var teams []bracket.Team
	err := s.db.SelectContext(ctx, &teams, "SELECT * FROM teams WHERE tournament_id = ? ORDER BY seed ASC, rating DESC", tournamentID)
	return teams, err
}

func (s *TournamentStore) GetTeamsTx(ctx context.Context, tx *sqlx.Tx, tournamentID string) ([]bracket.Team, error) {
	// rowid order preserves registration order, which seeding uses as the
	// tie-break for equal ratings.
	var teams []bracket.Team
	err := tx.SelectContext(ctx, &teams, "SELECT * FROM teams WHERE tournament_id = ? ORDER BY rowid ASC", tournamentID)
	return teams, err
}

func (s *TournamentStore) CountTeamsTx(ctx context.Context, tx *sqlx.Tx, tournamentID string) (int, error) {
	var count int
	err := tx.GetContext(ctx, &count, "SELECT COUNT(*) FROM teams WHERE tournament_id = ?", tournamentID)
	return count, err
}

func (s *TournamentStore) UpdateTeamSeedsTx(ctx context.Context, tx *sqlx.Tx, teams []bracket.Team) error {
	for i := range teams {
		if _, err := tx.NamedExecContext(ctx, "UPDATE teams SET seed = :seed WHERE id = :id", &teams[i]); err != nil {
			return err
		}
	}
	return nil
}
