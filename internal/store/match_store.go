package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Shadowrun-FPS/tournament-service/internal/bracket"
	"github.com/jmoiron/sqlx"
)

type MatchStore struct {
	db *sqlx.DB
}

func NewMatchStore(db *sqlx.DB) *MatchStore {
	return &MatchStore{db: db}
}

func (s *MatchStore) CreateMatches(ctx context.Context, tx *sqlx.Tx, matches []bracket.Match) error {
	if len(matches) == 0 {
		return nil
	}
	_, err := tx.NamedExecContext(ctx, `INSERT INTO matches (id, tournament_id, bracket_side, round_number, match_order,
        team_1_id, team_2_id, map_wins_1, map_wins_2, status,
        winner_next_match_id, winner_next_slot, loser_next_match_id, loser_next_slot, winner_slot, maps, version)
        VALUES (:id, :tournament_id, :bracket_side, :round_number, :match_order,
        :team_1_id, :team_2_id, :map_wins_1, :map_wins_2, :status,
        :winner_next_match_id, :winner_next_slot, :loser_next_match_id, :loser_next_slot, :winner_slot, :maps, :version)`, matches)
	return err
}

func (s *MatchStore) GetMatch(ctx context.Context, id string) (*bracket.Match, error) {
	var match bracket.Match
	err := s.db.GetContext(ctx, &match, "SELECT * FROM matches WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, bracket.ErrMatchNotFound
	}
	return &match, err
}

func (s *MatchStore) GetMatchTx(ctx context.Context, tx *sqlx.Tx, id string) (*bracket.Match, error) {
	var match bracket.Match
	err := tx.GetContext(ctx, &match, "SELECT * FROM matches WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, bracket.ErrMatchNotFound
	}
	return &match, err
}

func (s *MatchStore) GetMatches(ctx context.Context, tournamentID string) ([]bracket.Match, error) {
	var matches []bracket.Match
	err := s.db.SelectContext(ctx, &matches, `SELECT * FROM matches WHERE tournament_id = ?
        ORDER BY bracket_side ASC, round_number ASC, match_order ASC`, tournamentID)
	return matches, err
}

func (s *MatchStore) GetRoundMatchesTx(ctx context.Context, tx *sqlx.Tx, tournamentID string, side bracket.BracketSide, round int) ([]bracket.Match, error) {
	var matches []bracket.Match
	err := tx.SelectContext(ctx, &matches, `SELECT * FROM matches WHERE tournament_id = ? AND bracket_side = ? AND round_number = ?
        ORDER BY match_order ASC`, tournamentID, side, round)
	return matches, err
}

// UpdateMatch writes the match back conditioned on the version it was read
// at. A stale version loses with ErrVersionConflict; on success the
// in-memory version is bumped to mirror the row.
func (s *MatchStore) UpdateMatch(ctx context.Context, tx *sqlx.Tx, match *bracket.Match) error {
	res, err := tx.NamedExecContext(ctx, `UPDATE matches SET
        team_1_id = :team_1_id, team_2_id = :team_2_id,
        map_wins_1 = :map_wins_1, map_wins_2 = :map_wins_2,
        status = :status, winner_slot = :winner_slot, maps = :maps,
        version = version + 1
        WHERE id = :id AND version = :version`, match)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return bracket.ErrVersionConflict
	}
	match.Version++
	return nil
}

func (s *MatchStore) CreateMapScore(ctx context.Context, tx *sqlx.Tx, score *bracket.MapScore) error {
	_, err := tx.NamedExecContext(ctx, `INSERT INTO map_scores (id, match_id, map_index, map_name,
        submitted_1, team_1_score_1, team_1_score_2,
        submitted_2, team_2_score_1, team_2_score_2,
        final_score_1, final_score_2, winner, mismatch)
        VALUES (:id, :match_id, :map_index, :map_name,
        :submitted_1, :team_1_score_1, :team_1_score_2,
        :submitted_2, :team_2_score_1, :team_2_score_2,
        :final_score_1, :final_score_2, :winner, :mismatch)`, score)
	return err
}

func (s *MatchStore) UpdateMapScore(ctx context.Context, tx *sqlx.Tx, score *bracket.MapScore) error {
	_, err := tx.NamedExecContext(ctx, `UPDATE map_scores SET
        submitted_1 = :submitted_1, team_1_score_1 = :team_1_score_1, team_1_score_2 = :team_1_score_2,
        submitted_2 = :submitted_2, team_2_score_1 = :team_2_score_1, team_2_score_2 = :team_2_score_2,
        final_score_1 = :final_score_1, final_score_2 = :final_score_2,
        winner = :winner, mismatch = :mismatch
        WHERE id = :id`, score)
	return err
}

// GetMapScoreTx returns nil without error when no submission exists yet for
// the map index.
func (s *MatchStore) GetMapScoreTx(ctx context.Context, tx *sqlx.Tx, matchID string, mapIndex int) (*bracket.MapScore, error) {
	var score bracket.MapScore
	err := tx.GetContext(ctx, &score, "SELECT * FROM map_scores WHERE match_id = ? AND map_index = ?", matchID, mapIndex)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &score, nil
}

func (s *MatchStore) GetMapScores(ctx context.Context, matchID string) ([]bracket.MapScore, error) {
	var scores []bracket.MapScore
	err := s.db.SelectContext(ctx, &scores, "SELECT * FROM map_scores WHERE match_id = ? ORDER BY map_index ASC", matchID)
	return scores, err
}
