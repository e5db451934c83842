package bracket

import "github.com/google/uuid"

// Team is a registered entry. Rating is only read for seeding order and is
// never touched by the bracket logic.
type Team struct {
	ID           uuid.UUID `db:"id"`
	TournamentID uuid.UUID `db:"tournament_id"`
	Name         string    `db:"name"`
	Tag          string    `db:"tag"`
	Rating       int       `db:"rating"`
	Seed         int       `db:"seed"`
}
