package bracket

import (
	"time"

	"github.com/google/uuid"
)

type TournamentStatus string

const (
	TournamentRegistration TournamentStatus = "registration"
	TournamentLive         TournamentStatus = "live"
	TournamentCompleted    TournamentStatus = "completed"
)

type TournamentFormat string

const (
	SingleElimination TournamentFormat = "single"
	DoubleElimination TournamentFormat = "double"
)

type Tournament struct {
	ID        uuid.UUID        `db:"id"`
	Name      string           `db:"name" json:"name"`
	Format    TournamentFormat `db:"format"`
	Capacity  int              `db:"capacity"`
	Status    TournamentStatus `db:"status"`
	CreatedAt time.Time        `db:"created_at"`
}
