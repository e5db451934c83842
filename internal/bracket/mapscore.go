package bracket

import "github.com/google/uuid"

// MapScore tracks the dual-submission state for one map of a match. Each
// side reports the full score pair independently; the map only confirms when
// both pairs are identical.
type MapScore struct {
	ID       uuid.UUID `db:"id"`
	MatchID  uuid.UUID `db:"match_id"`
	MapIndex int       `db:"map_index"`
	MapName  string    `db:"map_name"`

	Submitted1  bool `db:"submitted_1"`
	Team1Score1 int  `db:"team_1_score_1"`
	Team1Score2 int  `db:"team_1_score_2"`

	Submitted2  bool `db:"submitted_2"`
	Team2Score1 int  `db:"team_2_score_1"`
	Team2Score2 int  `db:"team_2_score_2"`

	FinalScore1 *int `db:"final_score_1"`
	FinalScore2 *int `db:"final_score_2"`
	Winner      *int `db:"winner"`

	Mismatch bool `db:"mismatch"`
}

func (ms *MapScore) Confirmed() bool {
	return ms.Winner != nil
}

// SubmissionFor returns the given side's pending score pair.
func (ms *MapScore) SubmissionFor(slot int) (int, int, bool) {
	if slot == 1 {
		return ms.Team1Score1, ms.Team1Score2, ms.Submitted1
	}
	return ms.Team2Score1, ms.Team2Score2, ms.Submitted2
}
