package match

import "time"

// Outcome is stored separately from the player names so that a player whose
// name happens to read like a draw can never be mistaken for one.
type Outcome string

const (
	OutcomeDraw    Outcome = "draw"
	OutcomePlayer1 Outcome = "player1"
	OutcomePlayer2 Outcome = "player2"
)

// DrawLabel is what listings and exports show in the winner column of a draw.
const DrawLabel = "Draw"

type Record struct {
	ID    int64   `db:"id"`
	Date  string  `db:"date"`
	Shop  *string `db:"shop"`
	Games int     `db:"games"`

	Player1 string  `db:"player1"`
	Player2 string  `db:"player2"`
	Score1  int     `db:"score1"`
	Score2  int     `db:"score2"`
	Ace1    *int    `db:"ace1"`
	Ace2    *int    `db:"ace2"`
	Cue1    *string `db:"cue1"`
	Cue2    *string `db:"cue2"`

	GameType  string  `db:"game_type"`
	Outcome   Outcome `db:"outcome"`
	PointDiff int     `db:"point_diff"`
	Comment   *string `db:"comment"`

	CreatedAt time.Time `db:"created_at"`
}

// Winner returns the winning player's name, or false for a draw.
func (r Record) Winner() (string, bool) {
	switch r.Outcome {
	case OutcomePlayer1:
		return r.Player1, true
	case OutcomePlayer2:
		return r.Player2, true
	}
	return "", false
}

func (r Record) WinnerLabel() string {
	if name, ok := r.Winner(); ok {
		return name
	}
	return DrawLabel
}

// WonBy reports whether the player in the given slot (1 or 2) won the match.
func (r Record) WonBy(slot int) bool {
	return (slot == 1 && r.Outcome == OutcomePlayer1) || (slot == 2 && r.Outcome == OutcomePlayer2)
}
