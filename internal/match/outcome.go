package match

// Winner is the resolved result of a match. Name is empty for a draw.
type Winner struct {
	Outcome Outcome
	Name    string
}

func (w Winner) IsDraw() bool {
	return w.Outcome == OutcomeDraw
}

// Resolve derives the winner and the point differential from the two scores.
func Resolve(score1, score2 int, player1, player2 string) (Winner, int) {
	diff := score1 - score2
	if diff < 0 {
		diff = -diff
	}

	switch {
	case score1 > score2:
		return Winner{Outcome: OutcomePlayer1, Name: player1}, diff
	case score2 > score1:
		return Winner{Outcome: OutcomePlayer2, Name: player2}, diff
	default:
		return Winner{Outcome: OutcomeDraw}, diff
	}
}
