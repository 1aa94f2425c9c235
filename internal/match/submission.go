package match

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/AdamBeresnev/cue-stats/internal/utils"
)

var ErrInvalidSubmission = errors.New("invalid match submission")

type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidSubmission
}

// Submission is the typed field set a client sends for one match, before the
// outcome has been derived.
type Submission struct {
	Date     string
	Shop     *string
	Games    int
	Player1  string
	Player2  string
	Score1   int
	Score2   int
	Ace1     *int
	Ace2     *int
	Cue1     *string
	Cue2     *string
	GameType string
	Comment  *string
}

// ParseSubmission reads a submitted form. Required fields must be present (player
// names may be empty strings), and scores and game counts must be non-negative
// integers.
func ParseSubmission(form url.Values) (Submission, error) {
	var s Submission
	var err error

	for _, field := range []string{"date", "games", "player1", "player2", "score1", "score2", "game_type"} {
		if !form.Has(field) {
			return Submission{}, &ValidationError{Field: field, Reason: "is required"}
		}
	}

	s.Date = form.Get("date")
	s.Player1 = form.Get("player1")
	s.Player2 = form.Get("player2")
	s.GameType = form.Get("game_type")

	if s.Games, err = parseCount(form, "games"); err != nil {
		return Submission{}, err
	}
	if s.Score1, err = parseCount(form, "score1"); err != nil {
		return Submission{}, err
	}
	if s.Score2, err = parseCount(form, "score2"); err != nil {
		return Submission{}, err
	}
	if s.Ace1, err = parseOptionalCount(form, "ace1"); err != nil {
		return Submission{}, err
	}
	if s.Ace2, err = parseOptionalCount(form, "ace2"); err != nil {
		return Submission{}, err
	}

	s.Shop = utils.StringOrNil(form.Get("shop"))
	s.Cue1 = utils.StringOrNil(form.Get("cue1"))
	s.Cue2 = utils.StringOrNil(form.Get("cue2"))
	s.Comment = utils.StringOrNil(form.Get("comment"))

	return s, nil
}

// NewRecord validates the submission and builds a record with its derived
// fields filled in. The id is left for the store to assign.
func NewRecord(s Submission) (Record, error) {
	checks := []struct {
		field string
		value *int
	}{
		{"games", &s.Games},
		{"score1", &s.Score1},
		{"score2", &s.Score2},
		{"ace1", s.Ace1},
		{"ace2", s.Ace2},
	}
	for _, c := range checks {
		if c.value != nil && *c.value < 0 {
			return Record{}, &ValidationError{Field: c.field, Reason: "must not be negative"}
		}
	}

	winner, diff := Resolve(s.Score1, s.Score2, s.Player1, s.Player2)

	return Record{
		Date:      s.Date,
		Shop:      s.Shop,
		Games:     s.Games,
		Player1:   s.Player1,
		Player2:   s.Player2,
		Score1:    s.Score1,
		Score2:    s.Score2,
		Ace1:      s.Ace1,
		Ace2:      s.Ace2,
		Cue1:      s.Cue1,
		Cue2:      s.Cue2,
		GameType:  s.GameType,
		Outcome:   winner.Outcome,
		PointDiff: diff,
		Comment:   s.Comment,
	}, nil
}

func parseCount(form url.Values, field string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(form.Get(field)))
	if err != nil {
		return 0, &ValidationError{Field: field, Reason: "must be an integer"}
	}
	if n < 0 {
		return 0, &ValidationError{Field: field, Reason: "must not be negative"}
	}
	return n, nil
}

// Blank optional counts are treated as not recorded.
func parseOptionalCount(form url.Values, field string) (*int, error) {
	if strings.TrimSpace(form.Get(field)) == "" {
		return nil, nil
	}
	n, err := parseCount(form, field)
	if err != nil {
		return nil, err
	}
	return &n, nil
}
