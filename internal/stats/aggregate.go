package stats

import "github.com/AdamBeresnev/cue-stats/internal/match"

// Entry holds one player's totals across every match they appear in.
type Entry struct {
	Player     string
	Games      int
	TotalScore int
	Wins       int
}

// Games is at least 1 for any entry produced by Aggregate.
func (e Entry) AvgScore() float64 {
	if e.Games == 0 {
		return 0
	}
	return float64(e.TotalScore) / float64(e.Games)
}

func (e Entry) WinRatePct() float64 {
	if e.Games == 0 {
		return 0
	}
	return 100 * float64(e.Wins) / float64(e.Games)
}

// Table is the per-player statistics keyed by name. Entries keep the order in
// which players were first seen, which is also the chart's x-axis order.
type Table struct {
	entries []Entry
	index   map[string]int
}

// Aggregate builds a fresh table from the records. Each record counts as two
// independent observations, one per slot.
func Aggregate(records []match.Record) *Table {
	t := &Table{index: make(map[string]int)}

	for _, r := range records {
		t.observe(r.Player1, r.Score1, r.WonBy(1))
		t.observe(r.Player2, r.Score2, r.WonBy(2))
	}
	return t
}

func (t *Table) observe(player string, score int, won bool) {
	i, ok := t.index[player]
	if !ok {
		i = len(t.entries)
		t.index[player] = i
		t.entries = append(t.entries, Entry{Player: player})
	}

	e := &t.entries[i]
	e.Games++
	e.TotalScore += score
	if won {
		e.Wins++
	}
}

// Entries returns a copy of the entries in first-seen order.
func (t *Table) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

func (t *Table) Get(player string) (Entry, bool) {
	i, ok := t.index[player]
	if !ok {
		return Entry{}, false
	}
	return t.entries[i], true
}

func (t *Table) Len() int {
	return len(t.entries)
}
