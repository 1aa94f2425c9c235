package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"slices"
	"strconv"

	"github.com/AdamBeresnev/cue-stats/internal/match"
	"github.com/AdamBeresnev/cue-stats/internal/stats"
	"github.com/AdamBeresnev/cue-stats/internal/utils"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const (
	MatchesFilename = "match_records.csv"
	StatsFilename   = "player_stats.csv"
	ContentType     = "text/csv; charset=utf-8"
)

var MatchColumns = []string{
	"date", "shop", "player1", "score1", "ace1", "cue1",
	"player2", "score2", "ace2", "cue2",
	"point_diff", "games", "game_type", "winner", "comment",
}

var StatsColumns = []string{"player", "games", "total_score", "wins", "avg_score", "win_rate_pct"}

// MatchesCSV writes one row per record in ascending id order, whatever order
// the records come in. The output starts with a UTF-8 byte order mark so
// spreadsheet tools pick the right encoding.
func MatchesCSV(w io.Writer, records []match.Record) error {
	sorted := slices.Clone(records)
	slices.SortStableFunc(sorted, func(a, b match.Record) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})

	rows := make([][]string, 0, len(sorted))
	for _, m := range sorted {
		rows = append(rows, []string{
			m.Date,
			utils.OrZero(m.Shop),
			m.Player1,
			strconv.Itoa(m.Score1),
			utils.IntOrEmpty(m.Ace1),
			utils.OrZero(m.Cue1),
			m.Player2,
			strconv.Itoa(m.Score2),
			utils.IntOrEmpty(m.Ace2),
			utils.OrZero(m.Cue2),
			strconv.Itoa(m.PointDiff),
			strconv.Itoa(m.Games),
			m.GameType,
			m.WinnerLabel(),
			utils.OrZero(m.Comment),
		})
	}
	return writeCSV(w, MatchColumns, rows)
}

// StatsCSV writes the per-player table in first-seen order.
func StatsCSV(w io.Writer, table *stats.Table) error {
	entries := table.Entries()
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			e.Player,
			strconv.Itoa(e.Games),
			strconv.Itoa(e.TotalScore),
			strconv.Itoa(e.Wins),
			strconv.FormatFloat(e.AvgScore(), 'f', 2, 64),
			strconv.FormatFloat(e.WinRatePct(), 'f', 1, 64),
		})
	}
	return writeCSV(w, StatsColumns, rows)
}

func writeCSV(w io.Writer, header []string, rows [][]string) error {
	bw := transform.NewWriter(w, unicode.UTF8BOM.NewEncoder())

	cw := csv.NewWriter(bw)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write csv rows: %w", err)
	}

	return bw.Close()
}
