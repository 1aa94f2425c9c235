package export

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"testing"

	"github.com/AdamBeresnev/cue-stats/internal/match"
	"github.com/AdamBeresnev/cue-stats/internal/stats"
	"github.com/AdamBeresnev/cue-stats/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var bom = []byte{0xEF, 0xBB, 0xBF}

func parseCSV(t *testing.T, out []byte) [][]string {
	t.Helper()
	require.True(t, bytes.HasPrefix(out, bom), "output should start with a UTF-8 BOM")

	rows, err := csv.NewReader(bytes.NewReader(out[len(bom):])).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestMatchesCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, MatchesCSV(&buf, nil))

	rows := parseCSV(t, buf.Bytes())
	require.Len(t, rows, 1)
	assert.Equal(t, MatchColumns, rows[0])
	assert.Len(t, rows[0], 15)
}

func TestMatchesCSV_RoundTrip(t *testing.T) {
	records := []match.Record{
		{
			ID: 2, Date: "2024-05-02", Games: 3,
			Player1: "B", Player2: "A", Score1: 5, Score2: 5,
			GameType: "8-ball", Outcome: match.OutcomeDraw, PointDiff: 0,
		},
		{
			ID: 1, Date: "2024-05-01", Shop: utils.StringOrNil("Corner, Pocket"), Games: 5,
			Player1: "A", Player2: "B", Score1: 10, Score2: 7,
			Ace1: utils.Ptr(2), Cue1: utils.StringOrNil("Predator"),
			GameType: "9-ball", Outcome: match.OutcomePlayer1, PointDiff: 3,
			Comment: utils.StringOrNil(`said "good game"`),
		},
	}

	var buf bytes.Buffer
	require.NoError(t, MatchesCSV(&buf, records))

	rows := parseCSV(t, buf.Bytes())
	require.Len(t, rows, 3)
	assert.Equal(t, MatchColumns, rows[0])

	assert.Equal(t, []string{
		"2024-05-01", "Corner, Pocket", "A", "10", "2", "Predator",
		"B", "7", "", "",
		"3", "5", "9-ball", "A", `said "good game"`,
	}, rows[1])

	assert.Equal(t, []string{
		"2024-05-02", "", "B", "5", "", "",
		"A", "5", "", "",
		"0", "3", "8-ball", match.DrawLabel, "",
	}, rows[2])

	for _, row := range rows {
		assert.Len(t, row, 15)
	}
}

func TestMatchesCSV_AscendingIDs(t *testing.T) {
	var records []match.Record
	for id := int64(10); id >= 1; id-- {
		records = append(records, match.Record{ID: id, Date: strconv.FormatInt(id, 10), Outcome: match.OutcomeDraw})
	}

	var buf bytes.Buffer
	require.NoError(t, MatchesCSV(&buf, records))

	rows := parseCSV(t, buf.Bytes())
	require.Len(t, rows, 11)
	for i, row := range rows[1:] {
		assert.Equal(t, strconv.Itoa(i+1), row[0])
	}

	// the caller's slice is left alone
	assert.Equal(t, int64(10), records[0].ID)
}

func TestMatchesCSV_QuotesSpecialCharacters(t *testing.T) {
	records := []match.Record{{ID: 1, Player1: `Ann "the shark"`, Player2: "Bo,b", Outcome: match.OutcomeDraw}}

	var buf bytes.Buffer
	require.NoError(t, MatchesCSV(&buf, records))

	assert.Contains(t, buf.String(), `"Ann ""the shark"""`)
	assert.Contains(t, buf.String(), `"Bo,b"`)
	assert.NotContains(t, buf.String(), "null")
	assert.NotContains(t, buf.String(), "<nil>")
}

func TestMatchesCSV_UnicodeNames(t *testing.T) {
	records := []match.Record{{ID: 1, Player1: "山田", Player2: "佐藤", Score1: 4, Score2: 2, Outcome: match.OutcomePlayer1}}

	var buf bytes.Buffer
	require.NoError(t, MatchesCSV(&buf, records))

	rows := parseCSV(t, buf.Bytes())
	require.Len(t, rows, 2)
	assert.Equal(t, "山田", rows[1][2])
	assert.Equal(t, "山田", rows[1][13])
}

func TestStatsCSV(t *testing.T) {
	table := stats.Aggregate([]match.Record{
		{Player1: "A", Player2: "B", Score1: 10, Score2: 7, Outcome: match.OutcomePlayer1},
		{Player1: "B", Player2: "A", Score1: 5, Score2: 5, Outcome: match.OutcomeDraw},
	})

	var buf bytes.Buffer
	require.NoError(t, StatsCSV(&buf, table))

	rows := parseCSV(t, buf.Bytes())
	require.Len(t, rows, 3)
	assert.Equal(t, StatsColumns, rows[0])
	assert.Equal(t, []string{"A", "2", "15", "1", "7.50", "50.0"}, rows[1])
	assert.Equal(t, []string{"B", "2", "12", "0", "6.00", "0.0"}, rows[2])
}

func TestStatsCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, StatsCSV(&buf, stats.Aggregate(nil)))

	rows := parseCSV(t, buf.Bytes())
	require.Len(t, rows, 1)
	assert.Equal(t, StatsColumns, rows[0])
}
