package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"testing"

	"github.com/AdamBeresnev/cue-stats/internal/db"
	"github.com/AdamBeresnev/cue-stats/internal/match"
	"github.com/AdamBeresnev/cue-stats/internal/store"
	"github.com/AdamBeresnev/cue-stats/internal/utils"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates an in-memory SQLite database and applies migrations
func setupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	database, err := sqlx.Connect("sqlite3", "file::memory:")
	require.NoError(t, err, "Failed to connect to in-memory DB")
	database.SetMaxOpenConns(1)

	err = db.RunMigrations(database.DB, "file://../../migrations")
	require.NoError(t, err, "Failed to apply migrations")

	return database
}

func newServices(t *testing.T) map[string]*MatchService {
	database := setupTestDB(t)
	t.Cleanup(func() { database.Close() })

	return map[string]*MatchService{
		"memory": NewMatchService(store.NewMemoryMatchStore()),
		"sqlite": NewMatchService(store.NewSQLMatchStore(database)),
	}
}

func submission(p1, p2 string, s1, s2 int) match.Submission {
	return match.Submission{
		Date:     "2024-05-01",
		Games:    1,
		Player1:  p1,
		Player2:  p2,
		Score1:   s1,
		Score2:   s2,
		GameType: "9-ball",
	}
}

func TestSubmit(t *testing.T) {
	for name, svc := range newServices(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			rec, err := svc.Submit(ctx, submission("A", "B", 10, 7))
			require.NoError(t, err)
			assert.Equal(t, int64(1), rec.ID)
			assert.Equal(t, match.OutcomePlayer1, rec.Outcome)
			assert.Equal(t, 3, rec.PointDiff)

			rec, err = svc.Submit(ctx, submission("B", "A", 5, 5))
			require.NoError(t, err)
			assert.Equal(t, int64(2), rec.ID)
			assert.Equal(t, match.OutcomeDraw, rec.Outcome)

			listed, err := svc.ListMatches(ctx)
			require.NoError(t, err)
			require.Len(t, listed, 2)
			assert.Equal(t, int64(2), listed[0].ID)
			assert.Equal(t, int64(1), listed[1].ID)
		})
	}
}

func TestSubmit_InvalidAppendsNothing(t *testing.T) {
	for name, svc := range newServices(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, err := svc.Submit(ctx, submission("A", "B", -1, 2))
			require.Error(t, err)
			assert.True(t, errors.Is(err, match.ErrInvalidSubmission))

			listed, err := svc.ListMatches(ctx)
			require.NoError(t, err)
			assert.Empty(t, listed)
		})
	}
}

func TestStats(t *testing.T) {
	for name, svc := range newServices(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			_, err := svc.Submit(ctx, submission("A", "B", 10, 7))
			require.NoError(t, err)
			_, err = svc.Submit(ctx, submission("B", "A", 5, 5))
			require.NoError(t, err)

			table, err := svc.Stats(ctx)
			require.NoError(t, err)

			entries := table.Entries()
			require.Len(t, entries, 2)
			assert.Equal(t, "A", entries[0].Player)
			assert.Equal(t, 2, entries[0].Games)
			assert.Equal(t, 15, entries[0].TotalScore)
			assert.Equal(t, 1, entries[0].Wins)
			assert.Equal(t, "B", entries[1].Player)
			assert.Equal(t, 12, entries[1].TotalScore)
			assert.Equal(t, 0, entries[1].Wins)
		})
	}
}

func TestExportMatchesCSV(t *testing.T) {
	for name, svc := range newServices(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			out, err := svc.ExportMatchesCSV(ctx)
			require.NoError(t, err)
			require.True(t, bytes.HasPrefix(out, []byte("\xef\xbb\xbf")))
			rows, err := csv.NewReader(bytes.NewReader(out[3:])).ReadAll()
			require.NoError(t, err)
			assert.Len(t, rows, 1)

			for _, p := range []string{"first", "second", "third"} {
				_, err := svc.Submit(ctx, submission(p, "X", 1, 0))
				require.NoError(t, err)
			}

			out, err = svc.ExportMatchesCSV(ctx)
			require.NoError(t, err)
			rows, err = csv.NewReader(bytes.NewReader(out[3:])).ReadAll()
			require.NoError(t, err)
			require.Len(t, rows, 4)
			assert.Equal(t, "first", rows[1][2])
			assert.Equal(t, "second", rows[2][2])
			assert.Equal(t, "third", rows[3][2])
		})
	}
}

func TestExportStatsCSV(t *testing.T) {
	svc := NewMatchService(store.NewMemoryMatchStore())
	ctx := context.Background()
	_, err := svc.Submit(ctx, submission("A", "B", 4, 2))
	require.NoError(t, err)

	out, err := svc.ExportStatsCSV(ctx)
	require.NoError(t, err)
	rows, err := csv.NewReader(bytes.NewReader(out[3:])).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"A", "1", "4", "1", "4.00", "100.0"}, rows[1])
}

func TestRenderStatsChart(t *testing.T) {
	svc := NewMatchService(store.NewMemoryMatchStore())
	ctx := context.Background()

	empty, err := svc.RenderStatsChart(ctx)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(empty, []byte("\x89PNG")))

	_, err = svc.Submit(ctx, submission("A", "B", 4, 2))
	require.NoError(t, err)

	out, err := svc.RenderStatsChart(ctx)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("\x89PNG")))
}

func TestFormOptions(t *testing.T) {
	svc := NewMatchService(store.NewMemoryMatchStore())
	ctx := context.Background()

	sub := submission("Zoe", "Al", 1, 0)
	sub.Shop = utils.StringOrNil("Westside")
	_, err := svc.Submit(ctx, sub)
	require.NoError(t, err)

	sub = submission("Al", "Max", 1, 0)
	sub.Shop = utils.StringOrNil("Eastside")
	_, err = svc.Submit(ctx, sub)
	require.NoError(t, err)

	_, err = svc.Submit(ctx, submission("Max", "Zoe", 0, 0))
	require.NoError(t, err)

	opts, err := svc.FormOptions(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Eastside", "Westside"}, opts.Shops)
	assert.Equal(t, []string{"Al", "Max", "Zoe"}, opts.Players)
}
