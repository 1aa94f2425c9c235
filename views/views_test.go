package views

import (
	"context"
	"strings"
	"testing"

	"github.com/AdamBeresnev/cue-stats/internal/match"
	"github.com/AdamBeresnev/cue-stats/internal/service"
	"github.com/AdamBeresnev/cue-stats/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndex(t *testing.T) {
	var b strings.Builder
	err := Index(&service.FormOptions{Shops: []string{"Corner <Pocket>"}, Players: []string{"Ann"}}).Render(context.Background(), &b)
	require.NoError(t, err)

	html := b.String()
	assert.Contains(t, html, `action="/submit"`)
	assert.Contains(t, html, `<option value="Corner &lt;Pocket&gt;">`)
	assert.Contains(t, html, `<option value="Ann">`)
	assert.Contains(t, html, `name="score2"`)
	assert.Contains(t, html, `<input type="number" name="ace1" min="0">`)
	assert.NotContains(t, html, `name="ace1" min="0" required`)
}

func TestLayout(t *testing.T) {
	var b strings.Builder
	require.NoError(t, layout("<Stats>").Render(context.Background(), &b))

	html := b.String()
	assert.True(t, strings.HasPrefix(html, "<!doctype html>"))
	assert.Contains(t, html, "<title>&lt;Stats&gt;</title>")
	assert.Contains(t, html, `<a href="/stats.csv">Stats CSV</a>`)
}

func TestMatches(t *testing.T) {
	matches := []match.Record{
		{ID: 2, Player1: "<b>A</b>", Player2: "B", Score1: 3, Score2: 3, Outcome: match.OutcomeDraw},
		{ID: 1, Player1: "A", Player2: "B", Score1: 5, Score2: 1, Outcome: match.OutcomePlayer1, Comment: utils.StringOrNil("nice")},
	}

	var b strings.Builder
	require.NoError(t, Matches(matches, "Match saved").Render(context.Background(), &b))

	html := b.String()
	assert.Contains(t, html, "Match saved")
	assert.Contains(t, html, "&lt;b&gt;A&lt;/b&gt;")
	assert.NotContains(t, html, "<b>A</b>")
	assert.Contains(t, html, "<td>"+match.DrawLabel+"</td>")
	assert.Less(t, strings.Index(html, "&lt;b&gt;A"), strings.Index(html, "nice"))
}

func TestMatches_Empty(t *testing.T) {
	var b strings.Builder
	require.NoError(t, Matches(nil, "").Render(context.Background(), &b))
	assert.Contains(t, b.String(), "No matches recorded yet.")
}
