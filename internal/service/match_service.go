package service

import (
	"bytes"
	"context"
	"fmt"
	"sort"

	"github.com/AdamBeresnev/cue-stats/internal/chart"
	"github.com/AdamBeresnev/cue-stats/internal/export"
	"github.com/AdamBeresnev/cue-stats/internal/match"
	"github.com/AdamBeresnev/cue-stats/internal/stats"
	"github.com/AdamBeresnev/cue-stats/internal/store"
	"github.com/golang/freetype/truetype"
)

type MatchService struct {
	store     store.MatchStore
	chartFont *truetype.Font
}

func NewMatchService(store store.MatchStore) *MatchService {
	return &MatchService{store: store}
}

// WithChartFont sets the font the stats chart is drawn with.
func (s *MatchService) WithChartFont(font *truetype.Font) *MatchService {
	s.chartFont = font
	return s
}

// Submit validates the submission and appends the resulting record. Nothing is
// written when validation fails.
func (s *MatchService) Submit(ctx context.Context, sub match.Submission) (match.Record, error) {
	rec, err := match.NewRecord(sub)
	if err != nil {
		return match.Record{}, err
	}

	id, err := s.store.Append(ctx, rec)
	if err != nil {
		return match.Record{}, fmt.Errorf("failed to store match: %w", err)
	}
	rec.ID = id
	return rec, nil
}

// ListMatches returns every match newest first
func (s *MatchService) ListMatches(ctx context.Context) ([]match.Record, error) {
	return s.store.AllDesc(ctx)
}

func (s *MatchService) Stats(ctx context.Context) (*stats.Table, error) {
	records, err := s.store.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load matches: %w", err)
	}
	return stats.Aggregate(records), nil
}

func (s *MatchService) ExportMatchesCSV(ctx context.Context) ([]byte, error) {
	records, err := s.store.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load matches: %w", err)
	}

	var buf bytes.Buffer
	if err := export.MatchesCSV(&buf, records); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *MatchService) ExportStatsCSV(ctx context.Context) ([]byte, error) {
	table, err := s.Stats(ctx)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := export.StatsCSV(&buf, table); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *MatchService) RenderStatsChart(ctx context.Context) ([]byte, error) {
	table, err := s.Stats(ctx)
	if err != nil {
		return nil, err
	}
	return chart.Render(table, s.chartFont)
}

// FormOptions are the known venues and players offered as suggestions on the
// submission form.
type FormOptions struct {
	Shops   []string
	Players []string
}

func (s *MatchService) FormOptions(ctx context.Context) (*FormOptions, error) {
	records, err := s.store.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load matches: %w", err)
	}

	shops := make(map[string]struct{})
	players := make(map[string]struct{})
	for _, r := range records {
		if r.Shop != nil && *r.Shop != "" {
			shops[*r.Shop] = struct{}{}
		}
		players[r.Player1] = struct{}{}
		players[r.Player2] = struct{}{}
	}

	return &FormOptions{
		Shops:   sortedKeys(shops),
		Players: sortedKeys(players),
	}, nil
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
