package store

import (
	"context"

	"github.com/AdamBeresnev/cue-stats/internal/match"
)

// MatchStore is an append-only collection of match records. Implementations
// assign ids on Append (1, 2, 3, ... never reused) and serialize writers so
// concurrent appends cannot hand out the same id.
type MatchStore interface {
	Append(ctx context.Context, rec match.Record) (int64, error)
	// All returns every record in insertion order.
	All(ctx context.Context) ([]match.Record, error)
	// AllDesc returns every record newest first.
	AllDesc(ctx context.Context) ([]match.Record, error)
}

var (
	_ MatchStore = (*MemoryMatchStore)(nil)
	_ MatchStore = (*SQLMatchStore)(nil)
	_ MatchStore = (*GormMatchStore)(nil)
)
