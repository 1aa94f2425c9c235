package store

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/AdamBeresnev/cue-stats/internal/match"
)

type MemoryMatchStore struct {
	mu      sync.RWMutex
	records []match.Record
	lastID  int64
}

func NewMemoryMatchStore() *MemoryMatchStore {
	return &MemoryMatchStore{}
}

func (s *MemoryMatchStore) Append(ctx context.Context, rec match.Record) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastID++
	rec.ID = s.lastID
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	s.records = append(s.records, rec)
	return rec.ID, nil
}

func (s *MemoryMatchStore) All(ctx context.Context) ([]match.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.records), nil
}

func (s *MemoryMatchStore) AllDesc(ctx context.Context) ([]match.Record, error) {
	records, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	slices.Reverse(records)
	return records, nil
}
