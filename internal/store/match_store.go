package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/AdamBeresnev/cue-stats/internal/match"
	"github.com/jmoiron/sqlx"
)

const (
	insertMatchQuery = `
		INSERT INTO matches (date, shop, games, player1, player2, score1, score2, ace1, ace2,
			cue1, cue2, game_type, outcome, point_diff, comment, created_at)
		VALUES (:date, :shop, :games, :player1, :player2, :score1, :score2, :ace1, :ace2,
			:cue1, :cue2, :game_type, :outcome, :point_diff, :comment, :created_at)
	`
	selectMatchesAscQuery  = "SELECT * FROM matches ORDER BY id ASC"
	selectMatchesDescQuery = "SELECT * FROM matches ORDER BY id DESC"
)

// SQLMatchStore keeps matches in sqlite. The AUTOINCREMENT primary key makes
// sure ids are never handed out twice.
type SQLMatchStore struct {
	db *sqlx.DB
	mu sync.Mutex
}

func NewSQLMatchStore(db *sqlx.DB) *SQLMatchStore {
	return &SQLMatchStore{db: db}
}

func (s *SQLMatchStore) Append(ctx context.Context, rec match.Record) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	res, err := s.db.NamedExecContext(ctx, insertMatchQuery, rec)
	if err != nil {
		return 0, fmt.Errorf("failed to insert match: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read match id: %w", err)
	}
	return id, nil
}

func (s *SQLMatchStore) All(ctx context.Context) ([]match.Record, error) {
	var records []match.Record
	err := s.db.SelectContext(ctx, &records, selectMatchesAscQuery)
	return records, err
}

func (s *SQLMatchStore) AllDesc(ctx context.Context) ([]match.Record, error) {
	var records []match.Record
	err := s.db.SelectContext(ctx, &records, selectMatchesDescQuery)
	return records, err
}
