package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/AdamBeresnev/cue-stats/internal/match"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// matchRow is the gorm model for the matches table on postgres
type matchRow struct {
	ID        int64   `gorm:"primaryKey;autoIncrement"`
	Date      string  `gorm:"not null"`
	Shop      *string `gorm:"index"`
	Games     int     `gorm:"not null"`
	Player1   string  `gorm:"not null;index"`
	Player2   string  `gorm:"not null;index"`
	Score1    int     `gorm:"not null"`
	Score2    int     `gorm:"not null"`
	Ace1      *int
	Ace2      *int
	Cue1      *string
	Cue2      *string
	GameType  string `gorm:"not null"`
	Outcome   string `gorm:"type:varchar(16);not null;check:outcome IN ('draw','player1','player2')"`
	PointDiff int    `gorm:"not null"`
	Comment   *string
	CreatedAt time.Time
}

func (matchRow) TableName() string {
	return "matches"
}

func toRow(rec match.Record) matchRow {
	return matchRow{
		Date:      rec.Date,
		Shop:      rec.Shop,
		Games:     rec.Games,
		Player1:   rec.Player1,
		Player2:   rec.Player2,
		Score1:    rec.Score1,
		Score2:    rec.Score2,
		Ace1:      rec.Ace1,
		Ace2:      rec.Ace2,
		Cue1:      rec.Cue1,
		Cue2:      rec.Cue2,
		GameType:  rec.GameType,
		Outcome:   string(rec.Outcome),
		PointDiff: rec.PointDiff,
		Comment:   rec.Comment,
		CreatedAt: rec.CreatedAt,
	}
}

func (r matchRow) toRecord() match.Record {
	return match.Record{
		ID:        r.ID,
		Date:      r.Date,
		Shop:      r.Shop,
		Games:     r.Games,
		Player1:   r.Player1,
		Player2:   r.Player2,
		Score1:    r.Score1,
		Score2:    r.Score2,
		Ace1:      r.Ace1,
		Ace2:      r.Ace2,
		Cue1:      r.Cue1,
		Cue2:      r.Cue2,
		GameType:  r.GameType,
		Outcome:   match.Outcome(r.Outcome),
		PointDiff: r.PointDiff,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
	}
}

// GormMatchStore keeps matches in postgres through gorm. The serial id column
// never reuses values, even for rolled back inserts.
type GormMatchStore struct {
	db *gorm.DB
	mu sync.Mutex
}

// OpenGormMatchStore connects to postgres and makes sure the matches table exists.
func OpenGormMatchStore(dsn string) (*GormMatchStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.AutoMigrate(&matchRow{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return NewGormMatchStore(db), nil
}

func NewGormMatchStore(db *gorm.DB) *GormMatchStore {
	return &GormMatchStore{db: db}
}

func (s *GormMatchStore) Append(ctx context.Context, rec match.Record) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row := toRow(rec)
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return 0, fmt.Errorf("failed to insert match: %w", err)
	}
	return row.ID, nil
}

func (s *GormMatchStore) All(ctx context.Context) ([]match.Record, error) {
	return s.find(ctx, "id asc")
}

func (s *GormMatchStore) AllDesc(ctx context.Context) ([]match.Record, error) {
	return s.find(ctx, "id desc")
}

func (s *GormMatchStore) find(ctx context.Context, order string) ([]match.Record, error) {
	var rows []matchRow
	if err := s.db.WithContext(ctx).Order(order).Find(&rows).Error; err != nil {
		return nil, err
	}

	records := make([]match.Record, 0, len(rows))
	for _, r := range rows {
		records = append(records, r.toRecord())
	}
	return records, nil
}

func (s *GormMatchStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
