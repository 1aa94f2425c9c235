package app

import (
	"fmt"
	"log"

	"github.com/AdamBeresnev/cue-stats/internal/chart"
	"github.com/AdamBeresnev/cue-stats/internal/config"
	"github.com/AdamBeresnev/cue-stats/internal/db"
	"github.com/AdamBeresnev/cue-stats/internal/service"
	"github.com/AdamBeresnev/cue-stats/internal/store"
	"github.com/jmoiron/sqlx"
)

// Backend is the match store picked by configuration. SQL is only set for the
// sqlite backend, where it also holds the session table.
type Backend struct {
	Store store.MatchStore
	SQL   *sqlx.DB
	close func() error
}

func (b *Backend) Close() error {
	if b.close == nil {
		return nil
	}
	return b.close()
}

func OpenBackend(cfg config.Config, migrationsSource string) (*Backend, error) {
	switch cfg.StoreBackend {
	case config.BackendMemory:
		log.Println("Using in-memory match store, data is lost on restart.")
		return &Backend{Store: store.NewMemoryMatchStore()}, nil

	case config.BackendPostgres:
		s, err := store.OpenGormMatchStore(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return &Backend{Store: s, close: s.Close}, nil

	case config.BackendSQLite:
		database, err := db.InitDB(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		if err := db.RunMigrations(database.DB, migrationsSource); err != nil {
			database.Close()
			return nil, err
		}
		return &Backend{Store: store.NewSQLMatchStore(database), SQL: database, close: database.Close}, nil
	}

	return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
}

// MatchService wraps the backend's store, drawing charts with CHART_FONT when
// one is configured.
func (b *Backend) MatchService(cfg config.Config) (*service.MatchService, error) {
	svc := service.NewMatchService(b.Store)
	if cfg.ChartFont == "" {
		return svc, nil
	}

	font, err := chart.LoadFont(cfg.ChartFont)
	if err != nil {
		return nil, err
	}
	return svc.WithChartFont(font), nil
}
