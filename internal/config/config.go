package config

import (
	"fmt"
	"os"
	"time"
)

type StoreBackend string

const (
	BackendSQLite   StoreBackend = "sqlite"
	BackendMemory   StoreBackend = "memory"
	BackendPostgres StoreBackend = "postgres"
)

type Config struct {
	Addr            string
	StoreBackend    StoreBackend
	SQLitePath      string
	DatabaseURL     string
	SessionLifetime time.Duration
	// ChartFont is an optional TrueType font file for the stats chart
	ChartFont string
	Archive   ArchiveConfig
}

// ArchiveConfig points at an S3 compatible bucket (R2, MinIO, S3 itself)
type ArchiveConfig struct {
	Bucket          string
	Endpoint        string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Prefix          string
}

// Load reads the configuration from the environment. Call godotenv.Load first
// if a .env file should be picked up.
func Load() (Config, error) {
	cfg := Config{
		Addr:         getenv("ADDR", ":8080"),
		StoreBackend: StoreBackend(getenv("STORE_BACKEND", string(BackendSQLite))),
		SQLitePath:   getenv("SQLITE_PATH", "cue_stats.db"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		ChartFont:    os.Getenv("CHART_FONT"),
		Archive: ArchiveConfig{
			Bucket:          os.Getenv("ARCHIVE_BUCKET"),
			Endpoint:        os.Getenv("ARCHIVE_ENDPOINT"),
			Region:          getenv("ARCHIVE_REGION", "auto"),
			AccessKeyID:     os.Getenv("ARCHIVE_ACCESS_KEY_ID"),
			SecretAccessKey: os.Getenv("ARCHIVE_SECRET_ACCESS_KEY"),
			Prefix:          getenv("ARCHIVE_PREFIX", "snapshots"),
		},
	}

	lifetime, err := time.ParseDuration(getenv("SESSION_LIFETIME", "24h"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid SESSION_LIFETIME: %w", err)
	}
	cfg.SessionLifetime = lifetime

	switch cfg.StoreBackend {
	case BackendSQLite, BackendMemory:
	case BackendPostgres:
		if cfg.DatabaseURL == "" {
			return Config{}, fmt.Errorf("DATABASE_URL is required for the %s backend", BackendPostgres)
		}
	default:
		return Config{}, fmt.Errorf("unknown STORE_BACKEND %q", cfg.StoreBackend)
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
