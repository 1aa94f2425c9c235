package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"ADDR", "STORE_BACKEND", "SQLITE_PATH", "DATABASE_URL", "SESSION_LIFETIME",
		"ARCHIVE_BUCKET", "ARCHIVE_ENDPOINT", "ARCHIVE_REGION", "ARCHIVE_ACCESS_KEY_ID",
		"ARCHIVE_SECRET_ACCESS_KEY", "ARCHIVE_PREFIX", "CHART_FONT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, BackendSQLite, cfg.StoreBackend)
	assert.Equal(t, "cue_stats.db", cfg.SQLitePath)
	assert.Equal(t, 24*time.Hour, cfg.SessionLifetime)
	assert.Equal(t, "auto", cfg.Archive.Region)
	assert.Equal(t, "snapshots", cfg.Archive.Prefix)
	assert.Empty(t, cfg.ChartFont)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("ADDR", ":9000")
	t.Setenv("STORE_BACKEND", "postgres")
	t.Setenv("DATABASE_URL", "postgres://localhost/cue")
	t.Setenv("SESSION_LIFETIME", "30m")
	t.Setenv("ARCHIVE_BUCKET", "match-archive")
	t.Setenv("CHART_FONT", "/fonts/TakaoGothic.ttf")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Addr)
	assert.Equal(t, BackendPostgres, cfg.StoreBackend)
	assert.Equal(t, "postgres://localhost/cue", cfg.DatabaseURL)
	assert.Equal(t, 30*time.Minute, cfg.SessionLifetime)
	assert.Equal(t, "match-archive", cfg.Archive.Bucket)
	assert.Equal(t, "/fonts/TakaoGothic.ttf", cfg.ChartFont)
}

func TestLoad_Invalid(t *testing.T) {
	testCases := []struct {
		name string
		env  map[string]string
	}{
		{"unknown backend", map[string]string{"STORE_BACKEND": "mongo"}},
		{"postgres without url", map[string]string{"STORE_BACKEND": "postgres"}},
		{"bad lifetime", map[string]string{"SESSION_LIFETIME": "a day"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
