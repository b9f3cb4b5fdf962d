package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	require.Equal(t, ":8080", cfg.ListenAddr)
	require.Equal(t, "https://catalog.gog.com/v1/catalog", cfg.CatalogURL)
	require.Equal(t, "https://www.gog.com", cfg.StorefrontURL)
	require.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	require.Equal(t, "ggvgm_2x", cfg.ScreenshotFormat)
	require.Equal(t, 5, cfg.MaxScreenshots)
	require.Zero(t, cfg.PopulateLimit)
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, ".env"), []byte("DATABASE_URL=postgres://file\nPOPULATE_LIMIT=3\nLOG_LEVEL=debug\n"), 0o600)
	require.NoError(t, err)

	t.Setenv("POPULATE_LIMIT", "7")
	t.Setenv("HTTP_TIMEOUT", "5s")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	require.Equal(t, "postgres://file", cfg.DatabaseURL)
	require.Equal(t, 7, cfg.PopulateLimit)
	require.Equal(t, 5*time.Second, cfg.HTTPTimeout)
	require.Equal(t, slog.LevelDebug, cfg.SlogLevel())
}

func TestLoadConfigRejectsNegativeLimit(t *testing.T) {
	t.Setenv("POPULATE_LIMIT", "-1")

	_, err := LoadConfig(t.TempDir())
	require.Error(t, err)
}

func TestSlogLevelFallback(t *testing.T) {
	cfg := Config{LogLevel: "chatty"}
	require.Equal(t, slog.LevelInfo, cfg.SlogLevel())
}
