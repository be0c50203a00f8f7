package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, k := range []string{"PORT", "DATABASE_URL", "YOUTUBE_API_KEY", "YOUTUBE_CHANNEL_IDS", "EXTRACT_DELAY", "PIPELINE_INTERVAL"} {
		t.Setenv(k, "")
	}

	cfg := Load()
	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, "sqlite://youtube_analytics.db", cfg.DatabaseURL)
	assert.Equal(t, DefaultChannelIDs, cfg.ChannelIDs)
	assert.Equal(t, time.Second, cfg.ExtractDelay)
	assert.Equal(t, time.Duration(0), cfg.PipelineInterval)
	assert.False(t, cfg.LiveMode())
}

func TestLoad_Overrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("YOUTUBE_API_KEY", "key")
	t.Setenv("YOUTUBE_CHANNEL_IDS", " UCa , ,UCb ")
	t.Setenv("YOUTUBE_MAX_VIDEOS", "12")
	t.Setenv("EXTRACT_DELAY", "250ms")

	cfg := Load()
	assert.True(t, cfg.LiveMode())
	assert.Equal(t, []string{"UCa", "UCb"}, cfg.ChannelIDs)
	assert.Equal(t, 12, cfg.MaxVideos)
	assert.Equal(t, 250*time.Millisecond, cfg.ExtractDelay)
}

func TestLoad_ChannelIDsDeduplicated(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("YOUTUBE_CHANNEL_IDS", "UCa,UCb, UCa,UCb,UCc")

	cfg := Load()
	assert.Equal(t, []string{"UCa", "UCb", "UCc"}, cfg.ChannelIDs)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("YOUTUBE_MAX_VIDEOS", "lots")
	t.Setenv("CACHE_TTL", "-5m")

	cfg := Load()
	assert.Equal(t, 5, cfg.MaxVideos)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
}

func TestLoad_DotEnvDoesNotOverrideEnvironment(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("BACKUP_DIR=from-file\nPORT=9999\n"), 0o600))
	t.Setenv("PORT", "7000")
	t.Setenv("BACKUP_DIR", "")
	os.Unsetenv("BACKUP_DIR")

	cfg := Load()
	assert.Equal(t, "7000", cfg.Port)
	assert.Equal(t, "from-file", cfg.BackupDir)
}
