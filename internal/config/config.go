package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultChannelIDs are the source channels queried in live mode when
// YOUTUBE_CHANNEL_IDS is not set.
var DefaultChannelIDs = []string{
	"UC_x5XG1OV2P6uZZ5FSM9Ttw", // Google Developers
	"UCBJycsmduvYEL83R_U4JriQ", // Marques Brownlee
	"UCsBjURrPoezykLs9EqgamOA", // Fireship
	"UC8butISFwT-Wl7EV0hUK0BQ", // freeCodeCamp
}

type Config struct {
	Port        string
	DatabaseURL string
	RedisURL    string
	CacheTTL    time.Duration
	LogLevel    string
	Environment string
	CORSOrigins string

	YouTubeAPIKey    string
	ChannelIDs       []string
	MaxVideos        int
	ExtractDelay     time.Duration
	BackupDir        string
	ConnectRetries   int
	RetryInterval    time.Duration
	PipelineInterval time.Duration
}

// Load reads configuration from the environment. A .env.local or .env file in
// the working directory is loaded first if present; variables already set in
// the environment win.
func Load() *Config {
	loadEnvFiles(".")

	return &Config{
		Port:        getEnv("PORT", "8000"),
		DatabaseURL: getEnv("DATABASE_URL", "sqlite://youtube_analytics.db"),
		RedisURL:    getEnv("REDIS_URL", ""),
		CacheTTL:    getDuration("CACHE_TTL", 5*time.Minute),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		Environment: getEnv("ENVIRONMENT", "development"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),

		YouTubeAPIKey:    os.Getenv("YOUTUBE_API_KEY"),
		ChannelIDs:       getList("YOUTUBE_CHANNEL_IDS", DefaultChannelIDs),
		MaxVideos:        getInt("YOUTUBE_MAX_VIDEOS", 5),
		ExtractDelay:     getDuration("EXTRACT_DELAY", time.Second),
		BackupDir:        getEnv("BACKUP_DIR", "data"),
		ConnectRetries:   getInt("DB_CONNECT_RETRIES", 5),
		RetryInterval:    getDuration("DB_RETRY_INTERVAL", 2*time.Second),
		PipelineInterval: getDuration("PIPELINE_INTERVAL", 0),
	}
}

// LiveMode reports whether upstream credentials are configured.
func (c *Config) LiveMode() bool {
	return c.YouTubeAPIKey != ""
}

func loadEnvFiles(dir string) {
	var files []string
	for _, name := range []string{".env.local", ".env"} {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			files = append(files, p)
		}
	}
	if len(files) == 0 {
		return
	}
	_ = godotenv.Load(files...)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 0 {
		log.Printf("config: invalid %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(strings.TrimSpace(v))
	if err != nil || d < 0 {
		log.Printf("config: invalid %s=%q, using %s", key, v, fallback)
		return fallback
	}
	return d
}

func getList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return append([]string(nil), fallback...)
	}
	var out []string
	seen := make(map[string]bool)
	for _, part := range strings.Split(v, ",") {
		p := strings.TrimSpace(part)
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	if len(out) == 0 {
		return append([]string(nil), fallback...)
	}
	return out
}
