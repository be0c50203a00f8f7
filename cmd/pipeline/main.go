// Command pipeline runs the extract, transform and load pass once, or on a
// schedule when PIPELINE_INTERVAL is set.
//
// Exit codes: 0 on success, 1 when the run aborted (nothing extracted or the
// backup could not be written), 2 when the run completed but the primary
// store write failed.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	_ "go.uber.org/automaxprocs"

	"github.com/NforcheDivine/youtube-analytics-etl-api/internal/config"
	"github.com/NforcheDivine/youtube-analytics-etl-api/internal/db"
	"github.com/NforcheDivine/youtube-analytics-etl-api/internal/logging"
	"github.com/NforcheDivine/youtube-analytics-etl-api/internal/pipeline"
	"github.com/NforcheDivine/youtube-analytics-etl-api/internal/service"
)

const (
	exitAborted       = 1
	exitPrimaryFailed = 2
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg := config.Load()
	log := logging.Init(cfg.LogLevel, "yta-pipeline")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Error().Err(err).Msg("invalid DATABASE_URL")
		return exitAborted
	}
	defer store.Close()

	// An unreachable store is not fatal: the loader records the primary
	// failure and the backup is still written.
	if err := store.WaitReady(ctx, cfg.ConnectRetries, cfg.RetryInterval, log); err != nil {
		log.Error().Err(err).Msg("database unavailable, continuing with backup only")
	}

	cache := service.NewCacheService(ctx, cfg.RedisURL, cfg.CacheTTL, log)
	defer cache.Close()

	p, err := pipeline.FromConfig(ctx, cfg, store, cache, log)
	if err != nil {
		log.Error().Err(err).Msg("build pipeline")
		return exitAborted
	}

	if cfg.PipelineInterval > 0 {
		pipeline.NewScheduler(p, cfg.PipelineInterval, log).Start(ctx)
		return 0
	}

	summary, err := p.Run(ctx)
	if err != nil {
		if pipeline.IsNoData(err) {
			log.Error().Msg("no data extracted, nothing loaded")
		}
		return exitAborted
	}

	log.Info().
		Str("run_id", summary.RunID).
		Str("mode", summary.Mode).
		Int("channels", summary.Channels).
		Int("videos", summary.Videos).
		Bool("primary_ok", summary.PrimaryOK).
		Strs("backup_files", summary.Outcome.BackupFiles).
		Interface("backup_sha256", summary.Outcome.BackupChecksums).
		Dur("took", summary.Duration).
		Msg("pipeline summary")

	if !summary.PrimaryOK {
		return exitPrimaryFailed
	}
	return 0
}
