package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	_ "go.uber.org/automaxprocs"

	"github.com/NforcheDivine/youtube-analytics-etl-api/internal/backup"
	"github.com/NforcheDivine/youtube-analytics-etl-api/internal/config"
	"github.com/NforcheDivine/youtube-analytics-etl-api/internal/db"
	"github.com/NforcheDivine/youtube-analytics-etl-api/internal/logging"
	"github.com/NforcheDivine/youtube-analytics-etl-api/internal/metrics"
	"github.com/NforcheDivine/youtube-analytics-etl-api/internal/pipeline"
	"github.com/NforcheDivine/youtube-analytics-etl-api/internal/router"
	"github.com/NforcheDivine/youtube-analytics-etl-api/internal/service"
)

func main() {
	cfg := config.Load()
	log := logging.Init(cfg.LogLevel, "yta-api")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid DATABASE_URL")
	}
	defer store.Close()

	// Keep serving when the store is down so /health can report it.
	if err := store.WaitReady(ctx, cfg.ConnectRetries, cfg.RetryInterval, log); err != nil {
		log.Error().Err(err).Msg("database unavailable, serving degraded")
	} else if err := store.EnsureSchema(ctx); err != nil {
		log.Error().Err(err).Msg("ensure schema")
	}

	cache := service.NewCacheService(ctx, cfg.RedisURL, cfg.CacheTTL, log)
	defer cache.Close()

	metrics.Register(store.Pool)

	app := fiber.New(fiber.Config{
		AppName:      "YouTube Analytics API",
		ServerHeader: "yta",
	})
	router.Setup(app,
		router.NewHandlers(store, cache, backup.NewWriter(cfg.BackupDir), log),
		router.Options{CORSOrigins: cfg.CORSOrigins, IPSalt: uuid.NewString(), Log: log},
	)

	var wg sync.WaitGroup
	if cfg.PipelineInterval > 0 {
		p, err := pipeline.FromConfig(ctx, cfg, store, cache, log)
		if err != nil {
			log.Fatal().Err(err).Msg("build pipeline")
		}
		sched := pipeline.NewScheduler(p, cfg.PipelineInterval, log)
		wg.Add(1)
		go func() {
			defer wg.Done()
			sched.Start(ctx)
		}()
		defer sched.Stop()
	}

	go func() {
		<-ctx.Done()
		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("server shutdown")
		}
	}()

	log.Info().Str("port", cfg.Port).Str("env", cfg.Environment).Msg("YouTube Analytics API starting")
	if err := app.Listen(":"+cfg.Port, fiber.ListenConfig{DisableStartupMessage: true}); err != nil && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Msg("server stopped")
		stop()
		wg.Wait()
		os.Exit(1)
	}
	wg.Wait()
}
