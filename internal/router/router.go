package router

import (
	"github.com/gofiber/fiber/v3"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/rs/zerolog"

	"github.com/NforcheDivine/youtube-analytics-etl-api/internal/backup"
	"github.com/NforcheDivine/youtube-analytics-etl-api/internal/db"
	"github.com/NforcheDivine/youtube-analytics-etl-api/internal/handler"
	"github.com/NforcheDivine/youtube-analytics-etl-api/internal/metrics"
	"github.com/NforcheDivine/youtube-analytics-etl-api/internal/middleware"
	"github.com/NforcheDivine/youtube-analytics-etl-api/internal/repository"
	"github.com/NforcheDivine/youtube-analytics-etl-api/internal/service"
)

// Handlers holds all handler instances needed by the router.
type Handlers struct {
	Health  *handler.HealthHandler
	Channel *handler.ChannelHandler
	Video   *handler.VideoHandler
	Stats   *handler.StatsHandler
	Export  *handler.ExportHandler
}

// NewHandlers wires repositories, cached services and handlers over store.
func NewHandlers(store *db.DB, cache *service.CacheService, bw *backup.Writer, log zerolog.Logger) *Handlers {
	channelRepo := repository.NewChannelRepo(store)
	videoRepo := repository.NewVideoRepo(store)
	statsRepo := repository.NewStatsRepo(store)

	return &Handlers{
		Health:  handler.NewHealthHandler(store, cache.Client(), log),
		Channel: handler.NewChannelHandler(service.NewChannelService(channelRepo, videoRepo, cache), log),
		Video:   handler.NewVideoHandler(service.NewVideoService(videoRepo, cache), log),
		Stats:   handler.NewStatsHandler(service.NewStatsService(statsRepo, cache), log),
		Export:  handler.NewExportHandler(bw, log),
	}
}

// Options configures the middleware stack.
type Options struct {
	CORSOrigins string
	// IPSalt salts client IP hashes in request logs.
	IPSalt string
	Log    zerolog.Logger
}

// Setup configures the middleware stack and all API routes on the given Fiber app.
func Setup(app *fiber.App, h *Handlers, opts Options) {
	// Middleware stack (order matters)
	app.Use(recoverer.New())
	app.Use(metrics.Middleware())
	app.Use(middleware.NewRequestLogger(opts.Log, opts.IPSalt))
	app.Use(middleware.NewCORS(opts.CORSOrigins))

	read := middleware.NewReadRateLimiter().Handler()

	app.Get("/", handler.Root)
	app.Get("/health", h.Health.Check)
	app.Get("/metrics", metrics.Handler())

	// Channel routes
	app.Get("/channels", read, h.Channel.List)
	app.Get("/channels/:channelId", read, h.Channel.Get)
	app.Get("/channels/:channelId/videos", read, h.Channel.Videos)

	// Video routes
	app.Get("/videos", read, h.Video.List)

	// Stats routes
	app.Get("/stats", middleware.NewStatsRateLimiter().Handler(), h.Stats.GetStats)

	// Backup downloads
	app.Get("/backup/:kind", middleware.NewBackupRateLimiter().Handler(), h.Export.Backup)
}
