package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Pinger is the primary store connectivity check.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type HealthHandler struct {
	db      Pinger
	rdb     *redis.Client
	log     zerolog.Logger
	startAt time.Time
}

// NewHealthHandler builds the health check. rdb may be nil when caching is off.
func NewHealthHandler(db Pinger, rdb *redis.Client, log zerolog.Logger) *HealthHandler {
	return &HealthHandler{
		db:      db,
		rdb:     rdb,
		log:     log,
		startAt: time.Now(),
	}
}

// Check handles GET /health. The status follows the primary store only; the
// cache is reported but never makes the service unhealthy.
func (h *HealthHandler) Check(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 3*time.Second)
	defer cancel()

	uptime := int(time.Since(h.startAt).Seconds())
	cache := checkRedis(ctx, h.rdb)

	if err := h.db.PingContext(ctx); err != nil {
		h.log.Warn().Err(err).Msg("health: database ping failed")
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status":         "unhealthy",
			"database":       "disconnected",
			"error":          "Database connection failed",
			"cache":          cache,
			"uptime_seconds": uptime,
		})
	}

	return c.JSON(fiber.Map{
		"status":         "healthy",
		"database":       "connected",
		"cache":          cache,
		"uptime_seconds": uptime,
	})
}

func checkRedis(ctx context.Context, rdb *redis.Client) string {
	if rdb == nil {
		return "disabled"
	}
	if err := rdb.Ping(ctx).Err(); err != nil {
		return "disconnected"
	}
	return "connected"
}
