package middleware

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog"

	"github.com/NforcheDivine/youtube-analytics-etl-api/pkg/hash"
)

// sanitizePath replaces channel IDs and backup kinds with placeholders so
// log lines group by route.
func sanitizePath(path string) string {
	parts := strings.Split(path, "/")
	for i := range parts {
		if i == 0 {
			continue
		}
		switch parts[i-1] {
		case "channels":
			parts[i] = ":channel_id"
		case "backup":
			parts[i] = ":kind"
		}
	}
	return strings.Join(parts, "/")
}

// NewRequestLogger logs each request as structured JSON. Client IPs are
// salted and hashed, never logged raw.
func NewRequestLogger(log zerolog.Logger, ipSalt string) fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		duration := time.Since(start)
		status := c.Response().StatusCode()

		evt := log.Info()
		if status >= 500 {
			evt = log.Error()
		} else if status >= 400 {
			evt = log.Warn()
		}

		evt.
			Str("method", c.Method()).
			Str("path", sanitizePath(c.Path())).
			Int("status", status).
			Dur("duration_ms", duration).
			Str("ip_hash", hash.ShortIP(c.IP(), ipSalt)).
			Int("bytes_sent", len(c.Response().Body())).
			Msg("request")

		return err
	}
}
