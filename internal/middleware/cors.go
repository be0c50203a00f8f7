package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
)

// corsMaxAge is how long browsers may cache a preflight answer, in seconds.
const corsMaxAge = 3600

// NewCORS returns a CORS middleware for the read-only API.
// corsOrigins is a comma-separated origin list; "*" or empty allows any origin.
func NewCORS(corsOrigins string) fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins: parseOrigins(corsOrigins),
		AllowMethods: []string{fiber.MethodGet, fiber.MethodHead},
		AllowHeaders: []string{fiber.HeaderAccept, fiber.HeaderContentType},
		// Clients read these off rate limited responses and backup downloads.
		ExposeHeaders: []string{
			fiber.HeaderRetryAfter,
			fiber.HeaderContentDisposition,
			"X-RateLimit-Limit",
			"X-RateLimit-Remaining",
			"X-RateLimit-Reset",
		},
		MaxAge: corsMaxAge,
	})
}

func parseOrigins(raw string) []string {
	var origins []string
	seen := make(map[string]bool)
	for _, o := range strings.Split(raw, ",") {
		o = strings.TrimSuffix(strings.TrimSpace(o), "/")
		if o == "*" {
			return []string{"*"}
		}
		if o == "" || seen[o] {
			continue
		}
		seen[o] = true
		origins = append(origins, o)
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}
