package handler

import "github.com/gofiber/fiber/v3"

// Version is reported by GET /.
const Version = "1.0.0"

// Root handles GET / with a route directory.
func Root(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "YouTube Analytics API is running!",
		"version": Version,
		"endpoints": fiber.Map{
			"channels":       "/channels",
			"channel":        "/channels/{channel_id}",
			"channel_videos": "/channels/{channel_id}/videos",
			"videos":         "/videos",
			"stats":          "/stats",
			"health":         "/health",
			"metrics":        "/metrics",
			"backup":         "/backup/{channels|videos}",
		},
	})
}
