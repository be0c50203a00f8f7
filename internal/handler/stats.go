package handler

import (
	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog"

	"github.com/NforcheDivine/youtube-analytics-etl-api/internal/service"
)

type StatsHandler struct {
	svc *service.StatsService
	log zerolog.Logger
}

func NewStatsHandler(svc *service.StatsService, log zerolog.Logger) *StatsHandler {
	return &StatsHandler{svc: svc, log: log}
}

// GetStats handles GET /stats
func (h *StatsHandler) GetStats(c fiber.Ctx) error {
	stats, err := h.svc.Get(c.Context())
	if err != nil {
		return internalError(c, h.log, err, "Failed to fetch statistics")
	}
	return c.JSON(stats)
}
