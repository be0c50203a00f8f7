package handler

import (
	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog"

	"github.com/NforcheDivine/youtube-analytics-etl-api/internal/middleware"
	"github.com/NforcheDivine/youtube-analytics-etl-api/internal/model"
	"github.com/NforcheDivine/youtube-analytics-etl-api/internal/service"
)

type VideoHandler struct {
	svc *service.VideoService
	log zerolog.Logger
}

func NewVideoHandler(svc *service.VideoService, log zerolog.Logger) *VideoHandler {
	return &VideoHandler{svc: svc, log: log}
}

// List handles GET /videos?limit=&min_views=&sort_by=
func (h *VideoHandler) List(c fiber.Ctx) error {
	limit, errMsg := middleware.ParseLimit(c.Query("limit"), model.DefaultLimit, model.MaxVideoLimit)
	if errMsg != "" {
		return invalidParam(c, errMsg)
	}
	minViews, errMsg := middleware.ParseMinViews(c.Query("min_views"))
	if errMsg != "" {
		return invalidParam(c, errMsg)
	}
	sortBy, errMsg := middleware.ParseVideoSort(c.Query("sort_by"))
	if errMsg != "" {
		return invalidParam(c, errMsg)
	}

	resp, err := h.svc.List(c.Context(), model.VideoFilter{Limit: limit, MinViews: minViews, SortBy: sortBy})
	if err != nil {
		return internalError(c, h.log, err, "Failed to list videos")
	}
	return c.JSON(resp)
}
