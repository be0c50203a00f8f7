package handler

import (
	"database/sql"
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog"

	"github.com/NforcheDivine/youtube-analytics-etl-api/internal/middleware"
	"github.com/NforcheDivine/youtube-analytics-etl-api/internal/model"
	"github.com/NforcheDivine/youtube-analytics-etl-api/internal/service"
)

type ChannelHandler struct {
	svc *service.ChannelService
	log zerolog.Logger
}

func NewChannelHandler(svc *service.ChannelService, log zerolog.Logger) *ChannelHandler {
	return &ChannelHandler{svc: svc, log: log}
}

// List handles GET /channels?limit=&sort_by=
func (h *ChannelHandler) List(c fiber.Ctx) error {
	limit, errMsg := middleware.ParseLimit(c.Query("limit"), model.DefaultLimit, model.MaxChannelLimit)
	if errMsg != "" {
		return invalidParam(c, errMsg)
	}
	sortBy, errMsg := middleware.ParseChannelSort(c.Query("sort_by"))
	if errMsg != "" {
		return invalidParam(c, errMsg)
	}

	resp, err := h.svc.List(c.Context(), sortBy, limit)
	if err != nil {
		return internalError(c, h.log, err, "Failed to list channels")
	}
	return c.JSON(resp)
}

// Get handles GET /channels/:channelId
func (h *ChannelHandler) Get(c fiber.Ctx) error {
	channelID, errMsg := middleware.ValidateChannelID(c.Params("channelId"))
	if errMsg != "" {
		return invalidParam(c, errMsg)
	}

	ch, err := h.svc.Get(c.Context(), channelID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, middleware.CodeNotFound, "Channel not found")
		}
		return internalError(c, h.log, err, "Failed to lookup channel")
	}
	return c.JSON(ch)
}

// Videos handles GET /channels/:channelId/videos?limit=
func (h *ChannelHandler) Videos(c fiber.Ctx) error {
	channelID, errMsg := middleware.ValidateChannelID(c.Params("channelId"))
	if errMsg != "" {
		return invalidParam(c, errMsg)
	}
	limit, errMsg := middleware.ParseLimit(c.Query("limit"), model.DefaultLimit, model.MaxChannelVideosLimit)
	if errMsg != "" {
		return invalidParam(c, errMsg)
	}

	resp, err := h.svc.ListVideos(c.Context(), channelID, limit)
	if err != nil {
		return internalError(c, h.log, err, "Failed to list channel videos")
	}
	return c.JSON(resp)
}
