package handler

import (
	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog"

	"github.com/NforcheDivine/youtube-analytics-etl-api/internal/middleware"
)

// internalError logs the cause and answers with a fixed message, so backend
// details never reach clients.
func internalError(c fiber.Ctx, log zerolog.Logger, err error, message string) error {
	log.Error().Err(err).Str("path", c.Path()).Msg(message)
	return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.CodeInternalError, message)
}

func invalidParam(c fiber.Ctx, message string) error {
	return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.CodeInvalidParam, message)
}
