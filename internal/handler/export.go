package handler

import (
	"errors"
	"io/fs"
	"os"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog"

	"github.com/NforcheDivine/youtube-analytics-etl-api/internal/backup"
	"github.com/NforcheDivine/youtube-analytics-etl-api/internal/middleware"
)

type ExportHandler struct {
	backup *backup.Writer
	log    zerolog.Logger
}

func NewExportHandler(w *backup.Writer, log zerolog.Logger) *ExportHandler {
	return &ExportHandler{backup: w, log: log}
}

// Backup handles GET /backup/:kind
// Serves the latest CSV backup written by the pipeline.
func (h *ExportHandler) Backup(c fiber.Ctx) error {
	kind := backup.Kind(c.Params("kind"))
	path, err := h.backup.Path(kind)
	if err != nil {
		return invalidParam(c, "kind must be one of channels, videos")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, middleware.CodeNotFound, "No backup file available yet")
		}
		return internalError(c, h.log, err, "Failed to read backup file")
	}

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, "attachment; filename="+kind.FileName())
	return c.Send(data)
}
