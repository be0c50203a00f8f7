package middleware

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/NforcheDivine/youtube-analytics-etl-api/internal/model"
)

// Error envelope codes.
const (
	CodeInvalidParam  = "INVALID_PARAM"
	CodeNotFound      = "NOT_FOUND"
	CodeRateLimited   = "RATE_LIMITED"
	CodeInternalError = "INTERNAL_ERROR"
)

// MaxChannelIDLen matches the longest channel ID the API accepts.
const MaxChannelIDLen = 64

// channelIDRe matches YouTube channel IDs: alphanumeric, dash, underscore.
var channelIDRe = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ErrorResponse writes the standard API error envelope.
func ErrorResponse(c fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    code,
			"message": message,
		},
	})
}

// ParseLimit parses an optional page size in [1, maxLimit]. Empty means def.
func ParseLimit(raw string, def, maxLimit int) (int, string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def, ""
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, "limit must be an integer"
	}
	if n < 1 || n > maxLimit {
		return 0, fmt.Sprintf("limit must be between 1 and %d", maxLimit)
	}
	return n, ""
}

// ParseChannelSort parses sort_by for channel listings.
func ParseChannelSort(raw string) (model.ChannelSort, string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return model.ChannelSortSubscribers, ""
	}
	s := model.ChannelSort(raw)
	if !s.Valid() {
		return "", "sort_by must be one of subscriber_count, view_count, video_count"
	}
	return s, ""
}

// ParseVideoSort parses sort_by for video listings.
func ParseVideoSort(raw string) (model.VideoSort, string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return model.VideoSortViews, ""
	}
	s := model.VideoSort(raw)
	if !s.Valid() {
		return "", "sort_by must be one of view_count, like_count, engagement_rate"
	}
	return s, ""
}

// ParseMinViews parses the optional min_views filter. Empty means no filter.
func ParseMinViews(raw string) (*int64, string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, ""
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, "min_views must be an integer"
	}
	if n < 0 {
		return nil, "min_views must be at least 0"
	}
	return &n, ""
}

// ValidateChannelID checks that a channel ID is well-formed.
func ValidateChannelID(id string) (string, string) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", "channel_id is required"
	}
	if len(id) > MaxChannelIDLen {
		return "", fmt.Sprintf("channel_id must be at most %d characters", MaxChannelIDLen)
	}
	if !channelIDRe.MatchString(id) {
		return "", "channel_id contains invalid characters"
	}
	return id, ""
}
