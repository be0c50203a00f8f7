// Package transform coerces extracted records into typed snapshot rows and
// computes their derived metrics.
package transform

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/NforcheDivine/youtube-analytics-etl-api/internal/model"
)

// Result holds the transformed snapshot, in extraction order.
type Result struct {
	Channels []model.Channel
	Videos   []model.Video
}

// Transform converts a raw batch into typed rows. It has no side effects;
// processedAt is stamped on every video.
func Transform(batch model.Batch, processedAt time.Time) Result {
	res := Result{
		Channels: make([]model.Channel, 0, len(batch.Channels)),
		Videos:   make([]model.Video, 0, len(batch.Videos)),
	}
	for _, rc := range batch.Channels {
		res.Channels = append(res.Channels, Channel(rc))
	}
	for _, rv := range batch.Videos {
		res.Videos = append(res.Videos, Video(rv, processedAt))
	}
	return res
}

// Channel transforms a single raw channel.
func Channel(rc model.RawChannel) model.Channel {
	subs := ParseCount(rc.SubscriberCount)
	views := ParseCount(rc.ViewCount)
	videos := ParseCount(rc.VideoCount)

	return model.Channel{
		ChannelID:       rc.ChannelID,
		Title:           rc.Title,
		Country:         optionalString(rc.Country),
		SubscriberCount: subs,
		ViewCount:       views,
		VideoCount:      videos,
		ViewsPerVideo:   Ratio(views, videos),
		EngagementRatio: Ratio(subs, views),
		PublishedAt:     parseTime(rc.PublishedAt),
		CreatedAt:       rc.ExtractedAt,
	}
}

// Video transforms a single raw video.
func Video(rv model.RawVideo, processedAt time.Time) model.Video {
	views := ParseCount(rv.ViewCount)
	likes := ParseCount(rv.LikeCount)
	comments := ParseCount(rv.CommentCount)

	return model.Video{
		VideoID:        rv.VideoID,
		ChannelID:      rv.ChannelID,
		Title:          rv.Title,
		ThumbnailURL:   optionalString(rv.ThumbnailURL),
		ViewCount:      views,
		LikeCount:      likes,
		CommentCount:   comments,
		EngagementRate: Ratio(Sum(likes, comments), views),
		PublishedAt:    parseTime(rv.PublishedAt),
		ProcessedAt:    processedAt,
	}
}

// ParseCount coerces a raw numeric field. Integers parse directly; a finite
// float with an integral value (e.g. "1.5e3") is accepted too. Anything else,
// including the empty string, is missing.
func ParseCount(raw string) *int64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return &n
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return nil
	}
	if f > math.MaxInt64 || f < math.MinInt64 {
		return nil
	}
	n := int64(f)
	return &n
}

// Ratio returns num/den, or nil when either operand is missing or den is zero.
func Ratio(num, den *int64) *float64 {
	if num == nil || den == nil || *den == 0 {
		return nil
	}
	r := float64(*num) / float64(*den)
	return &r
}

// Sum returns a+b, or nil when either operand is missing.
func Sum(a, b *int64) *int64 {
	if a == nil || b == nil {
		return nil
	}
	s := *a + *b
	return &s
}

func parseTime(raw string) *time.Time {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil
	}
	t = t.UTC()
	return &t
}

func optionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
