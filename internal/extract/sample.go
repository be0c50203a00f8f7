package extract

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/NforcheDivine/youtube-analytics-etl-api/internal/model"
)

const (
	sampleChannelGoogle = "UC_x5XG1OV2P6uZZ5FSM9Ttw"
	sampleChannelMKBHD  = "UCBJycsmduvYEL83R_U4JriQ"
	sampleVideoCount    = 5
)

// Sample returns a fixed data set: two channels and five videos owned by the
// first channel. Only the extraction timestamp depends on the clock.
type Sample struct {
	now func() time.Time
}

// NewSample creates a sample extractor. A nil clock means time.Now.
func NewSample(now func() time.Time) *Sample {
	if now == nil {
		now = time.Now
	}
	return &Sample{now: now}
}

func (s *Sample) Mode() string { return "sample" }

func (s *Sample) Extract(_ context.Context) (model.Batch, error) {
	extractedAt := s.now().UTC()

	channels := []model.RawChannel{
		{
			ChannelID:       sampleChannelGoogle,
			Title:           "Google Developers",
			SubscriberCount: "2800000",
			ViewCount:       "950000000",
			VideoCount:      "4500",
			ExtractedAt:     extractedAt,
		},
		{
			ChannelID:       sampleChannelMKBHD,
			Title:           "Marques Brownlee",
			SubscriberCount: "18000000",
			ViewCount:       "3500000000",
			VideoCount:      "1500",
			ExtractedAt:     extractedAt,
		},
	}

	videos := make([]model.RawVideo, 0, sampleVideoCount)
	base := time.Date(2024, time.January, 1, 12, 0, 0, 0, time.UTC)
	for i := 1; i <= sampleVideoCount; i++ {
		videos = append(videos, model.RawVideo{
			VideoID:      fmt.Sprintf("video_%d", i),
			ChannelID:    sampleChannelGoogle,
			Title:        fmt.Sprintf("Sample Video %d", i),
			ViewCount:    strconv.Itoa(10000 * i),
			LikeCount:    strconv.Itoa(500 * i),
			CommentCount: strconv.Itoa(100 * i),
			PublishedAt:  base.AddDate(0, 0, i-1).Format(time.RFC3339),
		})
	}

	return model.Batch{Channels: channels, Videos: videos}, nil
}
