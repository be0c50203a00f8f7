// Package extract pulls raw channel and video records from the YouTube Data
// API, or from a bundled sample set when no API key is configured.
package extract

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/NforcheDivine/youtube-analytics-etl-api/internal/config"
	"github.com/NforcheDivine/youtube-analytics-etl-api/internal/model"
)

// ErrNoData is returned when an extraction produced no channels and no videos.
var ErrNoData = errors.New("extract: no records extracted")

// Extractor produces one batch of raw records.
type Extractor interface {
	Extract(ctx context.Context) (model.Batch, error)
	Mode() string
}

// New returns the live extractor when an API key is configured and the
// sample extractor otherwise.
func New(ctx context.Context, cfg *config.Config, log zerolog.Logger) (Extractor, error) {
	if !cfg.LiveMode() {
		log.Info().Msg("no YOUTUBE_API_KEY set, using sample data")
		return NewSample(nil), nil
	}

	client, err := NewAPIClient(ctx, cfg.YouTubeAPIKey)
	if err != nil {
		return nil, fmt.Errorf("create youtube client: %w", err)
	}
	log.Info().Int("sources", len(cfg.ChannelIDs)).Msg("using YouTube Data API")
	return NewLive(client, LiveOptions{
		ChannelIDs: cfg.ChannelIDs,
		MaxVideos:  cfg.MaxVideos,
		Delay:      cfg.ExtractDelay,
	}, log), nil
}
