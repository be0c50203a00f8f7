package extract

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/NforcheDivine/youtube-analytics-etl-api/internal/model"
)

// Client is the upstream source used by the live extractor.
type Client interface {
	// Channel returns the channel's snippet and statistics, or nil if the
	// upstream has no such channel.
	Channel(ctx context.Context, channelID string) (*model.RawChannel, error)
	// RecentVideos returns up to limit of the channel's most recent videos.
	RecentVideos(ctx context.Context, channelID string, limit int) ([]model.RawVideo, error)
}

// LiveOptions configures a Live extractor.
type LiveOptions struct {
	ChannelIDs []string
	MaxVideos  int
	// Delay is the minimum spacing between per-source upstream calls.
	Delay time.Duration
	Now   func() time.Time
}

// Live queries the upstream API one source channel at a time. Sources that
// fail or return nothing are skipped.
type Live struct {
	client  Client
	opts    LiveOptions
	limiter *rate.Limiter
	log     zerolog.Logger
}

func NewLive(client Client, opts LiveOptions, log zerolog.Logger) *Live {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.MaxVideos <= 0 {
		opts.MaxVideos = 5
	}
	limit := rate.Inf
	if opts.Delay > 0 {
		limit = rate.Every(opts.Delay)
	}
	return &Live{
		client:  client,
		opts:    opts,
		limiter: rate.NewLimiter(limit, 1),
		log:     log,
	}
}

func (l *Live) Mode() string { return "live" }

func (l *Live) Extract(ctx context.Context) (model.Batch, error) {
	var batch model.Batch
	seenChannels := make(map[string]bool, len(l.opts.ChannelIDs))
	seenVideos := make(map[string]bool)

	for _, id := range l.opts.ChannelIDs {
		if seenChannels[id] {
			l.log.Warn().Str("channel_id", id).Msg("duplicate source channel, skipping")
			continue
		}
		seenChannels[id] = true

		if err := l.limiter.Wait(ctx); err != nil {
			return batch, fmt.Errorf("extract: wait for rate limiter: %w", err)
		}

		ch, err := l.client.Channel(ctx, id)
		switch {
		case err != nil:
			l.log.Warn().Err(err).Str("channel_id", id).Msg("channel lookup failed, skipping")
		case ch == nil:
			l.log.Warn().Str("channel_id", id).Msg("no data found for channel, skipping")
		default:
			ch.ExtractedAt = l.opts.Now().UTC()
			batch.Channels = append(batch.Channels, *ch)
			l.log.Info().Str("channel_id", id).Str("title", ch.Title).Msg("channel extracted")
		}

		videos, err := l.client.RecentVideos(ctx, id, l.opts.MaxVideos)
		if err != nil {
			l.log.Warn().Err(err).Str("channel_id", id).Msg("video lookup failed, skipping")
			continue
		}
		n := 0
		for _, v := range videos {
			if seenVideos[v.VideoID] {
				continue
			}
			seenVideos[v.VideoID] = true
			batch.Videos = append(batch.Videos, v)
			n++
		}
		l.log.Info().Str("channel_id", id).Int("videos", n).Msg("videos extracted")
	}

	l.log.Info().
		Int("channels", len(batch.Channels)).
		Int("videos", len(batch.Videos)).
		Msg("extraction complete")
	if batch.Empty() {
		return batch, ErrNoData
	}
	return batch, nil
}
