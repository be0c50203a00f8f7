package repository

import (
	"context"

	"github.com/NforcheDivine/youtube-analytics-etl-api/internal/db"
	"github.com/NforcheDivine/youtube-analytics-etl-api/internal/model"
)

// SnapshotRepo is the write side used by the loader: schema setup, full
// table replacement and row-count verification.
type SnapshotRepo struct {
	db       *db.DB
	channels *ChannelRepo
	videos   *VideoRepo
}

func NewSnapshotRepo(d *db.DB) *SnapshotRepo {
	return &SnapshotRepo{db: d, channels: NewChannelRepo(d), videos: NewVideoRepo(d)}
}

func (r *SnapshotRepo) EnsureSchema(ctx context.Context) error {
	return r.db.EnsureSchema(ctx)
}

func (r *SnapshotRepo) ReplaceChannels(ctx context.Context, channels []model.Channel) error {
	return r.channels.Replace(ctx, channels)
}

func (r *SnapshotRepo) ReplaceVideos(ctx context.Context, videos []model.Video) error {
	return r.videos.Replace(ctx, videos)
}

// Counts returns the current row counts of the channels and videos tables.
func (r *SnapshotRepo) Counts(ctx context.Context) (channels, videos int64, err error) {
	if channels, err = r.channels.Count(ctx); err != nil {
		return 0, 0, err
	}
	if videos, err = r.videos.Count(ctx); err != nil {
		return 0, 0, err
	}
	return channels, videos, nil
}
