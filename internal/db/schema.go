package db

import (
	"context"
	"fmt"
)

// schema is valid for both Postgres and SQLite. Tables are created once and
// their rows replaced on every load; they are never dropped.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS channels (
		channel_id       VARCHAR(100) PRIMARY KEY,
		title            VARCHAR(255) NOT NULL DEFAULT '',
		country          VARCHAR(8),
		subscriber_count BIGINT,
		view_count       BIGINT,
		video_count      BIGINT,
		views_per_video  DOUBLE PRECISION,
		engagement_ratio DOUBLE PRECISION,
		published_at     TIMESTAMP,
		created_at       TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS videos (
		video_id        VARCHAR(100) PRIMARY KEY,
		channel_id      VARCHAR(100) NOT NULL DEFAULT '',
		title           TEXT NOT NULL DEFAULT '',
		thumbnail_url   TEXT,
		view_count      BIGINT,
		like_count      BIGINT,
		comment_count   BIGINT,
		engagement_rate DOUBLE PRECISION,
		published_at    TIMESTAMP,
		processed_at    TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_videos_channel_id ON videos (channel_id)`,
	`CREATE INDEX IF NOT EXISTS idx_videos_view_count ON videos (view_count)`,
}

// EnsureSchema creates the snapshot tables if they do not exist.
func (d *DB) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := d.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
