package repository

import (
	"context"
	"fmt"

	"github.com/NforcheDivine/youtube-analytics-etl-api/internal/db"
	"github.com/NforcheDivine/youtube-analytics-etl-api/internal/model"
)

const videoColumns = `video_id, channel_id, title, thumbnail_url, view_count, like_count,
		       comment_count, engagement_rate, published_at, processed_at`

var videoSortColumns = map[model.VideoSort]string{
	model.VideoSortViews:      "view_count",
	model.VideoSortLikes:      "like_count",
	model.VideoSortEngagement: "engagement_rate",
}

type VideoRepo struct {
	db *db.DB
}

func NewVideoRepo(d *db.DB) *VideoRepo {
	return &VideoRepo{db: d}
}

// List returns videos matching f, ordered descending by f.SortBy.
func (r *VideoRepo) List(ctx context.Context, f model.VideoFilter) ([]model.Video, error) {
	col, ok := videoSortColumns[f.SortBy]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSort, f.SortBy)
	}
	if f.Limit < 1 || f.Limit > model.MaxVideoLimit {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLimit, f.Limit)
	}

	query := `
		SELECT ` + videoColumns + `
		FROM videos`
	var args []any
	if f.MinViews != nil {
		query += `
		WHERE view_count >= ?`
		args = append(args, *f.MinViews)
	}
	query += `
		ORDER BY ` + col + ` DESC NULLS LAST, video_id
		LIMIT ?`
	args = append(args, f.Limit)

	return r.selectVideos(ctx, query, args...)
}

// ListByChannel returns a channel's videos ordered by view count descending.
func (r *VideoRepo) ListByChannel(ctx context.Context, channelID string, limit int) ([]model.Video, error) {
	if limit < 1 || limit > model.MaxChannelVideosLimit {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLimit, limit)
	}

	query := `
		SELECT ` + videoColumns + `
		FROM videos
		WHERE channel_id = ?
		ORDER BY view_count DESC NULLS LAST, video_id
		LIMIT ?`
	return r.selectVideos(ctx, query, channelID, limit)
}

// Replace swaps the whole videos table for the given rows in one transaction.
func (r *VideoRepo) Replace(ctx context.Context, videos []model.Video) error {
	insert := `
		INSERT INTO videos (video_id, channel_id, title, thumbnail_url, view_count, like_count,
		                    comment_count, engagement_rate, published_at, processed_at)
		VALUES (:video_id, :channel_id, :title, :thumbnail_url, :view_count, :like_count,
		        :comment_count, :engagement_rate, :published_at, :processed_at)`
	return replaceTable(ctx, r.db, "videos", insert, videos)
}

// Count returns the number of rows in the videos table.
func (r *VideoRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM videos`)
	return n, err
}

func (r *VideoRepo) selectVideos(ctx context.Context, query string, args ...any) ([]model.Video, error) {
	videos := []model.Video{}
	if err := r.db.SelectContext(ctx, &videos, r.db.Rebind(query), args...); err != nil {
		return nil, err
	}
	for i := range videos {
		videos[i].ProcessedAt = videos[i].ProcessedAt.UTC()
		videos[i].PublishedAt = utcPtr(videos[i].PublishedAt)
	}
	return videos, nil
}
