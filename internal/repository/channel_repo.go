package repository

import (
	"context"
	"fmt"

	"github.com/NforcheDivine/youtube-analytics-etl-api/internal/db"
	"github.com/NforcheDivine/youtube-analytics-etl-api/internal/model"
)

const channelColumns = `channel_id, title, country, subscriber_count, view_count, video_count,
		       views_per_video, engagement_ratio, published_at, created_at`

// channelSortColumns maps each allowed sort key to its column. Only these
// constants are ever interpolated into ORDER BY.
var channelSortColumns = map[model.ChannelSort]string{
	model.ChannelSortSubscribers: "subscriber_count",
	model.ChannelSortViews:       "view_count",
	model.ChannelSortVideos:      "video_count",
}

type ChannelRepo struct {
	db *db.DB
}

func NewChannelRepo(d *db.DB) *ChannelRepo {
	return &ChannelRepo{db: d}
}

// List returns channels ordered descending by sortBy, missing values last.
func (r *ChannelRepo) List(ctx context.Context, sortBy model.ChannelSort, limit int) ([]model.Channel, error) {
	col, ok := channelSortColumns[sortBy]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSort, sortBy)
	}
	if limit < 1 || limit > model.MaxChannelLimit {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLimit, limit)
	}

	query := `
		SELECT ` + channelColumns + `
		FROM channels
		ORDER BY ` + col + ` DESC NULLS LAST, channel_id
		LIMIT ?`

	channels := []model.Channel{}
	if err := r.db.SelectContext(ctx, &channels, r.db.Rebind(query), limit); err != nil {
		return nil, err
	}
	for i := range channels {
		normalizeChannel(&channels[i])
	}
	return channels, nil
}

// FindByChannelID returns a single channel by its ID, or sql.ErrNoRows.
func (r *ChannelRepo) FindByChannelID(ctx context.Context, channelID string) (*model.Channel, error) {
	query := `
		SELECT ` + channelColumns + `
		FROM channels
		WHERE channel_id = ?`

	var ch model.Channel
	if err := r.db.GetContext(ctx, &ch, r.db.Rebind(query), channelID); err != nil {
		return nil, err
	}
	normalizeChannel(&ch)
	return &ch, nil
}

// Replace swaps the whole channels table for the given rows in one transaction.
func (r *ChannelRepo) Replace(ctx context.Context, channels []model.Channel) error {
	insert := `
		INSERT INTO channels (channel_id, title, country, subscriber_count, view_count, video_count,
		                      views_per_video, engagement_ratio, published_at, created_at)
		VALUES (:channel_id, :title, :country, :subscriber_count, :view_count, :video_count,
		        :views_per_video, :engagement_ratio, :published_at, :created_at)`
	return replaceTable(ctx, r.db, "channels", insert, channels)
}

// Count returns the number of rows in the channels table.
func (r *ChannelRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM channels`)
	return n, err
}

func normalizeChannel(ch *model.Channel) {
	ch.CreatedAt = ch.CreatedAt.UTC()
	ch.PublishedAt = utcPtr(ch.PublishedAt)
}
