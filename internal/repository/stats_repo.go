package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/NforcheDivine/youtube-analytics-etl-api/internal/db"
	"github.com/NforcheDivine/youtube-analytics-etl-api/internal/model"
)

type StatsRepo struct {
	db *db.DB
}

func NewStatsRepo(d *db.DB) *StatsRepo {
	return &StatsRepo{db: d}
}

// GetStats aggregates both snapshot tables. Sums and averages over empty
// tables are missing, not zero.
func (r *StatsRepo) GetStats(ctx context.Context) (*model.StatsResponse, error) {
	var stats model.StatsResponse

	channelQuery := `
		SELECT COUNT(*)                                        AS total_channels,
		       CAST(SUM(subscriber_count) AS BIGINT)           AS total_subscribers,
		       CAST(SUM(view_count) AS BIGINT)                 AS total_views,
		       CAST(AVG(engagement_ratio) AS DOUBLE PRECISION) AS avg_engagement
		FROM channels`
	if err := r.db.GetContext(ctx, &stats.ChannelStatistics, channelQuery); err != nil {
		return nil, err
	}

	videoQuery := `
		SELECT COUNT(*)                                       AS total_videos,
		       CAST(AVG(view_count) AS DOUBLE PRECISION)      AS avg_views,
		       CAST(AVG(engagement_rate) AS DOUBLE PRECISION) AS avg_engagement_rate
		FROM videos`
	if err := r.db.GetContext(ctx, &stats.VideoStatistics, videoQuery); err != nil {
		return nil, err
	}

	topQuery := `
		SELECT title, subscriber_count
		FROM channels
		ORDER BY subscriber_count DESC NULLS LAST, channel_id
		LIMIT 1`
	var top model.TopChannel
	err := r.db.GetContext(ctx, &top, topQuery)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return nil, err
	default:
		stats.TopChannel = &top
	}

	return &stats, nil
}
