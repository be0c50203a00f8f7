package model

// ChannelStatistics aggregates the channels table.
type ChannelStatistics struct {
	TotalChannels    int64    `json:"total_channels" db:"total_channels"`
	TotalSubscribers *int64   `json:"total_subscribers" db:"total_subscribers"`
	TotalViews       *int64   `json:"total_views" db:"total_views"`
	AvgEngagement    *float64 `json:"avg_engagement" db:"avg_engagement"`
}

// VideoStatistics aggregates the videos table.
type VideoStatistics struct {
	TotalVideos       int64    `json:"total_videos" db:"total_videos"`
	AvgViews          *float64 `json:"avg_views" db:"avg_views"`
	AvgEngagementRate *float64 `json:"avg_engagement_rate" db:"avg_engagement_rate"`
}

// TopChannel is the channel with the highest subscriber count.
type TopChannel struct {
	Title           string `json:"title" db:"title"`
	SubscriberCount *int64 `json:"subscriber_count" db:"subscriber_count"`
}

// StatsResponse is the API response for GET /stats. TopChannel is nil
// (JSON null) when the channels table is empty.
type StatsResponse struct {
	ChannelStatistics ChannelStatistics `json:"channel_statistics"`
	VideoStatistics   VideoStatistics   `json:"video_statistics"`
	TopChannel        *TopChannel       `json:"top_channel"`
}
