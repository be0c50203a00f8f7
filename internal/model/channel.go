package model

import "time"

// Channel is a transformed YouTube channel snapshot row.
// Nil pointers mean the value is missing.
type Channel struct {
	ChannelID       string     `json:"channel_id" db:"channel_id"`
	Title           string     `json:"title" db:"title"`
	Country         *string    `json:"country" db:"country"`
	SubscriberCount *int64     `json:"subscriber_count" db:"subscriber_count"`
	ViewCount       *int64     `json:"view_count" db:"view_count"`
	VideoCount      *int64     `json:"video_count" db:"video_count"`
	ViewsPerVideo   *float64   `json:"views_per_video" db:"views_per_video"`
	EngagementRatio *float64   `json:"engagement_ratio" db:"engagement_ratio"`
	PublishedAt     *time.Time `json:"published_at" db:"published_at"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`
}

// ChannelSort is an allow-listed sort key for channel listings.
type ChannelSort string

const (
	ChannelSortSubscribers ChannelSort = "subscriber_count"
	ChannelSortViews       ChannelSort = "view_count"
	ChannelSortVideos      ChannelSort = "video_count"
)

// Valid reports whether s is one of the allowed channel sort keys.
func (s ChannelSort) Valid() bool {
	switch s {
	case ChannelSortSubscribers, ChannelSortViews, ChannelSortVideos:
		return true
	}
	return false
}

// ChannelListResponse is the API response for GET /channels.
type ChannelListResponse struct {
	Count    int       `json:"count"`
	Channels []Channel `json:"channels"`
}

// ChannelVideosResponse is the API response for GET /channels/:channelId/videos.
type ChannelVideosResponse struct {
	ChannelID string  `json:"channel_id"`
	Count     int     `json:"count"`
	Videos    []Video `json:"videos"`
}
