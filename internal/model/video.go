package model

import "time"

// Video is a transformed YouTube video snapshot row.
// ChannelID is an advisory reference to Channel.ChannelID; it is not enforced.
type Video struct {
	VideoID        string     `json:"video_id" db:"video_id"`
	ChannelID      string     `json:"channel_id" db:"channel_id"`
	Title          string     `json:"title" db:"title"`
	ThumbnailURL   *string    `json:"thumbnail_url" db:"thumbnail_url"`
	ViewCount      *int64     `json:"view_count" db:"view_count"`
	LikeCount      *int64     `json:"like_count" db:"like_count"`
	CommentCount   *int64     `json:"comment_count" db:"comment_count"`
	EngagementRate *float64   `json:"engagement_rate" db:"engagement_rate"`
	PublishedAt    *time.Time `json:"published_at" db:"published_at"`
	ProcessedAt    time.Time  `json:"processed_at" db:"processed_at"`
}

// VideoSort is an allow-listed sort key for video listings.
type VideoSort string

const (
	VideoSortViews      VideoSort = "view_count"
	VideoSortLikes      VideoSort = "like_count"
	VideoSortEngagement VideoSort = "engagement_rate"
)

// Valid reports whether s is one of the allowed video sort keys.
func (s VideoSort) Valid() bool {
	switch s {
	case VideoSortViews, VideoSortLikes, VideoSortEngagement:
		return true
	}
	return false
}

// VideoFilter selects videos for GET /videos.
type VideoFilter struct {
	Limit    int
	MinViews *int64
	SortBy   VideoSort
}

// VideoListResponse is the API response for GET /videos.
type VideoListResponse struct {
	Count  int     `json:"count"`
	Videos []Video `json:"videos"`
}
