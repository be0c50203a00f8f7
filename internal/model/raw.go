package model

import "time"

// RawChannel is a channel record as extracted, before coercion. Numeric
// fields hold the upstream string form; an empty string means absent.
type RawChannel struct {
	ChannelID       string
	Title           string
	Country         string
	PublishedAt     string
	SubscriberCount string
	ViewCount       string
	VideoCount      string
	ExtractedAt     time.Time
}

// RawVideo is a video record as extracted, before coercion.
type RawVideo struct {
	VideoID      string
	ChannelID    string
	Title        string
	ThumbnailURL string
	PublishedAt  string
	ViewCount    string
	LikeCount    string
	CommentCount string
}

// Batch is the ordered output of one extraction.
type Batch struct {
	Channels []RawChannel
	Videos   []RawVideo
}

// Empty reports whether the batch holds no records at all.
func (b Batch) Empty() bool {
	return len(b.Channels) == 0 && len(b.Videos) == 0
}
