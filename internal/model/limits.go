package model

// Page size bounds for the read API.
const (
	DefaultLimit          = 10
	MaxChannelLimit       = 100
	MaxChannelVideosLimit = 50
	MaxVideoLimit         = 100
)
