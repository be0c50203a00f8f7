package service

import (
	"context"
	"strconv"

	"github.com/NforcheDivine/youtube-analytics-etl-api/internal/model"
	"github.com/NforcheDivine/youtube-analytics-etl-api/internal/repository"
	"github.com/NforcheDivine/youtube-analytics-etl-api/pkg/hash"
)

type ChannelService struct {
	repo   *repository.ChannelRepo
	videos *repository.VideoRepo
	cache  *CacheService
}

func NewChannelService(repo *repository.ChannelRepo, videos *repository.VideoRepo, cache *CacheService) *ChannelService {
	return &ChannelService{repo: repo, videos: videos, cache: cache}
}

// List returns the top channels by sortBy.
func (s *ChannelService) List(ctx context.Context, sortBy model.ChannelSort, limit int) (*model.ChannelListResponse, error) {
	key := hash.CacheKey("channels:list", string(sortBy), strconv.Itoa(limit))
	return cached(ctx, s.cache, key, func() (*model.ChannelListResponse, error) {
		channels, err := s.repo.List(ctx, sortBy, limit)
		if err != nil {
			return nil, err
		}
		return &model.ChannelListResponse{Count: len(channels), Channels: channels}, nil
	})
}

// Get returns one channel. A missing channel yields sql.ErrNoRows.
func (s *ChannelService) Get(ctx context.Context, channelID string) (*model.Channel, error) {
	return cached(ctx, s.cache, hash.CacheKey("channels:get", channelID), func() (*model.Channel, error) {
		return s.repo.FindByChannelID(ctx, channelID)
	})
}

// ListVideos returns a channel's videos by view count. An unknown channel
// yields an empty list, not an error.
func (s *ChannelService) ListVideos(ctx context.Context, channelID string, limit int) (*model.ChannelVideosResponse, error) {
	key := hash.CacheKey("channels:videos", channelID, strconv.Itoa(limit))
	return cached(ctx, s.cache, key, func() (*model.ChannelVideosResponse, error) {
		videos, err := s.videos.ListByChannel(ctx, channelID, limit)
		if err != nil {
			return nil, err
		}
		return &model.ChannelVideosResponse{ChannelID: channelID, Count: len(videos), Videos: videos}, nil
	})
}
