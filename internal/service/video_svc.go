package service

import (
	"context"
	"strconv"

	"github.com/NforcheDivine/youtube-analytics-etl-api/internal/model"
	"github.com/NforcheDivine/youtube-analytics-etl-api/internal/repository"
	"github.com/NforcheDivine/youtube-analytics-etl-api/pkg/hash"
)

type VideoService struct {
	repo  *repository.VideoRepo
	cache *CacheService
}

func NewVideoService(repo *repository.VideoRepo, cache *CacheService) *VideoService {
	return &VideoService{repo: repo, cache: cache}
}

// List returns videos matching the filter.
func (s *VideoService) List(ctx context.Context, f model.VideoFilter) (*model.VideoListResponse, error) {
	minViews := ""
	if f.MinViews != nil {
		minViews = strconv.FormatInt(*f.MinViews, 10)
	}
	key := hash.CacheKey("videos:list", string(f.SortBy), strconv.Itoa(f.Limit), minViews)
	return cached(ctx, s.cache, key, func() (*model.VideoListResponse, error) {
		videos, err := s.repo.List(ctx, f)
		if err != nil {
			return nil, err
		}
		return &model.VideoListResponse{Count: len(videos), Videos: videos}, nil
	})
}
