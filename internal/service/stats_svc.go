package service

import (
	"context"

	"github.com/NforcheDivine/youtube-analytics-etl-api/internal/model"
	"github.com/NforcheDivine/youtube-analytics-etl-api/internal/repository"
)

type StatsService struct {
	repo  *repository.StatsRepo
	cache *CacheService
}

func NewStatsService(repo *repository.StatsRepo, cache *CacheService) *StatsService {
	return &StatsService{repo: repo, cache: cache}
}

// Get returns aggregate statistics over the current snapshot.
func (s *StatsService) Get(ctx context.Context) (*model.StatsResponse, error) {
	return cached(ctx, s.cache, "stats", func() (*model.StatsResponse, error) {
		return s.repo.GetStats(ctx)
	})
}
