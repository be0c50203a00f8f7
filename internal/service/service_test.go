package service

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NforcheDivine/youtube-analytics-etl-api/internal/db"
	"github.com/NforcheDivine/youtube-analytics-etl-api/internal/model"
	"github.com/NforcheDivine/youtube-analytics-etl-api/internal/repository"
)

var now = time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

func i64(n int64) *int64 { return &n }

type fixture struct {
	db       *db.DB
	snap     *repository.SnapshotRepo
	cache    *CacheService
	mr       *miniredis.Miniredis
	channels *ChannelService
	videos   *VideoService
	stats    *StatsService
}

func newFixture(t *testing.T, withCache bool) *fixture {
	t.Helper()
	ctx := context.Background()

	d, err := db.Open("sqlite://" + filepath.Join(t.TempDir(), "svc.db"))
	require.NoError(t, err)
	t.Cleanup(func() { d.Close() })
	require.NoError(t, d.EnsureSchema(ctx))

	f := &fixture{db: d, snap: repository.NewSnapshotRepo(d)}
	f.cache = &CacheService{log: zerolog.Nop()}
	if withCache {
		f.mr = miniredis.RunT(t)
		rdb := redis.NewClient(&redis.Options{Addr: f.mr.Addr()})
		f.cache = NewCacheServiceWithClient(rdb, time.Minute, zerolog.Nop())
		t.Cleanup(func() { f.cache.Close() })
	}

	chRepo := repository.NewChannelRepo(d)
	vRepo := repository.NewVideoRepo(d)
	f.channels = NewChannelService(chRepo, vRepo, f.cache)
	f.videos = NewVideoService(vRepo, f.cache)
	f.stats = NewStatsService(repository.NewStatsRepo(d), f.cache)

	require.NoError(t, f.snap.ReplaceChannels(ctx, []model.Channel{
		{ChannelID: "UC_a", Title: "A", SubscriberCount: i64(5), CreatedAt: now},
		{ChannelID: "UC_b", Title: "B", SubscriberCount: i64(9), CreatedAt: now},
	}))
	require.NoError(t, f.snap.ReplaceVideos(ctx, []model.Video{
		{VideoID: "v1", ChannelID: "UC_a", ViewCount: i64(10), ProcessedAt: now},
		{VideoID: "v2", ChannelID: "UC_a", ViewCount: i64(20), ProcessedAt: now},
	}))
	return f
}

func TestChannelService_ListServesFromCacheUntilInvalidated(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()

	first, err := f.channels.List(ctx, model.ChannelSortSubscribers, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, first.Count)
	assert.NotEmpty(t, f.mr.Keys())

	// Change the store behind the cache's back.
	require.NoError(t, f.snap.ReplaceChannels(ctx, []model.Channel{{ChannelID: "UC_z", Title: "Z", CreatedAt: now}}))

	cachedResp, err := f.channels.List(ctx, model.ChannelSortSubscribers, 10)
	require.NoError(t, err)
	assert.Equal(t, first, cachedResp)

	require.NoError(t, f.cache.InvalidateAll(ctx))
	assert.Empty(t, f.mr.Keys())

	fresh, err := f.channels.List(ctx, model.ChannelSortSubscribers, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, fresh.Count)
	assert.Equal(t, "UC_z", fresh.Channels[0].ChannelID)
}

func TestChannelService_GetNotFoundIsNotCached(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()

	_, err := f.channels.Get(ctx, "UC_missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.Empty(t, f.mr.Keys())

	ch, err := f.channels.Get(ctx, "UC_b")
	require.NoError(t, err)
	assert.Equal(t, "B", ch.Title)
}

func TestChannelService_ListVideos(t *testing.T) {
	f := newFixture(t, false)

	resp, err := f.channels.ListVideos(context.Background(), "UC_a", 10)
	require.NoError(t, err)
	assert.Equal(t, "UC_a", resp.ChannelID)
	assert.Equal(t, 2, resp.Count)
	assert.Equal(t, "v2", resp.Videos[0].VideoID)

	empty, err := f.channels.ListVideos(context.Background(), "UC_none", 10)
	require.NoError(t, err)
	assert.Zero(t, empty.Count)
	assert.NotNil(t, empty.Videos)
}

func TestVideoService_DistinctFiltersUseDistinctKeys(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()

	all, err := f.videos.List(ctx, model.VideoFilter{Limit: 10, SortBy: model.VideoSortViews})
	require.NoError(t, err)
	filtered, err := f.videos.List(ctx, model.VideoFilter{Limit: 10, SortBy: model.VideoSortViews, MinViews: i64(15)})
	require.NoError(t, err)

	assert.Equal(t, 2, all.Count)
	assert.Equal(t, 1, filtered.Count)
	assert.Len(t, f.mr.Keys(), 2)
}

func TestStatsService_Get(t *testing.T) {
	f := newFixture(t, true)

	stats, err := f.stats.Get(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 2, stats.ChannelStatistics.TotalChannels)
	require.NotNil(t, stats.TopChannel)
	assert.Equal(t, "B", stats.TopChannel.Title)

	again, err := f.stats.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, stats, again)
}

func TestCacheService_RedisDownNeverFailsRequests(t *testing.T) {
	f := newFixture(t, true)
	f.mr.Close()

	resp, err := f.channels.List(context.Background(), model.ChannelSortSubscribers, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Count)
}

func TestCacheService_Disabled(t *testing.T) {
	c := NewCacheService(context.Background(), "", time.Minute, zerolog.Nop())
	assert.False(t, c.Enabled())
	assert.Nil(t, c.Client())
	assert.NoError(t, c.InvalidateAll(context.Background()))
	assert.NoError(t, c.Close())

	c = NewCacheService(context.Background(), "not a url", time.Minute, zerolog.Nop())
	assert.False(t, c.Enabled())
}

func TestCacheService_InvalidateAllLeavesForeignKeys(t *testing.T) {
	mr := miniredis.RunT(t)
	require.NoError(t, mr.Set("other:key", "1"))
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	c := NewCacheServiceWithClient(rdb, 0, zerolog.Nop())
	defer c.Close()

	c.set(context.Background(), "stats", map[string]int{"n": 1})
	require.True(t, mr.Exists(keyPrefix+"stats"))
	assert.Equal(t, DefaultCacheTTL, mr.TTL(keyPrefix+"stats"))

	require.NoError(t, c.InvalidateAll(context.Background()))
	assert.False(t, mr.Exists(keyPrefix+"stats"))
	assert.True(t, mr.Exists("other:key"))
}
