package extract

import (
	"context"
	"fmt"
	"strconv"

	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"github.com/NforcheDivine/youtube-analytics-etl-api/internal/model"
)

// maxPageSize is the largest page the YouTube Data API serves for search
// and videos lookups.
const maxPageSize = 50

// APIClient is a Client backed by the YouTube Data API v3.
type APIClient struct {
	svc *youtube.Service
}

// NewAPIClient creates a client authenticated with an API key. Extra options
// (e.g. option.WithEndpoint in tests) are appended.
func NewAPIClient(ctx context.Context, apiKey string, opts ...option.ClientOption) (*APIClient, error) {
	opts = append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	svc, err := youtube.NewService(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return &APIClient{svc: svc}, nil
}

func (c *APIClient) Channel(ctx context.Context, channelID string) (*model.RawChannel, error) {
	resp, err := c.svc.Channels.List([]string{"snippet", "statistics"}).
		Id(channelID).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("channels.list %s: %w", channelID, err)
	}
	if len(resp.Items) == 0 {
		return nil, nil
	}

	item := resp.Items[0]
	ch := &model.RawChannel{ChannelID: channelID}
	if item.Snippet != nil {
		ch.Title = item.Snippet.Title
		ch.Country = item.Snippet.Country
		ch.PublishedAt = item.Snippet.PublishedAt
	}
	if st := item.Statistics; st != nil {
		if !st.HiddenSubscriberCount {
			ch.SubscriberCount = formatCount(st.SubscriberCount)
		}
		ch.ViewCount = formatCount(st.ViewCount)
		ch.VideoCount = formatCount(st.VideoCount)
	}
	return ch, nil
}

func (c *APIClient) RecentVideos(ctx context.Context, channelID string, limit int) ([]model.RawVideo, error) {
	var (
		videos    []model.RawVideo
		pageToken string
		seen      = make(map[string]bool)
	)
	for len(videos) < limit {
		call := c.svc.Search.List([]string{"snippet"}).
			ChannelId(channelID).
			Type("video").
			Order("date").
			MaxResults(int64(min(limit-len(videos), maxPageSize)))
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}
		resp, err := call.Context(ctx).Do()
		if err != nil {
			return nil, fmt.Errorf("search.list %s: %w", channelID, err)
		}

		for _, item := range resp.Items {
			if item.Id == nil || item.Id.VideoId == "" || seen[item.Id.VideoId] {
				continue
			}
			seen[item.Id.VideoId] = true
			v := model.RawVideo{VideoID: item.Id.VideoId, ChannelID: channelID}
			if sn := item.Snippet; sn != nil {
				v.Title = sn.Title
				v.PublishedAt = sn.PublishedAt
				if sn.Thumbnails != nil && sn.Thumbnails.Default != nil {
					v.ThumbnailURL = sn.Thumbnails.Default.Url
				}
			}
			videos = append(videos, v)
			if len(videos) == limit {
				break
			}
		}

		pageToken = resp.NextPageToken
		if pageToken == "" || len(resp.Items) == 0 {
			break
		}
	}

	if err := c.fillStatistics(ctx, videos); err != nil {
		return nil, err
	}
	return videos, nil
}

// fillStatistics looks up view, like and comment counts for videos in place.
// Videos the upstream does not return keep empty (missing) counts.
func (c *APIClient) fillStatistics(ctx context.Context, videos []model.RawVideo) error {
	index := make(map[string]int, len(videos))
	for i, v := range videos {
		index[v.VideoID] = i
	}

	for start := 0; start < len(videos); start += maxPageSize {
		end := min(start+maxPageSize, len(videos))
		ids := make([]string, 0, end-start)
		for _, v := range videos[start:end] {
			ids = append(ids, v.VideoID)
		}

		resp, err := c.svc.Videos.List([]string{"statistics"}).
			Id(ids...).
			Context(ctx).
			Do()
		if err != nil {
			return fmt.Errorf("videos.list: %w", err)
		}
		for _, item := range resp.Items {
			i, ok := index[item.Id]
			if !ok || item.Statistics == nil {
				continue
			}
			st := item.Statistics
			videos[i].ViewCount = formatCount(st.ViewCount)
			// Hidden like counts are omitted upstream and decode as 0.
			if st.LikeCount > 0 || st.ViewCount == 0 {
				videos[i].LikeCount = formatCount(st.LikeCount)
			}
			// Disabled comments also decode as 0, which is the true count.
			videos[i].CommentCount = formatCount(st.CommentCount)
		}
	}
	return nil
}

func formatCount(n uint64) string {
	return strconv.FormatUint(n, 10)
}
