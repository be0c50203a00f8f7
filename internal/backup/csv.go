package backup

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/NforcheDivine/youtube-analytics-etl-api/internal/model"
)

// Kind names one of the two backup files.
type Kind string

const (
	KindChannels Kind = "channels"
	KindVideos   Kind = "videos"
)

// ErrUnknownKind is returned for a backup kind other than channels or videos.
var ErrUnknownKind = errors.New("backup: unknown kind")

func (k Kind) Valid() bool {
	return k == KindChannels || k == KindVideos
}

// FileName is the on-disk name of the kind's backup file.
func (k Kind) FileName() string {
	return string(k) + ".csv"
}

var (
	ChannelHeader = []string{
		"channel_id", "title", "country", "subscriber_count", "view_count", "video_count",
		"views_per_video", "engagement_ratio", "published_at", "created_at",
	}
	VideoHeader = []string{
		"video_id", "channel_id", "title", "thumbnail_url", "view_count", "like_count",
		"comment_count", "engagement_rate", "published_at", "processed_at",
	}
)

// Writer overwrites the CSV backup files in a directory.
type Writer struct {
	dir string
}

func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

// Path returns the file path for kind.
func (w *Writer) Path(kind Kind) (string, error) {
	if !kind.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	return filepath.Join(w.dir, kind.FileName()), nil
}

// Write replaces both backup files with the given records and returns their
// paths. Each file is written to a temp file and renamed into place.
func (w *Writer) Write(channels []model.Channel, videos []model.Video) ([]string, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return nil, fmt.Errorf("create backup dir: %w", err)
	}

	channelRows := make([][]string, 0, len(channels))
	for _, ch := range channels {
		channelRows = append(channelRows, channelRecord(ch))
	}
	videoRows := make([][]string, 0, len(videos))
	for _, v := range videos {
		videoRows = append(videoRows, videoRecord(v))
	}

	channelsPath, _ := w.Path(KindChannels)
	if err := writeAtomic(channelsPath, ChannelHeader, channelRows); err != nil {
		return nil, err
	}
	videosPath, _ := w.Path(KindVideos)
	if err := writeAtomic(videosPath, VideoHeader, videoRows); err != nil {
		return []string{channelsPath}, err
	}
	return []string{channelsPath, videosPath}, nil
}

func writeAtomic(path string, header []string, rows [][]string) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", path, err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	cw := csv.NewWriter(tmp)
	if err = cw.Write(header); err != nil {
		return fmt.Errorf("write %s header: %w", path, err)
	}
	if err = cw.WriteAll(rows); err != nil {
		return fmt.Errorf("write %s rows: %w", path, err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("sync %s: %w", path, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("chmod %s: %w", path, err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}

// ReadAll parses a backup file into its header and data rows.
func ReadAll(r io.Reader) (header []string, rows [][]string, err error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) == 0 {
		return nil, nil, nil
	}
	return records[0], records[1:], nil
}

func channelRecord(ch model.Channel) []string {
	return []string{
		ch.ChannelID,
		ch.Title,
		formatString(ch.Country),
		formatInt(ch.SubscriberCount),
		formatInt(ch.ViewCount),
		formatInt(ch.VideoCount),
		formatFloat(ch.ViewsPerVideo),
		formatFloat(ch.EngagementRatio),
		formatTime(ch.PublishedAt),
		formatTime(&ch.CreatedAt),
	}
}

func videoRecord(v model.Video) []string {
	return []string{
		v.VideoID,
		v.ChannelID,
		v.Title,
		formatString(v.ThumbnailURL),
		formatInt(v.ViewCount),
		formatInt(v.LikeCount),
		formatInt(v.CommentCount),
		formatFloat(v.EngagementRate),
		formatTime(v.PublishedAt),
		formatTime(&v.ProcessedAt),
	}
}

// Missing values are written as empty cells.

func formatString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func formatInt(n *int64) string {
	if n == nil {
		return ""
	}
	return strconv.FormatInt(*n, 10)
}

func formatFloat(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}

func formatTime(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}
