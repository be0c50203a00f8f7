package loader

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/NforcheDivine/youtube-analytics-etl-api/internal/metrics"
	"github.com/NforcheDivine/youtube-analytics-etl-api/internal/model"
	"github.com/NforcheDivine/youtube-analytics-etl-api/pkg/hash"
)

// ErrNoPrimary is the primary failure recorded when no store handle exists.
var ErrNoPrimary = errors.New("loader: primary store unavailable")

// PrimaryStore is the relational store the loader replaces snapshots in.
type PrimaryStore interface {
	EnsureSchema(ctx context.Context) error
	ReplaceChannels(ctx context.Context, channels []model.Channel) error
	ReplaceVideos(ctx context.Context, videos []model.Video) error
	Counts(ctx context.Context) (channels, videos int64, err error)
}

// BackupWriter overwrites the secondary backup and returns the written paths.
type BackupWriter interface {
	Write(channels []model.Channel, videos []model.Video) ([]string, error)
}

// CacheInvalidator drops cached query results after a new snapshot lands.
type CacheInvalidator interface {
	InvalidateAll(ctx context.Context) error
}

// Outcome reports what a Load call achieved.
type Outcome struct {
	PrimaryOK  bool
	BackupOK   bool
	PrimaryErr error
	Channels   int
	Videos     int
	// BackupFiles holds the written backup paths, BackupChecksums their
	// SHA256 keyed by path.
	BackupFiles     []string
	BackupChecksums map[string]string
}

type Loader struct {
	primary PrimaryStore
	backup  BackupWriter
	cache   CacheInvalidator
	log     zerolog.Logger
}

// New builds a Loader. primary and cache may be nil; a nil primary makes
// every load a primary failure.
func New(primary PrimaryStore, backup BackupWriter, cache CacheInvalidator, log zerolog.Logger) *Loader {
	return &Loader{
		primary: primary,
		backup:  backup,
		cache:   cache,
		log:     log.With().Str("component", "loader").Logger(),
	}
}

// Load writes the snapshot to the primary store, then always to the backup.
// A primary failure is reported in the Outcome; only a backup failure is
// returned as an error.
func (l *Loader) Load(ctx context.Context, channels []model.Channel, videos []model.Video) (Outcome, error) {
	channels, droppedChannels := uniqueBy(channels, func(c model.Channel) string { return c.ChannelID })
	videos, droppedVideos := uniqueBy(videos, func(v model.Video) string { return v.VideoID })
	if droppedChannels > 0 || droppedVideos > 0 {
		l.log.Warn().
			Int("channels_dropped", droppedChannels).
			Int("videos_dropped", droppedVideos).
			Msg("dropped repeated records, first occurrence kept")
	}
	out := Outcome{Channels: len(channels), Videos: len(videos)}

	if err := l.loadPrimary(ctx, channels, videos); err != nil {
		out.PrimaryErr = err
		l.log.Error().Err(err).Msg("primary load failed, backup will still be written")
	} else {
		out.PrimaryOK = true
	}

	files, err := l.backup.Write(channels, videos)
	if err != nil {
		metrics.BackupFailures.Inc()
		return out, fmt.Errorf("write backup: %w", err)
	}
	out.BackupOK = true
	out.BackupFiles = files
	out.BackupChecksums = make(map[string]string, len(files))
	for _, f := range files {
		sum, err := hash.FileSHA256(f)
		if err != nil {
			l.log.Warn().Err(err).Str("file", f).Msg("checksum backup file")
			continue
		}
		out.BackupChecksums[f] = sum
	}
	l.log.Info().
		Strs("files", files).
		Interface("sha256", out.BackupChecksums).
		Int("channels", len(channels)).
		Int("videos", len(videos)).
		Msg("backup written")

	return out, nil
}

// loadPrimary stops at the first failing step.
func (l *Loader) loadPrimary(ctx context.Context, channels []model.Channel, videos []model.Video) error {
	if l.primary == nil {
		return ErrNoPrimary
	}
	if err := l.primary.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	if err := l.primary.ReplaceChannels(ctx, channels); err != nil {
		return fmt.Errorf("replace channels: %w", err)
	}
	metrics.RecordsLoaded.WithLabelValues("channels").Add(float64(len(channels)))
	if err := l.primary.ReplaceVideos(ctx, videos); err != nil {
		return fmt.Errorf("replace videos: %w", err)
	}
	metrics.RecordsLoaded.WithLabelValues("videos").Add(float64(len(videos)))

	chCount, vCount, err := l.primary.Counts(ctx)
	switch {
	case err != nil:
		l.log.Warn().Err(err).Msg("verify row counts")
	case chCount != int64(len(channels)) || vCount != int64(len(videos)):
		l.log.Warn().
			Int64("channels_in_db", chCount).Int("channels_loaded", len(channels)).
			Int64("videos_in_db", vCount).Int("videos_loaded", len(videos)).
			Msg("row count mismatch after load")
	default:
		l.log.Info().Int64("channels", chCount).Int64("videos", vCount).Msg("primary store replaced")
	}

	if l.cache != nil {
		if err := l.cache.InvalidateAll(ctx); err != nil {
			l.log.Warn().Err(err).Msg("invalidate read cache")
		}
	}
	return nil
}

// uniqueBy keeps the first row for each key, preserving order, and reports
// how many rows it dropped.
func uniqueBy[T any](rows []T, key func(T) string) ([]T, int) {
	seen := make(map[string]bool, len(rows))
	out := make([]T, 0, len(rows))
	for _, r := range rows {
		k := key(r)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, r)
	}
	return out, len(rows) - len(out)
}
