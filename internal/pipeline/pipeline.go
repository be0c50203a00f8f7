// Package pipeline runs one extract, transform and load pass and schedules
// repeated passes.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/NforcheDivine/youtube-analytics-etl-api/internal/backup"
	"github.com/NforcheDivine/youtube-analytics-etl-api/internal/config"
	"github.com/NforcheDivine/youtube-analytics-etl-api/internal/db"
	"github.com/NforcheDivine/youtube-analytics-etl-api/internal/extract"
	"github.com/NforcheDivine/youtube-analytics-etl-api/internal/loader"
	"github.com/NforcheDivine/youtube-analytics-etl-api/internal/metrics"
	"github.com/NforcheDivine/youtube-analytics-etl-api/internal/model"
	"github.com/NforcheDivine/youtube-analytics-etl-api/internal/repository"
	"github.com/NforcheDivine/youtube-analytics-etl-api/internal/transform"
)

// Loader persists one transformed snapshot.
type Loader interface {
	Load(ctx context.Context, channels []model.Channel, videos []model.Video) (loader.Outcome, error)
}

// Summary describes a completed run.
type Summary struct {
	RunID      string
	Mode       string
	StartedAt  time.Time
	Duration   time.Duration
	Channels   int
	Videos     int
	PrimaryOK  bool
	PrimaryErr error
	Outcome    loader.Outcome
}

type Pipeline struct {
	extractor extract.Extractor
	loader    Loader
	now       func() time.Time
	log       zerolog.Logger
}

func New(ex extract.Extractor, ld Loader, log zerolog.Logger) *Pipeline {
	return &Pipeline{
		extractor: ex,
		loader:    ld,
		now:       func() time.Time { return time.Now().UTC() },
		log:       log.With().Str("component", "pipeline").Logger(),
	}
}

// FromConfig wires the extractor, the snapshot repository on store, the CSV
// backup and the cache invalidator. store and cache may be nil.
func FromConfig(ctx context.Context, cfg *config.Config, store *db.DB, cache loader.CacheInvalidator, log zerolog.Logger) (*Pipeline, error) {
	ex, err := extract.New(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	var primary loader.PrimaryStore
	if store != nil {
		primary = repository.NewSnapshotRepo(store)
	}
	ld := loader.New(primary, backup.NewWriter(cfg.BackupDir), cache, log)
	return New(ex, ld, log), nil
}

// Run executes one pass. It returns an error only when the run aborts:
// nothing was extracted, or the backup could not be written. A primary store
// failure is reported through Summary.PrimaryOK.
func (p *Pipeline) Run(ctx context.Context) (s Summary, err error) {
	s = Summary{
		RunID:     uuid.NewString(),
		Mode:      p.extractor.Mode(),
		StartedAt: p.now(),
	}
	log := p.log.With().Str("run_id", s.RunID).Logger()
	log.Info().Str("mode", s.Mode).Msg("pipeline run started")

	start := time.Now()
	defer func() {
		s.Duration = time.Since(start)
		metrics.PipelineDuration.Observe(s.Duration.Seconds())
	}()

	batch, err := p.extractor.Extract(ctx)
	if err != nil {
		metrics.PipelineRuns.WithLabelValues(metrics.ResultAborted).Inc()
		log.Error().Err(err).Msg("extraction failed, run aborted")
		return s, fmt.Errorf("extract: %w", err)
	}
	log.Info().Int("channels", len(batch.Channels)).Int("videos", len(batch.Videos)).Msg("extraction complete")

	res := transform.Transform(batch, p.now())

	out, err := p.loader.Load(ctx, res.Channels, res.Videos)
	s.Outcome = out
	s.Channels = out.Channels
	s.Videos = out.Videos
	s.PrimaryOK = out.PrimaryOK
	s.PrimaryErr = out.PrimaryErr
	if err != nil {
		metrics.PipelineRuns.WithLabelValues(metrics.ResultAborted).Inc()
		log.Error().Err(err).Msg("backup failed, run aborted")
		return s, err
	}

	result := metrics.ResultOK
	if !out.PrimaryOK {
		result = metrics.ResultPrimaryFailed
	}
	metrics.PipelineRuns.WithLabelValues(result).Inc()

	ev := log.Info()
	if !out.PrimaryOK {
		ev = log.Warn().AnErr("primary_error", out.PrimaryErr)
	}
	ev.Int("channels", s.Channels).
		Int("videos", s.Videos).
		Bool("primary_ok", out.PrimaryOK).
		Strs("backup_files", out.BackupFiles).
		Interface("backup_sha256", out.BackupChecksums).
		Msg("pipeline run complete")

	return s, nil
}

// IsNoData reports whether err aborted a run because nothing was extracted.
func IsNoData(err error) bool {
	return errors.Is(err, extract.ErrNoData)
}
