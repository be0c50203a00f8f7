package pipeline

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Runner is anything that performs one pipeline pass.
type Runner interface {
	Run(ctx context.Context) (Summary, error)
}

// Scheduler runs passes on a fixed interval. A pass that outlasts the
// interval delays the next one; passes never overlap.
type Scheduler struct {
	runner   Runner
	interval time.Duration
	log      zerolog.Logger

	stopOnce sync.Once
	stopCh   chan struct{}
}

func NewScheduler(runner Runner, interval time.Duration, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		runner:   runner,
		interval: interval,
		log:      log.With().Str("component", "scheduler").Logger(),
		stopCh:   make(chan struct{}),
	}
}

// Start runs one pass immediately, then every interval, until ctx is done or
// Stop is called. It blocks.
func (s *Scheduler) Start(ctx context.Context) {
	s.log.Info().Dur("interval", s.interval).Msg("scheduler starting")

	s.tick(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.tick(ctx)
		case <-ctx.Done():
			s.log.Info().Msg("scheduler stopping (context cancelled)")
			return
		case <-s.stopCh:
			s.log.Info().Msg("scheduler stopping (stop signal)")
			return
		}
	}
}

// Stop signals Start to return after the current pass.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() { close(s.stopCh) })
}

func (s *Scheduler) tick(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	summary, err := s.runner.Run(ctx)
	if err != nil {
		s.log.Error().Err(err).Str("run_id", summary.RunID).Msg("scheduled run aborted")
		return
	}
	s.log.Info().
		Str("run_id", summary.RunID).
		Bool("primary_ok", summary.PrimaryOK).
		Dur("took", summary.Duration).
		Msg("scheduled run finished")
}
