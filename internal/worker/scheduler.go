// Package worker runs the periodic engine jobs: failing expired pending
// transactions, reconciling idle ones and relaying merchant notifications.
package worker

import (
	"context"
	"errors"
	"time"

	"payment-hub/internal/core/ports"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Job is one periodic unit of work. It returns the number of items handled.
type Job struct {
	Name     string
	Interval time.Duration
	Run      func(ctx context.Context, now time.Time) (int, error)
}

// Scheduler runs every job on its own ticker until the context is cancelled.
// Runs of the same job never overlap.
type Scheduler struct {
	jobs       []Job
	jobTimeout time.Duration
	log        zerolog.Logger
	now        func() time.Time
}

// SchedulerSettings holds the job intervals.
type SchedulerSettings struct {
	FailExpiredInterval time.Duration
	ReconcileInterval   time.Duration
	OutboxInterval      time.Duration
	OutboxBatch         int
	JobTimeout          time.Duration
}

// NewScheduler builds the standard engine jobs.
func NewScheduler(dispatcher ports.CallbackDispatcher, relay ports.OutboxRelay, settings SchedulerSettings, log zerolog.Logger) *Scheduler {
	jobs := []Job{
		{Name: "fail_expired", Interval: settings.FailExpiredInterval, Run: dispatcher.FailExpired},
		{Name: "reconcile_due", Interval: settings.ReconcileInterval, Run: dispatcher.ReconcileDue},
		{Name: "outbox_relay", Interval: settings.OutboxInterval, Run: func(ctx context.Context, _ time.Time) (int, error) {
			return relay.RelayOnce(ctx, settings.OutboxBatch)
		}},
	}
	return NewSchedulerWithJobs(jobs, settings.JobTimeout, log)
}

// NewSchedulerWithJobs builds a scheduler from arbitrary jobs. Jobs with a
// non-positive interval are disabled.
func NewSchedulerWithJobs(jobs []Job, jobTimeout time.Duration, log zerolog.Logger) *Scheduler {
	enabled := make([]Job, 0, len(jobs))
	for _, j := range jobs {
		if j.Interval > 0 {
			enabled = append(enabled, j)
		}
	}
	return &Scheduler{
		jobs:       enabled,
		jobTimeout: jobTimeout,
		log:        log.With().Str("component", "scheduler").Logger(),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Run blocks until ctx is cancelled. A failing run is logged and retried on
// the next tick.
func (s *Scheduler) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, job := range s.jobs {
		g.Go(func() error {
			s.loop(ctx, job)
			return nil
		})
	}
	s.log.Info().Int("jobs", len(s.jobs)).Msg("scheduler started")
	err := g.Wait()
	s.log.Info().Msg("scheduler stopped")
	return err
}

func (s *Scheduler) loop(ctx context.Context, job Job) {
	ticker := time.NewTicker(job.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runOnce(ctx, job)
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context, job Job) {
	if s.jobTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.jobTimeout)
		defer cancel()
	}

	started := time.Now()
	n, err := job.Run(ctx, s.now())
	logger := s.log.With().Str("job", job.Name).Dur("duration", time.Since(started)).Logger()
	switch {
	case errors.Is(err, context.Canceled):
		logger.Debug().Int("handled", n).Msg("job interrupted")
	case err != nil:
		logger.Error().Err(err).Int("handled", n).Msg("job failed")
	case n > 0:
		logger.Info().Int("handled", n).Msg("job finished")
	default:
		logger.Debug().Msg("job idle")
	}
}
