// Package scheduler runs periodic background jobs.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"
)

// Flusher persists pending changes.
type Flusher interface {
	Flush(ctx context.Context) error
}

// Scheduler snapshots app states on a fixed interval.
type Scheduler struct {
	scheduler *gocron.Scheduler
	flusher   Flusher
	interval  time.Duration
	timeout   time.Duration
	logger    *zap.Logger
}

// New creates a scheduler that flushes every interval.
func New(flusher Flusher, interval time.Duration, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		flusher:   flusher,
		interval:  interval,
		timeout:   10 * time.Second,
		logger:    logger,
	}
}

// Start registers the autosave job and starts the scheduler without blocking.
func (s *Scheduler) Start() error {
	if s.interval <= 0 {
		return fmt.Errorf("invalid autosave interval %s", s.interval)
	}

	if _, err := s.scheduler.Every(s.interval).SingletonMode().Do(s.autosave); err != nil {
		return fmt.Errorf("schedule autosave: %w", err)
	}

	s.scheduler.StartAsync()
	s.logger.Info("scheduler started", zap.Duration("autosave_interval", s.interval))
	return nil
}

// Run starts the scheduler and blocks until ctx is done.
func (s *Scheduler) Run(ctx context.Context) error {
	if err := s.Start(); err != nil {
		return err
	}
	<-ctx.Done()
	s.Stop()
	return nil
}

// Stop terminates all scheduled jobs.
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

func (s *Scheduler) autosave() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if err := s.flusher.Flush(ctx); err != nil {
		s.logger.Error("autosave failed", zap.Error(err))
	}
}
