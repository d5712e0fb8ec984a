// Package scheduler wraps robfig/cron for the self-scheduled mode, where the
// process triggers its own runs instead of waiting for an external webhook.
package scheduler

import (
	"log/slog"
	"sync"

	"github.com/robfig/cron/v3"
)

// Job is a unit of scheduled work.
type Job interface {
	Run() error
	Name() string
}

// Scheduler manages background jobs.
type Scheduler struct {
	cron   *cron.Cron
	logger *slog.Logger
}

// New creates a scheduler using standard 5-field cron expressions and the
// @-descriptors ("@daily", "@every 6h").
func New(logger *slog.Logger) *Scheduler {
	return &Scheduler{
		cron:   cron.New(),
		logger: logger.With(slog.String("component", "scheduler")),
	}
}

// Start starts the scheduler.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("scheduler started")
}

// Stop stops the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

// AddJob registers a job. Ticks that arrive while a previous invocation of
// the same job is still running are skipped, so runs never stack.
func (s *Scheduler) AddJob(schedule string, job Job) error {
	var running sync.Mutex
	_, err := s.cron.AddFunc(schedule, func() {
		if !running.TryLock() {
			s.logger.Warn("previous run still active, skipping tick", slog.String("job", job.Name()))
			return
		}
		defer running.Unlock()

		s.logger.Debug("running job", slog.String("job", job.Name()))
		if err := job.Run(); err != nil {
			s.logger.Error("job failed", slog.String("job", job.Name()), slog.Any("error", err))
			return
		}
		s.logger.Debug("job completed", slog.String("job", job.Name()))
	})
	if err != nil {
		return err
	}

	s.logger.Info("job registered", slog.String("schedule", schedule), slog.String("job", job.Name()))
	return nil
}
