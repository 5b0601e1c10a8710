package reminder

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Job is a unit of recurring work driven by the Scheduler.
type Job interface {
	// Name identifies the job in logs and status reports.
	Name() string

	// Run executes one invocation of the job.
	Run(ctx context.Context) error
}

// JobStatus describes a scheduled job for the status endpoint.
type JobStatus struct {
	Name     string    `json:"name"`
	Interval string    `json:"interval"`
	NextRun  time.Time `json:"next_run"`
}

// Scheduler drives a Job on a fixed period measured from Start. It
// guarantees non-overlap: if an invocation is still running when the next
// tick fires, that tick is skipped rather than queued or run concurrently.
//
// A job fault, including a panic, never stops the scheduler; the next tick
// proceeds independently.
type Scheduler struct {
	job      Job
	interval time.Duration
	logger   *slog.Logger

	mu      sync.Mutex // guards running, cancel, nextRun
	running bool
	cancel  context.CancelFunc
	nextRun time.Time
	wg      sync.WaitGroup

	sweepMu sync.Mutex // non-overlap guard, held for the duration of a tick
}

// NewScheduler creates a Scheduler that runs job every interval.
func NewScheduler(job Job, interval time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		job:      job,
		interval: interval,
		logger:   logger,
	}
}

// Start begins firing ticks. It is idempotent: calling Start while the
// scheduler is already running is a no-op. The first tick fires one full
// interval after Start.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		s.logger.Debug("scheduler already running, ignoring start", "job", s.job.Name())
		return
	}

	runCtx, cancel := context.WithCancel(ctx)
	s.running = true
	s.cancel = cancel
	s.nextRun = time.Now().Add(s.interval)

	s.wg.Add(1)
	go s.loop(runCtx)

	s.logger.Info("scheduler started",
		"job", s.job.Name(),
		"interval", s.interval)
}

// Stop halts future ticks and waits for an in-flight invocation to finish.
// It is safe to call Stop on a scheduler that was never started.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.cancel()
	s.mu.Unlock()

	s.wg.Wait()
	s.logger.Info("scheduler stopped", "job", s.job.Name())
}

// Running reports whether the scheduler is currently started.
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Jobs describes the scheduled jobs for the status endpoint.
func (s *Scheduler) Jobs() []JobStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return []JobStatus{}
	}
	return []JobStatus{
		{
			Name:     s.job.Name(),
			Interval: s.interval.String(),
			NextRun:  s.nextRun,
		},
	}
}

func (s *Scheduler) loop(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.mu.Lock()
			s.nextRun = time.Now().Add(s.interval)
			s.mu.Unlock()

			s.tick(ctx)
		}
	}
}

// tick runs one invocation under the non-overlap guard.
func (s *Scheduler) tick(ctx context.Context) {
	if !s.sweepMu.TryLock() {
		s.logger.Warn("previous invocation still running, skipping tick", "job", s.job.Name())
		return
	}
	defer s.sweepMu.Unlock()

	defer func() {
		if p := recover(); p != nil {
			s.logger.Error("job panicked",
				"job", s.job.Name(),
				"panic", p)
		}
	}()

	if err := s.job.Run(ctx); err != nil {
		s.logger.Error("job failed",
			"job", s.job.Name(),
			"error", err)
	}
}
