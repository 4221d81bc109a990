package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"runtime"
	"time"

	"github.com/caasmo/tablebook/config"
	"github.com/caasmo/tablebook/db"
	"github.com/caasmo/tablebook/queue/executor"
	"golang.org/x/sync/errgroup"
)

// jobTimeout bounds a single job execution.
const jobTimeout = 10 * time.Minute

// Scheduler periodically claims pending jobs from the queue and dispatches
// them to the executor.
type Scheduler struct {
	cfg          config.Scheduler
	db           db.DbQueue
	executor     executor.JobExecutor
	logger       *slog.Logger
	ctx          context.Context
	cancel       context.CancelFunc
	shutdownDone chan struct{}
}

func NewScheduler(cfg config.Scheduler, db db.DbQueue, executor executor.JobExecutor, logger *slog.Logger) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cfg:          cfg,
		db:           db,
		executor:     executor,
		logger:       logger,
		ctx:          ctx,
		cancel:       cancel,
		shutdownDone: make(chan struct{}),
	}
}

// Start launches the long running scheduler goroutine. It ticks at the
// configured interval until Stop is called.
func (s *Scheduler) Start() {
	go func() {
		s.logger.Info("starting job scheduler", "interval", s.cfg.Interval.Duration)
		ticker := time.NewTicker(s.cfg.Interval.Duration)
		defer ticker.Stop()

		for {
			select {
			case <-s.ctx.Done():
				s.logger.Info("job scheduler received shutdown signal")
				close(s.shutdownDone)
				return
			case <-ticker.C:
				s.processJobs()
			}
		}
	}()
}

// Stop signals the scheduler to stop and waits for in-flight jobs to finish
// or the context to be canceled, whichever comes first.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.logger.Info("stopping job scheduler")
	s.cancel()

	select {
	case <-s.shutdownDone:
		s.logger.Info("job scheduler stopped gracefully")
		return nil
	case <-ctx.Done():
		s.logger.Info("job scheduler shutdown timed out")
		return ctx.Err()
	}
}

func (s *Scheduler) processJobs() {
	jobs, err := s.db.Claim(s.cfg.MaxJobsPerTick)
	if err != nil {
		s.logger.Error("failed to claim jobs", "err", err)
		return
	}
	if len(jobs) == 0 {
		return
	}
	s.logger.Info("claimed jobs", "count", len(jobs))

	// Use the scheduler's context as parent so jobs receive the shutdown
	// signal.
	g, ctx := errgroup.WithContext(s.ctx)
	g.SetLimit(runtime.NumCPU() * s.cfg.ConcurrencyMultiplier)

	for _, job := range jobs {
		job := job
		g.Go(func() error {
			jobCtx, cancel := context.WithTimeout(ctx, jobTimeout)
			defer cancel()

			err := s.executor.Execute(jobCtx, *job)

			switch {
			case err == nil:
				if updateErr := s.db.MarkCompleted(job.ID); updateErr != nil {
					s.logger.Error("failed to mark job completed", "job_id", job.ID, "err", updateErr)
				}
			case errors.Is(err, context.DeadlineExceeded):
				if updateErr := s.db.MarkFailed(job.ID, "timeout: "+err.Error()); updateErr != nil {
					s.logger.Error("failed to mark job timed out", "job_id", job.ID, "err", updateErr)
				}
			case errors.Is(err, context.Canceled):
				// Batch canceled or scheduler shutting down.
				if updateErr := s.db.MarkFailed(job.ID, "interrupted: "+err.Error()); updateErr != nil {
					s.logger.Error("failed to mark job interrupted", "job_id", job.ID, "err", updateErr)
				}
			default:
				if updateErr := s.db.MarkFailed(job.ID, err.Error()); updateErr != nil {
					s.logger.Error("failed to mark job failed", "job_id", job.ID, "err", updateErr)
				}
			}

			return err
		})
	}

	if err := g.Wait(); err != nil {
		if errors.Is(err, context.Canceled) {
			s.logger.Info("job batch interrupted by scheduler shutdown")
		} else {
			s.logger.Error("error executing job batch", "err", err)
		}
	}
}
