package execution

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"pharaoh/internal/domain"
)

// WorkerPool runs jobs on a bounded number of workers
type WorkerPool struct {
	executor Executor
	workers  int
	observer Observer
	log      *slog.Logger
}

// NewWorkerPool creates a new WorkerPool; fewer than one worker means one
func NewWorkerPool(executor Executor, workers int, log *slog.Logger) *WorkerPool {
	if workers <= 0 {
		workers = 1
	}
	return &WorkerPool{
		executor: executor,
		workers:  workers,
		log:      log,
	}
}

// SetObserver sets the observer notified after each job
func (wp *WorkerPool) SetObserver(observer Observer) {
	wp.observer = observer
}

// Execute runs every job and returns one result per job, indexed by Job.Slot.
// Each job writes only its own slot, so the result order is the job order no
// matter which job finishes first. The first execution error cancels the jobs
// still waiting and is returned without any results.
func (wp *WorkerPool) Execute(ctx context.Context, jobs []Job) ([]domain.TestResult, error) {
	results := make([]domain.TestResult, len(jobs))
	if len(jobs) == 0 {
		return results, nil
	}

	var mu sync.Mutex
	if wp.observer != nil {
		wp.observer.Start(len(jobs))
		defer wp.observer.Finish()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(wp.workers)

	for _, job := range jobs {
		if gctx.Err() != nil {
			break
		}
		job := job
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			start := time.Now()
			out, err := wp.executor.Execute(gctx, job.Test)
			if err != nil {
				if gctx.Err() != nil && ctx.Err() == nil {
					// Another job already failed and cancelled this one
					return nil
				}
				return domain.NewError(domain.KindRun, "run "+job.Test.Name, err)
			}
			elapsed := time.Since(start)
			result := domain.NewTestResult(job.Test, out)
			results[job.Slot] = result

			wp.log.Debug("Test case finished", "test", result.Name, "status", result.ActualStatus,
				"ok", result.IsSuccessful(), "elapsed", elapsed)
			if wp.observer != nil {
				mu.Lock()
				wp.observer.Observe(result, elapsed)
				mu.Unlock()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, domain.NewError(domain.KindRun, "run", err)
	}
	return results, nil
}
