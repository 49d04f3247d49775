package execution

import (
	"context"
	"log/slog"
	"time"

	"pharaoh/internal/domain"
)

// Runner runs a whole collection and assembles the report
type Runner interface {
	RunAll(ctx context.Context, collection domain.TestSuiteCollection) (domain.TestReport, error)
}

var _ Runner = (*DefaultRunner)(nil)

// DefaultRunner runs every test case of a collection through an Executor
type DefaultRunner struct {
	scheduler Scheduler
	pool      *WorkerPool
	log       *slog.Logger
}

// NewRunner creates a new DefaultRunner running up to jobs test cases at once.
// With a single job, test cases run one after the other in collection order.
func NewRunner(executor Executor, jobs int, log *slog.Logger) *DefaultRunner {
	return &DefaultRunner{
		scheduler: NewInOrderScheduler(),
		pool:      NewWorkerPool(executor, jobs, log),
		log:       log,
	}
}

// SetObserver sets the observer notified after each test case
func (r *DefaultRunner) SetObserver(observer Observer) {
	r.pool.SetObserver(observer)
}

// RunAll runs every test case and returns a report that mirrors the collection:
// the n-th suite's k-th result belongs to the n-th suite's k-th case. A mismatch
// is never an error. Any execution error aborts the run and no report is returned.
func (r *DefaultRunner) RunAll(ctx context.Context, collection domain.TestSuiteCollection) (domain.TestReport, error) {
	start := time.Now()
	jobs := r.scheduler.Schedule(collection)
	r.log.Info("Starting test run", "suites", len(collection.TestSuites), "tests", len(jobs), "workers", r.pool.workers)

	results, err := r.pool.Execute(ctx, jobs)
	if err != nil {
		r.log.Error("Test run aborted", "error", err)
		return domain.TestReport{}, err
	}

	report := assemble(collection, jobs, results)
	total, passed, failed := report.Counts()
	r.log.Info("Test run finished", "total", total, "passed", passed, "failed", failed,
		"duration", time.Since(start))
	return report, nil
}

func assemble(collection domain.TestSuiteCollection, jobs []Job, results []domain.TestResult) domain.TestReport {
	report := domain.TestReport{TestSuites: make([]domain.TestSuiteResult, len(collection.TestSuites))}
	for i, suite := range collection.TestSuites {
		report.TestSuites[i].Name = suite.Name
		if len(suite.Tests) > 0 {
			report.TestSuites[i].Results = make([]domain.TestResult, len(suite.Tests))
		}
	}
	for _, job := range jobs {
		report.TestSuites[job.Suite].Results[job.Case] = results[job.Slot]
	}
	return report
}
