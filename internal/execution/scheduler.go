package execution

import "pharaoh/internal/domain"

// Job is one test case together with its position in the collection
type Job struct {
	Suite int // Index of the suite in the collection
	Case  int // Index of the case in its suite
	Slot  int // Flat index into the result slice
	Test  domain.TestCase
}

// Scheduler turns a collection into the list of jobs to run
type Scheduler interface {
	Schedule(collection domain.TestSuiteCollection) []Job
}

// InOrderScheduler schedules jobs in collection order: suites in order, cases in order
type InOrderScheduler struct{}

// NewInOrderScheduler creates a new InOrderScheduler
func NewInOrderScheduler() *InOrderScheduler {
	return &InOrderScheduler{}
}

// Schedule flattens the collection, assigning each case its own result slot
func (s *InOrderScheduler) Schedule(collection domain.TestSuiteCollection) []Job {
	jobs := make([]Job, 0, collection.CaseCount())
	for i, suite := range collection.TestSuites {
		for j, tc := range suite.Tests {
			jobs = append(jobs, Job{Suite: i, Case: j, Slot: len(jobs), Test: tc})
		}
	}
	return jobs
}
