package execution

import (
	"time"

	"pharaoh/internal/domain"
)

// Observer is notified as a run progresses. Calls are serialized by the runner,
// results arrive in completion order, and observers never alter the report.
type Observer interface {
	Start(total int)
	Observe(result domain.TestResult, elapsed time.Duration)
	Finish()
}

// Observers fans notifications out to several observers in order
type Observers []Observer

// Start notifies every observer that a run of total test cases begins
func (o Observers) Start(total int) {
	for _, obs := range o {
		obs.Start(total)
	}
}

// Observe forwards one result to every observer
func (o Observers) Observe(result domain.TestResult, elapsed time.Duration) {
	for _, obs := range o {
		obs.Observe(result, elapsed)
	}
}

// Finish notifies every observer that the run is over
func (o Observers) Finish() {
	for _, obs := range o {
		obs.Finish()
	}
}
