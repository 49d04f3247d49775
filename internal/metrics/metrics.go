package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"pharaoh/internal/domain"
)

const (
	MetricsNamespace = "pharaoh"

	resultPass = "pass"
	resultFail = "fail"
)

// Recorder collects run metrics in its own registry. It implements the
// runner's observer interface.
type Recorder struct {
	registry     *prometheus.Registry
	testsTotal   *prometheus.CounterVec
	testDuration prometheus.Histogram
	runDuration  prometheus.Gauge
}

// NewRecorder creates a Recorder with an empty registry
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		testsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: MetricsNamespace,
			Name:      "tests_total",
			Help:      "Number of executed test cases by result",
		}, []string{
			"result",
		}),
		testDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: MetricsNamespace,
			Name:      "test_duration_seconds",
			Help:      "Wall time of a single test case",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
		}),
		runDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: MetricsNamespace,
			Name:      "run_duration_seconds",
			Help:      "Wall time of the whole run",
		}),
	}
	r.registry.MustRegister(r.testsTotal, r.testDuration, r.runDuration)

	// expose both series even when one stays at zero
	r.testsTotal.WithLabelValues(resultPass)
	r.testsTotal.WithLabelValues(resultFail)
	return r
}

// Start is a no-op
func (r *Recorder) Start(total int) {}

// Observe counts a result and records its duration
func (r *Recorder) Observe(result domain.TestResult, elapsed time.Duration) {
	label := resultPass
	if !result.IsSuccessful() {
		label = resultFail
	}
	r.testsTotal.WithLabelValues(label).Inc()
	r.testDuration.Observe(elapsed.Seconds())
}

// Finish is a no-op
func (r *Recorder) Finish() {}

// SetRunDuration records the wall time of the run
func (r *Recorder) SetRunDuration(d time.Duration) {
	r.runDuration.Set(d.Seconds())
}

// Registry returns the registry holding the run metrics
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// WriteTextfile writes the metrics in the Prometheus text format to path,
// e.g. for the node exporter textfile collector
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return domain.NewError(domain.KindIO, "write metrics "+path, err)
	}
	return nil
}
