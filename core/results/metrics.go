package results

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

// Recorder exports the measured durations as prometheus metrics.
type Recorder struct {
	registry *prometheus.Registry
	duration *prometheus.HistogramVec
	failures *prometheus.CounterVec
}

// NewRecorder registers the benchmark metrics in a fresh registry.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()

	r := &Recorder{
		registry: reg,
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "txbench",
			Name:      "operation_duration_seconds",
			Help:      "Wall-clock duration of measured operations, until the transaction is final.",
			Buckets:   []float64{.1, .25, .5, 1, 2, 3, 5, 8, 13, 21, 30, 60},
		}, []string{"scenario"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "txbench",
			Name:      "operation_failures_total",
			Help:      "Measured operations that did not complete.",
		}, []string{"scenario"}),
	}

	reg.MustRegister(r.duration, r.failures)

	return r
}

// Observe records a completed run.
func (r *Recorder) Observe(scenario string, seconds float64) {
	r.duration.WithLabelValues(scenario).Observe(seconds)
}

// Fail records a run that did not complete.
func (r *Recorder) Fail(scenario string) {
	r.failures.WithLabelValues(scenario).Inc()
}

// Gatherer exposes the recorded metrics.
func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.registry
}

// Push sends the recorded metrics to a prometheus Pushgateway.
func (r *Recorder) Push(url, job string) error {
	err := push.New(url, job).Gatherer(r.registry).Push()
	if err != nil {
		return fmt.Errorf("push metrics to %s: %w", url, err)
	}

	return nil
}
