// Package metrics records summarization outcomes to Prometheus.
package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder receives one call per finished summarization.
type Recorder interface {
	RecordSummary(mode string, chunks int, secondPass bool, duration time.Duration)
	RecordFailure(mode string)
}

type PrometheusRecorder struct {
	summaries *prometheus.CounterVec
	failures  *prometheus.CounterVec
	chunks    *prometheus.HistogramVec
	duration  *prometheus.HistogramVec
}

var (
	promInstance *PrometheusRecorder
	promOnce     sync.Once
)

func getOrCreateCounterVec(opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	c := prometheus.NewCounterVec(opts, labels)
	if err := prometheus.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return are.ExistingCollector.(*prometheus.CounterVec)
		}
		panic(err)
	}
	return c
}

func getOrCreateHistogramVec(opts prometheus.HistogramOpts, labels []string) *prometheus.HistogramVec {
	h := prometheus.NewHistogramVec(opts, labels)
	if err := prometheus.Register(h); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return are.ExistingCollector.(*prometheus.HistogramVec)
		}
		panic(err)
	}
	return h
}

// NewPrometheusRecorder registers the collectors on the default registry
// once per process.
func NewPrometheusRecorder() *PrometheusRecorder {
	promOnce.Do(func() {
		promInstance = &PrometheusRecorder{
			summaries: getOrCreateCounterVec(prometheus.CounterOpts{
				Name: "sumora_summaries_total",
				Help: "Summaries produced, by mode and whether a second pass ran",
			}, []string{"mode", "second_pass"}),
			failures: getOrCreateCounterVec(prometheus.CounterOpts{
				Name: "sumora_summary_failures_total",
				Help: "Summarizations that returned an error",
			}, []string{"mode"}),
			chunks: getOrCreateHistogramVec(prometheus.HistogramOpts{
				Name:    "sumora_summary_chunks",
				Help:    "Number of fragments per summarized input",
				Buckets: []float64{1, 2, 4, 8, 16, 32, 64, 128},
			}, []string{"mode"}),
			duration: getOrCreateHistogramVec(prometheus.HistogramOpts{
				Name:    "sumora_summary_duration_seconds",
				Help:    "Wall time of a full summarization",
				Buckets: prometheus.ExponentialBuckets(0.05, 2, 12),
			}, []string{"mode"}),
		}
	})
	return promInstance
}

func (p *PrometheusRecorder) RecordSummary(mode string, chunks int, secondPass bool, duration time.Duration) {
	p.summaries.WithLabelValues(mode, strconv.FormatBool(secondPass)).Inc()
	p.chunks.WithLabelValues(mode).Observe(float64(chunks))
	p.duration.WithLabelValues(mode).Observe(duration.Seconds())
}

func (p *PrometheusRecorder) RecordFailure(mode string) {
	p.failures.WithLabelValues(mode).Inc()
}

// Noop discards everything.
type Noop struct{}

func (Noop) RecordSummary(string, int, bool, time.Duration) {}
func (Noop) RecordFailure(string)                          {}

var (
	_ Recorder = (*PrometheusRecorder)(nil)
	_ Recorder = Noop{}
)
