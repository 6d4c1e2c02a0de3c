// Package metrics exposes listener call statistics to Prometheus.
//
//	collector := metrics.NewCollector("listen")
//	collector.MustRegister(prometheus.DefaultRegisterer)
//	listen.SetRecorder(collector)
package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rickchristie/listen"
)

// Call outcomes used as the outcome label.
const (
	OutcomeOK      = "ok"
	OutcomeError   = "error"
	OutcomeTimeout = "timeout"
)

// Collector records guarded listener method calls. It implements
// listen.Recorder.
type Collector struct {
	calls    *prometheus.CounterVec
	duration *prometheus.HistogramVec
	dropped  *prometheus.CounterVec
}

// NewCollector creates a collector whose metrics use the given namespace.
// The metrics are not registered until Register is called.
func NewCollector(namespace string) *Collector {
	return &Collector{
		calls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "listener",
				Name:      "calls_total",
				Help:      "Total number of listener method calls",
			},
			[]string{"listener", "method", "outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "listener",
				Name:      "call_duration_seconds",
				Help:      "Duration of listener method calls in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"listener", "method"},
		),
		dropped: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "listener",
				Name:      "dropped_total",
				Help:      "Listener method calls dropped because another listener method was running",
			},
			[]string{"listener", "method"},
		),
	}
}

// Register registers the collector's metrics with reg.
func (c *Collector) Register(reg prometheus.Registerer) error {
	for _, m := range c.collectors() {
		if err := reg.Register(m); err != nil {
			var are prometheus.AlreadyRegisteredError
			if errors.As(err, &are) {
				continue
			}
			return err
		}
	}
	return nil
}

// MustRegister is like Register but panics on failure.
func (c *Collector) MustRegister(reg prometheus.Registerer) {
	if err := c.Register(reg); err != nil {
		panic(err)
	}
}

func (c *Collector) collectors() []prometheus.Collector {
	return []prometheus.Collector{c.calls, c.duration, c.dropped}
}

// ObserveCall counts the call and records its duration.
func (c *Collector) ObserveCall(listener, method string, elapsed time.Duration, err error) {
	c.calls.WithLabelValues(listener, method, outcome(err)).Inc()
	c.duration.WithLabelValues(listener, method).Observe(elapsed.Seconds())
}

// ObserveDropped counts a dropped nested call.
func (c *Collector) ObserveDropped(listener, method string) {
	c.dropped.WithLabelValues(listener, method).Inc()
}

func outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case listen.IsTimeout(err):
		return OutcomeTimeout
	default:
		return OutcomeError
	}
}

var _ listen.Recorder = (*Collector)(nil)
