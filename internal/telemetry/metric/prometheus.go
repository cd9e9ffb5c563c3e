// Package metric provides Prometheus metrics for synckit.
package metric

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// namespace prefixes every metric this package registers.
const namespace = "synckit"

// Registry bundles the workload metrics with their backing registry.
type Registry struct {
	registry *prometheus.Registry

	// Workload metrics
	JobsPushed prometheus.Counter
	JobsPopped prometheus.Counter
	PopMisses  prometheus.Counter
	Collisions prometheus.Counter
	OpDuration *prometheus.HistogramVec
}

// NewRegistry creates a metrics registry with workload metrics plus the
// standard Go runtime and process collectors.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	r := &Registry{
		registry: reg,
		JobsPushed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "bench",
			Name:      "jobs_pushed_total",
			Help:      "Total jobs pushed to the queue by producers.",
		}),
		JobsPopped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "bench",
			Name:      "jobs_popped_total",
			Help:      "Total jobs delivered to consumers.",
		}),
		PopMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "bench",
			Name:      "pop_misses_total",
			Help:      "Pop attempts that timed out or woke to a drained queue.",
		}),
		Collisions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "bench",
			Name:      "collisions_total",
			Help:      "Map adds rejected by the fail-on-collision policy.",
		}),
		OpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "bench",
			Name:      "op_duration_seconds",
			Help:      "Latency of individual queue operations.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 10),
		}, []string{"op"}),
	}

	reg.MustRegister(r.JobsPushed, r.JobsPopped, r.PopMisses, r.Collisions, r.OpDuration)
	return r
}

// IncJobsPushed records a successful push.
func (r *Registry) IncJobsPushed() { r.JobsPushed.Inc() }

// IncJobsPopped records a successful pop.
func (r *Registry) IncJobsPopped() { r.JobsPopped.Inc() }

// IncPopMiss records a pop attempt that returned empty.
func (r *Registry) IncPopMiss() { r.PopMisses.Inc() }

// IncCollision records an add rejected by fail-on-collision.
func (r *Registry) IncCollision() { r.Collisions.Inc() }

// ObserveOpDuration records the latency of one queue operation.
func (r *Registry) ObserveOpDuration(op string, seconds float64) {
	r.OpDuration.WithLabelValues(op).Observe(seconds)
}

// MustRegister adds extra collectors (e.g. a StatsCollector) to the
// underlying registry, panicking on descriptor clashes.
func (r *Registry) MustRegister(cs ...prometheus.Collector) {
	r.registry.MustRegister(cs...)
}

// Handler returns an HTTP handler exposing this registry's metrics.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Global registry instance.
var (
	globalOnce sync.Once
	global     *Registry
)

// Global returns the process-wide registry, creating it on first use.
func Global() *Registry {
	globalOnce.Do(func() {
		global = NewRegistry()
	})
	return global
}

// Handler returns an HTTP handler for the /metrics endpoint backed by the
// global registry.
func Handler() http.Handler {
	return Global().Handler()
}
