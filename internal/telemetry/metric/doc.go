// Package metric provides Prometheus metrics for synckit.
//
// Registry wraps a dedicated prometheus.Registry preloaded with the Go
// runtime and process collectors plus the workload series: counters for
// pushes, pops, pop misses and collisions, and a per-operation latency
// histogram. Every series lives under the "synckit" namespace. Global
// returns a process-wide Registry for code without one wired in, and
// Handler serves either registry in exposition format at /metrics.
//
// StatsCollector bridges the live structures into scrapes: it reads
// Len, AddCount and RemoveCount from each tracked queue or map at
// collect time and emits them as const metrics, so gauges never go
// stale between workload ticks.
//
// @req RQ-0403
// @design DS-0402
package metric
