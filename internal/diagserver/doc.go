// Package diagserver provides the diagnostics HTTP server for synckit.
//
// The server exposes read-only runtime endpoints while a bench run is
// in flight:
//
//   - GET /healthz: liveness plus build information
//   - GET /snapshot: point-in-time snapshots of the tracked structures
//   - GET /metrics: Prometheus scrape endpoint
//
// Requests pass through a small middleware chain: panic recovery,
// request ID tagging, and access logging.
//
// @req RQ-0301
// @design DS-0301
package diagserver
