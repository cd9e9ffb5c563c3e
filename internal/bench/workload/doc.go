// Package workload drives concurrent producer/consumer load through the
// collection primitives.
//
// A Runner owns one waitqueue.Queue and one rwmap.Map. Producers push
// ULID-tagged jobs into the queue, optionally rate limited. Consumers pop
// with a timeout and fold each job into a keyed record map, exercising the
// collision policies. The run ends when every producer finished and the
// queue drained, when the configured duration expires, or when the context
// is canceled.
//
// Features:
//
//   - Configurable producer/consumer goroutine counts
//   - Per-producer rate limiting (golang.org/x/time/rate)
//   - MurmurHash3 key derivation over a bounded key space
//   - Runtime collision policy switching for config hot reload
//   - Result aggregation with queue and map snapshots
//
// @req RQ-0201
// @design DS-0201
package workload
