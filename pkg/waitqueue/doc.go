// Package waitqueue provides a blocking FIFO queue for producer/consumer
// hand-off between goroutines.
//
// This package implements an unbounded waitable queue with the following
// features:
//
//   - Blocking Consumption: Pop waits up to a bounded timeout for an item
//   - Counting Signal: producers wake at most one waiting consumer per push
//   - Monotonic Counters: lock-free add/remove counters for reconciliation
//   - Diagnostics: an unconditional counter snapshot for external reporting
//
// Usage:
//
//	q := waitqueue.New[Job]()
//	q.Push(job)
//	if job, ok := q.Pop(100 * time.Millisecond); ok {
//		process(job)
//	}
//
// Thread Safety:
//
// All operations are safe for any number of concurrent producers and
// consumers. A Queue must not be copied after first use; share a single
// instance by pointer.
//
// @req RQ-0101
// @design DS-0101
package waitqueue
