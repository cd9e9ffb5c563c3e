// Package waitqueue provides a blocking FIFO queue for goroutine hand-off.
package waitqueue

import (
	"sync"
	"sync/atomic"
	"time"
)

// DefaultPopTimeout is the wait budget Pop uses when callers have no
// stronger opinion (see PopDefault).
const DefaultPopTimeout = 100 * time.Millisecond

// waitEmptyMaxBackoff caps the poll interval of WaitEmpty.
const waitEmptyMaxBackoff = 16 * time.Millisecond

// compactMinHead is the consumed-prefix length below which Pop never
// bothers compacting the backing slice.
const compactMinHead = 32

// snapshotType tags queue snapshots with the structure name and schema
// version so external consumers can dispatch on the record shape.
const snapshotType = "WaitableQueue/1.0.0"

// Queue is an unbounded FIFO queue for any number of concurrent producers
// and consumers. Producers Push without blocking; consumers Pop with a
// bounded wait, parked on a counting signal until work arrives.
//
// The zero value is not usable; call New. A Queue must not be copied after
// first use.
type Queue[T any] struct {
	noCopy noCopy

	mu    sync.RWMutex
	items []T
	head  int

	sig *signal

	adds    atomic.Uint64
	removes atomic.Uint64
}

// New creates an empty queue.
func New[T any]() *Queue[T] {
	return &Queue[T]{sig: newSignal()}
}

// Push appends v to the tail and wakes at most one waiting consumer.
// It always succeeds; the queue is unbounded.
func (q *Queue[T]) Push(v T) {
	q.mu.Lock()
	q.items = append(q.items, v)
	q.adds.Add(1)
	q.mu.Unlock()

	// Wake after unlock, never under it: a consumer woken while the
	// producer still holds the lock would stall on acquisition and burn
	// its wait budget for nothing.
	q.sig.release()
}

// Pop removes and returns the front item, waiting up to timeout for one to
// become available. It returns the zero value and false when the wait times
// out, and also on the rare wake that finds the queue already drained by a
// faster consumer; the signal credit is dropped in that case rather than
// retried, since the signal is an availability hint, not a reservation.
//
// A non-positive timeout makes a single non-blocking attempt.
func (q *Queue[T]) Pop(timeout time.Duration) (T, bool) {
	var zero T

	if !q.sig.acquire(timeout) {
		return zero, false
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	if q.head == len(q.items) {
		return zero, false
	}

	v := q.items[q.head]
	q.items[q.head] = zero // release the slot for GC
	q.head++
	q.compact()
	q.removes.Add(1)
	return v, true
}

// PopDefault is Pop with DefaultPopTimeout.
func (q *Queue[T]) PopDefault() (T, bool) {
	return q.Pop(DefaultPopTimeout)
}

// compact reclaims the consumed prefix once it dominates the backing slice.
// Caller must hold the exclusive lock.
func (q *Queue[T]) compact() {
	if q.head <= compactMinHead || q.head <= len(q.items)/2 {
		return
	}
	n := copy(q.items, q.items[q.head:])
	clear(q.items[n:])
	q.items = q.items[:n]
	q.head = 0
}

// Len returns the current queue length. The value is a point-in-time
// snapshot and may be stale the instant it returns under concurrent use.
func (q *Queue[T]) Len() int {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return len(q.items) - q.head
}

// AddCount returns the number of successful pushes over the queue's
// lifetime. Lock-free; never blocks.
func (q *Queue[T]) AddCount() uint64 {
	return q.adds.Load()
}

// RemoveCount returns the number of successful pops over the queue's
// lifetime. Lock-free; never blocks.
func (q *Queue[T]) RemoveCount() uint64 {
	return q.removes.Load()
}

// WaitEmpty polls until the queue drains or timeout elapses and returns the
// last observed length. The poll interval grows linearly up to a small cap.
//
// This is a convenience for drain loops and tests, not a synchronization
// barrier: a concurrent Push can land right after it returns zero.
func (q *Queue[T]) WaitEmpty(timeout time.Duration) int {
	deadline := time.Now().Add(timeout)
	backoff := time.Millisecond

	for {
		n := q.Len()
		if n == 0 || !time.Now().Before(deadline) {
			return n
		}
		time.Sleep(backoff)
		if backoff < waitEmptyMaxBackoff {
			backoff += time.Millisecond
		}
	}
}

// Snapshot is a point-in-time view of the queue's counters for external
// reporting. Serializing it (or not) is entirely the caller's concern.
type Snapshot struct {
	Type    string `json:"type"`
	Adds    uint64 `json:"adds"`
	Removes uint64 `json:"removes"`
	Size    int    `json:"size"`
}

// Snapshot returns the current counter snapshot. The three numbers are read
// under the shared lock, so they reconcile with each other (adds - removes
// equals size) even while producers and consumers keep running.
func (q *Queue[T]) Snapshot() Snapshot {
	q.mu.RLock()
	defer q.mu.RUnlock()

	return Snapshot{
		Type:    snapshotType,
		Adds:    q.adds.Load(),
		Removes: q.removes.Load(),
		Size:    len(q.items) - q.head,
	}
}

// noCopy makes `go vet -copylocks` flag queues copied by value.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}
