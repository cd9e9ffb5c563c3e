// Package waitqueue provides a blocking FIFO queue for goroutine hand-off.
package waitqueue

import (
	"sync"
	"time"
)

// signal is a counting availability signal. It starts at zero credits;
// release grants one credit and wakes at most one waiter, acquire consumes
// one credit, waiting up to a bounded timeout for it to appear.
//
// Credits are an availability hint, not a reservation: the count converges
// to the queue length but may briefly exceed it while operations are in
// flight, and a waiter that wins a credit may still find the queue drained.
type signal struct {
	mu      sync.Mutex
	credits uint64

	// wake carries at most one token. A waiter that consumes the token but
	// leaves credits behind re-arms it, so stacked releases cannot strand
	// sleeping waiters.
	wake chan struct{}
}

func newSignal() *signal {
	return &signal{wake: make(chan struct{}, 1)}
}

// release grants one credit and wakes at most one waiter. Callers must not
// hold locks that woken waiters acquire next.
func (s *signal) release() {
	s.mu.Lock()
	s.credits++
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// acquire consumes one credit, waiting up to timeout for one to appear.
// A non-positive timeout makes a single non-blocking attempt.
func (s *signal) acquire(timeout time.Duration) bool {
	if s.take() {
		return true
	}
	if timeout <= 0 {
		return false
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	for {
		select {
		case <-s.wake:
			// The token is a hint; another waiter may have consumed the
			// credit first, in which case keep waiting out the budget.
			if s.take() {
				return true
			}
		case <-timer.C:
			return false
		}
	}
}

// take consumes one credit if any are available. When credits remain after
// the take, the wake token is re-armed for the next waiter.
func (s *signal) take() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.credits == 0 {
		return false
	}
	s.credits--

	if s.credits > 0 {
		select {
		case s.wake <- struct{}{}:
		default:
		}
	}
	return true
}

// pending returns the current credit count.
func (s *signal) pending() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.credits
}
